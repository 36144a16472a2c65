// Package source opens mesh and field files, transparently falling back to a
// compressed sibling when the plain file is absent.
//
// Every file is read fully and closed before any decoding starts; the result is
// a Content whose lines are never converted to text, so binary offsets computed
// against it stay exact.
//
// # Basic Usage
//
//	content, err := source.Open("case/constant/polyMesh/points")
//	if errors.Is(err, errs.ErrNotFound) {
//	    // neither "points" nor "points.gz", "points.zst", ... exist
//	}
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/arloliu/foamio/compress"
	"github.com/arloliu/foamio/errs"
	"github.com/arloliu/foamio/format"
)

// Open reads path with a Config built from opts.
func Open(path string, opts ...Option) (*Content, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return cfg.Open(path)
}

// Open reads path, or the first existing compressed sibling of path.
//
// A path that itself carries a compression suffix is decompressed with the
// matching codec and no siblings are tried.
//
// Returns:
//   - *Content: The decompressed, line-split content
//   - error: ErrNotFound if no candidate exists, or a read/decompression error
func (c *Config) Open(path string) (*Content, error) {
	if ct := format.CompressionFromSuffix(path); ct != format.CompressionNone {
		content, ok, err := c.tryRead(path, ct)
		if err != nil || ok {
			return content, err
		}

		return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, path)
	}

	content, ok, err := c.tryRead(path, format.CompressionNone)
	if err != nil || ok {
		return content, err
	}

	for _, ct := range c.compressions {
		sibling := path + ct.Suffix()

		content, ok, err := c.tryRead(sibling, ct)
		if err != nil {
			return nil, err
		}

		if ok {
			c.logger.Debug("using compressed sibling", "path", path, "sibling", sibling, "compression", ct.String())
			return content, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, path)
}

// tryRead reads and decompresses path. A missing file reports ok == false
// without an error.
func (c *Config) tryRead(path string, ct format.CompressionType) (*Content, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}

	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, false, err
	}

	raw, err := codec.Decompress(data)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}

	return NewContent(path, ct, raw), true, nil
}
