package source

import (
	"bytes"
	"io"

	"github.com/arloliu/foamio/format"
	"github.com/arloliu/foamio/internal/hash"
)

// Content is the decoded, line-split body of one file.
//
// Lines keep their trailing newline so that writing a range of consecutive lines
// reproduces the original bytes exactly. Binary bodies routinely contain newline
// bytes, and their offsets depend on this.
//
// Content is immutable after construction.
type Content struct {
	// Path is the file actually read, which is a compressed sibling when the plain
	// file was absent.
	Path string
	// Compression is the compression of the file at Path.
	Compression format.CompressionType
	// Lines holds the raw lines, each including its "\n" terminator when present.
	Lines [][]byte
}

// NewContent splits decompressed data into lines.
func NewContent(path string, compression format.CompressionType, data []byte) *Content {
	lines := bytes.SplitAfter(data, []byte("\n"))
	if n := len(lines); n > 0 && len(lines[n-1]) == 0 {
		lines = lines[:n-1]
	}

	return &Content{Path: path, Compression: compression, Lines: lines}
}

// Len returns the number of lines.
func (c *Content) Len() int {
	return len(c.Lines)
}

// Line returns raw line i, or nil when i is out of range.
func (c *Content) Line(i int) []byte {
	if i < 0 || i >= len(c.Lines) {
		return nil
	}

	return c.Lines[i]
}

// Text returns line i with surrounding whitespace removed, or "" when i is out
// of range.
func (c *Content) Text(i int) string {
	return string(bytes.TrimSpace(c.Line(i)))
}

// WriteRange writes lines from through to, inclusive, to w. The range is
// clamped to the available lines.
func (c *Content) WriteRange(w io.Writer, from, to int) (int64, error) {
	from = max(from, 0)
	to = min(to, len(c.Lines)-1)

	var total int64
	for i := from; i <= to; i++ {
		n, err := w.Write(c.Lines[i])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// Size returns the total number of bytes over all lines.
func (c *Content) Size() int {
	return c.SizeFrom(0)
}

// SizeFrom returns the number of bytes from the start of line i to the end of
// the content.
func (c *Content) SizeFrom(i int) int {
	n := 0
	for _, line := range c.Lines[min(max(i, 0), len(c.Lines)):] {
		n += len(line)
	}

	return n
}

// Fingerprint returns the xxHash64 of the full decompressed content. A plain file
// and its compressed sibling have equal fingerprints.
func (c *Content) Fingerprint() uint64 {
	return hash.Lines(c.Lines)
}
