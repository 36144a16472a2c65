package section

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/foamio/endian"
	"github.com/arloliu/foamio/errs"
	"github.com/arloliu/foamio/format"
	"github.com/arloliu/foamio/source"
)

// Word widths in bytes.
const (
	DefaultLabelWidth  = 4
	DefaultScalarWidth = 8
)

// Layout describes how a file body is encoded.
type Layout struct {
	// Format is the body format.
	Format format.FileFormat
	// Engine is the byte order of binary words.
	Engine endian.EndianEngine
	// LabelWidth is the size in bytes of an index word (4 or 8).
	LabelWidth int
	// ScalarWidth is the size in bytes of a floating-point word (8 or 4).
	ScalarWidth int
}

// DefaultLayout returns the layout of a body in the given format with native
// byte order and default word widths.
func DefaultLayout(f format.FileFormat) Layout {
	return Layout{
		Format:      f,
		Engine:      endian.GetNativeEngine(),
		LabelWidth:  DefaultLabelWidth,
		ScalarWidth: DefaultScalarWidth,
	}
}

// Header holds the FoamFile dictionary entries of a file.
type Header struct {
	Layout

	Version  string
	Class    string
	Location string
	Object   string
	Arch     string
}

// Sniff classifies the body of content using the default scan limit.
func Sniff(content *source.Content) format.FileFormat {
	return SniffWithin(content, source.DefaultHeaderScanLimit)
}

// SniffWithin classifies the body of content as ASCII or Binary by scanning at
// most limit leading lines.
//
// The first line holding a "format" keyword decides: Binary if that line also
// contains "binary", ASCII otherwise. Without such a line the body is ASCII.
func SniffWithin(content *source.Content, limit int) format.FileFormat {
	n := min(limit, content.Len())
	for i := 0; i < n; i++ {
		line := content.Text(i)
		if !hasKeyword(line, "format") {
			continue
		}

		if strings.Contains(line, "binary") {
			return format.Binary
		}

		return format.ASCII
	}

	return format.ASCII
}

// Inspect parses the header of content with the limits and byte order override
// of cfg.
func Inspect(content *source.Content, cfg *source.Config) (Header, error) {
	h, err := ParseHeader(content, cfg.HeaderScanLimit())
	if err != nil {
		return h, fmt.Errorf("%s: %w", content.Path, err)
	}

	if engine, ok := cfg.ByteOrder(); ok {
		h.Engine = engine
	}

	return h, nil
}

// ParseHeader extracts the FoamFile dictionary entries found in the first limit
// lines of content.
//
// Returns:
//   - Header: The parsed header; entries not present stay empty
//   - error: ErrInvalidHeader when the arch entry declares unsupported word widths
func ParseHeader(content *source.Content, limit int) (Header, error) {
	h := Header{Layout: DefaultLayout(SniffWithin(content, limit))}

	n := min(limit, content.Len())
	for i := 0; i < n; i++ {
		key, value, ok := entry(content.Text(i))
		if !ok {
			continue
		}

		switch key {
		case "version":
			h.Version = value
		case "class":
			h.Class = value
		case "location":
			h.Location = value
		case "object":
			h.Object = value
		case "arch":
			h.Arch = value
			if err := h.applyArch(value); err != nil {
				return h, err
			}
		}
	}

	return h, nil
}

// applyArch interprets an arch string such as "LSB;label=32;scalar=64".
func (h *Header) applyArch(arch string) error {
	for _, token := range strings.Split(arch, ";") {
		token = strings.TrimSpace(token)
		name, bits, found := strings.Cut(token, "=")
		if !found {
			if engine, ok := endian.EngineForArch(token); ok {
				h.Engine = engine
			}

			continue
		}

		width, err := strconv.Atoi(strings.TrimSpace(bits))
		if err != nil || (width != 32 && width != 64) {
			return fmt.Errorf("%w: arch %q declares %s width %q", errs.ErrInvalidHeader, arch, name, bits)
		}

		switch strings.TrimSpace(name) {
		case "label":
			h.LabelWidth = width / 8
		case "scalar":
			h.ScalarWidth = width / 8
		}
	}

	return nil
}

// entry splits a "key value;" dictionary line. Quotes around the value are removed.
func entry(line string) (string, string, bool) {
	key, rest, found := strings.Cut(line, " ")
	if !found {
		key, rest, found = strings.Cut(line, "\t")
		if !found {
			return "", "", false
		}
	}

	rest = strings.TrimSpace(rest)
	if !strings.HasSuffix(rest, ";") {
		return "", "", false
	}

	value := strings.TrimSpace(strings.TrimSuffix(rest, ";"))
	value = strings.Trim(value, `"`)

	return key, value, true
}

// hasKeyword reports whether word appears in line as a whole token.
func hasKeyword(line, word string) bool {
	for _, f := range strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ';'
	}) {
		if f == word {
			return true
		}
	}

	return false
}
