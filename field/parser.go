package field

import (
	"fmt"
	"strings"

	"github.com/arloliu/foamio/boundary"
	"github.com/arloliu/foamio/encoding"
	"github.com/arloliu/foamio/section"
	"github.com/arloliu/foamio/source"
)

// InternalFieldKeyword introduces the internal field entry.
const InternalFieldKeyword = "internalField"

// Option configures a Parser.
type Option = source.Option

// Parser parses field files.
//
// A Parser holds no per-file state and is safe for concurrent use.
type Parser struct {
	cfg *source.Config
}

// NewParser creates a Parser with the given options.
func NewParser(opts ...Option) (*Parser, error) {
	cfg, err := source.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Parser{cfg: cfg}, nil
}

// ParseInternalField parses the internal field of content with a parser built
// from opts.
func ParseInternalField(content *source.Content, opts ...Option) (*InternalField, error) {
	p, err := NewParser(opts...)
	if err != nil {
		return nil, err
	}

	return p.InternalField(content)
}

// ParseBoundaryField parses the boundary field of content with a parser built
// from opts.
func ParseBoundaryField(content *source.Content, opts ...Option) (BoundaryField, error) {
	p, err := NewParser(opts...)
	if err != nil {
		return nil, err
	}

	return p.BoundaryField(content)
}

// ReadInternalField opens the field file at path, falling back to a compressed
// sibling, and parses its internal field.
func ReadInternalField(path string, opts ...Option) (*InternalField, error) {
	p, err := NewParser(opts...)
	if err != nil {
		return nil, err
	}

	return p.ReadInternalField(path)
}

// ReadBoundaryField opens the field file at path, falling back to a compressed
// sibling, and parses its boundary field.
func ReadBoundaryField(path string, opts ...Option) (BoundaryField, error) {
	p, err := NewParser(opts...)
	if err != nil {
		return nil, err
	}

	return p.ReadBoundaryField(path)
}

// ReadInternalField opens path and parses its internal field.
//
// Returns an error wrapping ErrNotFound when neither the file nor a compressed
// sibling exists.
func (p *Parser) ReadInternalField(path string) (*InternalField, error) {
	content, err := p.cfg.Open(path)
	if err != nil {
		return nil, err
	}

	return p.InternalField(content)
}

// ReadBoundaryField opens path and parses its boundary field.
func (p *Parser) ReadBoundaryField(path string) (BoundaryField, error) {
	content, err := p.cfg.Open(path)
	if err != nil {
		return nil, err
	}

	return p.BoundaryField(content)
}

// File is a parsed field file.
type File struct {
	Header   section.Header
	Internal *InternalField
	// Boundary is nil when the file has no boundaryField section.
	Boundary BoundaryField
}

// Read opens path and parses both fields from a single read.
func (p *Parser) Read(path string) (*File, error) {
	content, err := p.cfg.Open(path)
	if err != nil {
		return nil, err
	}

	return p.Parse(content)
}

// Parse parses the header, the internal field and, when present, the boundary
// field of content.
func (p *Parser) Parse(content *source.Content) (*File, error) {
	hdr, err := section.Inspect(content, p.cfg)
	if err != nil {
		return nil, err
	}

	internal, err := p.InternalField(content)
	if err != nil {
		return nil, err
	}

	f := &File{Header: hdr, Internal: internal}
	if !hasBoundarySection(content) {
		return f, nil
	}

	if f.Boundary, err = p.BoundaryField(content); err != nil {
		return nil, err
	}

	return f, nil
}

func hasBoundarySection(content *source.Content) bool {
	for i := range content.Len() {
		fields := strings.Fields(content.Text(i))
		if len(fields) > 0 && strings.TrimSuffix(fields[0], "{") == boundary.FieldKeyword {
			return true
		}
	}

	return false
}

// InternalField parses the first line starting with "internalField".
//
// A nonuniform entry is decoded as a list bounded by the end of the file and a
// uniform entry as a single value.
//
// Returns:
//   - *InternalField: The parsed field, or nil when the file has no uniform or
//     nonuniform internal field
//   - error: Header, count or decode errors
func (p *Parser) InternalField(content *source.Content) (*InternalField, error) {
	hdr, err := section.Inspect(content, p.cfg)
	if err != nil {
		return nil, err
	}

	for i := range content.Len() {
		text := content.Text(i)
		if !strings.HasPrefix(text, InternalFieldKeyword) {
			continue
		}

		switch entryForm(text) {
		case nonuniformForm:
			b, err := encoding.DecodeBlock(content, i, content.Len()-1, hdr.Layout)
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", content.Path, InternalFieldKeyword, err)
			}

			return NewNonuniform(b.Kind, b.Values), nil
		case uniformForm:
			v, err := encoding.DecodeUniform(text)
			if err != nil {
				return nil, fmt.Errorf("%s: line %d: %w", content.Path, i+1, err)
			}

			return NewUniform(v), nil
		}

		p.cfg.Logger().Debug("internal field has no value", "path", content.Path, "line", i+1)

		return nil, nil
	}

	p.cfg.Logger().Debug("internal field absent", "path", content.Path)

	return nil, nil
}

// BoundaryField parses every patch block of the boundaryField section.
//
// Within a patch, lines whose second token is "uniform" or "nonuniform" are
// decoded and keyed by their first token. A nonuniform list is bounded by the
// patch's closing line and the cursor skips every line it spans.
func (p *Parser) BoundaryField(content *source.Content) (BoundaryField, error) {
	hdr, err := section.Inspect(content, p.cfg)
	if err != nil {
		return nil, err
	}

	spans, err := boundary.ParseSpans(content, hdr.Layout)
	if err != nil {
		return nil, err
	}

	bf := make(BoundaryField, len(spans))
	for _, span := range spans {
		entries, err := parsePatch(content, span, hdr.Layout)
		if err != nil {
			return nil, fmt.Errorf("%s: patch %q: %w", content.Path, span.Name, err)
		}
		bf[span.Name] = entries
	}

	p.cfg.Logger().Debug("boundary field parsed", "path", content.Path, "patches", len(bf))

	return bf, nil
}

func parsePatch(content *source.Content, span boundary.Span, layout section.Layout) (PatchEntries, error) {
	entries := make(PatchEntries)

	for cur := span.Start; cur <= span.End; {
		text := content.Text(cur)

		switch entryForm(text) {
		case nonuniformForm:
			b, err := encoding.DecodeBlock(content, cur, span.End, layout)
			if err != nil {
				return nil, err
			}
			entries[entryKey(text)] = Entry{Kind: b.Kind, Values: b.Values}
			cur += b.Lines
		case uniformForm:
			v, err := encoding.DecodeUniform(text)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", cur+1, err)
			}
			entries[entryKey(text)] = Entry{Kind: v.Kind(), Uniform: true, Value: v}
			cur++
		default:
			cur++
		}
	}

	return entries, nil
}

type form uint8

const (
	noForm form = iota
	uniformForm
	nonuniformForm
)

// entryForm classifies an entry line by its second token, so that names such as
// "uniformFixedValue" are not taken for values.
func entryForm(text string) form {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return noForm
	}

	switch tok := fields[1]; {
	case tok == "nonuniform":
		return nonuniformForm
	case tok == "uniform" || strings.HasPrefix(tok, "uniform("):
		return uniformForm
	default:
		return noForm
	}
}

func entryKey(text string) string {
	key, _, _ := strings.Cut(text, " ")
	key, _, _ = strings.Cut(key, "\t")

	return key
}
