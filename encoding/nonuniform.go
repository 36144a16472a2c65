package encoding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/foamio/errs"
	"github.com/arloliu/foamio/format"
	"github.com/arloliu/foamio/internal/pool"
	"github.com/arloliu/foamio/section"
	"github.com/arloliu/foamio/source"
)

// MaxRepeatedEntries bounds the count of an inline "N{v}" list, the only list
// form whose length is not backed by entries in the file.
const MaxRepeatedEntries = 1 << 28

// Block is a decoded nonuniform list.
type Block struct {
	// Values holds one value per declared entry.
	Values []Value
	// Kind is the value kind of the list.
	Kind format.ValueKind
	// Lines is the number of lines the list spans, starting at its declaration.
	Lines int
}

// DecodeNonuniform decodes the nonuniform list declared at line start and
// returns its values.
//
// Line end bounds the list: the last line of the enclosing patch block, or the
// last line of the file for an internal field.
func DecodeNonuniform(content *source.Content, start, end int, layout section.Layout) ([]Value, error) {
	b, err := DecodeBlock(content, start, end, layout)
	if err != nil {
		return nil, err
	}

	return b.Values, nil
}

// DecodeBlock decodes the nonuniform list declared at line start.
//
// The count is read from line start+1. An ASCII list reads exactly count entry
// lines beginning at start+3. A binary list concatenates the lines from start+2
// up to end, skips the marker byte and reinterprets count entries of raw scalar
// words, the arity coming from the type keyword of the declaration line.
//
// Short lists written on the declaration line itself, such as "List<scalar> 0()"
// or "List<scalar> 3(1 2 3)", are decoded in place and span one line.
//
// Returns:
//   - Block: Values, kind and the number of lines spanned
//   - error: ErrInvalidCount for a malformed count, ErrDecodeMismatch when the
//     data disagrees with the declared count or arity
func DecodeBlock(content *source.Content, start, end int, layout section.Layout) (Block, error) {
	decl := content.Text(start)
	if rest, ok := InlineList(decl); ok {
		b, err := decodeInline(decl, rest, layout)
		if err != nil {
			return Block{}, fmt.Errorf("line %d: %w", start+1, err)
		}

		return b, nil
	}

	count, err := ParseCount(content.Text(start + CountLineOffset))
	if err != nil {
		return Block{}, fmt.Errorf("line %d: %w", start+CountLineOffset+1, err)
	}

	if layout.Format == format.Binary {
		return decodeBinary(content, start, end, count, decl, layout)
	}

	return decodeASCII(content, start, end, count, decl)
}

// ParseCount parses a list count line.
func ParseCount(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCount, text)
	}

	return n, nil
}

func decodeBinary(content *source.Content, start, end, count int, decl string, layout section.Layout) (Block, error) {
	kind := format.KindFromKeyword(decl)
	arity := kind.Arity()
	dec := NewNumericRawDecoder(layout.Engine, layout.ScalarWidth)
	size, err := FitPayload(content, start+BodyLineOffset, count, arity, dec.Width())
	if err != nil {
		return Block{}, err
	}

	flat, release := pool.GetFloat64Slice(count * arity)
	defer release()

	err = ReadPayload(content, start+BodyLineOffset, end, size, func(payload []byte) error {
		return dec.Decode(payload, flat)
	})
	if err != nil {
		return Block{}, err
	}

	values := make([]Value, count)
	for i := range values {
		values[i].kind = kind
		copy(values[i].comps[:arity], flat[i*arity:(i+1)*arity])
	}

	return Block{Values: values, Kind: kind, Lines: BinaryBlockLines(content, start, size)}, nil
}

func decodeASCII(content *source.Content, start, end, count int, decl string) (Block, error) {
	kind, declared := declaredKind(decl)
	first := start + ASCIIDataLineOffset
	last := min(end, content.Len()-1)
	if avail := last - first + 1; avail < count {
		return Block{}, fmt.Errorf("%w: list at line %d declares %d entries, %d lines available",
			errs.ErrDecodeMismatch, start+1, count, max(avail, 0))
	}

	values := make([]Value, count)
	for i := range values {
		text := content.Text(first + i)
		if text == ")" {
			return Block{}, fmt.Errorf("%w: list at line %d closes after %d of %d entries",
				errs.ErrDecodeMismatch, start+1, i, count)
		}

		v, err := ParseEntry(text)
		if err != nil {
			return Block{}, fmt.Errorf("line %d: %w", first+i+1, err)
		}

		if !declared && i == 0 {
			kind, declared = v.kind, true
		}
		if v.kind != kind {
			return Block{}, fmt.Errorf("%w: line %d holds a %s, list is %s",
				errs.ErrDecodeMismatch, first+i+1, v.kind, kind)
		}
		values[i] = v
	}

	if !declared {
		kind = format.KindScalar
	}

	return Block{Values: values, Kind: kind, Lines: ASCIIBlockLines(count)}, nil
}

func decodeInline(decl, rest string, layout section.Layout) (Block, error) {
	digits := len(rest) - len(strings.TrimLeft(rest, "0123456789"))
	count, err := ParseCount(rest[:digits])
	if err != nil {
		return Block{}, err
	}

	kind, declared := declaredKind(decl)
	body := strings.TrimSpace(rest[digits:])
	if layout.Format == format.Binary && count > 0 {
		return Block{}, fmt.Errorf("%w: inline binary list of %d entries", errs.ErrDecodeMismatch, count)
	}

	var values []Value
	switch {
	case strings.HasPrefix(body, "{") && strings.HasSuffix(body, "}"):
		if count > MaxRepeatedEntries {
			return Block{}, fmt.Errorf("%w: repeated list of %d entries exceeds %d", errs.ErrInvalidCount, count, MaxRepeatedEntries)
		}
		v, err := ParseEntry(strings.TrimSpace(body[1 : len(body)-1]))
		if err != nil {
			return Block{}, err
		}
		values = make([]Value, count)
		for i := range values {
			values[i] = v
		}
	case strings.HasPrefix(body, "(") && strings.HasSuffix(body, ")"):
		values, err = splitEntries(body[1 : len(body)-1])
		if err != nil {
			return Block{}, err
		}
	default:
		return Block{}, fmt.Errorf("%w: malformed inline list %q", errs.ErrStructural, rest)
	}

	if len(values) != count {
		return Block{}, fmt.Errorf("%w: inline list declares %d entries, holds %d", errs.ErrDecodeMismatch, count, len(values))
	}

	if !declared {
		kind = format.KindScalar
		if count > 0 {
			kind = values[0].kind
		}
	}
	for _, v := range values {
		if v.kind != kind {
			return Block{}, fmt.Errorf("%w: inline entry is a %s, list is %s", errs.ErrDecodeMismatch, v.kind, kind)
		}
	}

	return Block{Values: values, Kind: kind, Lines: 1}, nil
}

// InlineList returns the text following the list type of a declaration line,
// without the ";" terminator, when a list is written on that line.
func InlineList(decl string) (string, bool) {
	var rest string
	if idx := strings.LastIndexByte(decl, '>'); idx >= 0 {
		rest = decl[idx+1:]
	} else {
		_, after, found := strings.Cut(decl, "nonuniform")
		if !found {
			return "", false
		}
		rest = after
	}

	rest = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), ";"))

	return rest, rest != ""
}

// declaredKind returns the kind named by a type keyword on the declaration line.
func declaredKind(decl string) (format.ValueKind, bool) {
	l := strings.ToLower(decl)
	if !strings.Contains(l, "scalar") && !strings.Contains(l, "vector") && !strings.Contains(l, "tensor") {
		return 0, false
	}

	return format.KindFromKeyword(decl), true
}

// ParseEntry parses one ASCII entry: a bare number or a parenthesised tuple.
func ParseEntry(text string) (Value, error) {
	if open := strings.IndexByte(text, '('); open >= 0 {
		body, err := between(text, open)
		if err != nil {
			return Value{}, err
		}

		return parseTuple(body)
	}

	f, err := parseFloat(text)
	if err != nil {
		return Value{}, err
	}

	return ScalarValue(f), nil
}

// splitEntries parses the entries of an inline list body.
func splitEntries(inner string) ([]Value, error) {
	if !strings.Contains(inner, "(") {
		fields := strings.Fields(inner)
		values := make([]Value, len(fields))
		for i, f := range fields {
			v, err := parseFloat(f)
			if err != nil {
				return nil, err
			}
			values[i] = ScalarValue(v)
		}

		return values, nil
	}

	var values []Value
	depth, open := 0, 0
	for i, r := range inner {
		switch r {
		case '(':
			if depth == 0 {
				open = i
			}
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced parentheses in %q", errs.ErrInvalidValue, inner)
			}
			if depth == 0 {
				v, err := parseTuple(inner[open+1 : i])
				if err != nil {
					return nil, err
				}
				values = append(values, v)
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unbalanced parentheses in %q", errs.ErrInvalidValue, inner)
	}

	return values, nil
}
