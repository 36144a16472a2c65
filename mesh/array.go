package mesh

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arloliu/foamio/encoding"
	"github.com/arloliu/foamio/errs"
	"github.com/arloliu/foamio/format"
	"github.com/arloliu/foamio/internal/pool"
	"github.com/arloliu/foamio/section"
	"github.com/arloliu/foamio/source"
)

// CompactFaceClass is the header class of a face file stored as an offset list
// followed by a flat vertex list.
const CompactFaceClass = "faceCompactList"

// list is an array list located in a mesh file.
type list struct {
	count int
	// line holds the count.
	line int
	// inline is set for a list written on its count line; body is then the text
	// between the outer parentheses.
	inline bool
	body   string
}

// locate finds the first list at or after line from. The count is a bare
// integer line followed by a line opening with "(", or an integer immediately
// followed by "(" for a list written on one line.
func locate(content *source.Content, from int) (list, error) {
	for i := max(from, 0); i < content.Len(); i++ {
		text := content.Text(i)
		digits := len(text) - len(strings.TrimLeft(text, "0123456789"))
		if digits == 0 {
			continue
		}

		rest := strings.TrimSpace(text[digits:])
		switch {
		case rest == "":
			if !strings.HasPrefix(content.Text(i+1), "(") {
				continue
			}
		case rest[0] != '(':
			continue
		}

		count, err := encoding.ParseCount(text[:digits])
		if err != nil {
			return list{}, fmt.Errorf("line %d: %w", i+1, err)
		}

		l := list{count: count, line: i}
		if rest != "" {
			closing := strings.LastIndexByte(rest, ')')
			if closing < 0 {
				return list{}, fmt.Errorf("%w: list at line %d is not closed", errs.ErrStructural, i+1)
			}
			l.inline = true
			l.body = rest[1:closing]
		}

		return l, nil
	}

	return list{}, fmt.Errorf("%w: no list count after line %d", errs.ErrInvalidCount, from+1)
}

// fit checks that content can hold the entries l declares before storage for
// them is allocated. Binary entries are arity words of width bytes; the payload
// size is returned for them.
func (l list) fit(content *source.Content, binary bool, arity, width int) (int, error) {
	switch {
	case binary && !l.inline:
		return encoding.FitPayload(content, l.line+1, l.count, arity, width)
	case l.inline && l.count > len(l.body):
		return 0, fmt.Errorf("%w: list at line %d declares %d entries in %d bytes",
			errs.ErrDecodeMismatch, l.line+1, l.count, len(l.body))
	case !l.inline && l.count > content.Len()-l.line-3:
		return 0, fmt.Errorf("%w: list at line %d declares %d entries, %d lines available",
			errs.ErrDecodeMismatch, l.line+1, l.count, max(content.Len()-l.line-3, 0))
	}

	return 0, nil
}

// asciiItems calls fn for each entry of an ASCII list and returns the line
// following the list.
func asciiItems(content *source.Content, l list, fn func(i int, item string) error) (int, error) {
	if l.inline {
		items := splitItems(l.body)
		if len(items) != l.count {
			return 0, fmt.Errorf("%w: list at line %d declares %d entries, holds %d",
				errs.ErrDecodeMismatch, l.line+1, l.count, len(items))
		}
		for i, item := range items {
			if err := fn(i, item); err != nil {
				return 0, fmt.Errorf("line %d: %w", l.line+1, err)
			}
		}

		return l.line + 1, nil
	}

	// Entries follow the "(" line.
	first := l.line + 2
	for i := range l.count {
		idx := first + i
		text := content.Text(idx)
		if idx >= content.Len() || strings.HasPrefix(text, ")") {
			return 0, fmt.Errorf("%w: list at line %d closes after %d of %d entries",
				errs.ErrDecodeMismatch, l.line+1, i, l.count)
		}
		if err := fn(i, text); err != nil {
			return 0, fmt.Errorf("line %d: %w", idx+1, err)
		}
	}

	closing := first + l.count
	if !strings.HasPrefix(content.Text(closing), ")") {
		return 0, fmt.Errorf("%w: list at line %d holds more than %d entries",
			errs.ErrDecodeMismatch, l.line+1, l.count)
	}

	return closing + 1, nil
}

// packed passes the payload of a binary list to fn and returns the line
// following the list.
func packed(content *source.Content, l list, size int, fn func(payload []byte) error) (int, error) {
	if l.inline {
		if l.count > 0 {
			return 0, fmt.Errorf("%w: inline binary list of %d entries at line %d",
				errs.ErrDecodeMismatch, l.count, l.line+1)
		}

		return l.line + 1, nil
	}

	first := l.line + 1
	if err := encoding.ReadPayload(content, first, content.Len()-1, size, fn); err != nil {
		return 0, err
	}

	end, _ := encoding.BlockEnd(content, first, size)

	return end + 1, nil
}

// readLabels decodes the label list found at or after line from.
func readLabels(content *source.Content, from int, layout section.Layout) ([]int, int, error) {
	l, err := locate(content, from)
	if err != nil {
		return nil, 0, err
	}

	binary := layout.Format == format.Binary
	dec := encoding.NewLabelRawDecoder(layout.Engine, layout.LabelWidth)
	size, err := l.fit(content, binary, 1, dec.Width())
	if err != nil {
		return nil, 0, err
	}

	labels := make([]int, l.count)
	if binary {
		next, err := packed(content, l, size, func(payload []byte) error {
			return dec.Decode(payload, labels)
		})

		return labels, next, err
	}

	next, err := asciiItems(content, l, func(i int, item string) error {
		n, err := parseLabel(item)
		labels[i] = n

		return err
	})

	return labels, next, err
}

// readPoints decodes the point list found at or after line from.
func readPoints(content *source.Content, from int, layout section.Layout) ([]r3.Vec, error) {
	l, err := locate(content, from)
	if err != nil {
		return nil, err
	}

	binary := layout.Format == format.Binary
	dec := encoding.NewNumericRawDecoder(layout.Engine, layout.ScalarWidth)
	size, err := l.fit(content, binary, 3, dec.Width())
	if err != nil {
		return nil, err
	}

	points := make([]r3.Vec, l.count)
	if binary {
		flat, release := pool.GetFloat64Slice(3 * l.count)
		defer release()

		_, err := packed(content, l, size, func(payload []byte) error {
			if err := dec.Decode(payload, flat); err != nil {
				return err
			}
			for i := range points {
				points[i] = r3.Vec{X: flat[3*i], Y: flat[3*i+1], Z: flat[3*i+2]}
			}

			return nil
		})

		return points, err
	}

	_, err = asciiItems(content, l, func(i int, item string) error {
		v, err := encoding.ParseEntry(item)
		if err != nil {
			return err
		}
		if v.Kind() != format.KindVector {
			return fmt.Errorf("%w: point %q is a %s", errs.ErrDecodeMismatch, item, v.Kind())
		}
		points[i] = v.Vector()

		return nil
	})

	return points, err
}

// readFaces decodes the face list found at or after line from. Binary files and
// files of class faceCompactList hold an offset list then a flat vertex list;
// other ASCII files hold one "n(i j k ...)" entry per face.
func readFaces(content *source.Content, from int, header section.Header) ([][]int, error) {
	if header.Format == format.Binary || header.Class == CompactFaceClass {
		return readCompactFaces(content, from, header.Layout)
	}

	l, err := locate(content, from)
	if err != nil {
		return nil, err
	}

	if _, err := l.fit(content, false, 1, 0); err != nil {
		return nil, err
	}

	faces := make([][]int, l.count)
	_, err = asciiItems(content, l, func(i int, item string) error {
		face, err := parseFace(item)
		faces[i] = face

		return err
	})

	return faces, err
}

func readCompactFaces(content *source.Content, from int, layout section.Layout) ([][]int, error) {
	offsets, next, err := readLabels(content, from, layout)
	if err != nil {
		return nil, err
	}

	indices, _, err := readLabels(content, next, layout)
	if err != nil {
		return nil, err
	}

	if len(offsets) == 0 {
		if len(indices) != 0 {
			return nil, fmt.Errorf("%w: %d vertex indices without offsets", errs.ErrDecodeMismatch, len(indices))
		}

		return nil, nil
	}

	faces := make([][]int, len(offsets)-1)
	for i := range faces {
		lo, hi := offsets[i], offsets[i+1]
		if lo < 0 || hi < lo || hi > len(indices) {
			return nil, fmt.Errorf("%w: face %d spans [%d, %d) of %d vertex indices",
				errs.ErrDecodeMismatch, i, lo, hi, len(indices))
		}
		faces[i] = indices[lo:hi:hi]
	}

	if last := offsets[len(offsets)-1]; last != len(indices) {
		return nil, fmt.Errorf("%w: offsets end at %d, %d vertex indices",
			errs.ErrDecodeMismatch, last, len(indices))
	}

	return faces, nil
}

// parseFace parses an "n(i j k ...)" entry.
func parseFace(item string) ([]int, error) {
	open := strings.IndexByte(item, '(')
	closing := strings.LastIndexByte(item, ')')
	if open < 0 || closing < open {
		return nil, fmt.Errorf("%w: malformed face %q", errs.ErrInvalidValue, item)
	}

	n, err := encoding.ParseCount(item[:open])
	if err != nil {
		return nil, err
	}

	fields := strings.Fields(item[open+1 : closing])
	if len(fields) != n {
		return nil, fmt.Errorf("%w: face %q declares %d vertices, holds %d",
			errs.ErrDecodeMismatch, item, n, len(fields))
	}

	face := make([]int, n)
	for i, f := range fields {
		if face[i], err = parseLabel(f); err != nil {
			return nil, err
		}
	}

	return face, nil
}

func parseLabel(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: label %q", errs.ErrInvalidValue, s)
	}

	return n, nil
}

// splitItems splits the body of a one-line list into its top-level entries. A
// parenthesised group belongs to the token it directly follows, so "3(0 1 2)"
// is a single entry.
func splitItems(body string) []string {
	var items []string
	depth, start := 0, -1
	for i := 0; i < len(body); i++ {
		switch c := body[i]; {
		case c == '(':
			if start < 0 {
				start = i
			}
			depth++
		case c == ')':
			depth--
			if depth == 0 && start >= 0 {
				items = append(items, body[start:i+1])
				start = -1
			}
		case c == ' ' || c == '\t':
			if depth == 0 && start >= 0 {
				items = append(items, body[start:i])
				start = -1
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start >= 0 {
		items = append(items, body[start:])
	}

	return items
}
