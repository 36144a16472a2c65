package boundary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/foamio/encoding"
	"github.com/arloliu/foamio/errs"
	"github.com/arloliu/foamio/format"
	"github.com/arloliu/foamio/internal/collision"
	"github.com/arloliu/foamio/section"
	"github.com/arloliu/foamio/source"
)

// FieldKeyword opens the boundary section of a field file.
const FieldKeyword = "boundaryField"

type mode uint8

const (
	fieldMode mode = iota + 1
	meshMode
)

type state uint8

const (
	outsideBlock state = iota
	inBlock
	inPatch
	finished
)

func (s state) String() string {
	switch s {
	case outsideBlock:
		return "OutsideBlock"
	case inBlock:
		return "InBlock"
	case inPatch:
		return "InPatch"
	default:
		return "Finished"
	}
}

// parser is a line cursor driven state machine shared by both block variants.
type parser struct {
	content *source.Content
	mode    mode
	layout  section.Layout

	outerOpen  byte
	outerClose byte

	state     state
	cursor    int
	inComment bool

	// declared is the patch count of a mesh boundary file, -1 until seen.
	declared int

	// Current patch.
	name  string
	start int
	depth int
	attrs map[string]string

	tracker *collision.Tracker
	spans   []Span
	table   *Table
}

// ParseSpans locates the patch blocks of the boundaryField section of a field
// file.
//
// The layout lets packed binary lists inside a patch be skipped as a whole, so
// brace bytes in their payload are never mistaken for block delimiters.
//
// Returns:
//   - []Span: Patch spans in declaration order
//   - error: ErrStructural when a delimiter is missing or the section is absent,
//     ErrDuplicatePatch when a patch name repeats
func ParseSpans(content *source.Content, layout section.Layout) ([]Span, error) {
	p := &parser{
		content:    content,
		mode:       fieldMode,
		layout:     layout,
		outerOpen:  '{',
		outerClose: '}',
		declared:   -1,
		tracker:    collision.NewTracker(),
	}
	if err := p.run(); err != nil {
		return nil, fmt.Errorf("%s: %w", content.Path, err)
	}

	return p.spans, nil
}

// ParseTable parses a mesh boundary file.
//
// The outer region opens on the bare patch count line and is delimited by
// parentheses; every patch must carry nFaces and startFace. When the count is
// present it must match the number of patches parsed.
func ParseTable(content *source.Content) (*Table, error) {
	p := &parser{
		content:    content,
		mode:       meshMode,
		layout:     section.DefaultLayout(format.ASCII),
		outerOpen:  '(',
		outerClose: ')',
		declared:   -1,
		table:      NewTable(),
	}
	if err := p.run(); err != nil {
		return nil, fmt.Errorf("%s: %w", content.Path, err)
	}

	return p.table, nil
}

func (p *parser) run() error {
	for p.cursor = 0; p.cursor < p.content.Len(); p.cursor++ {
		text := p.content.Text(p.cursor)
		if p.mode == fieldMode && p.layout.Format == format.Binary && p.state != inBlock {
			end, skipped, err := p.skipPackedList(text)
			if err != nil {
				return err
			}
			if skipped {
				p.cursor = end
				continue
			}
		}

		if p.skipComment(text) {
			continue
		}

		var err error
		switch p.state {
		case outsideBlock:
			err = p.outside(text)
		case inBlock:
			err = p.block(text)
		case inPatch:
			err = p.patch(text)
		}
		if err != nil {
			return err
		}

		if p.state == finished {
			return p.finish()
		}
	}

	switch p.state {
	case outsideBlock:
		if p.mode == fieldMode {
			return fmt.Errorf("%w: no %s section", errs.ErrStructural, FieldKeyword)
		}

		return fmt.Errorf("%w: no patch count line", errs.ErrStructural)
	case inPatch:
		return fmt.Errorf("%w: patch %q opened at line %d is not closed", errs.ErrStructural, p.name, p.start+1)
	default:
		return fmt.Errorf("%w: missing closing %q", errs.ErrStructural, p.outerClose)
	}
}

// skipComment reports whether the line is a comment. Block comments may span
// several lines.
func (p *parser) skipComment(text string) bool {
	if p.inComment {
		if strings.Contains(text, "*/") {
			p.inComment = false
		}

		return true
	}

	if strings.HasPrefix(text, "//") {
		return true
	}

	if strings.HasPrefix(text, "/*") {
		p.inComment = !strings.Contains(text[2:], "*/")
		return true
	}

	// Directives such as #include live between blocks; inside a patch a "#"
	// line may open a code block whose braces must be counted.
	return p.state != inPatch && strings.HasPrefix(text, "#")
}

func (p *parser) outside(text string) error {
	switch p.mode {
	case fieldMode:
		if fields := strings.Fields(text); len(fields) == 0 || strings.TrimSuffix(fields[0], "{") != FieldKeyword {
			return nil
		}
	case meshMode:
		count, _, _ := strings.Cut(text, "(")
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil {
			if !strings.HasPrefix(text, "(") || strings.Contains(text, ")") {
				return nil
			}
			// A bare "(" without a count opens the region directly.
			p.state = inBlock
			return nil
		}
		if n < 0 {
			return fmt.Errorf("%w: negative patch count %d at line %d", errs.ErrStructural, n, p.cursor+1)
		}
		p.declared = n
	}

	idx, err := p.expectOpen(p.cursor, p.outerOpen)
	if err != nil {
		return err
	}

	p.cursor = idx
	p.state = inBlock

	return nil
}

func (p *parser) block(text string) error {
	if text == "" {
		return nil
	}

	if text[0] == p.outerClose {
		p.state = finished
		return nil
	}

	name := text
	if idx := strings.IndexByte(text, '{'); idx >= 0 {
		name = strings.TrimSpace(text[:idx])
	}
	name = strings.Trim(name, `"`)

	open, err := p.expectOpen(p.cursor, '{')
	if err != nil {
		return err
	}

	if p.mode == fieldMode {
		if err := p.tracker.Track(name); err != nil {
			return fmt.Errorf("line %d: %w", p.cursor+1, err)
		}
	}

	p.name = name
	p.start = open
	p.depth = 0
	p.attrs = make(map[string]string)
	p.cursor = open

	// Count from the brace so a same-line name is not scanned.
	line := p.content.Text(open)
	brace := strings.IndexByte(line, '{')
	segment := line[brace:]
	p.depth = braceDepth(segment)
	if p.depth <= 0 {
		if closing := strings.LastIndexByte(segment, '}'); closing > 0 {
			p.absorb(segment[1:closing])
		}

		return p.closePatch(open)
	}

	if p.depth == 1 && !strings.ContainsAny(segment[1:], "{}") {
		p.absorb(segment[1:])
	}
	p.state = inPatch

	return nil
}

func (p *parser) patch(text string) error {
	delta := braceDepth(text)
	if p.depth == 1 && delta == 0 && !strings.ContainsAny(text, "{}") {
		p.absorb(text)
	}

	p.depth += delta
	if p.depth <= 0 {
		return p.closePatch(p.cursor)
	}

	return nil
}

// skipPackedList returns the line holding the closing byte of a binary list
// declared on text. Packed payloads may hold any byte, including braces and
// comment markers, so they are never scanned.
func (p *parser) skipPackedList(text string) (int, bool, error) {
	if !hasToken(text, "nonuniform") {
		return 0, false, nil
	}
	if _, inline := encoding.InlineList(text); inline {
		return 0, false, nil
	}

	count, err := encoding.ParseCount(p.content.Text(p.cursor + encoding.CountLineOffset))
	if err != nil {
		return 0, false, fmt.Errorf("line %d: %w", p.cursor+encoding.CountLineOffset+1, err)
	}

	arity := format.KindFromKeyword(text).Arity()
	size := encoding.BinaryPayloadSize(count, arity, p.layout.ScalarWidth)
	end, ok := encoding.BlockEnd(p.content, p.cursor+encoding.BodyLineOffset, size)
	if !ok {
		return 0, false, fmt.Errorf("%w: binary list at line %d is truncated", errs.ErrStructural, p.cursor+1)
	}

	return end, true, nil
}

// absorb records the "key value;" statements of a patch body line.
func (p *parser) absorb(text string) {
	for _, stmt := range strings.Split(text, ";") {
		fields := strings.Fields(stmt)
		if len(fields) < 2 {
			continue
		}
		p.attrs[fields[0]] = strings.Join(fields[1:], " ")
	}
}

func (p *parser) closePatch(end int) error {
	p.state = inBlock

	switch p.mode {
	case fieldMode:
		p.spans = append(p.spans, Span{
			Name:  p.name,
			ID:    PatchID(len(p.spans)),
			Start: p.start,
			End:   end,
		})
	case meshMode:
		nFaces, err := p.intAttr("nFaces")
		if err != nil {
			return err
		}
		startFace, err := p.intAttr("startFace")
		if err != nil {
			return err
		}
		if _, err := p.table.Add(p.name, p.attrs["type"], nFaces, startFace); err != nil {
			return fmt.Errorf("line %d: %w", p.start+1, err)
		}
	}

	return nil
}

func (p *parser) intAttr(key string) (int, error) {
	raw, ok := p.attrs[key]
	if !ok {
		return 0, fmt.Errorf("%w: patch %q has no %s", errs.ErrStructural, p.name, key)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: patch %q has %s %q", errs.ErrStructural, p.name, key, raw)
	}

	return n, nil
}

func (p *parser) finish() error {
	if p.mode == meshMode && p.declared >= 0 && p.declared != p.table.Len() {
		return fmt.Errorf("%w: %d patches declared, %d parsed", errs.ErrStructural, p.declared, p.table.Len())
	}

	return nil
}

// expectOpen returns the line holding delim for a block introduced at line i:
// the same line, the next line, or the line after a single blank line.
func (p *parser) expectOpen(i int, delim byte) (int, error) {
	if strings.IndexByte(p.content.Text(i), delim) >= 0 {
		return i, nil
	}

	for j := i + 1; j <= i+2 && j < p.content.Len(); j++ {
		next := p.content.Text(j)
		if strings.HasPrefix(next, string(delim)) {
			return j, nil
		}
		if next != "" {
			break
		}
	}

	return 0, fmt.Errorf("%w: expected %q after line %d (%s)", errs.ErrStructural, delim, i+1, p.state)
}

func braceDepth(text string) int {
	return strings.Count(text, "{") - strings.Count(text, "}")
}

func hasToken(text, token string) bool {
	for _, f := range strings.Fields(text) {
		if f == token {
			return true
		}
	}

	return false
}
