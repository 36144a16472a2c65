package boundary

import (
	"fmt"
	"iter"

	"github.com/arloliu/foamio/errs"
	"github.com/arloliu/foamio/internal/collision"
)

// FirstPatchID is the id of the first declared patch. Later patches count down.
const FirstPatchID = -10

// PatchID returns the id of the patch declared at position index.
func PatchID(index int) int {
	return FirstPatchID - index
}

// Patch is one mesh boundary patch.
type Patch struct {
	Name      string
	Type      string
	NumFaces  int
	StartFace int
	ID        int
}

// EndFace returns one past the last face of the patch.
func (p Patch) EndFace() int {
	return p.StartFace + p.NumFaces
}

// Contains reports whether face lies in the patch range.
func (p Patch) Contains(face int) bool {
	return face >= p.StartFace && face < p.EndFace()
}

// Span is the line range of one patch block in a boundaryField section.
type Span struct {
	Name string
	ID   int
	// Start is the line of the opening brace.
	Start int
	// End is the line of the closing brace.
	End int
}

// Table holds the patches of a mesh in declaration order.
//
// The zero value is not usable; a nil *Table behaves as an empty table.
type Table struct {
	patches []Patch
	index   map[string]int
	tracker *collision.Tracker
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		index:   make(map[string]int),
		tracker: collision.NewTracker(),
	}
}

// Add appends a patch and assigns it the next id.
//
// Returns:
//   - Patch: The recorded patch
//   - error: ErrDuplicatePatch for a repeated name, ErrStructural for an empty
//     name or a negative face count or start
func (t *Table) Add(name, typ string, numFaces, startFace int) (Patch, error) {
	if numFaces < 0 || startFace < 0 {
		return Patch{}, fmt.Errorf("%w: patch %q has nFaces %d, startFace %d", errs.ErrStructural, name, numFaces, startFace)
	}

	if err := t.tracker.Track(name); err != nil {
		return Patch{}, err
	}

	p := Patch{
		Name:      name,
		Type:      typ,
		NumFaces:  numFaces,
		StartFace: startFace,
		ID:        PatchID(len(t.patches)),
	}
	t.index[name] = len(t.patches)
	t.patches = append(t.patches, p)

	return p, nil
}

// Get returns the patch called name.
func (t *Table) Get(name string) (Patch, bool) {
	if t == nil {
		return Patch{}, false
	}

	i, ok := t.index[name]
	if !ok {
		return Patch{}, false
	}

	return t.patches[i], true
}

// ByID returns the patch with the given id.
func (t *Table) ByID(id int) (Patch, bool) {
	i := FirstPatchID - id
	if t == nil || i < 0 || i >= len(t.patches) {
		return Patch{}, false
	}

	return t.patches[i], true
}

// Len returns the number of patches.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.patches)
}

// Names returns the patch names in declaration order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}

	names := make([]string, len(t.patches))
	for i, p := range t.patches {
		names[i] = p.Name
	}

	return names
}

// All returns an iterator over the patches in declaration order.
func (t *Table) All() iter.Seq[Patch] {
	return func(yield func(Patch) bool) {
		if t == nil {
			return
		}

		for _, p := range t.patches {
			if !yield(p) {
				return
			}
		}
	}
}

// NumFaces returns the total number of faces over all patches.
func (t *Table) NumFaces() int {
	n := 0
	for p := range t.All() {
		n += p.NumFaces
	}

	return n
}
