package mesh

import (
	"iter"
	"slices"

	"github.com/arloliu/foamio/boundary"
)

// NeighboursOf returns what lies across each face of cell, in the order of
// CellFaces: a neighbouring cell or the patch id of a boundary face.
//
// The returned slice must not be modified. Nil is returned for an unknown cell.
func (m *Mesh) NeighboursOf(cell int) []CellRef {
	if cell < 0 || cell >= m.numCells {
		return nil
	}

	return m.cellNeighbours[cell]
}

// CellFaces returns the faces of cell.
//
// The returned slice must not be modified. Nil is returned for an unknown cell.
func (m *Mesh) CellFaces(cell int) []int {
	if cell < 0 || cell >= m.numCells {
		return nil
	}

	return m.cellFaces[cell]
}

// IsCellOnBoundary reports whether any face of cell lies on the boundary.
func (m *Mesh) IsCellOnBoundary(cell int) bool {
	return slices.ContainsFunc(m.NeighboursOf(cell), CellRef.IsBoundary)
}

// IsCellOnPatch reports whether any face of cell lies on the named patch.
// Unknown patches report false.
func (m *Mesh) IsCellOnPatch(cell int, patch string) bool {
	p, ok := m.Boundary.Get(patch)
	if !ok {
		return false
	}

	return slices.Contains(m.NeighboursOf(cell), CellRef(p.ID))
}

// IsFaceOnBoundary reports whether face is a boundary face.
func (m *Mesh) IsFaceOnBoundary(face int) bool {
	return face >= m.numInnerFaces && face < m.numFaces
}

// IsFaceOnPatch reports whether the neighbour of face is the id of the named
// patch. Where declared ranges overlap, a face belongs to the patch declared
// last. Unknown patches and out of range faces report false.
func (m *Mesh) IsFaceOnPatch(face int, patch string) bool {
	p, ok := m.Boundary.Get(patch)
	if !ok || face < 0 || face >= m.numFaces {
		return false
	}

	return m.Neighbour[face] == CellRef(p.ID)
}

// FacesOfPatch returns an iterator over the owner cells of the faces of the
// named patch, in face order. The sequence is empty for an unknown patch.
func (m *Mesh) FacesOfPatch(patch string) iter.Seq[int] {
	return func(yield func(int) bool) {
		p, ok := m.Boundary.Get(patch)
		if !ok {
			return
		}

		for f := p.StartFace; f < min(p.EndFace(), m.numFaces); f++ {
			if !yield(m.Owner[f]) {
				return
			}
		}
	}
}

// Patch returns the named boundary patch.
func (m *Mesh) Patch(name string) (boundary.Patch, bool) {
	return m.Boundary.Get(name)
}

// PatchOfFace returns the patch holding face.
func (m *Mesh) PatchOfFace(face int) (boundary.Patch, bool) {
	if !m.IsFaceOnBoundary(face) {
		return boundary.Patch{}, false
	}

	id, ok := m.Neighbour[face].PatchID()
	if !ok {
		return boundary.Patch{}, false
	}

	return m.Boundary.ByID(id)
}
