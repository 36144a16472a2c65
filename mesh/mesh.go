package mesh

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arloliu/foamio/boundary"
	"github.com/arloliu/foamio/errs"
)

// CellRef refers to the cell on one side of a face. A non-negative value is a
// cell index; a negative value is the id of the boundary patch holding the face.
type CellRef int

// UnassignedPatch marks a boundary face that no patch covers.
const UnassignedPatch CellRef = -1

// IsBoundary reports whether r refers to a boundary patch rather than a cell.
func (r CellRef) IsBoundary() bool {
	return r < 0
}

// Cell returns the cell index of r.
func (r CellRef) Cell() (int, bool) {
	if r < 0 {
		return 0, false
	}

	return int(r), true
}

// PatchID returns the patch id of r. UnassignedPatch is reported as a boundary
// reference without a patch.
func (r CellRef) PatchID() (int, bool) {
	if r >= UnassignedPatch {
		return 0, false
	}

	return int(r), true
}

func (r CellRef) String() string {
	switch {
	case r >= 0:
		return fmt.Sprintf("cell(%d)", int(r))
	case r == UnassignedPatch:
		return "unassigned"
	default:
		return fmt.Sprintf("patch(%d)", int(r))
	}
}

// Mesh is a polyhedral mesh with its cell connectivity.
//
// Faces [0, NumInnerFaces) are interior faces; the remaining faces lie on the
// boundary and their Neighbour entry holds the id of their patch. A Mesh is
// read-only after construction and safe for concurrent queries.
type Mesh struct {
	Points    []r3.Vec
	Faces     [][]int
	Owner     []int
	Neighbour []CellRef
	Boundary  *boundary.Table

	numPoints     int
	numFaces      int
	numInnerFaces int
	numCells      int

	cellFaces      [][]int
	cellNeighbours [][]CellRef
}

// New builds a mesh from its decoded arrays.
//
// The neighbour array holds one cell per interior face. It is extended to one
// entry per face, boundary faces receiving the id of the patch whose face range
// covers them, or UnassignedPatch. The number of cells is one more than the
// largest owner.
//
// Parameters:
//   - points: Vertex coordinates
//   - faces: Vertex indices per face
//   - owner: Owner cell per face
//   - neighbour: Neighbour cell per interior face
//   - table: Boundary patches, may be nil
//
// Returns:
//   - *Mesh: The mesh with cell connectivity built
//   - error: ErrStructural when an owner or neighbour index is out of range
func New(points []r3.Vec, faces [][]int, owner, neighbour []int, table *boundary.Table) (*Mesh, error) {
	return build(points, faces, owner, neighbour, table, slog.New(slog.DiscardHandler))
}

func build(points []r3.Vec, faces [][]int, owner, neighbour []int, table *boundary.Table, logger *slog.Logger) (*Mesh, error) {
	if table == nil {
		table = boundary.NewTable()
	}

	m := &Mesh{
		Points:        points,
		Faces:         faces,
		Owner:         owner,
		Boundary:      table,
		numPoints:     len(points),
		numFaces:      len(owner),
		numInnerFaces: len(neighbour),
	}

	if m.numInnerFaces > m.numFaces {
		return nil, fmt.Errorf("%w: %d neighbours for %d faces", errs.ErrStructural, m.numInnerFaces, m.numFaces)
	}

	for f, c := range owner {
		if c < 0 {
			return nil, fmt.Errorf("%w: face %d has owner %d", errs.ErrStructural, f, c)
		}
		m.numCells = max(m.numCells, c+1)
	}

	m.Neighbour = make([]CellRef, m.numFaces)
	for f, c := range neighbour {
		if c < 0 || c >= m.numCells {
			return nil, fmt.Errorf("%w: face %d has neighbour %d, mesh has %d cells", errs.ErrStructural, f, c, m.numCells)
		}
		m.Neighbour[f] = CellRef(c)
	}
	for f := m.numInnerFaces; f < m.numFaces; f++ {
		m.Neighbour[f] = UnassignedPatch
	}

	for p := range table.All() {
		lo := max(p.StartFace, m.numInnerFaces)
		hi := min(p.EndFace(), m.numFaces)
		if lo != p.StartFace || hi != p.EndFace() {
			logger.Warn("patch range outside boundary faces",
				slog.String("patch", p.Name),
				slog.Int("start_face", p.StartFace),
				slog.Int("n_faces", p.NumFaces),
				slog.Int("inner_faces", m.numInnerFaces),
				slog.Int("faces", m.numFaces))
		}
		for f := lo; f < hi; f++ {
			m.Neighbour[f] = CellRef(p.ID)
		}
	}

	m.connect()

	return m, nil
}

// connect builds the per-cell face and neighbour lists. Every face belongs to
// its owner; an interior face also belongs to its neighbour. The owner sees
// what lies across each of its faces, a cell or a patch id.
func (m *Mesh) connect() {
	m.cellFaces = make([][]int, m.numCells)
	m.cellNeighbours = make([][]CellRef, m.numCells)

	for f, c := range m.Owner {
		nb := m.Neighbour[f]
		m.cellFaces[c] = append(m.cellFaces[c], f)
		m.cellNeighbours[c] = append(m.cellNeighbours[c], nb)

		if cell, ok := nb.Cell(); ok {
			m.cellFaces[cell] = append(m.cellFaces[cell], f)
			m.cellNeighbours[cell] = append(m.cellNeighbours[cell], CellRef(c))
		}
	}
}

// NumPoints returns the number of points.
func (m *Mesh) NumPoints() int { return m.numPoints }

// NumFaces returns the number of faces, interior and boundary.
func (m *Mesh) NumFaces() int { return m.numFaces }

// NumInnerFaces returns the number of interior faces.
func (m *Mesh) NumInnerFaces() int { return m.numInnerFaces }

// NumBoundaryFaces returns the number of boundary faces.
func (m *Mesh) NumBoundaryFaces() int { return m.numFaces - m.numInnerFaces }

// NumCells returns the number of cells.
func (m *Mesh) NumCells() int { return m.numCells }
