package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min r3.Vec `yaml:"min"`
	Max r3.Vec `yaml:"max"`
}

// Size returns the extent of the box along each axis.
func (b Box) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// Bounds returns the bounding box of the points. It reports false for a mesh
// without points.
func (m *Mesh) Bounds() (Box, bool) {
	if len(m.Points) == 0 {
		return Box{}, false
	}

	lo := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, p := range m.Points {
		lo = r3.Vec{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = r3.Vec{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}

	return Box{Min: lo, Max: hi}, true
}

// FaceCentre returns the average of the vertices of face.
func (m *Mesh) FaceCentre(face int) (r3.Vec, bool) {
	vertices, ok := m.faceVertices(face)
	if !ok {
		return r3.Vec{}, false
	}

	var sum r3.Vec
	for _, v := range vertices {
		sum = r3.Add(sum, v)
	}

	return r3.Scale(1/float64(len(vertices)), sum), true
}

// FaceArea returns the area vector of face: normal to the face, pointing out
// of its owner for a right-handed vertex order, with the face area as length.
// The face is split into triangles around its vertex average.
func (m *Mesh) FaceArea(face int) (r3.Vec, bool) {
	centre, ok := m.FaceCentre(face)
	if !ok {
		return r3.Vec{}, false
	}

	vertices, _ := m.faceVertices(face)
	var area r3.Vec
	for i, v := range vertices {
		next := vertices[(i+1)%len(vertices)]
		area = r3.Add(area, r3.Cross(r3.Sub(v, centre), r3.Sub(next, centre)))
	}

	return r3.Scale(0.5, area), true
}

func (m *Mesh) faceVertices(face int) ([]r3.Vec, bool) {
	if face < 0 || face >= len(m.Faces) || len(m.Faces[face]) == 0 {
		return nil, false
	}

	vertices := make([]r3.Vec, len(m.Faces[face]))
	for i, p := range m.Faces[face] {
		if p < 0 || p >= len(m.Points) {
			return nil, false
		}
		vertices[i] = m.Points[p]
	}

	return vertices, true
}

// Stats summarises a mesh.
type Stats struct {
	Points        int          `yaml:"points"`
	Faces         int          `yaml:"faces"`
	InnerFaces    int          `yaml:"inner_faces"`
	BoundaryFaces int          `yaml:"boundary_faces"`
	Cells         int          `yaml:"cells"`
	Patches       []PatchStats `yaml:"patches"`
	FaceVertices  MinMax       `yaml:"face_vertices"`
	CellFaces     MinMax       `yaml:"cell_faces"`
	Bounds        *Box         `yaml:"bounds,omitempty"`
}

// PatchStats summarises one boundary patch.
type PatchStats struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type,omitempty"`
	ID        int    `yaml:"id"`
	StartFace int    `yaml:"start_face"`
	Faces     int    `yaml:"faces"`
}

// MinMax is the range of a per-item count.
type MinMax struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Stats returns counts, patches and size ranges of the mesh.
func (m *Mesh) Stats() Stats {
	s := Stats{
		Points:        m.numPoints,
		Faces:         m.numFaces,
		InnerFaces:    m.numInnerFaces,
		BoundaryFaces: m.NumBoundaryFaces(),
		Cells:         m.numCells,
		FaceVertices:  rangeOf(len(m.Faces), func(i int) int { return len(m.Faces[i]) }),
		CellFaces:     rangeOf(m.numCells, func(i int) int { return len(m.cellFaces[i]) }),
	}

	for p := range m.Boundary.All() {
		s.Patches = append(s.Patches, PatchStats{
			Name:      p.Name,
			Type:      p.Type,
			ID:        p.ID,
			StartFace: p.StartFace,
			Faces:     p.NumFaces,
		})
	}

	if box, ok := m.Bounds(); ok {
		s.Bounds = &box
	}

	return s
}

func rangeOf(n int, size func(i int) int) MinMax {
	if n == 0 {
		return MinMax{}
	}

	r := MinMax{Min: math.MaxInt, Max: 0}
	for i := range n {
		r.Min = min(r.Min, size(i))
		r.Max = max(r.Max, size(i))
	}

	return r
}
