package mesh

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arloliu/foamio/compress"
	"github.com/arloliu/foamio/encoding"
	"github.com/arloliu/foamio/endian"
	"github.com/arloliu/foamio/format"
)

type patchDef struct {
	name, typ string
	start, n  int
}

// grid is a block of nx*ny*nz unit hexahedra with inlet (x = 0), outlet
// (x = nx) and walls patches, faces ordered interior first.
type grid struct {
	nx, ny, nz int
	points     []r3.Vec
	faces      [][]int
	owner      []int
	neighbour  []int
	patches    []patchDef
}

func newGrid(nx, ny, nz int) *grid {
	g := &grid{nx: nx, ny: ny, nz: nz}
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				g.points = append(g.points, r3.Vec{X: float64(i), Y: float64(j), Z: float64(k)})
			}
		}
	}

	pt := func(i, j, k int) int { return i + (nx+1)*(j+(ny+1)*k) }
	cell := func(i, j, k int) int { return i + nx*(j+ny*k) }
	xFace := func(i, j, k int) []int { return []int{pt(i, j, k), pt(i, j+1, k), pt(i, j+1, k+1), pt(i, j, k+1)} }
	yFace := func(i, j, k int) []int { return []int{pt(i, j, k), pt(i, j, k+1), pt(i+1, j, k+1), pt(i+1, j, k)} }
	zFace := func(i, j, k int) []int { return []int{pt(i, j, k), pt(i+1, j, k), pt(i+1, j+1, k), pt(i, j+1, k)} }
	add := func(face []int, owner, neighbour int) {
		g.faces = append(g.faces, face)
		g.owner = append(g.owner, owner)
		if neighbour >= 0 {
			g.neighbour = append(g.neighbour, neighbour)
		}
	}

	for k := range nz {
		for j := range ny {
			for i := range nx {
				c := cell(i, j, k)
				if i+1 < nx {
					add(xFace(i+1, j, k), c, cell(i+1, j, k))
				}
				if j+1 < ny {
					add(yFace(i, j+1, k), c, cell(i, j+1, k))
				}
				if k+1 < nz {
					add(zFace(i, j, k+1), c, cell(i, j, k+1))
				}
			}
		}
	}

	patch := func(name, typ string, fill func()) {
		start := len(g.faces)
		fill()
		g.patches = append(g.patches, patchDef{name: name, typ: typ, start: start, n: len(g.faces) - start})
	}
	patch("inlet", "patch", func() {
		for k := range nz {
			for j := range ny {
				add(xFace(0, j, k), cell(0, j, k), -1)
			}
		}
	})
	patch("outlet", "patch", func() {
		for k := range nz {
			for j := range ny {
				add(xFace(nx, j, k), cell(nx-1, j, k), -1)
			}
		}
	})
	patch("walls", "wall", func() {
		for k := range nz {
			for i := range nx {
				add(yFace(i, 0, k), cell(i, 0, k), -1)
				add(yFace(i, ny, k), cell(i, ny-1, k), -1)
			}
		}
		for j := range ny {
			for i := range nx {
				add(zFace(i, j, 0), cell(i, j, 0), -1)
				add(zFace(i, j, nz), cell(i, j, nz-1), -1)
			}
		}
	})

	return g
}

// layout selects how mesh files are written.
type layout struct {
	format  format.FileFormat
	order   string
	label   int
	scalar  int
	compact bool
}

var asciiLayout = layout{format: format.ASCII, order: "LSB", label: 32, scalar: 64}

func (l layout) engine() endian.EndianEngine {
	if l.order == "MSB" {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

func (l layout) String() string {
	s := fmt.Sprintf("%s/%s/label=%d/scalar=%d", l.format, l.order, l.label, l.scalar)
	if l.compact {
		s += "/compact"
	}

	return s
}

// meshHeader renders the 13 line preamble of a mesh file.
func meshHeader(l layout, class, object string) string {
	return fmt.Sprintf(`/*--------------------------------*- C++ -*----------------------------------*\
  =========                 |
  \\      /  F ield         | OpenFOAM: The Open Source CFD Toolbox
\*---------------------------------------------------------------------------*/
FoamFile
{
    version     2.0;
    format      %s;
    arch        "%s;label=%d;scalar=%d";
    class       %s;
    location    "constant/polyMesh";
    object      %s;
}
// * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * //


`, l.format, l.order, l.label, l.scalar, class, object)
}

const footer = "\n\n// ************************************************************************* //\n"

func writeLabels(b *bytes.Buffer, l layout, labels []int) {
	fmt.Fprintf(b, "%d\n", len(labels))
	if l.format == format.Binary {
		enc := encoding.NewLabelRawEncoder(l.engine(), l.label/8)
		defer enc.Finish()
		enc.WriteSlice(labels)
		b.WriteByte('(')
		b.Write(enc.Bytes())
		b.WriteString(")\n")

		return
	}

	b.WriteString("(\n")
	for _, n := range labels {
		fmt.Fprintf(b, "%d\n", n)
	}
	b.WriteString(")\n")
}

func labelFile(l layout, object string, labels []int) []byte {
	var b bytes.Buffer
	b.WriteString(meshHeader(l, "labelList", object))
	writeLabels(&b, l, labels)
	b.WriteString(footer)

	return b.Bytes()
}

func pointsFile(l layout, points []r3.Vec) []byte {
	var b bytes.Buffer
	b.WriteString(meshHeader(l, "vectorField", PointsFile))
	fmt.Fprintf(&b, "%d\n", len(points))
	if l.format == format.Binary {
		enc := encoding.NewNumericRawEncoder(l.engine(), l.scalar/8)
		defer enc.Finish()
		for _, p := range points {
			enc.WriteSlice([]float64{p.X, p.Y, p.Z})
		}
		b.WriteByte('(')
		b.Write(enc.Bytes())
		b.WriteString(")\n")
	} else {
		b.WriteString("(\n")
		for _, p := range points {
			fmt.Fprintf(&b, "(%g %g %g)\n", p.X, p.Y, p.Z)
		}
		b.WriteString(")\n")
	}
	b.WriteString(footer)

	return b.Bytes()
}

func facesFile(l layout, faces [][]int) []byte {
	var b bytes.Buffer
	if l.format == format.Binary || l.compact {
		b.WriteString(meshHeader(l, CompactFaceClass, FacesFile))
		offsets := []int{0}
		var indices []int
		for _, f := range faces {
			indices = append(indices, f...)
			offsets = append(offsets, len(indices))
		}
		writeLabels(&b, l, offsets)
		b.WriteString("\n\n")
		writeLabels(&b, l, indices)
		b.WriteString(footer)

		return b.Bytes()
	}

	b.WriteString(meshHeader(l, "faceList", FacesFile))
	fmt.Fprintf(&b, "%d\n(\n", len(faces))
	for _, f := range faces {
		fmt.Fprintf(&b, "%d(", len(f))
		for i, p := range f {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%d", p)
		}
		b.WriteString(")\n")
	}
	b.WriteString(")\n")
	b.WriteString(footer)

	return b.Bytes()
}

func boundaryFile(patches []patchDef) []byte {
	var b bytes.Buffer
	b.WriteString(meshHeader(asciiLayout, "polyBoundaryMesh", BoundaryFile))
	fmt.Fprintf(&b, "%d\n(\n", len(patches))
	for _, p := range patches {
		fmt.Fprintf(&b, "    %s\n    {\n        type            %s;\n", p.name, p.typ)
		if p.typ == "wall" {
			b.WriteString("        inGroups        List<word> 1(wall);\n")
		}
		fmt.Fprintf(&b, "        nFaces          %d;\n        startFace       %d;\n    }\n", p.n, p.start)
	}
	b.WriteString(")\n")
	b.WriteString(footer)

	return b.Bytes()
}

// files renders the five mesh files of g.
func (g *grid) files(l layout) map[string][]byte {
	return map[string][]byte{
		BoundaryFile:  boundaryFile(g.patches),
		PointsFile:    pointsFile(l, g.points),
		FacesFile:     facesFile(l, g.faces),
		OwnerFile:     labelFile(l, OwnerFile, g.owner),
		NeighbourFile: labelFile(l, NeighbourFile, g.neighbour),
	}
}

// write stores the mesh files of g in a new directory. Files named in
// compressed are stored only as a sibling with that compression.
func (g *grid) write(t *testing.T, l layout, compressed map[string]format.CompressionType) string {
	t.Helper()

	dir := t.TempDir()
	for name, data := range g.files(l) {
		if ct, ok := compressed[name]; ok {
			codec, err := compress.GetCodec(ct)
			require.NoError(t, err)
			data, err = codec.Compress(data)
			require.NoError(t, err)
			name += ct.Suffix()
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	}

	return dir
}

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
}
