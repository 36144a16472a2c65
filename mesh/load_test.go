package mesh

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/foamio/endian"
	"github.com/arloliu/foamio/errs"
	"github.com/arloliu/foamio/format"
	"github.com/arloliu/foamio/source"
)

// requireConnectivity checks the relations between the arrays and the derived
// per-cell lists of m.
func requireConnectivity(t *testing.T, m *Mesh) {
	t.Helper()

	total := 0
	for c := range m.NumCells() {
		faces := m.CellFaces(c)
		neighbours := m.NeighboursOf(c)
		require.Len(t, neighbours, len(faces), "cell %d", c)
		total += len(faces)

		onBoundary := false
		for _, nb := range neighbours {
			onBoundary = onBoundary || nb < 0
		}
		require.Equal(t, onBoundary, m.IsCellOnBoundary(c), "cell %d", c)
	}
	require.Equal(t, m.NumFaces()+m.NumInnerFaces(), total)
	require.Len(t, m.Neighbour, m.NumFaces())

	for f := m.NumInnerFaces(); f < m.NumFaces(); f++ {
		id, ok := m.Neighbour[f].PatchID()
		require.True(t, ok, "face %d", f)
		p, ok := m.Boundary.ByID(id)
		require.True(t, ok, "face %d", f)
		require.True(t, p.Contains(f))
	}
}

func TestLoad_Layouts(t *testing.T) {
	layouts := []layout{
		asciiLayout,
		{format: format.ASCII, order: "LSB", label: 32, scalar: 64, compact: true},
		{format: format.Binary, order: "LSB", label: 32, scalar: 64},
		{format: format.Binary, order: "LSB", label: 64, scalar: 64},
		{format: format.Binary, order: "MSB", label: 32, scalar: 64},
		{format: format.Binary, order: "MSB", label: 64, scalar: 32},
	}

	g := newGrid(3, 2, 2)
	for _, l := range layouts {
		t.Run(l.String(), func(t *testing.T) {
			require := require.New(t)

			m, err := Load(g.write(t, l, nil))
			require.NoError(err)

			require.Equal(g.points, m.Points)
			require.Equal(g.faces, m.Faces)
			require.Equal(g.owner, m.Owner)
			require.Equal(36, m.NumPoints())
			require.Equal(52, m.NumFaces())
			require.Equal(20, m.NumInnerFaces())
			require.Equal(32, m.NumBoundaryFaces())
			require.Equal(12, m.NumCells())
			require.Equal([]string{"inlet", "outlet", "walls"}, m.Boundary.Names())

			for f, c := range g.neighbour {
				require.Equal(CellRef(c), m.Neighbour[f])
			}
			requireConnectivity(t, m)
		})
	}
}

func TestLoad_Queries(t *testing.T) {
	require := require.New(t)

	g := newGrid(3, 2, 2)
	m, err := Load(g.write(t, asciiLayout, nil))
	require.NoError(err)

	inlet, ok := m.Patch("inlet")
	require.True(ok)
	require.Equal(-10, inlet.ID)
	require.Equal(20, inlet.StartFace)
	require.Equal(4, inlet.NumFaces)

	var owners []int
	for c := range m.FacesOfPatch("inlet") {
		owners = append(owners, c)
	}
	require.Equal([]int{0, 3, 6, 9}, owners)

	for _, c := range owners {
		require.True(m.IsCellOnPatch(c, "inlet"))
		require.False(m.IsCellOnPatch(c, "outlet"))
		require.True(m.IsCellOnBoundary(c))
	}
	require.True(m.IsCellOnPatch(2, "outlet"))

	require.False(m.IsFaceOnBoundary(0))
	require.True(m.IsFaceOnBoundary(20))
	require.False(m.IsFaceOnBoundary(52))
	require.True(m.IsFaceOnPatch(20, "inlet"))
	require.True(m.IsFaceOnPatch(28, "walls"))
	require.False(m.IsFaceOnPatch(28, "inlet"))

	p, ok := m.PatchOfFace(51)
	require.True(ok)
	require.Equal("walls", p.Name)
	_, ok = m.PatchOfFace(3)
	require.False(ok)

	// Cell 0 touches cells 1, 3 and 6 and three boundary faces.
	require.ElementsMatch([]CellRef{1, 3, 6, -10, -12, -12}, m.NeighboursOf(0))
	require.Len(m.CellFaces(0), 6)
}

func TestLoad_CompressedSiblings(t *testing.T) {
	g := newGrid(3, 2, 2)

	for _, l := range []layout{asciiLayout, {format: format.Binary, order: "LSB", label: 32, scalar: 64}} {
		t.Run(l.String(), func(t *testing.T) {
			require := require.New(t)

			plain, err := Load(g.write(t, l, nil))
			require.NoError(err)

			dir := g.write(t, l, map[string]format.CompressionType{
				BoundaryFile:  format.CompressionGzip,
				PointsFile:    format.CompressionZstd,
				FacesFile:     format.CompressionLZ4,
				OwnerFile:     format.CompressionS2,
				NeighbourFile: format.CompressionGzip,
			})
			_, err = os.Stat(filepath.Join(dir, PointsFile))
			require.True(os.IsNotExist(err))

			compressed, err := Load(dir)
			require.NoError(err)
			require.Equal(plain.Points, compressed.Points)
			require.Equal(plain.Faces, compressed.Faces)
			require.Equal(plain.Owner, compressed.Owner)
			require.Equal(plain.Neighbour, compressed.Neighbour)
			require.Equal(plain.Boundary.Names(), compressed.Boundary.Names())
			require.Equal(plain.Stats(), compressed.Stats())
		})
	}
}

func TestLoad_AbsentFiles(t *testing.T) {
	t.Run("neighbour and boundary", func(t *testing.T) {
		require := require.New(t)

		g := newGrid(2, 1, 1)
		dir := g.write(t, asciiLayout, nil)
		require.NoError(os.Remove(filepath.Join(dir, NeighbourFile)))
		require.NoError(os.Remove(filepath.Join(dir, BoundaryFile)))

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		m, err := Load(dir, source.WithLogger(logger))
		require.NoError(err)
		require.Equal(g.points, m.Points)
		require.Zero(m.NumInnerFaces())
		require.Equal(len(g.owner), m.NumFaces())
		require.Zero(m.Boundary.Len())
		for f := range m.NumFaces() {
			require.Equal(UnassignedPatch, m.Neighbour[f])
			_, ok := m.PatchOfFace(f)
			require.False(ok)
		}
		require.True(m.IsCellOnBoundary(0))

		out := logs.String()
		require.Contains(out, "mesh file absent")
		require.Contains(out, "file=neighbour")
		require.Contains(out, "file=boundary")
		require.Contains(out, "mesh loaded")
	})

	t.Run("empty directory", func(t *testing.T) {
		require := require.New(t)

		m, err := Load(t.TempDir())
		require.NoError(err)
		require.Zero(m.NumPoints())
		require.Zero(m.NumFaces())
		require.Zero(m.NumCells())
		require.Empty(m.NeighboursOf(0))
		_, ok := m.Bounds()
		require.False(ok)
	})
}

func TestLoad_PreambleOption(t *testing.T) {
	require := require.New(t)

	g := newGrid(2, 1, 1)
	dir := g.write(t, asciiLayout, nil)

	// Without a preamble the header is scanned too; the first list is still the
	// count followed by "(".
	m, err := Load(dir, source.WithPreambleLines(0))
	require.NoError(err)
	require.Equal(g.owner, m.Owner)

	_, err = Load(dir, source.WithPreambleLines(-1))
	require.Error(err)
}

func TestLoad_ByteOrderOverride(t *testing.T) {
	require := require.New(t)

	g := newGrid(2, 1, 1)
	l := layout{format: format.Binary, order: "MSB", label: 32, scalar: 64}
	dir := g.write(t, l, nil)

	// Forcing the wrong byte order scrambles the labels.
	_, err := Load(dir, source.WithByteOrder(endian.GetLittleEndianEngine()))
	require.Error(err)

	m, err := Load(dir, source.WithByteOrder(endian.GetBigEndianEngine()))
	require.NoError(err)
	require.Equal(g.owner, m.Owner)
}

func TestLoad_Errors(t *testing.T) {
	g := newGrid(2, 1, 1)
	header := meshHeader(asciiLayout, "labelList", OwnerFile)
	binaryLayout := layout{format: format.Binary, order: "LSB", label: 32, scalar: 64}

	tests := []struct {
		name   string
		file   string
		data   string
		target error
	}{
		{
			name:   "fewer labels than declared",
			file:   OwnerFile,
			data:   header + "3\n(\n0\n1\n)\n",
			target: errs.ErrDecodeMismatch,
		},
		{
			name:   "more labels than declared",
			file:   OwnerFile,
			data:   header + "1\n(\n0\n1\n)\n",
			target: errs.ErrDecodeMismatch,
		},
		{
			name:   "malformed label",
			file:   OwnerFile,
			data:   header + "2\n(\n0\nx\n)\n",
			target: errs.ErrInvalidValue,
		},
		{
			name:   "no count",
			file:   OwnerFile,
			data:   header + "(\n)\n",
			target: errs.ErrInvalidCount,
		},
		{
			name:   "negative owner",
			file:   OwnerFile,
			data:   header + "1(-1)\n",
			target: errs.ErrStructural,
		},
		{
			name:   "face vertex count",
			file:   FacesFile,
			data:   meshHeader(asciiLayout, "faceList", FacesFile) + "1\n(\n4(0 1 2)\n)\n",
			target: errs.ErrDecodeMismatch,
		},
		{
			name:   "compact offsets past indices",
			file:   FacesFile,
			data:   meshHeader(asciiLayout, CompactFaceClass, FacesFile) + "2(0 4)\n3(0 1 2)\n",
			target: errs.ErrDecodeMismatch,
		},
		{
			name: "truncated binary labels",
			file: OwnerFile,
			data: meshHeader(binaryLayout, "labelList", OwnerFile) +
				"4\n(\x00\x00\x00\x00\x01\x00)\n",
			target: errs.ErrDecodeMismatch,
		},
		{
			name:   "oversized label count",
			file:   OwnerFile,
			data:   header + "999999999999999999\n(\n0\n)\n",
			target: errs.ErrDecodeMismatch,
		},
		{
			name:   "oversized inline count",
			file:   OwnerFile,
			data:   header + "99999999999(0)\n",
			target: errs.ErrDecodeMismatch,
		},
		{
			name:   "oversized face count",
			file:   FacesFile,
			data:   meshHeader(asciiLayout, "faceList", FacesFile) + "99999999999\n(\n3(0 1 2)\n)\n",
			target: errs.ErrDecodeMismatch,
		},
		{
			name:   "oversized binary label count",
			file:   OwnerFile,
			data:   meshHeader(binaryLayout, "labelList", OwnerFile) + "999999999999999999\n(\x00\x00\x00\x00)\n",
			target: errs.ErrDecodeMismatch,
		},
		{
			name:   "oversized binary point count",
			file:   PointsFile,
			data:   meshHeader(binaryLayout, "vectorField", PointsFile) + "999999999999999\n(\x00\x00)\n",
			target: errs.ErrDecodeMismatch,
		},
		{
			name:   "neighbour beyond cells",
			file:   NeighbourFile,
			data:   meshHeader(asciiLayout, "labelList", NeighbourFile) + "1\n(\n7\n)\n",
			target: errs.ErrStructural,
		},
		{
			name:   "boundary without nFaces",
			file:   BoundaryFile,
			data:   meshHeader(asciiLayout, "polyBoundaryMesh", BoundaryFile) + "1\n(\ninlet\n{\ntype patch;\nstartFace 0;\n}\n)\n",
			target: errs.ErrStructural,
		},
		{
			name:   "invalid arch",
			file:   PointsFile,
			data:   meshHeader(layout{format: format.Binary, order: "PDP", label: 32, scalar: 64}, "vectorField", PointsFile),
			target: errs.ErrInvalidHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := g.write(t, asciiLayout, nil)
			writeFile(t, dir, tt.file, []byte(tt.data))

			_, err := Load(dir)
			require.ErrorIs(t, err, tt.target)
			require.Contains(t, err.Error(), dir)
		})
	}
}

func TestLoader_Reuse(t *testing.T) {
	require := require.New(t)

	loader, err := NewLoader()
	require.NoError(err)

	small := newGrid(1, 1, 1)
	large := newGrid(4, 3, 2)

	m1, err := loader.Load(small.write(t, asciiLayout, nil))
	require.NoError(err)
	m2, err := loader.Load(large.write(t, asciiLayout, nil))
	require.NoError(err)

	require.Equal(1, m1.NumCells())
	require.Equal(24, m2.NumCells())
	requireConnectivity(t, m1)
	requireConnectivity(t, m2)
}
