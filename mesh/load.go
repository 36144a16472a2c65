package mesh

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arloliu/foamio/boundary"
	"github.com/arloliu/foamio/errs"
	"github.com/arloliu/foamio/section"
	"github.com/arloliu/foamio/source"
)

// Names of the files of a mesh directory.
const (
	BoundaryFile  = "boundary"
	PointsFile    = "points"
	FacesFile     = "faces"
	OwnerFile     = "owner"
	NeighbourFile = "neighbour"
)

// Option configures a Loader.
type Option = source.Option

// Loader reads mesh directories.
//
// A Loader holds no per-mesh state and is safe for concurrent use.
type Loader struct {
	cfg *source.Config
}

// NewLoader creates a Loader with the given options.
func NewLoader(opts ...Option) (*Loader, error) {
	cfg, err := source.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Loader{cfg: cfg}, nil
}

// Load reads the mesh in dir with a loader built from opts.
func Load(dir string, opts ...Option) (*Mesh, error) {
	l, err := NewLoader(opts...)
	if err != nil {
		return nil, err
	}

	return l.Load(dir)
}

// Load reads the boundary, points, faces, owner and neighbour files of dir and
// builds the mesh connectivity.
//
// Each file may be replaced by a compressed sibling. A file that is absent
// altogether leaves its array empty and is logged as a warning; any other read
// or decode failure aborts the load.
//
// Returns:
//   - *Mesh: The mesh
//   - error: The first read, header, structural or decode error, prefixed with
//     the file path
func (l *Loader) Load(dir string) (*Mesh, error) {
	var (
		table            *boundary.Table
		points           []r3.Vec
		faces            [][]int
		owner, neighbour []int
	)

	from := l.cfg.PreambleLines()
	steps := []struct {
		name string
		read func(content *source.Content, header section.Header) error
	}{
		{BoundaryFile, func(content *source.Content, _ section.Header) (err error) {
			table, err = boundary.ParseTable(content)
			return err
		}},
		{PointsFile, func(content *source.Content, header section.Header) (err error) {
			points, err = readPoints(content, from, header.Layout)
			return err
		}},
		{FacesFile, func(content *source.Content, header section.Header) (err error) {
			faces, err = readFaces(content, from, header)
			return err
		}},
		{OwnerFile, func(content *source.Content, header section.Header) (err error) {
			owner, _, err = readLabels(content, from, header.Layout)
			return err
		}},
		{NeighbourFile, func(content *source.Content, header section.Header) (err error) {
			neighbour, _, err = readLabels(content, from, header.Layout)
			return err
		}},
	}

	for _, step := range steps {
		content, header, err := l.open(dir, step.name)
		if err != nil {
			return nil, err
		}
		if content == nil {
			continue
		}

		if err := step.read(content, header); err != nil {
			if step.name == BoundaryFile {
				return nil, err
			}

			return nil, fmt.Errorf("%s: %w", content.Path, err)
		}
	}

	m, err := build(points, faces, owner, neighbour, table, l.cfg.Logger())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	l.cfg.Logger().Info("mesh loaded",
		slog.String("dir", dir),
		slog.Int("points", m.NumPoints()),
		slog.Int("faces", m.NumFaces()),
		slog.Int("inner_faces", m.NumInnerFaces()),
		slog.Int("cells", m.NumCells()),
		slog.Int("patches", m.Boundary.Len()))

	return m, nil
}

// open returns the content and header of a mesh file, or nil content when
// neither the file nor a compressed sibling exists.
func (l *Loader) open(dir, name string) (*source.Content, section.Header, error) {
	content, err := l.cfg.Open(filepath.Join(dir, name))
	if errors.Is(err, errs.ErrNotFound) {
		l.cfg.Logger().Warn("mesh file absent", slog.String("dir", dir), slog.String("file", name))
		return nil, section.Header{}, nil
	}
	if err != nil {
		return nil, section.Header{}, err
	}

	header, err := section.Inspect(content, l.cfg)
	if err != nil {
		return nil, section.Header{}, err
	}

	return content, header, nil
}
