// Package foamio decodes the mesh and field files written by finite-volume CFD
// solvers.
//
// A case directory holds a mesh (points, faces, owner, neighbour and boundary
// files) and one file per field and time step. Every file starts with a text
// header; its body is either ASCII or packed binary words whose byte order and
// widths are named by the header "arch" entry.
//
// # Core Features
//
//   - ASCII and binary bodies, 32 or 64 bit labels and scalars, either byte order
//   - Transparent fallback to .gz, .zst, .lz4 and .sz compressed siblings
//   - Scalar, vector, symmTensor and tensor values, uniform or nonuniform
//   - Cell connectivity and boundary patch queries over the mesh
//   - Structured logging through log/slog
//
// # Basic Usage
//
// Loading a mesh:
//
//	m, err := foamio.LoadMesh("cavity/constant/polyMesh")
//	if err != nil {
//	    return err
//	}
//	for cell := range m.FacesOfPatch("movingWall") {
//	    fmt.Println(cell, m.NeighboursOf(cell))
//	}
//
// Reading a field:
//
//	internal, err := foamio.ReadInternalField("cavity/0.5/U")
//	if err != nil {
//	    return err
//	}
//	for i, v := range internal.All() {
//	    fmt.Println(i, v.Vector())
//	}
//
//	bf, err := foamio.ReadBoundaryField("cavity/0.5/U")
//	if err != nil {
//	    return err
//	}
//	if e, ok := bf.Entry("movingWall", "value"); ok {
//	    fmt.Println(e.Value)
//	}
//
// # Package Structure
//
// This package wraps the mesh and field packages for the common cases. The
// source, section, encoding and boundary packages expose the individual
// decoding stages.
package foamio

import (
	"log/slog"

	"github.com/arloliu/foamio/endian"
	"github.com/arloliu/foamio/field"
	"github.com/arloliu/foamio/format"
	"github.com/arloliu/foamio/mesh"
	"github.com/arloliu/foamio/source"
)

// Option configures mesh and field readers.
type Option = source.Option

// Mesh is a loaded mesh with its cell connectivity.
type Mesh = mesh.Mesh

// CellRef is either a cell index or a negative boundary patch id.
type CellRef = mesh.CellRef

// LoadMesh reads the mesh files of dir.
//
// Parameters:
//   - dir: The mesh directory, usually <case>/constant/polyMesh
//   - opts: Reader options
//
// Returns:
//   - *Mesh: The mesh with cell connectivity built
//   - error: A read, header, structural or decode error
//
// Absent mesh files leave their arrays empty and are logged as warnings.
func LoadMesh(dir string, opts ...Option) (*Mesh, error) {
	return mesh.Load(dir, opts...)
}

// ReadInternalField reads the internal field of the field file at path.
//
// Returns a nil field and no error when the file has no uniform or nonuniform
// internal field.
func ReadInternalField(path string, opts ...Option) (*field.InternalField, error) {
	return field.ReadInternalField(path, opts...)
}

// ReadBoundaryField reads the per-patch values of the field file at path.
func ReadBoundaryField(path string, opts ...Option) (field.BoundaryField, error) {
	return field.ReadBoundaryField(path, opts...)
}

// ReadField reads the header, internal field and boundary field of the field
// file at path with a single read.
func ReadField(path string, opts ...Option) (*field.File, error) {
	p, err := field.NewParser(opts...)
	if err != nil {
		return nil, err
	}

	return p.Read(path)
}

// WithLogger sets the logger readers report to. Readers are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return source.WithLogger(logger)
}

// WithCompressions sets the compressed siblings tried, in order, when a plain
// file is absent.
func WithCompressions(types ...format.CompressionType) Option {
	return source.WithCompressions(types...)
}

// WithHeaderScanLimit sets how many leading lines are searched for header
// entries.
func WithHeaderScanLimit(limit int) Option {
	return source.WithHeaderScanLimit(limit)
}

// WithPreambleLines sets how many fixed lines are skipped in mesh array files.
func WithPreambleLines(n int) Option {
	return source.WithPreambleLines(n)
}

// WithByteOrder forces the byte order of binary bodies.
func WithByteOrder(engine endian.EndianEngine) Option {
	return source.WithByteOrder(engine)
}

// WithBigEndian forces big-endian binary bodies.
func WithBigEndian() Option {
	return source.WithByteOrder(endian.GetBigEndianEngine())
}

// WithLittleEndian forces little-endian binary bodies.
func WithLittleEndian() Option {
	return source.WithByteOrder(endian.GetLittleEndianEngine())
}
