package format

import "strings"

type (
	FileFormat      uint8
	ValueKind       uint8
	CompressionType uint8
)

const (
	ASCII  FileFormat = 0x1 // ASCII represents a human-readable body, one entry per line.
	Binary FileFormat = 0x2 // Binary represents a packed native-width body under a text header.

	KindScalar     ValueKind = 0x1 // KindScalar represents a single component.
	KindVector     ValueKind = 0x2 // KindVector represents a 3-component vector.
	KindSymmTensor ValueKind = 0x3 // KindSymmTensor represents a 6-component symmetric tensor.
	KindTensor     ValueKind = 0x4 // KindTensor represents a 9-component tensor.

	CompressionNone CompressionType = 0x1 // CompressionNone represents a plain file.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents a Zstandard frame.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents an S2 stream.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents an LZ4 frame.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents a gzip stream.
)

func (f FileFormat) String() string {
	switch f {
	case ASCII:
		return "ascii"
	case Binary:
		return "binary"
	default:
		return "unknown"
	}
}

func (k ValueKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVector:
		return "vector"
	case KindSymmTensor:
		return "symmTensor"
	case KindTensor:
		return "tensor"
	default:
		return "unknown"
	}
}

// Arity returns the number of components of a value of kind k, or 0 for an unknown kind.
func (k ValueKind) Arity() int {
	switch k {
	case KindScalar:
		return 1
	case KindVector:
		return 3
	case KindSymmTensor:
		return 6
	case KindTensor:
		return 9
	default:
		return 0
	}
}

// KindOfArity maps a component count back to its value kind.
//
// Returns false for any arity other than 1, 3, 6 or 9.
func KindOfArity(arity int) (ValueKind, bool) {
	switch arity {
	case 1:
		return KindScalar, true
	case 3:
		return KindVector, true
	case 6:
		return KindSymmTensor, true
	case 9:
		return KindTensor, true
	default:
		return 0, false
	}
}

// KindFromKeyword infers the value kind from a type keyword found on a declaration
// line, e.g. "nonuniform List<symmTensor>".
//
// The match is case-insensitive. "symmtensor" is tested before "tensor" since the
// latter is a substring of the former. Lines without a recognized keyword are scalar.
func KindFromKeyword(line string) ValueKind {
	l := strings.ToLower(line)
	switch {
	case strings.Contains(l, "vector"):
		return KindVector
	case strings.Contains(l, "symmtensor"):
		return KindSymmTensor
	case strings.Contains(l, "sphericaltensor"):
		return KindScalar
	case strings.Contains(l, "tensor"):
		return KindTensor
	default:
		return KindScalar
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}

// Suffix returns the conventional file name suffix of a compressed sibling file.
func (c CompressionType) Suffix() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".sz"
	case CompressionLZ4:
		return ".lz4"
	case CompressionGzip:
		return ".gz"
	default:
		return ""
	}
}

// CompressionFromSuffix returns the compression type whose Suffix matches the
// extension of name. Plain names report CompressionNone.
func CompressionFromSuffix(name string) CompressionType {
	for _, c := range []CompressionType{CompressionGzip, CompressionZstd, CompressionLZ4, CompressionS2} {
		if strings.HasSuffix(name, c.Suffix()) {
			return c
		}
	}

	return CompressionNone
}
