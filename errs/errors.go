// Package errs defines the sentinel errors returned by foamio.
//
// Errors are wrapped with context using fmt.Errorf("%w: ...") so callers should
// match them with errors.Is.
package errs

import "errors"

// Byte source errors
var (
	// ErrNotFound is returned when neither a file nor any of its compressed siblings exist.
	ErrNotFound = errors.New("file not found")
	// ErrUnsupportedCompression is returned when no codec is registered for a compression type.
	ErrUnsupportedCompression = errors.New("unsupported compression")
)

// Structure errors
var (
	// ErrStructural is returned when a required delimiter or attribute is missing.
	ErrStructural = errors.New("structural error")
	// ErrDuplicatePatch is returned when a patch name is declared twice in one block.
	ErrDuplicatePatch = errors.New("duplicate patch")
	// ErrInvalidHeader is returned when a FoamFile header entry cannot be interpreted.
	ErrInvalidHeader = errors.New("invalid header")
	// ErrInvalidCount is returned when a declared entry count is missing or malformed.
	ErrInvalidCount = errors.New("invalid entry count")
)

// Decode errors
var (
	// ErrDecodeMismatch is returned when a declared count or arity disagrees with the
	// data available to decode.
	ErrDecodeMismatch = errors.New("decode mismatch")
	// ErrInvalidValue is returned when a numeric token cannot be parsed.
	ErrInvalidValue = errors.New("invalid value")
)
