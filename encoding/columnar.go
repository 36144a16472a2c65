package encoding

import "iter"

// WordDecoder decodes a packed array of fixed-width machine words.
//
// Implementations are stateless values; the byte order and word width are fixed
// at construction.
type WordDecoder[T int | float64] interface {
	// All returns an iterator over the first count words of data.
	//
	// The sequence is empty when data holds fewer than count words.
	All(data []byte, count int) iter.Seq[T]

	// At returns the word at index, or false when index is outside [0, count) or
	// data is too short.
	At(data []byte, index int, count int) (T, bool)

	// Decode fills dst with the first len(dst) words of data.
	//
	// Returns ErrDecodeMismatch when data is too short.
	Decode(data []byte, dst []T) error

	// Width returns the size of one word in bytes.
	Width() int
}
