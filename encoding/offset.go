package encoding

import (
	"fmt"

	"github.com/arloliu/foamio/errs"
	"github.com/arloliu/foamio/internal/pool"
	"github.com/arloliu/foamio/source"
)

// Packed block delimiters. A binary list body is the marker, the payload words
// and the closing byte, possibly spread over several lines.
const (
	BlockMarker  = '('
	BlockClosing = ')'
	MarkerSize   = 1
)

// Line offsets of a nonuniform list relative to its declaration line.
const (
	// CountLineOffset is the line holding the entry count.
	CountLineOffset = 1
	// BodyLineOffset is the line where the "(" line or the packed block begins.
	BodyLineOffset = 2
	// ASCIIDataLineOffset is the first ASCII entry line.
	ASCIIDataLineOffset = 3
)

// BinaryPayloadSize returns the number of payload bytes of count entries of
// arity components, each width bytes wide.
func BinaryPayloadSize(count, arity, width int) int {
	return count * arity * width
}

// FitPayload returns the payload size of a packed block of count entries, each
// arity words of width bytes, whose marker byte opens line first.
//
// Returns ErrDecodeMismatch when the content from line first onward cannot hold
// the marker, the payload and the closing byte. The count is compared by
// division and never overflows.
func FitPayload(content *source.Content, first, count, arity, width int) (int, error) {
	avail := content.SizeFrom(first) - MarkerSize - 1
	if word := arity * width; word > 0 && count > avail/word {
		return 0, fmt.Errorf("%w: binary block at line %d declares %d entries of %d bytes, %d bytes available",
			errs.ErrDecodeMismatch, first+1, count, word, max(avail, 0))
	}

	return BinaryPayloadSize(count, arity, width), nil
}

// BinaryPayloadRange returns the half-open byte range of a payload of size bytes
// within a block buffer that starts at the marker byte.
func BinaryPayloadRange(size int) (int, int) {
	return MarkerSize, MarkerSize + size
}

// ASCIIBlockLines returns the number of lines spanned by a multi-line ASCII list
// of count entries, from its declaration line through the closing ")" line.
func ASCIIBlockLines(count int) int {
	return count + 4
}

// BlockEnd returns the index of the line holding the closing byte of a packed
// block that starts at line first and carries size payload bytes.
//
// Returns false when the content ends before the block does.
func BlockEnd(content *source.Content, first, size int) (int, bool) {
	need := MarkerSize + size + 1
	acc := 0
	for i := max(first, 0); i < content.Len(); i++ {
		acc += len(content.Line(i))
		if acc >= need {
			return i, true
		}
	}

	return content.Len() - 1, false
}

// BinaryBlockLines returns the number of lines spanned by a binary list declared
// at line start, from the declaration through the line holding the closing byte.
// This is 3 when the payload contains no newline byte.
func BinaryBlockLines(content *source.Content, start, size int) int {
	end, _ := BlockEnd(content, start+BodyLineOffset, size)

	return max(end-start+1, BodyLineOffset+1)
}

// ReadPayload reassembles the packed block that starts with the marker at line
// first, bounded by line last, and passes its size payload bytes to fn.
//
// The payload slice is only valid during fn.
//
// Returns ErrDecodeMismatch when the block is shorter than size bytes, does not
// start with the marker or is not closed right after the payload.
func ReadPayload(content *source.Content, first, last, size int, fn func(payload []byte) error) error {
	if size < 0 || size > content.SizeFrom(first)-MarkerSize-1 {
		return fmt.Errorf("%w: binary block at line %d needs %d bytes, content ends first",
			errs.ErrDecodeMismatch, first+1, size)
	}

	end, _ := BlockEnd(content, first, size)
	end = min(end, last)

	buf := pool.GetBodyBuffer()
	defer pool.PutBodyBuffer(buf)

	buf.Grow(MarkerSize + size + 1)
	if _, err := content.WriteRange(buf, first, end); err != nil {
		return err
	}

	data := buf.Bytes()
	if len(data) == 0 || data[0] != BlockMarker {
		return fmt.Errorf("%w: line %d does not open a binary block", errs.ErrDecodeMismatch, first+1)
	}

	lo, hi := BinaryPayloadRange(size)
	if len(data) < hi {
		return fmt.Errorf("%w: binary block at line %d needs %d bytes, have %d",
			errs.ErrDecodeMismatch, first+1, size, len(data)-MarkerSize)
	}
	if len(data) == hi || data[hi] != BlockClosing {
		return fmt.Errorf("%w: binary block at line %d is not closed after %d bytes",
			errs.ErrDecodeMismatch, first+1, size)
	}

	return fn(data[lo:hi])
}
