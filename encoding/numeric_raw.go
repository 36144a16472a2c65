package encoding

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/foamio/endian"
	"github.com/arloliu/foamio/errs"
	"github.com/arloliu/foamio/internal/pool"
)

// NumericRawDecoder decodes raw IEEE 754 scalars, either 8-byte doubles or 4-byte
// floats, in a given byte order.
type NumericRawDecoder struct {
	engine endian.EndianEngine
	width  int
}

var _ WordDecoder[float64] = NumericRawDecoder{}

// NewNumericRawDecoder creates a scalar word decoder.
//
// Parameters:
//   - engine: Byte order of the words
//   - width: Word size in bytes, 8 or 4; any other value is treated as 8
//
// Returns:
//   - NumericRawDecoder: A stateless decoder
func NewNumericRawDecoder(engine endian.EndianEngine, width int) NumericRawDecoder {
	if width != 4 {
		width = 8
	}

	return NumericRawDecoder{engine: engine, width: width}
}

// Width returns the word size in bytes.
func (d NumericRawDecoder) Width() int {
	return d.width
}

// All returns an iterator over the first count scalars of data.
func (d NumericRawDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count <= 0 || len(data) < count*d.width {
			return
		}

		for i := range count {
			if !yield(d.word(data[i*d.width:])) {
				return
			}
		}
	}
}

// At returns the scalar at index.
func (d NumericRawDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	start := index * d.width
	if start+d.width > len(data) {
		return 0, false
	}

	return d.word(data[start:]), true
}

// Decode fills dst with the first len(dst) scalars of data.
func (d NumericRawDecoder) Decode(data []byte, dst []float64) error {
	if need := len(dst) * d.width; len(data) < need {
		return fmt.Errorf("%w: %d scalars need %d bytes, have %d", errs.ErrDecodeMismatch, len(dst), need, len(data))
	}

	for i := range dst {
		dst[i] = d.word(data[i*d.width:])
	}

	return nil
}

func (d NumericRawDecoder) word(b []byte) float64 {
	if d.width == 4 {
		return float64(math.Float32frombits(d.engine.Uint32(b)))
	}

	return math.Float64frombits(d.engine.Uint64(b))
}

// NumericRawEncoder packs scalars into raw words. It produces the bodies that
// NumericRawDecoder reads back.
type NumericRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	width  int
	count  int
}

// NewNumericRawEncoder creates a scalar word encoder backed by a pooled buffer.
// Call Finish to release the buffer.
func NewNumericRawEncoder(engine endian.EndianEngine, width int) *NumericRawEncoder {
	if width != 4 {
		width = 8
	}

	return &NumericRawEncoder{buf: pool.GetBodyBuffer(), engine: engine, width: width}
}

// Write appends one scalar.
//
// Panics if Finish has been called.
func (e *NumericRawEncoder) Write(v float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.buf.Grow(e.width)
	if e.width == 4 {
		e.buf.B = e.engine.AppendUint32(e.buf.B, math.Float32bits(float32(v)))
	} else {
		e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(v))
	}
}

// WriteSlice appends all values.
func (e *NumericRawEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.buf.Grow(len(values) * e.width)
	for _, v := range values {
		e.Write(v)
	}
}

// Bytes returns the packed words. The slice is only valid until Finish.
func (e *NumericRawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of scalars written.
func (e *NumericRawEncoder) Len() int {
	return e.count
}

// Size returns the number of bytes written.
func (e *NumericRawEncoder) Size() int {
	if e.buf == nil {
		return 0
	}

	return e.buf.Len()
}

// Finish returns the buffer to the pool. The encoder is unusable afterward.
func (e *NumericRawEncoder) Finish() {
	if e.buf != nil {
		pool.PutBodyBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}
