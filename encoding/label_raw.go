package encoding

import (
	"fmt"
	"iter"

	"github.com/arloliu/foamio/endian"
	"github.com/arloliu/foamio/errs"
	"github.com/arloliu/foamio/internal/pool"
)

// LabelRawDecoder decodes signed integer labels of 4 or 8 bytes.
type LabelRawDecoder struct {
	engine endian.EndianEngine
	width  int
}

var _ WordDecoder[int] = LabelRawDecoder{}

// NewLabelRawDecoder creates a label decoder; width is 4 or 8 bytes and any
// other value is treated as 4.
func NewLabelRawDecoder(engine endian.EndianEngine, width int) LabelRawDecoder {
	if width != 8 {
		width = 4
	}

	return LabelRawDecoder{engine: engine, width: width}
}

// Width returns the word size in bytes.
func (d LabelRawDecoder) Width() int {
	return d.width
}

// All returns an iterator over the first count labels of data.
func (d LabelRawDecoder) All(data []byte, count int) iter.Seq[int] {
	return func(yield func(int) bool) {
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

// At returns the label at index.
func (d LabelRawDecoder) At(data []byte, index int, count int) (int, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	start := index * d.width
	if start+d.width > len(data) {
		return 0, false
	}

	return d.word(data[start:]), true
}

// Decode fills dst with the first len(dst) labels of data.
func (d LabelRawDecoder) Decode(data []byte, dst []int) error {
	if need := len(dst) * d.width; len(data) < need {
		return fmt.Errorf("%w: %d labels need %d bytes, have %d", errs.ErrDecodeMismatch, len(dst), need, len(data))
	}

	for i := range dst {
		dst[i] = d.word(data[i*d.width:])
	}

	return nil
}

func (d LabelRawDecoder) word(b []byte) int {
	if d.width == 8 {
		return int(int64(d.engine.Uint64(b)))
	}

	return int(int32(d.engine.Uint32(b)))
}

// LabelRawEncoder packs labels into raw words.
type LabelRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	width  int
	count  int
}

// NewLabelRawEncoder creates a label encoder backed by a pooled buffer.
func NewLabelRawEncoder(engine endian.EndianEngine, width int) *LabelRawEncoder {
	if width != 8 {
		width = 4
	}

	return &LabelRawEncoder{buf: pool.GetBodyBuffer(), engine: engine, width: width}
}

// Write appends one label.
//
// Panics if Finish has been called.
func (e *LabelRawEncoder) Write(v int) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.buf.Grow(e.width)
	if e.width == 8 {
		e.buf.B = e.engine.AppendUint64(e.buf.B, uint64(int64(v)))
	} else {
		e.buf.B = e.engine.AppendUint32(e.buf.B, uint32(int32(v)))
	}
}

// WriteSlice appends all labels.
func (e *LabelRawEncoder) WriteSlice(values []int) {
	for _, v := range values {
		e.Write(v)
	}
}

// Bytes returns the packed words. The slice is only valid until Finish.
func (e *LabelRawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of labels written.
func (e *LabelRawEncoder) Len() int {
	return e.count
}

// Finish returns the buffer to the pool.
func (e *LabelRawEncoder) Finish() {
	if e.buf != nil {
		pool.PutBodyBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}
