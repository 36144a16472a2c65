package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/foamio/endian"
	"github.com/arloliu/foamio/errs"
)

func TestLabelRaw_RoundTrip(t *testing.T) {
	labels := []int{0, 1, -1, 2147483647, -2147483648, 42}

	tests := []struct {
		name   string
		engine endian.EndianEngine
		width  int
	}{
		{"int32 little endian", endian.GetLittleEndianEngine(), 4},
		{"int32 big endian", endian.GetBigEndianEngine(), 4},
		{"int64 little endian", endian.GetLittleEndianEngine(), 8},
		{"int64 big endian", endian.GetBigEndianEngine(), 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoder := NewLabelRawEncoder(tt.engine, tt.width)
			defer encoder.Finish()
			encoder.WriteSlice(labels)

			require.Equal(t, len(labels), encoder.Len())
			require.Len(t, encoder.Bytes(), len(labels)*tt.width)

			decoder := NewLabelRawDecoder(tt.engine, tt.width)
			dst := make([]int, len(labels))
			require.NoError(t, decoder.Decode(encoder.Bytes(), dst))
			require.Equal(t, labels, dst)

			var streamed []int
			for v := range decoder.All(encoder.Bytes(), len(labels)) {
				streamed = append(streamed, v)
			}
			require.Equal(t, labels, streamed)
		})
	}
}

func TestLabelRaw_Int64Range(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	encoder := NewLabelRawEncoder(engine, 8)
	defer encoder.Finish()
	encoder.Write(1 << 40)

	v, ok := NewLabelRawDecoder(engine, 8).At(encoder.Bytes(), 0, 1)
	require.True(t, ok)
	require.Equal(t, 1<<40, v)
}

func TestLabelRawDecoder_Errors(t *testing.T) {
	decoder := NewLabelRawDecoder(endian.GetLittleEndianEngine(), 4)
	require.Equal(t, 4, decoder.Width())

	err := decoder.Decode(make([]byte, 7), make([]int, 2))
	require.ErrorIs(t, err, errs.ErrDecodeMismatch)

	_, ok := decoder.At(make([]byte, 8), 2, 2)
	require.False(t, ok)
	_, ok = decoder.At(make([]byte, 4), 1, 2)
	require.False(t, ok)
}
