// Package compress provides the codecs used to read compressed sibling files.
//
// A solver may write any mesh or field file compressed, in which case the plain
// name is absent and a sibling with a compression suffix exists instead
// ("points.gz", "U.zst", ...). The source package selects a Decompressor from
// this package based on that suffix.
//
// # Supported Algorithms
//
//	Suffix | Type                    | Library
//	-------|-------------------------|-----------------------------------
//	.gz    | format.CompressionGzip  | github.com/klauspost/compress/gzip
//	.zst   | format.CompressionZstd  | github.com/klauspost/compress/zstd
//	.sz    | format.CompressionS2    | github.com/klauspost/compress/s2 (stream format)
//	.lz4   | format.CompressionLZ4   | github.com/pierrec/lz4/v4 (frame format)
//
// All formats are the self-describing stream/frame variants, so files written by
// the standard command line tools (gzip, zstd, lz4, s2c) decode unchanged.
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Thread Safety
//
// All codec implementations are stateless values or use sync.Pool internally,
// so they can be shared across goroutines.
package compress
