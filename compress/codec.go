// Package compress provides the payload codecs of the compressed-clip blob.
//
// A clip's packed sample and range data is serialized into one payload which may be
// compressed as a whole. Quantized animation payloads are dense but still carry
// structure (repeated range floats, zero padding between mixed-format groups) that
// the byte-level codecs recover cheaply.
package compress

import (
	"fmt"

	"github.com/arloliu/animpack/format"
)

// Compressor compresses a complete blob payload.
//
// Memory management: the input slice is not modified. The returned slice is newly
// allocated and owned by the caller, except for NoOpCompressor, which returns the
// input slice itself.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor. The
// compressing codecs validate the data format and return an error if the data is
// corrupted or was compressed with an incompatible algorithm; NoOpCompressor returns
// its input unchanged and validates nothing.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for a compression tag.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %v", compressionType)
}
