// Package compress provides the compression codecs applied to serialized
// job documents.
//
// Job documents are JSON and compress well; the codecs here trade ratio for
// speed differently. Zstd gives the best ratio for archived documents, LZ4
// and S2 favor fast round trips, and the no-op codec keeps documents as
// plain JSON.
package compress

import (
	"fmt"

	"github.com/verakit/vera/format"
)

// Compressor compresses a serialized job document payload.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result. The
	// input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a job document payload.
type Decompressor interface {
	// Decompress decompresses data previously compressed with the same
	// algorithm. It returns an error if the data is corrupted or was
	// compressed with an incompatible algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. All codecs in this package are stateless
// values, safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec returns the built-in Codec for the given compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	codec, ok := builtinCodecs[compressionType]
	if !ok {
		return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
	}

	return codec, nil
}
