package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verakit/vera/format"
)

// A JSON-ish payload with enough repetition to compress.
var testPayload = bytes.Repeat([]byte(`{"identifier": "aaaa-bbbb", "value": 7.5, "unit": "mmag"},`), 200)

func TestGetCodec(t *testing.T) {
	for _, c := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(c.String(), func(t *testing.T) {
			codec, err := GetCodec(c)
			require.NoError(t, err)
			require.NotNil(t, codec)
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		_, err := GetCodec(format.CompressionType(0x7f))
		require.Error(t, err)
	})
}

func TestRoundTrip(t *testing.T) {
	codecs := map[string]Codec{
		"noop": NewNoOpCodec(),
		"zstd": NewZstdCodec(),
		"s2":   NewS2Codec(),
		"lz4":  NewLZ4Codec(),
	}
	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(testPayload)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, testPayload, decompressed)
		})

		t.Run(name+" empty input", func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			assert.Empty(t, decompressed)
		})
	}
}

func TestCompressionShrinksRepetitiveData(t *testing.T) {
	for _, name := range []string{"zstd", "s2", "lz4"} {
		t.Run(name, func(t *testing.T) {
			var codec Codec
			switch name {
			case "zstd":
				codec = NewZstdCodec()
			case "s2":
				codec = NewS2Codec()
			case "lz4":
				codec = NewLZ4Codec()
			}

			compressed, err := codec.Compress(testPayload)
			require.NoError(t, err)
			assert.Less(t, len(compressed), len(testPayload))
		})
	}
}

func TestNoOpIsIdentity(t *testing.T) {
	codec := NewNoOpCodec()

	out, err := codec.Compress(testPayload)
	require.NoError(t, err)
	assert.Equal(t, testPayload, out)

	out, err = codec.Decompress(testPayload)
	require.NoError(t, err)
	assert.Equal(t, testPayload, out)
}
