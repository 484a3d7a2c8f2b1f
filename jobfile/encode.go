package jobfile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/verakit/vera/compress"
	"github.com/verakit/vera/format"
	"github.com/verakit/vera/internal/options"
)

type encodeConfig struct {
	compression format.CompressionType
}

// EncodeOption configures Encode.
type EncodeOption = options.Option[encodeConfig]

// WithCompression selects the compression applied to the job document.
// The default is format.CompressionNone, which writes plain JSON.
func WithCompression(c format.CompressionType) EncodeOption {
	return options.New(func(cfg *encodeConfig) error {
		if !c.Valid() {
			return fmt.Errorf("invalid compression type %d", c)
		}
		cfg.compression = c

		return nil
	})
}

type decodeConfig struct {
	strictBlobRefs bool
}

// DecodeOption configures Decode.
type DecodeOption = options.Option[decodeConfig]

// WithStrictBlobRefs makes Decode fail when a measurement links a blob
// identifier that the document does not carry. Without it such links are
// dropped and reported per measurement by Unresolved.
func WithStrictBlobRefs() DecodeOption {
	return options.NoError(func(cfg *decodeConfig) {
		cfg.strictBlobRefs = true
	})
}

// Encode writes the job document to w. With compression enabled the JSON
// payload is compressed and framed with the format envelope; otherwise
// plain JSON is written.
func (j *Job) Encode(w io.Writer, opts ...EncodeOption) error {
	cfg := encodeConfig{compression: format.CompressionNone}
	if err := options.Apply(&cfg, opts...); err != nil {
		return err
	}

	data, err := j.marshalDoc()
	if err != nil {
		return err
	}

	if cfg.compression == format.CompressionNone {
		_, err = w.Write(data)
		return err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return err
	}
	payload, err := codec.Compress(data)
	if err != nil {
		return err
	}

	header := make([]byte, 0, format.EnvelopeSize)
	header = append(header, format.Magic...)
	header = append(header, format.EnvelopeVersion, byte(cfg.compression))
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = w.Write(payload)

	return err
}

// Decode reads a job document from r, sniffing the envelope to pick the
// codec. Plain JSON documents decode directly.
func Decode(r io.Reader, opts ...DecodeOption) (*Job, error) {
	cfg := decodeConfig{}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(data) >= format.EnvelopeSize && bytes.HasPrefix(data, []byte(format.Magic)) {
		version := data[len(format.Magic)]
		if version != format.EnvelopeVersion {
			return nil, fmt.Errorf("unsupported job document version %d", version)
		}
		compression := format.CompressionType(data[len(format.Magic)+1])
		codec, err := compress.GetCodec(compression)
		if err != nil {
			return nil, err
		}
		data, err = codec.Decompress(data[format.EnvelopeSize:])
		if err != nil {
			return nil, err
		}
	}

	return unmarshalDoc(data, cfg.strictBlobRefs)
}
