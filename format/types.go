// Package format defines the wire-level constants of vera job documents:
// the compression algorithm identifiers and the envelope framing used for
// compressed documents.
package format

// CompressionType identifies the algorithm applied to a serialized job
// document.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone writes plain JSON with no envelope.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is a known compression type.
func (c CompressionType) Valid() bool {
	switch c {
	case CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4:
		return true
	default:
		return false
	}
}

// Compressed job documents are framed with a fixed envelope so readers can
// distinguish them from plain JSON and select the codec:
//
//	magic (4 bytes) | version (1 byte) | compression (1 byte) | payload
//
// Uncompressed documents are written as bare JSON with no envelope; the
// magic bytes never form a valid JSON prefix, so sniffing the first bytes
// is unambiguous.
const (
	// Magic marks the start of a compressed job document.
	Magic = "VERA"

	// EnvelopeVersion is the current envelope layout version.
	EnvelopeVersion = 0x1

	// EnvelopeSize is the total envelope length in bytes.
	EnvelopeSize = len(Magic) + 2
)
