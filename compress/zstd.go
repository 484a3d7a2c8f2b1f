package compress

// ZstdCodec compresses job documents with Zstandard. It gives the best
// ratio of the built-in codecs and suits archived or transmitted documents
// where size matters more than encode speed.
//
// Two implementations are selected at build time: a cgo-backed one
// (valyala/gozstd) when cgo is available, and a pure-Go fallback
// (klauspost/compress/zstd) otherwise. Both produce standard zstd frames
// and are wire-compatible with each other.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a new Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
