package compress

// ZstdCompressor provides Zstandard compression for blob payloads. It favors
// compression ratio over speed, which suits clips compressed once at build time and
// shipped to many clients.
//
// Two implementations exist behind build tags: a cgo binding (valyala/gozstd) when
// built with the cgo_zstd tag, and a pure-Go fallback (klauspost/compress/zstd)
// otherwise. Both
// produce standard Zstandard frames and interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
