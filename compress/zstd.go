package compress

// ZstdCompressor packs payloads as standard Zstandard frames.
//
// This is the recommended codec for archived pixel data: microscopy
// payloads (flat backgrounds, repeated fills, low-entropy gradients)
// compress very well, and the frames are readable by the reference zstd
// tool.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
