package compress

// NoOpCompressor passes payloads through untouched. Use it when the
// export must stay byte-identical to the mapped pixels, or as a baseline
// in benchmarks.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unchanged, sharing its backing array.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged, sharing its backing array.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
