package compress

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/pierrec/lz4/v4"
)

// LZ4Compressor packs payloads as LZ4 frames.
//
// Frames carry their own length and checksum, so incompressible input
// round-trips correctly and the output is readable by the reference lz4
// tool. Compression is weaker than zstd but considerably faster.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 frame codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress packs data into an LZ4 frame.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, "lz4 compression")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "lz4 compression")
	}

	return buf.Bytes(), nil
}

// Decompress restores an LZ4 frame.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, errors.Wrap(err, "lz4 decompression")
	}

	return out, nil
}
