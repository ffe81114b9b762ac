package compress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// payload returns a periodic fill, like a flat microscopy background:
// low entropy, so every real codec should shrink it.
func payload() []byte {
	b := make([]byte, 4096)
	for i := range b {
		b[i] = byte(i % 7)
	}

	return b
}

func TestCodecRoundTrip(t *testing.T) {
	data := payload()
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			codec, err := ByName(name)
			require.NoError(t, err)

			packed, err := codec.Compress(data)
			require.NoError(t, err)

			out, err := codec.Decompress(packed)
			require.NoError(t, err)
			require.Equal(t, data, out)
		})
	}
}

func TestCompressingCodecsShrinkPeriodicData(t *testing.T) {
	data := payload()
	for _, name := range []string{"zstd", "s2", "lz4"} {
		codec, err := ByName(name)
		require.NoError(t, err)

		packed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(packed), len(data), name)
	}
}

func TestLZ4IncompressibleRoundTrip(t *testing.T) {
	// Pseudo-random bytes do not compress; the frame format must still
	// carry them through.
	data := make([]byte, 1024)
	state := uint32(0x9E3779B9)
	for i := range data {
		state = state*1664525 + 1013904223
		data[i] = byte(state >> 24)
	}

	codec, err := ByName("lz4")
	require.NoError(t, err)

	packed, err := codec.Compress(data)
	require.NoError(t, err)

	out, err := codec.Decompress(packed)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestByNameUnknown(t *testing.T) {
	_, err := ByName("brotli")
	require.ErrorContains(t, err, `unknown codec "brotli"`)
}

func TestNames(t *testing.T) {
	require.Equal(t, []string{"lz4", "none", "s2", "zstd"}, Names())
}

func TestNoOpSharesBacking(t *testing.T) {
	data := payload()
	codec, err := ByName("none")
	require.NoError(t, err)

	packed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &packed[0])
}

func BenchmarkCompress(b *testing.B) {
	data := payload()
	for _, name := range []string{"zstd", "s2", "lz4"} {
		codec, err := ByName(name)
		require.NoError(b, err)

		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Compress(data)
			}
		})
	}
}
