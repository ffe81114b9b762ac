package segment

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zisraw/errs"
	"github.com/arloliu/zisraw/format"
)

func prologue(tag string, allocated, used int64) []byte {
	b := make([]byte, HeaderSize)
	copy(b[0:TagSize], tag)
	binary.LittleEndian.PutUint64(b[16:24], uint64(allocated))
	binary.LittleEndian.PutUint64(b[24:32], uint64(used))

	return b
}

func TestReadHeader(t *testing.T) {
	t.Run("decodes fields", func(t *testing.T) {
		src := bytes.NewReader(prologue("ZISRAWDIRECTORY", 4096, 1234))

		hdr, err := ReadHeader(src, 0)
		require.NoError(t, err)
		require.Equal(t, format.SegmentDirectory, hdr.ID)
		require.Equal(t, int64(4096), hdr.AllocatedSize)
		require.Equal(t, int64(1234), hdr.UsedSize)
	})

	t.Run("trims tag at first NUL", func(t *testing.T) {
		raw := prologue("DELETED", 0, 0)
		raw[8] = 'X' // garbage past the terminator must not leak into the tag

		hdr, err := ReadHeader(bytes.NewReader(raw), 0)
		require.NoError(t, err)
		require.Equal(t, format.SegmentDeleted, hdr.ID)
	})

	t.Run("reads at nonzero offset", func(t *testing.T) {
		raw := append(make([]byte, 64), prologue("ZISRAWSUBBLOCK", 96, 64)...)

		hdr, err := ReadHeader(bytes.NewReader(raw), 64)
		require.NoError(t, err)
		require.Equal(t, format.SegmentSubBlock, hdr.ID)
	})

	t.Run("truncated prologue", func(t *testing.T) {
		_, err := ReadHeader(bytes.NewReader(make([]byte, 16)), 0)
		require.ErrorIs(t, err, errs.ErrTruncated)
	})
}

func TestReadHeaderExpect(t *testing.T) {
	raw := prologue("ZISRAWMETADATA", 512, 300)

	t.Run("matching tag", func(t *testing.T) {
		hdr, err := ReadHeaderExpect(bytes.NewReader(raw), 0, format.SegmentMetadata)
		require.NoError(t, err)
		require.Equal(t, int64(300), hdr.UsedSize)
	})

	t.Run("mismatched tag", func(t *testing.T) {
		_, err := ReadHeaderExpect(bytes.NewReader(raw), 0, format.SegmentDirectory)
		require.ErrorIs(t, err, errs.ErrSegmentTagMismatch)
		require.ErrorContains(t, err, `"ZISRAWDIRECTORY"`)
		require.ErrorContains(t, err, `"ZISRAWMETADATA"`)
		require.ErrorContains(t, err, "offset 0")
	})
}
