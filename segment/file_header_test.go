package segment

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zisraw/errs"
	"github.com/arloliu/zisraw/internal/fixture"
)

func TestReadFileHeader(t *testing.T) {
	t.Run("canonical container", func(t *testing.T) {
		built := fixture.Gray8Grid().Build()

		hdr, err := ReadFileHeader(bytes.NewReader(built.Data))
		require.NoError(t, err)
		require.Equal(t, int32(1), hdr.Major)
		require.Equal(t, int32(0), hdr.Minor)
		require.Equal(t, int32(0), hdr.FilePart)
		require.Equal(t, built.DirectoryOffset, hdr.DirectoryOffset)
		require.Equal(t, built.MetadataOffset, hdr.MetadataOffset)
		require.Equal(t, built.AttachmentDirOffset, hdr.AttachmentDirOffset)
		require.False(t, hdr.PrimaryGUID.IsZero())
		require.False(t, hdr.FileGUID.IsZero())
		require.NotEqual(t, hdr.PrimaryGUID, hdr.FileGUID)
	})

	t.Run("wrong magic", func(t *testing.T) {
		raw := fixture.Gray8Grid().Bytes()
		copy(raw[0:16], "ZISRAWDIRECTORY\x00")

		_, err := ReadFileHeader(bytes.NewReader(raw))
		require.ErrorIs(t, err, errs.ErrSegmentTagMismatch)
	})

	t.Run("unsupported version", func(t *testing.T) {
		c := fixture.Gray8Grid()
		c.Major = 2

		_, err := ReadFileHeader(bytes.NewReader(c.Bytes()))
		require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
		require.ErrorContains(t, err, "2.0")
	})

	t.Run("multi-part rejected", func(t *testing.T) {
		c := fixture.Gray8Grid()
		c.FilePart = 3

		_, err := ReadFileHeader(bytes.NewReader(c.Bytes()))
		require.ErrorIs(t, err, errs.ErrMultiPart)
		require.ErrorContains(t, err, "3")
	})

	t.Run("update pending rejected", func(t *testing.T) {
		c := fixture.Gray8Grid()
		c.UpdatePending = 1

		_, err := ReadFileHeader(bytes.NewReader(c.Bytes()))
		require.ErrorIs(t, err, errs.ErrUpdatePending)
	})

	t.Run("truncated header", func(t *testing.T) {
		raw := fixture.Gray8Grid().Bytes()[:40]

		_, err := ReadFileHeader(bytes.NewReader(raw))
		require.ErrorIs(t, err, errs.ErrTruncated)
	})
}

func TestGUIDString(t *testing.T) {
	g := GUID{0xA0, 0xA1, 0xA2, 0xA3, 0xA4, 0xA5, 0xA6, 0xA7, 0xA8, 0xA9, 0xAA, 0xAB, 0xAC, 0xAD, 0xAE, 0xAF}
	require.Equal(t, "a3a2a1a0-a5a4-a7a6-a8a9-aaabacadaeaf", g.String())
	require.True(t, GUID{}.IsZero())
	require.False(t, g.IsZero())
}
