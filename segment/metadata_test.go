package segment

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zisraw/errs"
	"github.com/arloliu/zisraw/internal/fixture"
)

func TestReadMetadata(t *testing.T) {
	t.Run("recovers document text", func(t *testing.T) {
		c := fixture.Gray8Grid()
		built := c.Build()

		meta, err := ReadMetadata(bytes.NewReader(built.Data), built.MetadataOffset)
		require.NoError(t, err)
		require.Equal(t, c.XML, string(meta.XML))
		require.Equal(t, int32(0), meta.AttachmentSize)
	})

	t.Run("document is raw bytes, not parsed", func(t *testing.T) {
		c := fixture.New()
		c.XML = "<not </ well-formed"

		built := c.Build()
		meta, err := ReadMetadata(bytes.NewReader(built.Data), built.MetadataOffset)
		require.NoError(t, err)
		require.Equal(t, "<not </ well-formed", string(meta.XML))
	})

	t.Run("wrong segment tag", func(t *testing.T) {
		built := fixture.Gray8Grid().Build()

		_, err := ReadMetadata(bytes.NewReader(built.Data), built.DirectoryOffset)
		require.ErrorIs(t, err, errs.ErrSegmentTagMismatch)
	})

	t.Run("truncated document", func(t *testing.T) {
		built := fixture.Gray8Grid().Build()
		short := built.Data[:built.MetadataOffset+HeaderSize+MetadataFixedSize+5]

		_, err := ReadMetadata(bytes.NewReader(short), built.MetadataOffset)
		require.ErrorIs(t, err, errs.ErrTruncated)
	})
}
