package image

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zisraw/errs"
	"github.com/arloliu/zisraw/format"
	"github.com/arloliu/zisraw/internal/fixture"
	"github.com/arloliu/zisraw/segment"
)

// openErr loads a container expected to be rejected and returns the error.
func openErr(t *testing.T, c *fixture.Container) error {
	t.Helper()
	img, err := Open(c.Write(t))
	if err == nil {
		_ = img.Close()
	}
	require.Error(t, err)

	return err
}

func TestOpenRejectsHeaderProblems(t *testing.T) {
	t.Run("unsupported version", func(t *testing.T) {
		c := fixture.Gray8Grid()
		c.Major = 2
		require.ErrorIs(t, openErr(t, c), errs.ErrUnsupportedVersion)
	})

	t.Run("multi-part container", func(t *testing.T) {
		c := fixture.Gray8Grid()
		c.FilePart = 1
		require.ErrorIs(t, openErr(t, c), errs.ErrMultiPart)
	})

	t.Run("update pending", func(t *testing.T) {
		c := fixture.Gray8Grid()
		c.UpdatePending = 1
		require.ErrorIs(t, openErr(t, c), errs.ErrUpdatePending)
	})

	t.Run("update pending halts at the header", func(t *testing.T) {
		c := fixture.Gray8Grid()
		c.UpdatePending = 1

		// Only the file header segment survives the cut; the rejection must
		// come from it, not from a read further into the file.
		raw := c.Bytes()[:segment.HeaderSize+segment.FileHeaderSize]
		path := filepath.Join(t.TempDir(), "pending.czi")
		require.NoError(t, os.WriteFile(path, raw, 0o644))

		_, err := Open(path)
		require.ErrorIs(t, err, errs.ErrUpdatePending)
	})
}

func TestOpenRejectsDirectoryProblems(t *testing.T) {
	t.Run("mixed pixel types", func(t *testing.T) {
		c := fixture.Gray8Grid()
		c.SubBlocks[2].PixelType = format.PixelGray16
		err := openErr(t, c)
		require.ErrorIs(t, err, errs.ErrPixelTypeMismatch)
		require.ErrorContains(t, err, "entry 2")
	})

	t.Run("compressed subblock", func(t *testing.T) {
		c := fixture.Gray8Grid()
		c.SubBlocks[1].Compression = format.CompressionJpeg
		require.ErrorIs(t, openErr(t, c), errs.ErrUnsupportedCompression)
	})

	t.Run("pyramidal subblock", func(t *testing.T) {
		c := fixture.Gray8Grid()
		c.SubBlocks[0].Pyramid = format.PyramidSingle
		require.ErrorIs(t, openErr(t, c), errs.ErrUnsupportedPyramid)
	})

	t.Run("no subblocks", func(t *testing.T) {
		c := fixture.New()
		c.XML = fixture.XMLConfig{SizeX: 1, SizeY: 1, PixelSize: "1,1"}.String()
		require.ErrorIs(t, openErr(t, c), errs.ErrNoSubBlocks)
	})

	t.Run("complex pixel type", func(t *testing.T) {
		c := fixture.New()
		c.XML = fixture.XMLConfig{SizeX: 2, SizeY: 2, PixelSize: "1,1"}.String()
		c.SubBlocks = []fixture.SubBlock{{
			PixelType: format.PixelGray64Cplx,
			Dims:      []fixture.Dim{{Label: 'X', Size: 2}, {Label: 'Y', Size: 2}},
			Data:      fixture.Fill(32),
		}}
		err := openErr(t, c)
		require.ErrorIs(t, err, errs.ErrUnsupportedPixelType)
		require.ErrorContains(t, err, "Gray64ComplexFloat")
	})
}

func TestOpenRejectsUnalignedSubBlock(t *testing.T) {
	c := fixture.New()
	c.XML = fixture.XMLConfig{SizeX: 2, SizeY: 2, PixelSize: "1,1"}.String()
	c.SubBlocks = []fixture.SubBlock{{
		PixelType: format.PixelGray16,
		Dims:      []fixture.Dim{{Label: 'X', Size: 2}, {Label: 'Y', Size: 2}},
		// One metadata byte shifts the pixel payload off the element boundary.
		Metadata: []byte("x"),
	}}

	err := openErr(t, c)
	require.ErrorIs(t, err, errs.ErrUnalignedSubBlock)
	require.ErrorContains(t, err, "subblock 0")
}

func TestOpenRejectsMetadataProblems(t *testing.T) {
	t.Run("malformed document", func(t *testing.T) {
		c := fixture.Gray8Grid()
		c.XML = "<ImageDocument><Metadata>"
		require.ErrorContains(t, openErr(t, c), "embedded metadata document")
	})

	t.Run("missing pixel size", func(t *testing.T) {
		c := fixture.Gray8Grid()
		c.XML = fixture.XMLConfig{
			SizeX: 4, SizeY: 3, SizeC: 2, SizeT: 2,
			Wavelengths: []float64{488, 561},
			TIncrement:  1.5,
		}.String()
		err := openErr(t, c)
		require.ErrorIs(t, err, errs.ErrMissingMetadata)
		require.ErrorContains(t, err, "ImagePixelSize")
	})

	t.Run("missing time interval", func(t *testing.T) {
		c := fixture.Gray8Grid()
		c.XML = fixture.XMLConfig{
			SizeX: 4, SizeY: 3, SizeC: 2, SizeT: 2,
			Wavelengths:   []float64{488, 561},
			OmitTInterval: true,
			PixelSize:     "0.5,0.5",
		}.String()
		err := openErr(t, c)
		require.ErrorIs(t, err, errs.ErrMissingMetadata)
		require.ErrorContains(t, err, "T/Positions/Interval")
	})

	t.Run("axis extent disagreement", func(t *testing.T) {
		c := fixture.Gray8Grid()
		// The directory enumerates two time points; the document claims three.
		c.XML = fixture.XMLConfig{
			SizeX: 4, SizeY: 3, SizeC: 2, SizeT: 3,
			Wavelengths: []float64{488, 561},
			TIncrement:  1.5,
			PixelSize:   "0.5,0.5",
		}.String()
		err := openErr(t, c)
		require.ErrorIs(t, err, errs.ErrAxisSizeMismatch)
		require.ErrorContains(t, err, "axis T")
	})
}

func TestOpenRejectsDuplicateChunkCoordinates(t *testing.T) {
	c := fixture.Gray8Grid()
	c.SubBlocks = append(c.SubBlocks, c.SubBlocks[0])

	// Distinct starts still imply a 2×2 grid, which five chunks cannot tile.
	err := openErr(t, c)
	require.ErrorIs(t, err, errs.ErrAxisSizeMismatch)
	require.ErrorContains(t, err, "5 subblocks")
}

func TestOpenRejectsPixelSpanOverrun(t *testing.T) {
	c := fixture.New()
	c.XML = fixture.XMLConfig{SizeX: 4096, SizeY: 4096, PixelSize: "1,1"}.String()
	c.SubBlocks = []fixture.SubBlock{{
		PixelType: format.PixelGray8,
		Dims:      []fixture.Dim{{Label: 'X', Size: 4096}, {Label: 'Y', Size: 4096}},
		// Far less than the 16 MiB the directory entry declares.
		Data: fixture.Fill(64),
	}}

	err := openErr(t, c)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
	require.ErrorContains(t, err, "subblock 0")
}

func TestOpenRejectsTruncatedContainer(t *testing.T) {
	built := fixture.Gray8Grid().Build()

	write := func(t *testing.T, data []byte) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "trunc.czi")
		require.NoError(t, os.WriteFile(path, data, 0o644))

		return path
	}

	t.Run("mid-header", func(t *testing.T) {
		_, err := Open(write(t, built.Data[:50]))
		require.ErrorIs(t, err, errs.ErrTruncated)
	})

	t.Run("mid-directory", func(t *testing.T) {
		_, err := Open(write(t, built.Data[:built.DirectoryOffset+100]))
		require.ErrorIs(t, err, errs.ErrTruncated)
	})
}
