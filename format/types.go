package format

type (
	PixelType       int32
	CompressionType int32
	PyramidType     uint8
	Dimension       byte
)

const (
	PixelGray8       PixelType = 0  // PixelGray8 represents 8-bit unsigned grayscale.
	PixelGray16      PixelType = 1  // PixelGray16 represents 16-bit unsigned grayscale.
	PixelGray32Float PixelType = 2  // PixelGray32Float represents 32-bit float grayscale.
	PixelBgr24       PixelType = 3  // PixelBgr24 represents 8-bit BGR (3 components).
	PixelBgr48       PixelType = 4  // PixelBgr48 represents 16-bit BGR (3 components).
	PixelBgr96Float  PixelType = 8  // PixelBgr96Float represents 32-bit float BGR (3 components).
	PixelBgra32      PixelType = 9  // PixelBgra32 represents 8-bit BGRA (4 components).
	PixelGray64Cplx  PixelType = 10 // PixelGray64Cplx represents complex float grayscale. Recognized, not supported.
	PixelBgr192Cplx  PixelType = 11 // PixelBgr192Cplx represents complex float BGR. Recognized, not supported.
	PixelGray32      PixelType = 12 // PixelGray32 represents 32-bit fixed-point grayscale.

	CompressionNone  CompressionType = 0 // CompressionNone represents uncompressed pixel data.
	CompressionJpeg  CompressionType = 1 // CompressionJpeg represents JPEG-compressed pixel data.
	CompressionLZW   CompressionType = 2 // CompressionLZW represents LZW-compressed pixel data.
	CompressionJpgXR CompressionType = 4 // CompressionJpgXR represents JPEG-XR-compressed pixel data.
	CompressionZstd0 CompressionType = 5 // CompressionZstd0 represents zstd-compressed pixel data (v0 header).
	CompressionZstd1 CompressionType = 6 // CompressionZstd1 represents zstd-compressed pixel data (v1 header).

	PyramidNone   PyramidType = 0 // PyramidNone represents full-resolution pixel data.
	PyramidSingle PyramidType = 1 // PyramidSingle represents a single-subblock reduction.
	PyramidMulti  PyramidType = 2 // PyramidMulti represents a multi-subblock reduction.
)

// Segment identifiers: 16-byte zero-padded ASCII tags that prefix every segment
// in the container. The reader compares the decoded tag against these constants
// at every seek site.
const (
	SegmentFile          = "ZISRAWFILE"      // top-level file header segment
	SegmentDirectory     = "ZISRAWDIRECTORY" // subblock directory segment
	SegmentSubBlock      = "ZISRAWSUBBLOCK"  // one pixel-data chunk
	SegmentMetadata      = "ZISRAWMETADATA"  // embedded XML document segment
	SegmentAttachment    = "ZISRAWATTACH"    // one attachment payload
	SegmentAttachmentDir = "ZISRAWATTDIR"    // attachment directory segment
	SegmentDeleted       = "DELETED"         // reclaimed segment, must be skipped
)

// Dimension identifiers: single-character axis labels used by directory
// dimension entries and the embedded XML.
const (
	DimX Dimension = 'X' // pixel column axis
	DimY Dimension = 'Y' // pixel row axis
	DimC Dimension = 'C' // channel axis
	DimZ Dimension = 'Z' // focal plane axis
	DimT Dimension = 'T' // time point axis
	DimR Dimension = 'R' // rotation axis
	DimS Dimension = 'S' // scene axis
	DimI Dimension = 'I' // illumination axis
	DimB Dimension = 'B' // block axis (legacy)
	DimM Dimension = 'M' // mosaic tile axis
	DimH Dimension = 'H' // phase axis
	DimV Dimension = 'V' // view axis

	// DimSample labels the trailing per-pixel component axis of assembled
	// multi-component views (the three B,G,R samples of a Bgr24 pixel).
	// It never appears in directory dimension entries.
	DimSample Dimension = '0'
)

// MaxDimensions is the largest dimension count a directory entry may declare.
// Entries above this bound are structurally invalid for this format version.
const MaxDimensions = 10

func (p PixelType) String() string {
	switch p {
	case PixelGray8:
		return "Gray8"
	case PixelGray16:
		return "Gray16"
	case PixelGray32Float:
		return "Gray32Float"
	case PixelBgr24:
		return "Bgr24"
	case PixelBgr48:
		return "Bgr48"
	case PixelBgr96Float:
		return "Bgr96Float"
	case PixelBgra32:
		return "Bgra32"
	case PixelGray64Cplx:
		return "Gray64ComplexFloat"
	case PixelBgr192Cplx:
		return "Bgr192ComplexFloat"
	case PixelGray32:
		return "Gray32"
	default:
		return "Unknown"
	}
}

// Valid reports whether the pixel type is one this reader can assemble.
// The complex-valued codes 10 and 11 are format-defined but rejected.
func (p PixelType) Valid() bool {
	switch p {
	case PixelGray8, PixelGray16, PixelGray32Float, PixelBgr24, PixelBgr48,
		PixelBgr96Float, PixelBgra32, PixelGray32:
		return true
	default:
		return false
	}
}

// ComponentCount returns the number of color components per pixel:
// 1 for grayscale, 3 for BGR, 4 for BGRA. Zero for unsupported types.
func (p PixelType) ComponentCount() int {
	switch p {
	case PixelGray8, PixelGray16, PixelGray32Float, PixelGray32:
		return 1
	case PixelBgr24, PixelBgr48, PixelBgr96Float:
		return 3
	case PixelBgra32:
		return 4
	default:
		return 0
	}
}

// ComponentSize returns the byte size of one color component. The pixel
// element unit used for offset arithmetic throughout the reader is one
// component, so a Bgr24 chunk of X×Y pixels spans 3·X·Y one-byte elements.
// Zero for unsupported types.
func (p PixelType) ComponentSize() int {
	switch p {
	case PixelGray8, PixelBgr24, PixelBgra32:
		return 1
	case PixelGray16, PixelBgr48:
		return 2
	case PixelGray32Float, PixelBgr96Float, PixelGray32:
		return 4
	default:
		return 0
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "Uncompressed"
	case CompressionJpeg:
		return "Jpeg"
	case CompressionLZW:
		return "LZW"
	case CompressionJpgXR:
		return "JpgXR"
	case CompressionZstd0:
		return "Zstd0"
	case CompressionZstd1:
		return "Zstd1"
	default:
		return "Unknown"
	}
}

func (p PyramidType) String() string {
	switch p {
	case PyramidNone:
		return "None"
	case PyramidSingle:
		return "SingleSubBlock"
	case PyramidMulti:
		return "MultiSubBlock"
	default:
		return "Unknown"
	}
}

// Known reports whether the dimension label is one of the axis identifiers
// the format defines. Unknown labels are preserved but never interpreted.
func (d Dimension) Known() bool {
	switch d {
	case DimX, DimY, DimC, DimZ, DimT, DimR, DimS, DimI, DimB, DimM, DimH, DimV:
		return true
	default:
		return false
	}
}

func (d Dimension) String() string {
	return string(rune(d))
}
