package segment

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/zisraw/errs"
	"github.com/arloliu/zisraw/format"
	"github.com/arloliu/zisraw/internal/reader"
)

// DimensionEntry describes one axis of one subblock chunk.
//
//	Bytes  | Field           | Type  | Description
//	-------|-----------------|-------|----------------------------------
//	0-3    | Dimension       | 4B    | zero-padded single-character axis label
//	4-7    | Start           | int32 | index of the chunk's first element on this axis
//	8-11   | Size            | int32 | element count along this axis
//	12-15  | StartCoordinate | f32   | physical position of the chunk on this axis
//	16-19  | StoredSize      | int32 | nonzero marks a reduced (pyramid) representation
type DimensionEntry struct {
	Dimension       format.Dimension
	Start           int32
	Size            int32
	StartCoordinate float32
	StoredSize      int32
}

// DirectoryEntry describes one subblock chunk: its pixel type, where its
// segment lives in the file, and its per-axis placement. The dimension list
// preserves file order; the last axis is the one the directory enumerates
// chunks along.
type DirectoryEntry struct {
	PixelType    format.PixelType
	FilePosition int64
	FilePart     int32
	Compression  format.CompressionType
	PyramidType  format.PyramidType
	Dimensions   []DimensionEntry
}

// Shape returns the entry's per-axis sizes in dimension order.
func (e *DirectoryEntry) Shape() []int {
	shape := make([]int, len(e.Dimensions))
	for i, d := range e.Dimensions {
		shape[i] = int(d.Size)
	}

	return shape
}

// Labels returns the entry's axis labels in dimension order.
func (e *DirectoryEntry) Labels() []byte {
	labels := make([]byte, len(e.Dimensions))
	for i, d := range e.Dimensions {
		labels[i] = byte(d.Dimension)
	}

	return labels
}

// NumElements returns the total element count of the chunk: the product of
// the per-axis sizes times the pixel type's component count.
func (e *DirectoryEntry) NumElements() int64 {
	n := int64(e.PixelType.ComponentCount())
	for _, d := range e.Dimensions {
		n *= int64(d.Size)
	}

	return n
}

// Directory is the decoded subblock directory: every chunk the container
// holds, in file order, already validated for global consistency.
type Directory struct {
	Entries []DirectoryEntry
}

// PixelType returns the pixel type shared by all entries. The directory must
// be non-empty.
func (d *Directory) PixelType() format.PixelType {
	return d.Entries[0].PixelType
}

// ReadDirectory decodes the directory segment at the given absolute offset.
//
// The full entry list is read into memory and then cross-validated before it
// is returned: the point of the directory is to commit to one assembly
// strategy, and a partially validated list would hand the caller an
// inconsistent array shape. Any violated invariant aborts the decode and
// names the entry index (and axis, where applicable) that broke it.
func ReadDirectory(src io.ReaderAt, offset int64) (*Directory, error) {
	if _, err := ReadHeaderExpect(src, offset, format.SegmentDirectory); err != nil {
		return nil, err
	}

	head, err := reader.New(src).At(offset + HeaderSize).Bytes(4)
	if err != nil {
		return nil, errors.Wrap(err, "directory entry count")
	}
	count := int32(binary.LittleEndian.Uint32(head))
	if count < 0 {
		return nil, errors.Wrapf(errs.ErrBadDirectoryEntry, "negative entry count %d", count)
	}

	r := reader.New(src).At(offset + HeaderSize + DirectoryEntriesStart)
	entries := make([]DirectoryEntry, 0, count)
	for i := range int(count) {
		entry, err := readDirectoryEntry(r)
		if err != nil {
			return nil, errors.Wrapf(err, "directory entry %d", i)
		}
		entries = append(entries, entry)
	}

	dir := &Directory{Entries: entries}
	if err := dir.validate(); err != nil {
		return nil, err
	}

	return dir, nil
}

// readDirectoryEntry decodes one entry at the reader's current position and
// enforces the per-entry constraints: the "DV" schema marker, a dimension
// count within bounds, and the unsupported-feature rejections (compression,
// pyramid representations).
func readDirectoryEntry(r *reader.Reader) (DirectoryEntry, error) {
	pos := r.Pos()
	head, err := r.Bytes(DirectoryEntryFixedSize)
	if err != nil {
		return DirectoryEntry{}, err
	}

	if schema := string(head[0:2]); schema != directoryEntrySchema {
		return DirectoryEntry{}, errors.Wrapf(errs.ErrBadDirectoryEntry,
			"offset %d: expected %q, found %q", pos, directoryEntrySchema, schema)
	}

	entry := DirectoryEntry{
		PixelType:    format.PixelType(binary.LittleEndian.Uint32(head[2:6])),
		FilePosition: int64(binary.LittleEndian.Uint64(head[6:14])),
		FilePart:     int32(binary.LittleEndian.Uint32(head[14:18])),
		Compression:  format.CompressionType(binary.LittleEndian.Uint32(head[18:22])),
		PyramidType:  format.PyramidType(head[22]),
		// head[23] and head[24:28] are spare bytes.
	}

	dimCount := int32(binary.LittleEndian.Uint32(head[28:32]))
	switch {
	case dimCount > format.MaxDimensions:
		return DirectoryEntry{}, errors.Wrapf(errs.ErrTooManyDimensions,
			"%d dimensions, limit is %d", dimCount, format.MaxDimensions)
	case dimCount < 1:
		return DirectoryEntry{}, errors.Wrapf(errs.ErrBadDirectoryEntry,
			"dimension count %d", dimCount)
	}

	if entry.Compression != format.CompressionNone {
		return DirectoryEntry{}, errors.Wrapf(errs.ErrUnsupportedCompression,
			"compression %s (code %d)", entry.Compression, int32(entry.Compression))
	}
	if entry.PyramidType != format.PyramidNone {
		return DirectoryEntry{}, errors.Wrapf(errs.ErrUnsupportedPyramid,
			"pyramid type %s", entry.PyramidType)
	}

	dims, err := r.Bytes(int(dimCount) * DimensionEntrySize)
	if err != nil {
		return DirectoryEntry{}, err
	}

	entry.Dimensions = make([]DimensionEntry, dimCount)
	for i := range entry.Dimensions {
		d := dims[i*DimensionEntrySize : (i+1)*DimensionEntrySize]
		entry.Dimensions[i] = DimensionEntry{
			Dimension:       format.Dimension(d[0]),
			Start:           int32(binary.LittleEndian.Uint32(d[4:8])),
			Size:            int32(binary.LittleEndian.Uint32(d[8:12])),
			StartCoordinate: math.Float32frombits(binary.LittleEndian.Uint32(d[12:16])),
			StoredSize:      int32(binary.LittleEndian.Uint32(d[16:20])),
		}
		if entry.Dimensions[i].StoredSize != 0 {
			return DirectoryEntry{}, errors.Wrapf(errs.ErrUnsupportedPyramid,
				"axis %s stored size %d", entry.Dimensions[i].Dimension, entry.Dimensions[i].StoredSize)
		}
	}

	return entry, nil
}

// validate enforces the cross-entry invariants that guarantee the chunks
// tile a rectangular grid: one pixel type, one dimension count, one axis
// label sequence, and identical sizes on every axis except the last (the
// chunk-enumeration axis).
func (d *Directory) validate() error {
	if len(d.Entries) == 0 {
		return nil
	}

	first := &d.Entries[0]
	for i := 1; i < len(d.Entries); i++ {
		entry := &d.Entries[i]

		if entry.PixelType != first.PixelType {
			return errors.Wrapf(errs.ErrPixelTypeMismatch,
				"entry %d has %s, entry 0 has %s", i, entry.PixelType, first.PixelType)
		}
		if len(entry.Dimensions) != len(first.Dimensions) {
			return errors.Wrapf(errs.ErrDimensionCountMismatch,
				"entry %d has %d dimensions, entry 0 has %d", i, len(entry.Dimensions), len(first.Dimensions))
		}

		for k := range entry.Dimensions {
			if entry.Dimensions[k].Dimension != first.Dimensions[k].Dimension {
				return errors.Wrapf(errs.ErrShapeMismatch,
					"entry %d axis %d is %s, entry 0 has %s",
					i, k, entry.Dimensions[k].Dimension, first.Dimensions[k].Dimension)
			}
			// The last axis enumerates the chunks; its size is free to differ.
			if k == len(entry.Dimensions)-1 {
				continue
			}
			if entry.Dimensions[k].Size != first.Dimensions[k].Size {
				return errors.Wrapf(errs.ErrShapeMismatch,
					"entry %d axis %s size %d, entry 0 has %d",
					i, entry.Dimensions[k].Dimension, entry.Dimensions[k].Size, first.Dimensions[k].Size)
			}
		}
	}

	return nil
}
