package segment

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/zisraw/errs"
	"github.com/arloliu/zisraw/format"
	"github.com/arloliu/zisraw/internal/reader"
)

// GUID is a 128-bit identifier in the container's on-disk layout: a
// little-endian 32-bit group, two little-endian 16-bit groups, and eight
// raw bytes.
type GUID [16]byte

// String formats the identifier in the conventional 8-4-4-4-12 form.
func (g GUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%02x%02x-%02x%02x%02x%02x%02x%02x",
		binary.LittleEndian.Uint32(g[0:4]),
		binary.LittleEndian.Uint16(g[4:6]),
		binary.LittleEndian.Uint16(g[6:8]),
		g[8], g[9], g[10], g[11], g[12], g[13], g[14], g[15])
}

// IsZero reports whether the identifier is all zero bytes.
func (g GUID) IsZero() bool {
	return g == GUID{}
}

// FileHeader is the container's top-level header, stored as the payload of
// the file segment at offset 0.
//
//	Bytes  | Field               | Type   | Description
//	-------|---------------------|--------|----------------------------------
//	0-3    | Major               | int32  | format major version, must be 1
//	4-7    | Minor               | int32  | format minor version, must be 0
//	8-15   | (reserved)          | int32×2| ignored
//	16-31  | PrimaryGUID         | 16B    | identity shared by all parts of a set
//	32-47  | FileGUID            | 16B    | identity of this file
//	48-51  | FilePart            | int32  | part index, must be 0
//	52-59  | DirectoryOffset     | int64  | absolute offset of the directory segment
//	60-67  | MetadataOffset      | int64  | absolute offset of the metadata segment
//	68-71  | UpdatePending       | int32  | nonzero while a writer is mid-update, must be 0
//	72-79  | AttachmentDirOffset | int64  | absolute offset of the attachment directory, 0 if absent
type FileHeader struct {
	Major               int32
	Minor               int32
	PrimaryGUID         GUID
	FileGUID            GUID
	FilePart            int32
	DirectoryOffset     int64
	MetadataOffset      int64
	UpdatePending       int32
	AttachmentDirOffset int64
}

// ReadFileHeader decodes and validates the file header segment at offset 0.
//
// The header's required values gate everything that follows: a version other
// than 1.0 fails with errs.ErrUnsupportedVersion, a nonzero file-part index
// with errs.ErrMultiPart, and a set update-pending flag with
// errs.ErrUpdatePending. In the update-pending case no offset in the header
// can be trusted and no further segment is read.
func ReadFileHeader(src io.ReaderAt) (FileHeader, error) {
	if _, err := ReadHeaderExpect(src, 0, format.SegmentFile); err != nil {
		return FileHeader{}, err
	}

	data, err := reader.New(src).At(HeaderSize).Bytes(FileHeaderSize)
	if err != nil {
		return FileHeader{}, errors.Wrap(err, "file header")
	}

	h := FileHeader{
		Major:               int32(binary.LittleEndian.Uint32(data[0:4])),
		Minor:               int32(binary.LittleEndian.Uint32(data[4:8])),
		FilePart:            int32(binary.LittleEndian.Uint32(data[48:52])),
		DirectoryOffset:     int64(binary.LittleEndian.Uint64(data[52:60])),
		MetadataOffset:      int64(binary.LittleEndian.Uint64(data[60:68])),
		UpdatePending:       int32(binary.LittleEndian.Uint32(data[68:72])),
		AttachmentDirOffset: int64(binary.LittleEndian.Uint64(data[72:80])),
	}
	copy(h.PrimaryGUID[:], data[16:32])
	copy(h.FileGUID[:], data[32:48])

	if h.Major != 1 || h.Minor != 0 {
		return FileHeader{}, errors.Wrapf(errs.ErrUnsupportedVersion,
			"file version %d.%d, reader supports 1.0", h.Major, h.Minor)
	}
	if h.FilePart != 0 {
		return FileHeader{}, errors.Wrapf(errs.ErrMultiPart, "file part index %d", h.FilePart)
	}
	if h.UpdatePending != 0 {
		return FileHeader{}, errors.Wrap(errs.ErrUpdatePending,
			"directory and metadata offsets are not trustworthy")
	}

	return h, nil
}
