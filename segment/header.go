package segment

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/zisraw/errs"
	"github.com/arloliu/zisraw/internal/reader"
)

// Header is the 32-byte prologue every segment starts with.
//
//	Bytes  | Field         | Type    | Description
//	-------|---------------|---------|----------------------------------
//	0-15   | ID            | char×16 | zero-padded ASCII segment tag
//	16-23  | AllocatedSize | int64   | bytes reserved for the payload
//	24-31  | UsedSize      | int64   | payload bytes actually in use
type Header struct {
	// ID is the segment tag with trailing zero padding removed.
	ID string
	// AllocatedSize is the byte count reserved for the segment payload;
	// the next segment begins AllocatedSize bytes past this prologue.
	AllocatedSize int64
	// UsedSize is the byte count of the payload actually written. Zero in
	// some writers; when set it never exceeds AllocatedSize.
	UsedSize int64
}

// ReadHeader decodes the segment prologue at the given absolute offset.
func ReadHeader(src io.ReaderAt, offset int64) (Header, error) {
	data, err := reader.New(src).At(offset).Bytes(HeaderSize)
	if err != nil {
		return Header{}, errors.Wrapf(err, "segment header at offset %d", offset)
	}

	return Header{
		ID:            tagString(data[0:TagSize]),
		AllocatedSize: int64(binary.LittleEndian.Uint64(data[16:24])),
		UsedSize:      int64(binary.LittleEndian.Uint64(data[24:32])),
	}, nil
}

// ReadHeaderExpect decodes the segment prologue at the given absolute offset
// and asserts its tag. A mismatch means the file does not conform to the
// segment layout the directory or file header promised at this offset, and
// fails with errs.ErrSegmentTagMismatch.
func ReadHeaderExpect(src io.ReaderAt, offset int64, want string) (Header, error) {
	h, err := ReadHeader(src, offset)
	if err != nil {
		return Header{}, err
	}
	if h.ID != want {
		return Header{}, errors.Wrapf(errs.ErrSegmentTagMismatch,
			"offset %d: expected %q, found %q", offset, want, h.ID)
	}

	return h, nil
}

// tagString converts a zero-padded ASCII field to a string, dropping
// everything from the first NUL byte on.
func tagString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}

	return string(b)
}
