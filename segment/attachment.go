package segment

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/zisraw/errs"
	"github.com/arloliu/zisraw/format"
	"github.com/arloliu/zisraw/internal/reader"
)

// AttachmentEntry describes one named auxiliary payload registered in the
// attachment directory: thumbnails, lookup tables, event streams.
//
//	Bytes  | Field           | Type  | Description
//	-------|-----------------|-------|----------------------------------
//	0-1    | Schema          | 2B    | must equal "A1"
//	2-11   | Reserved        | 10B   | skipped
//	12-19  | FilePosition    | int64 | absolute offset of the attachment segment
//	20-23  | FilePart        | int32 | part index, informational
//	24-39  | ContentGUID     | 16B   | attachment identity
//	40-47  | ContentFileType | 8B    | zero-padded ASCII type, e.g. "CZTIMS"
//	48-127 | Name            | 80B   | zero-padded ASCII display name
type AttachmentEntry struct {
	FilePosition    int64
	FilePart        int32
	ContentGUID     GUID
	ContentFileType string
	Name            string
}

// ReadAttachmentDirectory decodes the attachment directory segment at the
// given absolute offset. Offset zero means the container carries no
// attachment directory; the result is an empty list, not an error.
func ReadAttachmentDirectory(src io.ReaderAt, offset int64) ([]AttachmentEntry, error) {
	if offset == 0 {
		return nil, nil
	}

	if _, err := ReadHeaderExpect(src, offset, format.SegmentAttachmentDir); err != nil {
		return nil, err
	}

	head, err := reader.New(src).At(offset + HeaderSize).Bytes(4)
	if err != nil {
		return nil, errors.Wrap(err, "attachment entry count")
	}
	count := int32(binary.LittleEndian.Uint32(head))
	if count < 0 {
		return nil, errors.Wrapf(errs.ErrBadAttachmentEntry, "negative entry count %d", count)
	}

	r := reader.New(src).At(offset + HeaderSize + AttachmentEntriesStart)
	entries := make([]AttachmentEntry, 0, count)
	for i := range int(count) {
		entry, err := readAttachmentEntry(r)
		if err != nil {
			return nil, errors.Wrapf(err, "attachment entry %d", i)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func readAttachmentEntry(r *reader.Reader) (AttachmentEntry, error) {
	pos := r.Pos()
	buf, err := r.Bytes(AttachmentEntrySize)
	if err != nil {
		return AttachmentEntry{}, err
	}

	if schema := string(buf[0:2]); schema != attachmentEntrySchema {
		return AttachmentEntry{}, errors.Wrapf(errs.ErrBadAttachmentEntry,
			"offset %d: expected %q, found %q", pos, attachmentEntrySchema, schema)
	}

	entry := AttachmentEntry{
		FilePosition:    int64(binary.LittleEndian.Uint64(buf[12:20])),
		FilePart:        int32(binary.LittleEndian.Uint32(buf[20:24])),
		ContentFileType: tagString(buf[40:48]),
		Name:            tagString(buf[48:128]),
	}
	copy(entry.ContentGUID[:], buf[24:40])

	return entry, nil
}
