package segment

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/zisraw/format"
	"github.com/arloliu/zisraw/internal/reader"
)

// Metadata is the decoded metadata segment: the raw embedded document text,
// uninterpreted. Parsing the markup is the caller's concern.
//
//	Bytes   | Field          | Type  | Description
//	--------|----------------|-------|----------------------------------
//	0-15    | Reserved       | 16B   | skipped
//	16-19   | XMLSize        | int32 | embedded document byte count
//	20-23   | AttachmentSize | int32 | attachment payload byte count
//	24-255  | Padding        |       | to the fixed payload offset
//	256-... | XML            |       | XMLSize raw bytes of document text
type Metadata struct {
	XML            []byte
	AttachmentSize int32
}

// ReadMetadata verifies the metadata segment prologue at the given absolute
// offset, decodes its size record, and reads the embedded document text.
func ReadMetadata(src io.ReaderAt, offset int64) (*Metadata, error) {
	if _, err := ReadHeaderExpect(src, offset, format.SegmentMetadata); err != nil {
		return nil, err
	}

	r := reader.New(src).At(offset + HeaderSize)
	r.Skip(16) // reserved

	buf, err := r.Bytes(8)
	if err != nil {
		return nil, errors.Wrapf(err, "metadata sizes at offset %d", offset)
	}
	xmlSize := int32(binary.LittleEndian.Uint32(buf[0:4]))
	attachSize := int32(binary.LittleEndian.Uint32(buf[4:8]))

	xml, err := reader.New(src).At(offset + HeaderSize + MetadataFixedSize).Bytes(int(xmlSize))
	if err != nil {
		return nil, errors.Wrapf(err, "metadata document at offset %d", offset)
	}

	return &Metadata{XML: xml, AttachmentSize: attachSize}, nil
}
