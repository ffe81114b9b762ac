package segment

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/zisraw/format"
	"github.com/arloliu/zisraw/internal/reader"
)

// SubBlockSizes is the local size record of one subblock segment: how many
// bytes of embedded metadata, attachment payload, and pixel data follow.
//
//	Bytes  | Field          | Type  | Description
//	-------|----------------|-------|----------------------------------
//	0-15   | Reserved       | 16B   | skipped
//	16-19  | MetadataSize   | int32 | embedded metadata byte count
//	20-23  | AttachmentSize | int32 | attachment payload byte count
//	24-31  | DataSize       | int64 | pixel data byte count
type SubBlockSizes struct {
	MetadataSize   int32
	AttachmentSize int32
	DataSize       int64
}

// ReadSubBlockSizes verifies the subblock segment prologue at the given
// absolute offset and decodes its size record.
func ReadSubBlockSizes(src io.ReaderAt, offset int64) (SubBlockSizes, error) {
	if _, err := ReadHeaderExpect(src, offset, format.SegmentSubBlock); err != nil {
		return SubBlockSizes{}, err
	}

	r := reader.New(src).At(offset + HeaderSize)
	r.Skip(16) // reserved

	buf, err := r.Bytes(16)
	if err != nil {
		return SubBlockSizes{}, errors.Wrapf(err, "subblock sizes at offset %d", offset)
	}

	return SubBlockSizes{
		MetadataSize:   int32(binary.LittleEndian.Uint32(buf[0:4])),
		AttachmentSize: int32(binary.LittleEndian.Uint32(buf[4:8])),
		DataSize:       int64(binary.LittleEndian.Uint64(buf[8:16])),
	}, nil
}

// MetadataOffset returns the absolute offset of a subblock's embedded
// metadata, given the segment's prologue start. The metadata payload sits at
// a fixed distance from the prologue regardless of the size record.
func MetadataOffset(segmentOffset int64) int64 {
	return segmentOffset + SubBlockFixedSize
}

// DataOffset returns the absolute offset of a subblock's pixel data: the
// metadata payload start plus the decoded metadata byte count.
func (s SubBlockSizes) DataOffset(segmentOffset int64) int64 {
	return MetadataOffset(segmentOffset) + int64(s.MetadataSize)
}
