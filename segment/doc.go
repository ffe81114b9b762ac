// Package segment decodes the binary segment records of a zisraw container.
//
// This package provides the byte-level layer of the reader. It decodes the
// universal segment prologue, the file header, the subblock directory, the
// per-subblock size records, the metadata segment, and the attachment
// directory, enforcing the structural and cross-record invariants each of
// them carries. Higher layers (axis resolution, pixel assembly) consume the
// decoded records without touching raw bytes.
//
// # Overview
//
// The segment package defines four categories of types:
//
//  1. Prologue: the universal 32-byte segment header (Header)
//  2. Global records: file-level metadata (FileHeader, Metadata)
//  3. Directory records: per-chunk placement (Directory, DirectoryEntry, DimensionEntry)
//  4. Local records: per-subblock and per-attachment descriptors (SubBlockSizes, AttachmentEntry)
//
// All multi-byte integers are little-endian. All offsets are absolute from
// the start of the file. There is no separate magic marker: the file header
// segment's own tag at offset zero identifies the format.
//
// # Container Structure
//
// A zisraw container is a flat sequence of tagged segments. The file header
// sits at offset zero and carries absolute offsets to the other top-level
// segments; subblock segments are reached through directory entries:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ File Header Segment (ZISRAWFILE)                        │
//	│  - version, GUIDs, file-part index                      │
//	│  - directory / metadata / attachment offsets            │
//	├─────────────────────────────────────────────────────────┤
//	│ Metadata Segment (ZISRAWMETADATA)                       │
//	│  - size record + embedded XML document                  │
//	├─────────────────────────────────────────────────────────┤
//	│ SubBlock Segments (ZISRAWSUBBLOCK, one per chunk)       │
//	│  - size record, embedded metadata, pixel data           │
//	├─────────────────────────────────────────────────────────┤
//	│ Directory Segment (ZISRAWDIRECTORY)                     │
//	│  - entry count + one DirectoryEntry per chunk           │
//	├─────────────────────────────────────────────────────────┤
//	│ Attachment Directory Segment (ZISRAWATTDIR, optional)   │
//	│  - entry count + one AttachmentEntry per attachment     │
//	└─────────────────────────────────────────────────────────┘
//
// The physical order of segments after the file header is not fixed; every
// segment is located by absolute offset, never by scanning.
//
// # Segment Prologue
//
// Every segment starts with the same 32-byte prologue:
//
//	Bytes  | Field         | Type  | Description
//	-------|---------------|-------|----------------------------------
//	0-15   | ID            | 16B   | zero-padded ASCII segment tag
//	16-23  | AllocatedSize | int64 | bytes reserved for the payload
//	24-31  | UsedSize      | int64 | bytes actually written
//
// ReadHeaderExpect verifies the tag against an expected constant; a mismatch
// means the file does not conform to the declared layout at that offset and
// is fatal.
//
// # Directory Format
//
// The directory payload holds an int32 entry count, padding to a fixed
// entries-start offset, then the entries back to back. Each entry is a
// 32-byte fixed record tagged "DV" followed by dimensioncount 20-byte
// DimensionEntry records. ReadDirectory decodes the full list and then
// cross-validates it: one pixel type, one dimension count, one axis label
// sequence, and identical sizes on every axis but the last. The surviving
// Directory is the single source of truth for the container's array shape.
//
// # Usage
//
//	hdr, err := segment.ReadFileHeader(f)
//	if err != nil {
//	    return err
//	}
//	dir, err := segment.ReadDirectory(f, hdr.DirectoryOffset)
//	if err != nil {
//	    return err
//	}
//	for _, entry := range dir.Entries {
//	    sizes, err := segment.ReadSubBlockSizes(f, entry.FilePosition)
//	    ...
//	}
//
// Decoding is fail-fast: every violated constraint aborts with an error
// wrapping one of the errs sentinels and naming the offending offset or
// entry index.
package segment
