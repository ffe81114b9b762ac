// Package errs defines the sentinel errors shared across the zisraw packages.
//
// Every failure in the reader wraps one of these sentinels with call-site
// context (file offset, entry index, axis label, expected vs. actual value),
// so callers can branch on the category with errors.Is while error text stays
// diagnosable. Decoding is fail-fast: none of these is ever downgraded to a
// default value or a partial result.
package errs

import "github.com/cockroachdb/errors"

// Structural mismatches: the bytes at a given offset are not the record the
// directory or header said they would be.
var (
	// ErrSegmentTagMismatch indicates the 16-byte tag at a segment boundary
	// does not match the expected segment identifier.
	ErrSegmentTagMismatch = errors.New("segment tag mismatch")

	// ErrBadDirectoryEntry indicates a malformed directory entry: a missing
	// "DV" schema marker or an out-of-range field.
	ErrBadDirectoryEntry = errors.New("invalid directory entry")

	// ErrBadAttachmentEntry indicates a malformed attachment directory entry:
	// a missing "A1" schema marker or an out-of-range field.
	ErrBadAttachmentEntry = errors.New("invalid attachment entry")

	// ErrNoSubBlocks indicates a directory with zero entries; such a container
	// has no pixel type and no array to assemble.
	ErrNoSubBlocks = errors.New("container holds no subblocks")
)

// Unsupported-feature rejections: the file is well formed but uses a format
// capability outside this reader's scope. These are detected, never guessed at.
var (
	// ErrUnsupportedVersion indicates a file header version other than 1.0.
	ErrUnsupportedVersion = errors.New("unsupported file version")

	// ErrMultiPart indicates a nonzero file-part index; multi-part containers
	// are not supported.
	ErrMultiPart = errors.New("multi-part files not supported")

	// ErrUpdatePending indicates the file header's update-pending flag is set;
	// the directory cannot be trusted mid-update.
	ErrUpdatePending = errors.New("file update pending")

	// ErrUnsupportedCompression indicates a subblock with a nonzero
	// compression code.
	ErrUnsupportedCompression = errors.New("compressed subblocks not supported")

	// ErrUnsupportedPyramid indicates a subblock carrying a reduced-resolution
	// (pyramid) representation.
	ErrUnsupportedPyramid = errors.New("pyramid subblocks not supported")

	// ErrUnsupportedPixelType indicates a pixel-type code the assembler has no
	// element type for, including the complex-valued codes 10 and 11.
	ErrUnsupportedPixelType = errors.New("unsupported pixel type")

	// ErrTooManyDimensions indicates a directory entry declaring more than the
	// maximum dimension count.
	ErrTooManyDimensions = errors.New("too many dimensions")

	// ErrUnalignedSubBlock indicates a subblock whose data offset is not a
	// multiple of the pixel element size.
	ErrUnalignedSubBlock = errors.New("subblock data offset not element-aligned")
)

// Consistency violations: two records that must agree do not.
var (
	// ErrPixelTypeMismatch indicates directory entries with differing pixel
	// types.
	ErrPixelTypeMismatch = errors.New("pixel type differs between directory entries")

	// ErrDimensionCountMismatch indicates directory entries with differing
	// dimension counts.
	ErrDimensionCountMismatch = errors.New("dimension count differs between directory entries")

	// ErrShapeMismatch indicates directory entries whose sizes differ on an
	// axis other than the chunk-enumeration axis.
	ErrShapeMismatch = errors.New("chunk shape differs between directory entries")

	// ErrAxisSizeMismatch indicates the XML-declared axis layout disagrees
	// with the binary directory: a coordinate count differing from the
	// directory-implied axis size, or a grid shape whose cell count differs
	// from the subblock count.
	ErrAxisSizeMismatch = errors.New("axis size disagrees with directory")
)

// Metadata failures.
var (
	// ErrMissingMetadata indicates a required node of the embedded XML
	// document is absent or empty.
	ErrMissingMetadata = errors.New("required metadata missing")
)

// I/O and bounds failures.
var (
	// ErrTruncated indicates a read returned fewer bytes than the record
	// layout requires.
	ErrTruncated = errors.New("truncated read")

	// ErrOutOfRange indicates a computed span (subblock pixel data, grid cell
	// index) falls outside the mapped file or array bounds.
	ErrOutOfRange = errors.New("span out of range")
)
