// Package reader provides positioned exact-length reads over an io.ReaderAt.
//
// The container format is decoded record-by-record: each decode site reads the
// record's full byte run at an absolute offset, then slices fields out of the
// buffer. Reader owns the position bookkeeping and converts every short read
// into errs.ErrTruncated wrapped with the offending offset, so record decoders
// never see a partial buffer.
package reader

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/zisraw/errs"
)

// Reader reads exact byte runs from an underlying io.ReaderAt at an explicit
// absolute position. It is not safe for concurrent use; independent positions
// are obtained with At, which shares the underlying source.
type Reader struct {
	src io.ReaderAt
	pos int64
}

// New creates a Reader positioned at offset 0.
func New(src io.ReaderAt) *Reader {
	return &Reader{src: src}
}

// At returns a new Reader sharing the underlying source, positioned at the
// given absolute offset. The receiver's position is unchanged.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{src: r.src, pos: offset}
}

// Pos returns the current absolute read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Skip advances the position by n bytes without reading.
func (r *Reader) Skip(n int64) {
	r.pos += n
}

// Bytes reads exactly n bytes at the current position and advances past them.
// A read returning fewer bytes than requested fails with errs.ErrTruncated.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}

	buf := make([]byte, n)
	if _, err := r.src.ReadAt(buf, r.pos); err != nil {
		return nil, errors.Wrapf(errs.ErrTruncated, "%d bytes at offset %d: %v", n, r.pos, err)
	}
	r.pos += int64(n)

	return buf, nil
}
