package reader

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zisraw/errs"
)

func TestReaderBytes(t *testing.T) {
	src := bytes.NewReader([]byte{0, 1, 2, 3, 4, 5, 6, 7})
	r := New(src)

	t.Run("Sequential reads advance", func(t *testing.T) {
		buf, err := r.Bytes(3)
		require.NoError(t, err)
		require.Equal(t, []byte{0, 1, 2}, buf)
		require.Equal(t, int64(3), r.Pos())

		buf, err = r.Bytes(2)
		require.NoError(t, err)
		require.Equal(t, []byte{3, 4}, buf)
		require.Equal(t, int64(5), r.Pos())
	})

	t.Run("Zero-length read is a no-op", func(t *testing.T) {
		pos := r.Pos()
		buf, err := r.Bytes(0)
		require.NoError(t, err)
		require.Nil(t, buf)
		require.Equal(t, pos, r.Pos())
	})
}

func TestReaderAt(t *testing.T) {
	src := bytes.NewReader([]byte{10, 11, 12, 13})
	r := New(src)

	other := r.At(2)
	buf, err := other.Bytes(2)
	require.NoError(t, err)
	require.Equal(t, []byte{12, 13}, buf)

	// The original position is untouched.
	require.Equal(t, int64(0), r.Pos())
}

func TestReaderSkip(t *testing.T) {
	src := bytes.NewReader([]byte{10, 11, 12, 13})
	r := New(src)

	r.Skip(3)
	buf, err := r.Bytes(1)
	require.NoError(t, err)
	require.Equal(t, []byte{13}, buf)
}

func TestReaderTruncated(t *testing.T) {
	src := bytes.NewReader([]byte{1, 2, 3})
	r := New(src)

	_, err := r.Bytes(8)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrTruncated)
	require.ErrorContains(t, err, "offset 0")

	// Reading past the end from a later position reports that position.
	_, err = r.At(2).Bytes(4)
	require.ErrorIs(t, err, errs.ErrTruncated)
	require.ErrorContains(t, err, "offset 2")
}
