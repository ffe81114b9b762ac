package nd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zisraw/errs"
	"github.com/arloliu/zisraw/format"
)

func TestNewView(t *testing.T) {
	t.Run("span must match shape", func(t *testing.T) {
		_, err := NewView(make([]byte, 12), format.PixelGray8, []int{4, 3}, []byte("XY"))
		require.NoError(t, err)

		_, err = NewView(make([]byte, 11), format.PixelGray8, []int{4, 3}, []byte("XY"))
		require.ErrorIs(t, err, errs.ErrOutOfRange)
		require.ErrorContains(t, err, "needs 12 bytes")

		_, err = NewView(make([]byte, 12), format.PixelGray16, []int{4, 3}, []byte("XY"))
		require.ErrorIs(t, err, errs.ErrOutOfRange)
		require.ErrorContains(t, err, "needs 24 bytes")
	})

	t.Run("component axis counts as elements", func(t *testing.T) {
		v, err := NewView(make([]byte, 4*3*3), format.PixelBgr24, []int{4, 3, 3}, []byte("XY0"))
		require.NoError(t, err)
		require.Equal(t, 36, v.NumElems())
		require.Equal(t, 1, v.ElemSize())
	})

	t.Run("complex pixel types rejected", func(t *testing.T) {
		_, err := NewView(make([]byte, 8), format.PixelGray64Cplx, []int{1}, nil)
		require.ErrorIs(t, err, errs.ErrUnsupportedPixelType)
	})

	t.Run("empty view", func(t *testing.T) {
		v, err := NewView(nil, format.PixelGray8, []int{0}, []byte("X"))
		require.NoError(t, err)
		require.Zero(t, v.NumElems())
		require.Nil(t, Slice[uint8](v))
	})
}

func TestViewAliasesBacking(t *testing.T) {
	data := make([]byte, 6)
	v, err := NewView(data, format.PixelGray8, []int{3, 2}, []byte("XY"))
	require.NoError(t, err)

	data[4] = 0xAB
	require.Equal(t, byte(0xAB), At[uint8](v, 1, 1))
	require.Equal(t, byte(0xAB), Slice[uint8](v)[4])

	// Bytes returns the same backing, not a copy.
	v.Bytes()[4] = 0xCD
	require.Equal(t, byte(0xCD), data[4])
}

func TestViewIndexOrder(t *testing.T) {
	// Leading axis fastest: flat index = x + X·y.
	data := make([]byte, 12)
	for i := range data {
		data[i] = byte(i)
	}
	v, err := NewView(data, format.PixelGray8, []int{4, 3}, []byte("XY"))
	require.NoError(t, err)

	require.Equal(t, byte(0), At[uint8](v, 0, 0))
	require.Equal(t, byte(1), At[uint8](v, 1, 0))
	require.Equal(t, byte(4), At[uint8](v, 0, 1))
	require.Equal(t, byte(11), At[uint8](v, 3, 2))
}

func TestViewTyped(t *testing.T) {
	data := []byte{1, 0, 2, 0, 3, 0, 4, 0} // little-endian uint16s
	v, err := NewView(data, format.PixelGray16, []int{2, 2}, []byte("XY"))
	require.NoError(t, err)

	require.Equal(t, []uint16{1, 2, 3, 4}, Slice[uint16](v))
	require.Equal(t, uint16(3), At[uint16](v, 0, 1))
}

func TestViewPanics(t *testing.T) {
	v, err := NewView(make([]byte, 12), format.PixelGray8, []int{4, 3}, []byte("XY"))
	require.NoError(t, err)

	require.Panics(t, func() { At[uint8](v, 1) })     // rank
	require.Panics(t, func() { At[uint8](v, 4, 0) })  // bounds
	require.Panics(t, func() { At[uint8](v, 0, -1) }) // bounds
	require.Panics(t, func() { Slice[uint16](v) })    // element size
}
