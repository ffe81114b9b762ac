package axis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zisraw/errs"
	"github.com/arloliu/zisraw/format"
)

func TestCoords(t *testing.T) {
	t.Run("spaced", func(t *testing.T) {
		c := Spaced(10, 0.5, 4, UnitMicrometer)
		require.Equal(t, 4, c.Len())
		require.Equal(t, 10.0, c.At(0))
		require.Equal(t, 11.5, c.At(3))
		require.Equal(t, []float64{10, 10.5, 11, 11.5}, c.Values())
		require.Equal(t, "µm", c.Unit.String())
	})

	t.Run("index range", func(t *testing.T) {
		c := Index(3)
		require.Equal(t, []float64{0, 1, 2}, c.Values())
		require.Equal(t, UnitNone, c.Unit)
		require.Empty(t, c.Unit.String())
	})

	t.Run("negative step", func(t *testing.T) {
		c := Spaced(0, -2, 3, UnitSecond)
		require.Equal(t, []float64{0, -2, -4}, c.Values())
	})

	t.Run("out of range panics", func(t *testing.T) {
		c := Index(2)
		require.Panics(t, func() { c.At(2) })
		require.Panics(t, func() { c.At(-1) })
	})
}

func TestLayoutValidate(t *testing.T) {
	l := New()
	l.Set(format.DimX, Spaced(0, 0.5, 4, UnitMicrometer))
	l.Set(format.DimY, Spaced(0, 0.5, 3, UnitMicrometer))
	l.Set(format.DimC, Index(2))
	l.Wavelengths = []float64{488, 561}

	t.Run("agreement", func(t *testing.T) {
		err := l.Validate(map[format.Dimension]int{format.DimX: 4, format.DimY: 3, format.DimC: 2})
		require.NoError(t, err)
	})

	t.Run("size disagreement", func(t *testing.T) {
		err := l.Validate(map[format.Dimension]int{format.DimX: 5})
		require.ErrorIs(t, err, errs.ErrAxisSizeMismatch)
		require.ErrorContains(t, err, "axis X")
		require.ErrorContains(t, err, "4 coordinates")
		require.ErrorContains(t, err, "implies 5")
	})

	t.Run("missing axis", func(t *testing.T) {
		err := l.Validate(map[format.Dimension]int{format.DimZ: 7})
		require.ErrorIs(t, err, errs.ErrAxisSizeMismatch)
		require.ErrorContains(t, err, "axis Z")
	})

	t.Run("extra layout axes are ignored", func(t *testing.T) {
		err := l.Validate(map[format.Dimension]int{format.DimX: 4})
		require.NoError(t, err)
	})
}
