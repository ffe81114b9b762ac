// Package axis models physical-unit coordinate sequences for image axes.
//
// Every axis of a loaded image carries a Coords: an evenly spaced sequence
// of physical positions with a unit, materialized lazily from start, step
// and length. A Layout collects the Coords of all axes plus the channel
// wavelength list, and validates itself against the sizes the binary
// directory implies.
package axis

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/zisraw/errs"
	"github.com/arloliu/zisraw/format"
)

// Unit is the physical unit attached to a coordinate sequence.
type Unit uint8

const (
	UnitNone       Unit = iota // unitless index range
	UnitMicrometer             // spatial axes
	UnitSecond                 // time axis
	UnitNanometer              // emission wavelengths
)

func (u Unit) String() string {
	switch u {
	case UnitMicrometer:
		return "µm"
	case UnitSecond:
		return "s"
	case UnitNanometer:
		return "nm"
	default:
		return ""
	}
}

// Coords is an evenly spaced coordinate sequence: position i sits at
// Start + i·Step. Sequences are descriptions, not allocations; Values
// materializes one when a caller needs the full slice.
type Coords struct {
	Start float64
	Step  float64
	N     int
	Unit  Unit
}

// Spaced builds a sequence of n coordinates from start with the given step.
func Spaced(start, step float64, n int, unit Unit) Coords {
	return Coords{Start: start, Step: step, N: n, Unit: unit}
}

// Index builds a unitless 0..n-1 range, used for axes that have positions
// but no physical calibration (the channel axis).
func Index(n int) Coords {
	return Coords{Step: 1, N: n}
}

// Len returns the sequence length.
func (c Coords) Len() int {
	return c.N
}

// At returns the i-th coordinate. Panics when i is out of range, like a
// slice index.
func (c Coords) At(i int) float64 {
	if i < 0 || i >= c.N {
		panic(errors.Newf("coordinate %d out of range [0,%d)", i, c.N))
	}

	return c.Start + float64(i)*c.Step
}

// Values materializes the full sequence.
func (c Coords) Values() []float64 {
	v := make([]float64, c.N)
	for i := range v {
		v[i] = c.Start + float64(i)*c.Step
	}

	return v
}

// Layout maps each axis label to its coordinate sequence, plus the
// channel-axis wavelength list and the optional acquisition provenance.
type Layout struct {
	Axes        map[format.Dimension]Coords
	Wavelengths []float64 // emission wavelengths in nm, channel order

	// StartTime is the acquisition start of the time axis, truncated to
	// millisecond precision. Zero when the document declares none. Carried
	// as provenance; T coordinates are relative seconds, not wall times.
	StartTime time.Time

	// Shear is the Z-axis tilt from the acquisition geometry. Carried as
	// provenance; nothing in the reader applies it to coordinates.
	Shear    float64
	HasShear bool
}

// New returns an empty layout.
func New() *Layout {
	return &Layout{Axes: make(map[format.Dimension]Coords)}
}

// Set records the coordinate sequence for an axis.
func (l *Layout) Set(d format.Dimension, c Coords) {
	l.Axes[d] = c
}

// Get returns the coordinate sequence for an axis.
func (l *Layout) Get(d format.Dimension) (Coords, bool) {
	c, ok := l.Axes[d]

	return c, ok
}

// Validate checks the layout against the per-axis sizes the binary
// directory implies. Every directory axis must have a coordinate sequence
// of exactly that size; axes the XML describes beyond the directory's are
// ignored. Violations fail with errs.ErrAxisSizeMismatch naming the axis.
func (l *Layout) Validate(sizes map[format.Dimension]int) error {
	for d, want := range sizes {
		c, ok := l.Axes[d]
		if !ok {
			return errors.Wrapf(errs.ErrAxisSizeMismatch,
				"axis %s has no coordinate sequence", d)
		}
		if c.Len() != want {
			return errors.Wrapf(errs.ErrAxisSizeMismatch,
				"axis %s declares %d coordinates, directory implies %d", d, c.Len(), want)
		}
	}

	return nil
}
