package nd

import (
	"github.com/cockroachdb/errors"

	"github.com/arloliu/zisraw/errs"
)

// Grid arranges per-chunk views into one block-structured array. Cells are
// stored in file order with the leading grid axis varying fastest, mirroring
// the element order inside each view. A grid with an empty shape holds
// exactly one cell.
type Grid struct {
	shape  []int
	labels []byte
	cells  []View
}

// NewGrid composes cells into a grid of the given outer shape. The cell
// count must equal the shape's product; a disagreement means the axis layout
// and the subblock directory describe different arrays.
func NewGrid(shape []int, labels []byte, cells []View) (*Grid, error) {
	n := 1
	for _, s := range shape {
		n *= s
	}
	if n != len(cells) {
		return nil, errors.Wrapf(errs.ErrAxisSizeMismatch,
			"grid shape %v holds %d cells, directory supplied %d subblocks", shape, n, len(cells))
	}

	return &Grid{shape: shape, labels: labels, cells: cells}, nil
}

// Shape returns the outer (grid) per-axis lengths.
func (g *Grid) Shape() []int {
	return g.shape
}

// Labels returns the grid axis labels, parallel to Shape.
func (g *Grid) Labels() []byte {
	return g.labels
}

// NumCells returns the number of cells.
func (g *Grid) NumCells() int {
	return len(g.cells)
}

// Cell returns the i-th cell in file order.
func (g *Grid) Cell(i int) View {
	return g.cells[i]
}

// CellAt returns the cell at the given grid multi-index, leading axis
// fastest. Panics on rank or bounds violations, like a slice index.
func (g *Grid) CellAt(idx ...int) View {
	if len(idx) != len(g.shape) {
		panic(errors.Newf("index rank %d against grid shape %v", len(idx), g.shape))
	}

	flat := 0
	stride := 1
	for i, x := range idx {
		if x < 0 || x >= g.shape[i] {
			panic(errors.Newf("index %v out of range for grid shape %v", idx, g.shape))
		}
		flat += x * stride
		stride *= g.shape[i]
	}

	return g.cells[flat]
}
