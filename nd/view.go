package nd

import (
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/zisraw/errs"
	"github.com/arloliu/zisraw/format"
)

// Elem constrains the Go element types a pixel view can be reinterpreted as.
// The caller picks the T matching the view's pixel type: uint8 for Gray8,
// Bgr24 and Bgra32, uint16 for Gray16 and Bgr48, float32 for Gray32Float and
// Bgr96Float, int32 for Gray32.
type Elem interface {
	~uint8 | ~uint16 | ~uint32 | ~int32 | ~float32
}

// View is a non-owning multi-dimensional window over raw pixel bytes. The
// byte slice aliases the memory-mapped file; constructing or reading a view
// never copies pixel data, and the view is only valid while the owning map
// remains open.
//
// The leading axis varies fastest in memory: for a shape (X, Y) view,
// element (x, y) lives at flat index x + y·X.
type View struct {
	data   []byte
	pt     format.PixelType
	shape  []int
	labels []byte
}

// NewView wraps data in a view of the given shape. The element unit is one
// color component of pt, and data must span exactly the shape's product of
// elements; the data start must be element-aligned (the loader enforces this
// before any view is built).
func NewView(data []byte, pt format.PixelType, shape []int, labels []byte) (View, error) {
	if !pt.Valid() {
		return View{}, errors.Wrapf(errs.ErrUnsupportedPixelType, "pixel type %s (code %d)", pt, int32(pt))
	}

	n := 1
	for _, s := range shape {
		if s < 0 {
			return View{}, errors.Wrapf(errs.ErrOutOfRange, "negative axis size %d in shape %v", s, shape)
		}
		n *= s
	}
	if want := n * pt.ComponentSize(); want != len(data) {
		return View{}, errors.Wrapf(errs.ErrOutOfRange,
			"shape %v of %s needs %d bytes, span holds %d", shape, pt, want, len(data))
	}

	return View{data: data, pt: pt, shape: shape, labels: labels}, nil
}

// PixelType returns the view's pixel type.
func (v View) PixelType() format.PixelType {
	return v.pt
}

// Shape returns the per-axis element counts. The caller must not modify it.
func (v View) Shape() []int {
	return v.shape
}

// Labels returns the per-axis labels, parallel to Shape. Nil when the view
// was built without labels.
func (v View) Labels() []byte {
	return v.labels
}

// ElemSize returns the byte size of one element (one color component).
func (v View) ElemSize() int {
	return v.pt.ComponentSize()
}

// NumElems returns the total element count, the product of the shape.
func (v View) NumElems() int {
	return len(v.data) / v.pt.ComponentSize()
}

// Bytes returns the view's backing bytes. The slice aliases the memory map;
// it must neither be written to nor retained past the owning image's Close.
func (v View) Bytes() []byte {
	return v.data
}

// flatIndex folds a multi-index into the flat element index, leading axis
// fastest. Panics on rank or bounds violations, like a slice index.
func (v View) flatIndex(idx []int) int {
	if len(idx) != len(v.shape) {
		panic(errors.Newf("index rank %d against shape %v", len(idx), v.shape))
	}

	flat := 0
	stride := 1
	for i, x := range idx {
		if x < 0 || x >= v.shape[i] {
			panic(errors.Newf("index %v out of range for shape %v", idx, v.shape))
		}
		flat += x * stride
		stride *= v.shape[i]
	}

	return flat
}

// Slice reinterprets the view's bytes as a []T without copying. T's size
// must equal the view's element size; the returned slice aliases the memory
// map and follows the same lifetime rule as Bytes.
func Slice[T Elem](v View) []T {
	var zero T
	if size := int(unsafe.Sizeof(zero)); size != v.pt.ComponentSize() {
		panic(errors.Newf("element type of size %d against %s (element size %d)",
			size, v.pt, v.pt.ComponentSize()))
	}
	if len(v.data) == 0 {
		return nil
	}

	return unsafe.Slice((*T)(unsafe.Pointer(&v.data[0])), v.NumElems())
}

// At returns the element at the given multi-index, leading axis fastest.
func At[T Elem](v View, idx ...int) T {
	return Slice[T](v)[v.flatIndex(idx)]
}
