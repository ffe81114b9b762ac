// Package nd provides zero-copy multi-dimensional views over raw pixel
// bytes and the block grid that composes them into one array.
//
// A View is a shaped, non-owning window into the loaded file's memory map;
// a Grid arranges one View per subblock along the container's non-spatial
// axes (time, channel, z). Neither ever copies pixel bytes: every View
// aliases the map, and all of them become invalid the moment the owning
// image is closed.
//
// # Element Order
//
// The container stores elements with the leading axis varying fastest, and
// views preserve that order. In a (X, Y, 3) BGR view, X varies fastest and
// the component index slowest: element (x, y, c) sits at flat index
// x + X·(y + Y·c). Grids follow the same rule for their cells.
//
// # Typed Access
//
// Views carry bytes; the generic Slice and At functions reinterpret them as
// the Go element type matching the pixel type:
//
//	cell := img.Grid().CellAt(0, 1)   // C=0, T=1
//	pixels := nd.Slice[uint8](cell)   // aliases the map, no copy
//	p := nd.At[uint8](cell, x, y)
//
// The reinterpretation is a cast, not a conversion: requesting a T whose
// size differs from the view's element size panics.
package nd
