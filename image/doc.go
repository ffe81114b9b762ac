// Package image loads a zisraw container into a structured, zero-copy
// pixel array.
//
// This is the top of the decoding stack: it drives the segment package
// through every record of the file, cross-checks the directory against the
// embedded XML metadata, memory-maps the file, and exposes the pixels as a
// block grid of typed multi-dimensional views.
//
// # Loading Pipeline
//
// Load runs a fixed pipeline and aborts on the first violated invariant;
// there are no partial results:
//
//	┌───────────────────────────────────────────────────────────┐
//	│ 1. File header     version, part, update flag, offsets    │
//	├───────────────────────────────────────────────────────────┤
//	│ 2. Metadata        raw XML → parsed document               │
//	├───────────────────────────────────────────────────────────┤
//	│ 3. Directory       entries + cross-entry invariants        │
//	│                    (uniform pixel type, labels, sizes)     │
//	├───────────────────────────────────────────────────────────┤
//	│ 4. Locate          per-entry seek: size records, absolute  │
//	│                    metadata/pixel offsets, alignment check │
//	├───────────────────────────────────────────────────────────┤
//	│ 5. Axis layout     XML → physical coordinates, validated   │
//	│                    against the sizes the directory implies │
//	├───────────────────────────────────────────────────────────┤
//	│ 6. Assemble        mmap the file, wrap every pixel span in │
//	│                    an nd.View, arrange views into nd.Grid  │
//	└───────────────────────────────────────────────────────────┘
//
// Steps 1-5 read small records through io.ReaderAt; only step 6 maps the
// file, so a rejected container never maps at all.
//
// # Pixel Array Shape
//
// The directory's first two axes are dense inside each subblock (the cell
// axes, typically X and Y); every further axis is enumerated across
// subblocks (the grid axes). A four-subblock Gray8 container with entries
// over C and T assembles as:
//
//	Grid shape [2 2], labels "CT"
//	  └── each cell: View shape [4 3], labels "XY"
//
// Multi-component pixel types grow each cell by a trailing component axis
// labeled '0', so Bgr24 cells are [X Y 3] with labels "XY0".
//
// # Memory Map and Lifetime
//
// The Image exclusively owns one read-only memory map of the file. All
// pixel views and subblock metadata slices alias that map: loading copies
// no pixel bytes, and none of the accessors do either. The flip side is
// lifetime coupling: Close unmaps, and every view obtained from the image
// faults if read afterwards. Callers that need pixels past Close must copy
// them out first (nd.Slice gives the []T to copy from).
//
// With Load the caller keeps ownership of the *os.File and must hold it
// open until Close; with Open the image owns the handle and closes it.
//
// # Usage
//
// Typical read path:
//
//	img, err := image.Open("scan.czi")
//	if err != nil {
//	    return err
//	}
//	defer img.Close()
//
//	grid := img.Grid()
//	cell := grid.CellAt(0, 1)             // C=0, T=1
//	pixels := nd.Slice[uint8](cell)       // zero-copy
//	x, _ := img.Layout().Get(format.DimX) // physical coordinates
//	fmt.Println(x.At(5), "µm")
//
// Options follow the functional pattern:
//
//	img, err := image.Open(path,
//	    image.WithLocateParallelism(8),
//	    image.WithFingerprints(),
//	)
//
// # Thread Safety
//
// A loaded Image is immutable and safe for concurrent readers. Close is
// not synchronized with readers; the caller sequences Close after the last
// view access.
package image
