// Package zisraw reads the segmented binary container format used by Zeiss
// microscopy images (CZI), assembling the pixel chunks scattered across a
// file into one structured, zero-copy multi-dimensional array.
//
// A container interleaves a file header, an XML metadata segment, pixel
// subblock segments, a subblock directory, and an optional attachment
// directory. The directory is the source of truth for the pixel array:
// every entry pins one chunk's pixel type, per-axis extents, and absolute
// file position. The library cross-checks the directory against the
// embedded XML, memory-maps the file, and exposes the chunks as a block
// grid of typed views backed directly by the mapping.
//
// # Core Features
//
//   - Zero-copy pixel access through one shared read-only memory map
//   - Multi-dimensional views with typed element access (uint8..float32)
//   - Physical axis coordinates (micrometers, seconds, wavelengths)
//     resolved from the embedded XML document
//   - Strict cross-validation of directory, subblocks, and metadata with
//     sentinel errors for every rejection class
//   - Optional concurrent subblock location and xxHash64 pixel
//     fingerprinting
//
// # Basic Usage
//
// Opening a container and reading pixels:
//
//	import "github.com/arloliu/zisraw"
//
//	img, err := zisraw.Open("scan.czi")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer img.Close()
//
//	// The grid spans the chunk axes (e.g. channel × time); each cell is
//	// one dense X×Y view.
//	grid := img.Grid()
//	cell := grid.CellAt(0, 1)
//	pixels := nd.Slice[uint8](cell) // no copy: reads the mapped file
//
// Physical coordinates:
//
//	x, _ := img.Layout().Get(format.DimX)
//	fmt.Printf("column 5 sits at %g %s\n", x.At(5), x.Unit)
//
// # Package Structure
//
// This package provides top-level wrappers around the image package. The
// deeper packages are usable on their own:
//
//   - image: loading pipeline and the assembled Image
//   - segment: record-level decoding of headers, directories, subblocks
//   - nd: multi-dimensional views and the block grid
//   - axis: physical coordinate sequences
//   - meta: XML metadata resolution
//   - format: pixel type, compression, and dimension constants
package zisraw

import (
	"os"

	"github.com/arloliu/zisraw/image"
	"github.com/arloliu/zisraw/internal/hash"
)

// Open loads the container at path and assembles its image.
//
// The returned image owns the file handle and its memory map; Close
// releases both. Loading is all-or-nothing: a container violating any
// structural invariant is rejected with a sentinel error from the errs
// package and nothing is mapped.
//
// Available options:
//   - image.WithLocateParallelism(n): locate subblocks with n concurrent readers
//   - image.WithFingerprints(): fingerprint every subblock's pixels during load
//
// Example:
//
//	img, err := zisraw.Open("scan.czi", image.WithLocateParallelism(8))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer img.Close()
func Open(path string, opts ...image.LoadOption) (*image.Image, error) {
	return image.Open(path, opts...)
}

// Load reads the container from an already-open file.
//
// Unlike Open, the caller keeps ownership of f and must hold it open for
// the image's lifetime; Close releases only the memory map. Use this when
// the file handle comes from elsewhere (a directory scan, a passed-in fd).
//
// Example:
//
//	f, _ := os.Open("scan.czi")
//	defer f.Close()
//
//	img, err := zisraw.Load(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer img.Close()
func Load(f *os.File, opts ...image.LoadOption) (*image.Image, error) {
	return image.Load(f, opts...)
}

// Fingerprint returns the xxHash64 of a byte span.
//
// This is the hash used for subblock pixel fingerprints, exposed so
// callers can compare externally held pixel data against
// SubBlock.Fingerprint without reimplementing the function.
//
// The hash is deterministic and fast (a few GB/s on modern CPUs); it is
// an integrity check, not a cryptographic digest.
func Fingerprint(data []byte) uint64 {
	return hash.Fingerprint(data)
}
