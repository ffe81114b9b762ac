package image

import (
	"io"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/zisraw/errs"
	"github.com/arloliu/zisraw/internal/hash"
	"github.com/arloliu/zisraw/nd"
	"github.com/arloliu/zisraw/segment"
)

// SubBlock is one located pixel chunk: its directory entry, its local size
// record, and the resolved absolute offsets of its metadata and pixel
// payload. SubBlocks are constructed once during load and immutable
// afterward; the pixel view and metadata bytes borrow the image's memory
// map and share its lifetime.
type SubBlock struct {
	Entry          segment.DirectoryEntry
	Sizes          segment.SubBlockSizes
	MetadataOffset int64
	DataOffset     int64

	shape  []int
	labels []byte
	view   nd.View
	meta   []byte
	fp     uint64
	fpSet  bool
}

// Shape returns the chunk's per-axis sizes in dimension order, as declared
// by its directory entry.
func (s *SubBlock) Shape() []int {
	return s.shape
}

// Labels returns the chunk's axis labels, parallel to Shape.
func (s *SubBlock) Labels() []byte {
	return s.labels
}

// PixelView returns the chunk's zero-copy pixel view: the dense
// (X, Y[, component]) window into the image's memory map.
func (s *SubBlock) PixelView() nd.View {
	return s.view
}

// Metadata returns the chunk's embedded metadata bytes, usually a small XML
// fragment. The slice aliases the memory map; empty when the subblock
// carries none.
func (s *SubBlock) Metadata() []byte {
	return s.meta
}

// Fingerprint returns the xxHash64 of the chunk's pixel bytes. Computed at
// load under WithFingerprints, otherwise on each call.
func (s *SubBlock) Fingerprint() uint64 {
	if s.fpSet {
		return s.fp
	}

	return hash.Fingerprint(s.view.Bytes())
}

// locate resolves every directory entry into a SubBlock: seek to its file
// position, verify the subblock prologue, decode the size record, compute
// the metadata and data offsets. Entries are independent, so with
// parallelism above 1 they are resolved concurrently; results land in entry
// order either way.
func locate(src io.ReaderAt, dir *segment.Directory, parallelism int) ([]SubBlock, error) {
	subs := make([]SubBlock, len(dir.Entries))

	resolve := func(i int) error {
		entry := dir.Entries[i]
		sizes, err := segment.ReadSubBlockSizes(src, entry.FilePosition)
		if err != nil {
			return errors.Wrapf(err, "subblock %d", i)
		}
		subs[i] = SubBlock{
			Entry:          entry,
			Sizes:          sizes,
			MetadataOffset: segment.MetadataOffset(entry.FilePosition),
			DataOffset:     sizes.DataOffset(entry.FilePosition),
			shape:          entry.Shape(),
			labels:         entry.Labels(),
		}

		return nil
	}

	if parallelism <= 1 {
		for i := range dir.Entries {
			if err := resolve(i); err != nil {
				return nil, err
			}
		}
	} else {
		var g errgroup.Group
		g.SetLimit(parallelism)
		for i := range dir.Entries {
			g.Go(func() error { return resolve(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	// Alignment is a single post-condition over the whole set: every pixel
	// payload must start on an element boundary or the flat element mapping
	// in the assembler cannot represent it.
	elemSize := int64(dir.PixelType().ComponentSize())
	for i := range subs {
		if subs[i].DataOffset%elemSize != 0 {
			return nil, errors.Wrapf(errs.ErrUnalignedSubBlock,
				"subblock %d data offset %d, element size %d", i, subs[i].DataOffset, elemSize)
		}
	}

	return subs, nil
}
