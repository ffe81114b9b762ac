package image

import (
	"os"

	"github.com/beevik/etree"
	"github.com/cockroachdb/errors"
	"github.com/edsrzf/mmap-go"

	"github.com/arloliu/zisraw/axis"
	"github.com/arloliu/zisraw/errs"
	"github.com/arloliu/zisraw/format"
	"github.com/arloliu/zisraw/internal/hash"
	"github.com/arloliu/zisraw/internal/options"
	"github.com/arloliu/zisraw/meta"
	"github.com/arloliu/zisraw/nd"
	"github.com/arloliu/zisraw/segment"
)

// Image is a fully loaded container: the assembled pixel grid, the parsed
// metadata document, the located subblocks, and the physical axis layout.
//
// The image exclusively owns the memory map of the underlying file. Every
// pixel view (the grid's cells, each subblock's PixelView and Metadata)
// borrows that map without copying, so all of them are invalidated by
// Close. The map is read-only; nothing may write through a view.
type Image struct {
	header segment.FileHeader
	pt     format.PixelType
	grid   *nd.Grid
	subs   []SubBlock
	layout *axis.Layout
	doc    *etree.Document
	rawXML []byte
	atts   []segment.AttachmentEntry

	mapped mmap.MMap
	file   *os.File // owned only when constructed by Open
}

// Load reads the container from an open file and assembles its image.
//
// Loading runs in a fixed order (file header, metadata segment, directory
// segment, subblock location, axis layout, pixel assembly) and is
// all-or-nothing: the first violated invariant aborts with no partial
// result. The caller keeps ownership of f and must keep it open for the
// image's lifetime; Close releases only the memory map.
func Load(f *os.File, opts ...LoadOption) (*Image, error) {
	cfg := newLoadConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	hdr, err := segment.ReadFileHeader(f)
	if err != nil {
		return nil, err
	}

	rawMeta, err := segment.ReadMetadata(f, hdr.MetadataOffset)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawMeta.XML); err != nil {
		return nil, errors.Wrap(err, "embedded metadata document")
	}

	dir, err := segment.ReadDirectory(f, hdr.DirectoryOffset)
	if err != nil {
		return nil, err
	}
	if len(dir.Entries) == 0 {
		return nil, errors.Wrapf(errs.ErrNoSubBlocks, "directory at offset %d", hdr.DirectoryOffset)
	}
	pt := dir.PixelType()
	if !pt.Valid() {
		return nil, errors.Wrapf(errs.ErrUnsupportedPixelType, "pixel type %s (code %d)", pt, int32(pt))
	}

	subs, err := locate(f, dir, cfg.parallelism)
	if err != nil {
		return nil, err
	}

	layout, err := meta.Resolve(doc, pt)
	if err != nil {
		return nil, err
	}
	if err := layout.Validate(directorySizes(dir)); err != nil {
		return nil, err
	}

	atts, err := segment.ReadAttachmentDirectory(f, hdr.AttachmentDirOffset)
	if err != nil {
		return nil, err
	}

	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrap(err, "memory-mapping container")
	}

	grid, err := assemble(mapped, pt, subs, layout)
	if err != nil {
		_ = mapped.Unmap()

		return nil, err
	}

	if cfg.fingerprints {
		for i := range subs {
			subs[i].fp = hash.Fingerprint(subs[i].view.Bytes())
			subs[i].fpSet = true
		}
	}

	return &Image{
		header: hdr,
		pt:     pt,
		grid:   grid,
		subs:   subs,
		layout: layout,
		doc:    doc,
		rawXML: rawMeta.XML,
		atts:   atts,
		mapped: mapped,
	}, nil
}

// Open loads the container at path. The image owns the file handle and
// releases it together with the memory map on Close.
func Open(path string, opts ...LoadOption) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	img, err := Load(f, opts...)
	if err != nil {
		_ = f.Close()

		return nil, err
	}
	img.file = f

	return img, nil
}

// assemble maps every subblock's pixel span to a zero-copy view and
// arranges the views into the block grid. The grid's outer shape comes from
// the axis layout: one length per subblock axis beyond the two dense cell
// axes, in dimension order.
func assemble(m mmap.MMap, pt format.PixelType, subs []SubBlock, layout *axis.Layout) (*nd.Grid, error) {
	cells := make([]nd.View, len(subs))
	for i := range subs {
		s := &subs[i]

		shape, labels := cellShape(&s.Entry, pt)
		spanBytes := int64(pt.ComponentSize())
		for _, n := range shape {
			spanBytes *= int64(n)
		}
		if s.DataOffset+spanBytes > int64(len(m)) {
			return nil, errors.Wrapf(errs.ErrOutOfRange,
				"subblock %d pixel span [%d,%d) exceeds mapped %d bytes",
				i, s.DataOffset, s.DataOffset+spanBytes, len(m))
		}
		metaEnd := s.MetadataOffset + int64(s.Sizes.MetadataSize)
		if metaEnd > int64(len(m)) {
			return nil, errors.Wrapf(errs.ErrOutOfRange,
				"subblock %d metadata span [%d,%d) exceeds mapped %d bytes",
				i, s.MetadataOffset, metaEnd, len(m))
		}

		view, err := nd.NewView(m[s.DataOffset:s.DataOffset+spanBytes], pt, shape, labels)
		if err != nil {
			return nil, errors.Wrapf(err, "subblock %d", i)
		}
		s.view = view
		s.meta = m[s.MetadataOffset:metaEnd]
		cells[i] = view
	}

	gridShape, gridLabels, err := gridAxes(&subs[0].Entry, layout)
	if err != nil {
		return nil, err
	}

	return nd.NewGrid(gridShape, gridLabels, cells)
}

// cellShape returns the dense per-subblock view shape: the first two axis
// sizes, plus a trailing component axis for multi-component pixel types.
func cellShape(entry *segment.DirectoryEntry, pt format.PixelType) ([]int, []byte) {
	n := min(len(entry.Dimensions), 2)
	shape := make([]int, 0, n+1)
	labels := make([]byte, 0, n+1)
	for k := range n {
		shape = append(shape, int(entry.Dimensions[k].Size))
		labels = append(labels, byte(entry.Dimensions[k].Dimension))
	}
	if comp := pt.ComponentCount(); comp > 1 {
		shape = append(shape, comp)
		labels = append(labels, byte(format.DimSample))
	}

	return shape, labels
}

// gridAxes derives the grid's outer shape from the axis layout, one length
// per subblock axis beyond the first two.
func gridAxes(entry *segment.DirectoryEntry, layout *axis.Layout) ([]int, []byte, error) {
	var shape []int
	var labels []byte
	for k := 2; k < len(entry.Dimensions); k++ {
		label := entry.Dimensions[k].Dimension
		coords, ok := layout.Get(label)
		if !ok {
			return nil, nil, errors.Wrapf(errs.ErrAxisSizeMismatch,
				"axis %s has no coordinate sequence", label)
		}
		shape = append(shape, coords.Len())
		labels = append(labels, byte(label))
	}

	return shape, labels, nil
}

// directorySizes derives the per-axis sizes the directory implies, for
// validation against the XML layout. The first two axes are dense within
// each chunk, so their size fields apply directly; every further axis is
// enumerated across chunks, so its extent is the number of distinct start
// indices.
func directorySizes(dir *segment.Directory) map[format.Dimension]int {
	first := dir.Entries[0]
	sizes := make(map[format.Dimension]int, len(first.Dimensions))

	for k := range min(len(first.Dimensions), 2) {
		sizes[first.Dimensions[k].Dimension] = int(first.Dimensions[k].Size)
	}
	for k := 2; k < len(first.Dimensions); k++ {
		starts := make(map[int32]struct{}, len(dir.Entries))
		for _, e := range dir.Entries {
			starts[e.Dimensions[k].Start] = struct{}{}
		}
		sizes[first.Dimensions[k].Dimension] = len(starts)
	}

	return sizes
}

// Grid returns the assembled block-structured pixel array.
func (img *Image) Grid() *nd.Grid {
	return img.grid
}

// SubBlocks returns the located subblocks in directory order.
func (img *Image) SubBlocks() []SubBlock {
	return img.subs
}

// Layout returns the physical axis layout derived from the embedded XML.
func (img *Image) Layout() *axis.Layout {
	return img.layout
}

// PixelType returns the container's uniform pixel type.
func (img *Image) PixelType() format.PixelType {
	return img.pt
}

// Doc returns the parsed embedded metadata document.
func (img *Image) Doc() *etree.Document {
	return img.doc
}

// RawXML returns the embedded metadata document's raw text.
func (img *Image) RawXML() []byte {
	return img.rawXML
}

// Header returns the decoded file header.
func (img *Image) Header() segment.FileHeader {
	return img.header
}

// PrimaryGUID returns the identity shared by all files of an acquisition.
func (img *Image) PrimaryGUID() segment.GUID {
	return img.header.PrimaryGUID
}

// FileGUID returns this file's identity.
func (img *Image) FileGUID() segment.GUID {
	return img.header.FileGUID
}

// Attachments lists the entries of the attachment directory, empty when the
// container carries none.
func (img *Image) Attachments() []segment.AttachmentEntry {
	return img.atts
}

// Shear returns the Z-axis acquisition tilt when the metadata declares one.
func (img *Image) Shear() (float64, bool) {
	return img.layout.Shear, img.layout.HasShear
}

// Close releases the memory map (and the file handle, when the image was
// constructed by Open). Every view derived from the image is invalid once
// Close returns; reading one afterwards faults. Close is idempotent.
func (img *Image) Close() error {
	if img.mapped == nil {
		return nil
	}

	err := img.mapped.Unmap()
	img.mapped = nil

	if img.file != nil {
		cerr := img.file.Close()
		img.file = nil
		if err == nil {
			err = cerr
		}
	}

	return err
}
