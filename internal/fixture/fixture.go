// Package fixture builds synthetic zisraw containers for tests.
//
// The builder writes the binary layout independently of the decoding packages
// (literal offsets, no shared constants), so a drifting constant on either
// side shows up as a test failure instead of cancelling out. Containers are
// assembled fully in memory; Write drops one into a temp file for the
// mmap-based tests.
package fixture

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zisraw/format"
)

// Dim describes one axis of a synthetic subblock as written into its
// directory entry.
type Dim struct {
	Label      byte
	Start      int32
	Size       int32
	StartCoord float32
	StoredSize int32
}

// SubBlock describes one synthetic chunk. Data is the pixel payload actually
// written into the file; when nil, a deterministic fill of the size implied
// by Dims and PixelType is generated. Dims always goes into the directory
// entry verbatim, so a test can advertise a shape larger than the bytes it
// writes.
type SubBlock struct {
	PixelType   format.PixelType
	Compression format.CompressionType
	Pyramid     format.PyramidType
	Dims        []Dim
	Metadata    []byte
	Data        []byte
}

// DataSize returns the pixel byte count implied by Dims and PixelType.
func (s *SubBlock) DataSize() int {
	n := s.PixelType.ComponentCount() * s.PixelType.ComponentSize()
	for _, d := range s.Dims {
		n *= int(d.Size)
	}

	return n
}

// Attachment describes one named auxiliary payload and its backing segment.
type Attachment struct {
	Name            string
	ContentFileType string
	GUID            [16]byte
	Data            []byte
}

// Container describes a complete synthetic file. The zero value is not
// usable; start from New or Gray8Grid and adjust fields.
type Container struct {
	Major         int32
	Minor         int32
	FilePart      int32
	UpdatePending int32
	PrimaryGUID   [16]byte
	FileGUID      [16]byte
	XML           string
	SubBlocks     []SubBlock
	Attachments   []Attachment

	// EntrySchema is written as each directory entry's 2-byte marker.
	EntrySchema string
}

// Built is an assembled container plus the absolute offsets of its parts,
// for tests that corrupt specific records in place.
type Built struct {
	Data                []byte
	MetadataOffset      int64
	DirectoryOffset     int64
	AttachmentDirOffset int64
	SubBlockOffsets     []int64
}

// New returns a valid empty container: version 1.0, part 0, deterministic
// GUIDs, no subblocks.
func New() *Container {
	c := &Container{
		Major:       1,
		Minor:       0,
		EntrySchema: "DV",
	}
	for i := range 16 {
		c.PrimaryGUID[i] = byte(0xA0 + i)
		c.FileGUID[i] = byte(0x10 + i)
	}

	return c
}

// Fill returns n bytes of a deterministic pattern, for asserting zero-copy
// pixel reads against known content.
func Fill(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + 3)
	}

	return b
}

// Bytes assembles the container.
func (c *Container) Bytes() []byte {
	return c.Build().Data
}

// Write assembles the container into a temp file and returns its path.
func (c *Container) Write(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.czi")
	require.NoError(t, os.WriteFile(path, c.Bytes(), 0o644))

	return path
}

// Build assembles the container and reports where everything landed.
//
// Layout: file header segment at offset 0 (fixed 512 bytes), then the
// metadata segment, the subblock segments, the attachment segments, the
// directory segment, and the attachment directory. Every segment start is
// 32-byte aligned, so a subblock's pixel data offset (+256 from its
// prologue, plus its embedded metadata length) is element-aligned whenever
// the embedded metadata length is.
func (c *Container) Build() *Built {
	w := &writer{}
	built := &Built{}

	// File header segment: reserve the first 512 bytes, patched last.
	w.skip(512)

	if c.XML != "" || len(c.SubBlocks) > 0 {
		built.MetadataOffset = w.segment("ZISRAWMETADATA", c.metadataPayload())
	}

	for i := range c.SubBlocks {
		off := w.segment("ZISRAWSUBBLOCK", c.SubBlocks[i].payload())
		built.SubBlockOffsets = append(built.SubBlockOffsets, off)
	}

	attPos := make([]int64, len(c.Attachments))
	for i := range c.Attachments {
		attPos[i] = w.segment("ZISRAWATTACH", c.Attachments[i].Data)
	}

	built.DirectoryOffset = w.segment("ZISRAWDIRECTORY", c.directoryPayload(built.SubBlockOffsets))

	if len(c.Attachments) > 0 {
		built.AttachmentDirOffset = w.segment("ZISRAWATTDIR", c.attachmentDirPayload(attPos))
	}

	c.patchFileHeader(w.buf, built)
	built.Data = w.buf

	return built
}

func (c *Container) metadataPayload() []byte {
	p := make([]byte, 256+len(c.XML))
	binary.LittleEndian.PutUint32(p[16:20], uint32(len(c.XML)))
	copy(p[256:], c.XML)

	return p
}

func (s *SubBlock) payload() []byte {
	data := s.Data
	if data == nil {
		data = Fill(s.DataSize())
	}

	p := make([]byte, 224+len(s.Metadata)+len(data))
	binary.LittleEndian.PutUint32(p[16:20], uint32(len(s.Metadata)))
	binary.LittleEndian.PutUint64(p[24:32], uint64(len(data)))
	copy(p[224:], s.Metadata)
	copy(p[224+len(s.Metadata):], data)

	return p
}

func (c *Container) directoryPayload(positions []int64) []byte {
	entrySize := make([]int, len(c.SubBlocks))
	total := 128
	for i := range c.SubBlocks {
		entrySize[i] = 32 + 20*len(c.SubBlocks[i].Dims)
		total += entrySize[i]
	}

	p := make([]byte, total)
	binary.LittleEndian.PutUint32(p[0:4], uint32(len(c.SubBlocks)))

	off := 128
	for i := range c.SubBlocks {
		s := &c.SubBlocks[i]
		e := p[off : off+entrySize[i]]
		copy(e[0:2], c.EntrySchema)
		binary.LittleEndian.PutUint32(e[2:6], uint32(s.PixelType))
		binary.LittleEndian.PutUint64(e[6:14], uint64(positions[i]))
		binary.LittleEndian.PutUint32(e[18:22], uint32(s.Compression))
		e[22] = byte(s.Pyramid)
		binary.LittleEndian.PutUint32(e[28:32], uint32(len(s.Dims)))
		for k, d := range s.Dims {
			de := e[32+20*k:]
			de[0] = d.Label
			binary.LittleEndian.PutUint32(de[4:8], uint32(d.Start))
			binary.LittleEndian.PutUint32(de[8:12], uint32(d.Size))
			binary.LittleEndian.PutUint32(de[12:16], math.Float32bits(d.StartCoord))
			binary.LittleEndian.PutUint32(de[16:20], uint32(d.StoredSize))
		}
		off += entrySize[i]
	}

	return p
}

func (c *Container) attachmentDirPayload(positions []int64) []byte {
	p := make([]byte, 256+128*len(c.Attachments))
	binary.LittleEndian.PutUint32(p[0:4], uint32(len(c.Attachments)))
	for i := range c.Attachments {
		a := &c.Attachments[i]
		e := p[256+128*i:]
		copy(e[0:2], "A1")
		binary.LittleEndian.PutUint64(e[12:20], uint64(positions[i]))
		copy(e[24:40], a.GUID[:])
		copy(e[40:48], a.ContentFileType)
		copy(e[48:128], a.Name)
	}

	return p
}

func (c *Container) patchFileHeader(buf []byte, built *Built) {
	copy(buf[0:16], "ZISRAWFILE")
	binary.LittleEndian.PutUint64(buf[16:24], 480) // allocated
	binary.LittleEndian.PutUint64(buf[24:32], 80)  // used

	p := buf[32:]
	binary.LittleEndian.PutUint32(p[0:4], uint32(c.Major))
	binary.LittleEndian.PutUint32(p[4:8], uint32(c.Minor))
	copy(p[16:32], c.PrimaryGUID[:])
	copy(p[32:48], c.FileGUID[:])
	binary.LittleEndian.PutUint32(p[48:52], uint32(c.FilePart))
	binary.LittleEndian.PutUint64(p[52:60], uint64(built.DirectoryOffset))
	binary.LittleEndian.PutUint64(p[60:68], uint64(built.MetadataOffset))
	binary.LittleEndian.PutUint32(p[68:72], uint32(c.UpdatePending))
	binary.LittleEndian.PutUint64(p[72:80], uint64(built.AttachmentDirOffset))
}

type writer struct {
	buf []byte
}

func (w *writer) skip(n int) {
	w.buf = append(w.buf, make([]byte, n)...)
}

// segment appends a 32-byte prologue plus the payload, pads the total to
// 32-byte alignment, and returns the prologue's absolute offset.
func (w *writer) segment(tag string, payload []byte) int64 {
	start := int64(len(w.buf))

	alloc := (len(payload) + 31) &^ 31
	head := make([]byte, 32)
	copy(head[0:16], tag)
	binary.LittleEndian.PutUint64(head[16:24], uint64(alloc))
	binary.LittleEndian.PutUint64(head[24:32], uint64(len(payload)))

	w.buf = append(w.buf, head...)
	w.buf = append(w.buf, payload...)
	w.skip(alloc - len(payload))

	return start
}

// XMLConfig generates the embedded metadata document the axis resolver
// expects. Zero-valued axes are omitted; PixelSize is emitted only when
// nonempty, so a test can produce a document missing the required node.
type XMLConfig struct {
	SizeX, SizeY int
	SizeC        int
	SizeZ        int
	SizeT        int
	Wavelengths  []float64
	StartTime    string
	TStart       float64
	TIncrement   float64
	ZStart       float64
	ZIncrement   float64
	Shear        float64
	HasShear     bool
	PixelSize    string // "Y,X" micrometer pair, e.g. "0.5,0.25"

	// OmitTInterval drops the T Positions/Interval node while keeping SizeT,
	// for the missing-required-node failure path.
	OmitTInterval bool
}

// String renders the document.
func (x XMLConfig) String() string {
	var b strings.Builder
	b.WriteString("<ImageDocument><Metadata><Information><Image>")
	size := func(label string, n int) {
		if n > 0 {
			fmt.Fprintf(&b, "<Size%s>%d</Size%s>", label, n, label)
		}
	}
	size("X", x.SizeX)
	size("Y", x.SizeY)
	size("C", x.SizeC)
	size("Z", x.SizeZ)
	size("T", x.SizeT)

	b.WriteString("<Dimensions>")
	if len(x.Wavelengths) > 0 {
		b.WriteString("<Channels>")
		for _, wl := range x.Wavelengths {
			fmt.Fprintf(&b, "<Channel><EmissionWavelength>%g</EmissionWavelength></Channel>", wl)
		}
		b.WriteString("</Channels>")
	}
	if x.SizeT > 0 {
		b.WriteString("<T>")
		if x.StartTime != "" {
			fmt.Fprintf(&b, "<StartTime>%s</StartTime>", x.StartTime)
		}
		if !x.OmitTInterval {
			fmt.Fprintf(&b, "<Positions><Interval><Start>%g</Start><Increment>%g</Increment></Interval></Positions>",
				x.TStart, x.TIncrement)
		}
		b.WriteString("</T>")
	}
	if x.SizeZ > 0 {
		b.WriteString("<Z>")
		if x.HasShear {
			fmt.Fprintf(&b, "<Shear>%g</Shear>", x.Shear)
		}
		fmt.Fprintf(&b, "<Positions><Interval><Start>%g</Start><Increment>%g</Increment></Interval></Positions>",
			x.ZStart, x.ZIncrement)
		b.WriteString("</Z>")
	}
	b.WriteString("</Dimensions>")
	b.WriteString("</Image></Information>")

	if x.PixelSize != "" {
		fmt.Fprintf(&b, "<ImageScaling><ImagePixelSize>%s</ImagePixelSize></ImageScaling>", x.PixelSize)
	}
	b.WriteString("</Metadata></ImageDocument>")

	return b.String()
}

// Gray8Grid returns a canonical loadable container: four 4×3 Gray8 chunks
// tiling a C=2 × T=2 grid, with matching XML (two emission wavelengths, a
// timed T axis, 0.5 µm pixels) and deterministic pixel fill.
func Gray8Grid() *Container {
	c := New()
	c.XML = XMLConfig{
		SizeX: 4, SizeY: 3, SizeC: 2, SizeT: 2,
		Wavelengths: []float64{488, 561},
		StartTime:   "2019-11-07T13:17:47.123456",
		TStart:      0, TIncrement: 1.5,
		PixelSize: "0.5,0.5",
	}.String()

	for t := int32(0); t < 2; t++ {
		for ch := int32(0); ch < 2; ch++ {
			c.SubBlocks = append(c.SubBlocks, SubBlock{
				PixelType: format.PixelGray8,
				Dims: []Dim{
					{Label: 'X', Size: 4},
					{Label: 'Y', Size: 3},
					{Label: 'C', Start: ch, Size: 1},
					{Label: 'T', Start: t, Size: 1},
				},
			})
		}
	}

	return c
}
