// Package meta derives the physical axis layout from a container's embedded
// XML document.
//
// The binary directory fixes the array's shape; the XML fixes what the axes
// mean: sampling intervals, start positions, units, and the channel
// emission wavelengths. Resolve walks the parsed document and produces an
// axis.Layout, which the loader then validates against the directory: the
// two metadata sources must agree or the load fails.
package meta

import (
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/cockroachdb/errors"

	"github.com/arloliu/zisraw/axis"
	"github.com/arloliu/zisraw/errs"
	"github.com/arloliu/zisraw/format"
)

// startTimeLayout accepts timestamps like 2019-11-07T13:17:47.123456; the
// fractional second is optional on parse and truncated to milliseconds.
const startTimeLayout = "2006-01-02T15:04:05"

// Resolve walks the parsed document and builds the axis layout for an image
// of the given pixel type.
//
// The walk starts at the unique non-empty Image node: Size<D> children
// declare per-axis element counts, the Dimensions child carries the
// channel / time / z descriptors, and the ImageScaling/ImagePixelSize node
// supplies the X and Y sampling intervals. A missing required node fails
// with errs.ErrMissingMetadata naming it; partial axis metadata is not
// supported.
func Resolve(doc *etree.Document, pt format.PixelType) (*axis.Layout, error) {
	img := imageNode(doc)
	if img == nil {
		return nil, errors.Wrap(errs.ErrMissingMetadata, "no non-empty Image node")
	}

	sizes := declaredSizes(img)
	layout := axis.New()

	dims := img.SelectElement("Dimensions")
	if dims != nil {
		if err := resolveChannels(dims, layout); err != nil {
			return nil, err
		}
		if err := resolveTime(dims, layout, sizes[format.DimT]); err != nil {
			return nil, err
		}
		if err := resolveZ(dims, layout, sizes[format.DimZ]); err != nil {
			return nil, err
		}
	}
	if len(layout.Wavelengths) > 0 {
		layout.Set(format.DimC, axis.Index(len(layout.Wavelengths)))
	}

	ystep, xstep, err := pixelSize(doc)
	if err != nil {
		return nil, err
	}
	layout.Set(format.DimX, axis.Spaced(0, xstep, sizes[format.DimX], axis.UnitMicrometer))
	layout.Set(format.DimY, axis.Spaced(0, ystep, sizes[format.DimY], axis.UnitMicrometer))

	// Declared axes with no physical descriptor (block, scene, mosaic...)
	// become plain index ranges so the directory check can still see them.
	for d, n := range sizes {
		if _, ok := layout.Get(d); !ok {
			layout.Set(d, axis.Index(n))
		}
	}

	if n := pt.ComponentCount(); n > 1 {
		layout.Set(format.DimSample, axis.Index(n))
	}

	return layout, nil
}

// imageNode returns the first Image element anywhere in the document that
// has child elements. Empty Image stubs occur in attachment metadata and
// must not win over the real description.
func imageNode(doc *etree.Document) *etree.Element {
	for _, el := range doc.FindElements("//Image") {
		if len(el.ChildElements()) > 0 {
			return el
		}
	}

	return nil
}

// declaredSizes collects the Size<D> children of the image node into a
// label-to-count map.
func declaredSizes(img *etree.Element) map[format.Dimension]int {
	sizes := make(map[format.Dimension]int)
	for _, el := range img.ChildElements() {
		if len(el.Tag) != 5 || !strings.HasPrefix(el.Tag, "Size") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(el.Text()))
		if err != nil || n < 0 {
			continue
		}
		sizes[format.Dimension(el.Tag[4])] = n
	}

	return sizes
}

// resolveChannels collects one emission wavelength per Channel node that
// carries one. The resulting list length is the channel axis's logical size.
func resolveChannels(dims *etree.Element, layout *axis.Layout) error {
	channels := dims.SelectElement("Channels")
	if channels == nil {
		return nil
	}

	for i, ch := range channels.SelectElements("Channel") {
		el := ch.SelectElement("EmissionWavelength")
		if el == nil {
			continue
		}
		wl, err := floatText(el)
		if err != nil {
			return errors.Wrapf(err, "Channel %d EmissionWavelength", i)
		}
		layout.Wavelengths = append(layout.Wavelengths, wl)
	}

	return nil
}

// resolveTime reads the T descriptor: an optional start timestamp kept as
// provenance, and the required start/increment pair that positions the
// declared SizeT time points in seconds.
func resolveTime(dims *etree.Element, layout *axis.Layout, sizeT int) error {
	node := dims.SelectElement("T")
	if node == nil {
		return nil
	}

	if el := node.SelectElement("StartTime"); el != nil {
		ts, err := time.Parse(startTimeLayout, strings.TrimSpace(el.Text()))
		if err != nil {
			return errors.Wrapf(err, "T/StartTime")
		}
		layout.StartTime = ts.Truncate(time.Millisecond)
	}

	start, step, err := interval(node, "T")
	if err != nil {
		return err
	}
	layout.Set(format.DimT, axis.Spaced(start, step, sizeT, axis.UnitSecond))

	return nil
}

// resolveZ reads the Z descriptor: an optional shear value and the required
// start/increment pair that positions the declared SizeZ focal planes in
// micrometers.
func resolveZ(dims *etree.Element, layout *axis.Layout, sizeZ int) error {
	node := dims.SelectElement("Z")
	if node == nil {
		return nil
	}

	if el := node.SelectElement("Shear"); el != nil {
		shear, err := floatText(el)
		if err != nil {
			return errors.Wrapf(err, "Z/Shear")
		}
		layout.Shear = shear
		layout.HasShear = true
	}

	start, step, err := interval(node, "Z")
	if err != nil {
		return err
	}
	layout.Set(format.DimZ, axis.Spaced(start, step, sizeZ, axis.UnitMicrometer))

	return nil
}

// interval reads the Positions/Interval start/increment pair under an axis
// descriptor. Both values are required once the descriptor exists.
func interval(node *etree.Element, label string) (start, step float64, err error) {
	iv := node.FindElement("Positions/Interval")
	if iv == nil {
		return 0, 0, errors.Wrapf(errs.ErrMissingMetadata, "node %s/Positions/Interval", label)
	}

	if start, err = intervalField(iv, label, "Start"); err != nil {
		return 0, 0, err
	}
	if step, err = intervalField(iv, label, "Increment"); err != nil {
		return 0, 0, err
	}

	return start, step, nil
}

func intervalField(iv *etree.Element, label, tag string) (float64, error) {
	el := iv.SelectElement(tag)
	if el == nil {
		return 0, errors.Wrapf(errs.ErrMissingMetadata, "node %s/Positions/Interval/%s", label, tag)
	}
	v, err := floatText(el)
	if err != nil {
		return 0, errors.Wrapf(err, "%s/Positions/Interval/%s", label, tag)
	}

	return v, nil
}

// pixelSize reads the required ImageScaling/ImagePixelSize node: the Y and X
// sampling intervals in micrometers, comma-separated with Y first.
func pixelSize(doc *etree.Document) (ystep, xstep float64, err error) {
	el := doc.FindElement("//ImageScaling/ImagePixelSize")
	if el == nil {
		return 0, 0, errors.Wrap(errs.ErrMissingMetadata, "node ImageScaling/ImagePixelSize")
	}

	parts := strings.Split(el.Text(), ",")
	if len(parts) != 2 {
		return 0, 0, errors.Wrapf(errs.ErrMissingMetadata,
			"ImagePixelSize %q is not a Y,X pair", el.Text())
	}
	if ystep, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, errors.Wrapf(err, "ImagePixelSize %q", el.Text())
	}
	if xstep, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, errors.Wrapf(err, "ImagePixelSize %q", el.Text())
	}

	return ystep, xstep, nil
}

func floatText(el *etree.Element) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(el.Text()), 64)
}
