package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/zisraw/format"
	"github.com/arloliu/zisraw/image"
)

var infoFormat string

// containerReport is the serializable summary the info command prints.
type containerReport struct {
	File        string         `json:"file" yaml:"file"`
	Version     string         `json:"version" yaml:"version"`
	PrimaryGUID string         `json:"primaryGuid" yaml:"primaryGuid"`
	FileGUID    string         `json:"fileGuid" yaml:"fileGuid"`
	PixelType   string         `json:"pixelType" yaml:"pixelType"`
	SubBlocks   int            `json:"subblocks" yaml:"subblocks"`
	GridShape   []int          `json:"gridShape" yaml:"gridShape"`
	GridLabels  string         `json:"gridLabels" yaml:"gridLabels"`
	CellShape   []int          `json:"cellShape" yaml:"cellShape"`
	CellLabels  string         `json:"cellLabels" yaml:"cellLabels"`
	Axes        []axisReport   `json:"axes" yaml:"axes"`
	Wavelengths []float64      `json:"wavelengths,omitempty" yaml:"wavelengths,omitempty"`
	StartTime   string         `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	Shear       *float64       `json:"shear,omitempty" yaml:"shear,omitempty"`
	Attachments []attachReport `json:"attachments,omitempty" yaml:"attachments,omitempty"`
}

type axisReport struct {
	Label string  `json:"label" yaml:"label"`
	Len   int     `json:"len" yaml:"len"`
	Start float64 `json:"start" yaml:"start"`
	Step  float64 `json:"step" yaml:"step"`
	Unit  string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

type attachReport struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	GUID string `json:"guid" yaml:"guid"`
}

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Summarize a container's structure",
	Long: `info loads a container and prints its assembled shape: pixel type,
grid and cell geometry, physical axis coordinates, and attachments.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := openImage(args[0])
		if err != nil {
			return err
		}
		defer img.Close()

		report := buildReport(args[0], img)
		out := cmd.OutOrStdout()

		switch infoFormat {
		case "text":
			printReport(out, &report)
			return nil
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		case "yaml":
			return yaml.NewEncoder(out).Encode(report)
		default:
			return errors.Newf("unknown output format %q (text, json, yaml)", infoFormat)
		}
	},
}

func buildReport(path string, img *image.Image) containerReport {
	hdr := img.Header()
	grid := img.Grid()
	cell := grid.Cell(0)

	r := containerReport{
		File:        path,
		Version:     fmt.Sprintf("%d.%d", hdr.Major, hdr.Minor),
		PrimaryGUID: hdr.PrimaryGUID.String(),
		FileGUID:    hdr.FileGUID.String(),
		PixelType:   img.PixelType().String(),
		SubBlocks:   len(img.SubBlocks()),
		GridShape:   emptyNotNil(grid.Shape()),
		GridLabels:  string(grid.Labels()),
		CellShape:   emptyNotNil(cell.Shape()),
		CellLabels:  string(cell.Labels()),
		Wavelengths: img.Layout().Wavelengths,
	}

	// Axis order follows the directory: dense cell axes first, then the
	// grid axes, then the synthetic component axis.
	labels := slices.Clone(img.SubBlocks()[0].Labels())
	if img.PixelType().ComponentCount() > 1 {
		labels = append(labels, byte(format.DimSample))
	}
	for _, l := range labels {
		coords, ok := img.Layout().Get(format.Dimension(l))
		if !ok {
			continue
		}
		r.Axes = append(r.Axes, axisReport{
			Label: format.Dimension(l).String(),
			Len:   coords.Len(),
			Start: coords.Start,
			Step:  coords.Step,
			Unit:  coords.Unit.String(),
		})
	}

	if st := img.Layout().StartTime; !st.IsZero() {
		r.StartTime = st.Format(time.RFC3339Nano)
	}
	if shear, ok := img.Shear(); ok {
		r.Shear = &shear
	}
	for _, a := range img.Attachments() {
		r.Attachments = append(r.Attachments, attachReport{
			Name: a.Name,
			Type: a.ContentFileType,
			GUID: a.ContentGUID.String(),
		})
	}

	return r
}

func emptyNotNil(s []int) []int {
	if s == nil {
		return []int{}
	}

	return s
}

func printReport(w io.Writer, r *containerReport) {
	fmt.Fprintf(w, "file:         %s\n", r.File)
	fmt.Fprintf(w, "version:      %s\n", r.Version)
	fmt.Fprintf(w, "primary guid: %s\n", r.PrimaryGUID)
	fmt.Fprintf(w, "file guid:    %s\n", r.FileGUID)
	fmt.Fprintf(w, "pixel type:   %s\n", r.PixelType)
	fmt.Fprintf(w, "subblocks:    %d\n", r.SubBlocks)
	fmt.Fprintf(w, "grid:         %v %q\n", r.GridShape, r.GridLabels)
	fmt.Fprintf(w, "cell:         %v %q\n", r.CellShape, r.CellLabels)

	fmt.Fprintln(w, "axes:")
	for _, a := range r.Axes {
		fmt.Fprintf(w, "  %s  len %-5d start %-8g step %-8g %s\n",
			a.Label, a.Len, a.Start, a.Step, a.Unit)
	}

	if len(r.Wavelengths) > 0 {
		fmt.Fprintf(w, "wavelengths:  %v nm\n", r.Wavelengths)
	}
	if r.StartTime != "" {
		fmt.Fprintf(w, "start time:   %s\n", r.StartTime)
	}
	if r.Shear != nil {
		fmt.Fprintf(w, "z shear:      %g\n", *r.Shear)
	}
	if len(r.Attachments) > 0 {
		fmt.Fprintln(w, "attachments:")
		for _, a := range r.Attachments {
			fmt.Fprintf(w, "  %-12s %-8s %s\n", a.Name, a.Type, a.GUID)
		}
	}
}

func init() {
	infoCmd.Flags().StringVarP(&infoFormat, "format", "f", "text",
		"output format: text, json, or yaml")
	rootCmd.AddCommand(infoCmd)
}
