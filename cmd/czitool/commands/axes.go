package commands

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/arloliu/zisraw/axis"
	"github.com/arloliu/zisraw/format"
)

var axesAll bool

// axesTruncateAt is the length above which a coordinate listing is
// abbreviated unless --all is set.
const axesTruncateAt = 16

var axesCmd = &cobra.Command{
	Use:   "axes <file>",
	Short: "Print per-axis physical coordinates",
	Long: `axes lists every axis of the assembled pixel array with its full
coordinate sequence in physical units. Long sequences are abbreviated;
--all prints every coordinate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := openImage(args[0])
		if err != nil {
			return err
		}
		defer img.Close()

		out := cmd.OutOrStdout()

		// Directory order: dense cell axes, then grid axes, then the
		// synthetic component axis.
		labels := slices.Clone(img.SubBlocks()[0].Labels())
		if img.PixelType().ComponentCount() > 1 {
			labels = append(labels, byte(format.DimSample))
		}
		for _, l := range labels {
			d := format.Dimension(l)
			coords, ok := img.Layout().Get(d)
			if !ok {
				continue
			}
			printAxis(out, d, coords)
		}

		return nil
	},
}

func printAxis(w io.Writer, d format.Dimension, c axis.Coords) {
	unit := c.Unit.String()
	if unit == "" {
		unit = "index"
	}
	fmt.Fprintf(w, "%s  (%d coordinates, %s)\n", d, c.Len(), unit)

	if axesAll || c.Len() <= axesTruncateAt {
		for i := range c.Len() {
			fmt.Fprintf(w, "  [%4d]  %g\n", i, c.At(i))
		}

		return
	}

	const edge = 4
	for i := range edge {
		fmt.Fprintf(w, "  [%4d]  %g\n", i, c.At(i))
	}
	fmt.Fprintf(w, "  ... %d more ...\n", c.Len()-2*edge)
	for i := c.Len() - edge; i < c.Len(); i++ {
		fmt.Fprintf(w, "  [%4d]  %g\n", i, c.At(i))
	}
}

func init() {
	axesCmd.Flags().BoolVar(&axesAll, "all", false, "print every coordinate, no abbreviation")
	rootCmd.AddCommand(axesCmd)
}
