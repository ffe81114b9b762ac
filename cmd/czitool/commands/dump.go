package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/arloliu/zisraw/compress"
)

var (
	dumpCell  int
	dumpCodec string
	dumpOut   string
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Export grid cells as raw or compressed pixel files",
	Long: `dump writes the pixel payload of grid cells to individual files, one
file per cell, optionally compressed. Pixels are written exactly as
stored: leading-axis-fastest element order, little-endian samples.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec, err := compress.ByName(dumpCodec)
		if err != nil {
			return err
		}

		img, err := openImage(args[0])
		if err != nil {
			return err
		}
		defer img.Close()

		grid := img.Grid()
		first, last := 0, grid.NumCells()-1
		if dumpCell >= 0 {
			if dumpCell >= grid.NumCells() {
				return errors.Newf("cell %d out of range, grid holds %d cells",
					dumpCell, grid.NumCells())
			}
			first, last = dumpCell, dumpCell
		}

		if err := os.MkdirAll(dumpOut, 0o755); err != nil {
			return err
		}

		base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		for i := first; i <= last; i++ {
			payload, err := codec.Compress(grid.Cell(i).Bytes())
			if err != nil {
				return errors.Wrapf(err, "cell %d", i)
			}

			path := filepath.Join(dumpOut,
				fmt.Sprintf("%s-cell%03d.%s", base, i, dumpExt(dumpCodec)))
			if err := os.WriteFile(path, payload, 0o644); err != nil {
				return err
			}
			slog.Info("wrote cell", "path", path, "bytes", len(payload))
		}

		return nil
	},
}

// dumpExt picks the file extension for a codec name.
func dumpExt(codec string) string {
	switch codec {
	case "none":
		return "raw"
	case "zstd":
		return "zst"
	default:
		return codec
	}
}

func init() {
	dumpCmd.Flags().IntVar(&dumpCell, "cell", -1, "flat cell index to export, -1 for all")
	dumpCmd.Flags().StringVarP(&dumpCodec, "codec", "c", "none",
		fmt.Sprintf("compression codec: %v", compress.Names()))
	dumpCmd.Flags().StringVarP(&dumpOut, "out", "o", ".", "output directory")
	rootCmd.AddCommand(dumpCmd)
}
