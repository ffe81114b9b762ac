package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/zisraw/image"
)

var hashCmd = &cobra.Command{
	Use:   "hash <file>",
	Short: "Print per-subblock pixel fingerprints",
	Long: `hash prints the 64-bit content fingerprint of every subblock's pixel
payload, one line per subblock in directory order. Identical payloads
hash identically, so the output doubles as a duplicate detector.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := openImage(args[0], image.WithFingerprints())
		if err != nil {
			return err
		}
		defer img.Close()

		out := cmd.OutOrStdout()
		for i := range img.SubBlocks() {
			s := &img.SubBlocks()[i]
			fmt.Fprintf(out, "%4d  %016x  %s\n", i, s.Fingerprint(), chunkCoords(s))
		}

		return nil
	},
}

// chunkCoords renders a subblock's placement on the grid axes, e.g. "C=0 T=1".
// The first two axes are dense within every chunk, so they carry no placement.
func chunkCoords(s *image.SubBlock) string {
	dims := s.Entry.Dimensions
	if len(dims) <= 2 {
		return "-"
	}

	var b strings.Builder
	for _, d := range dims[2:] {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%d", d.Dimension, d.Start)
	}

	return b.String()
}

func init() {
	rootCmd.AddCommand(hashCmd)
}
