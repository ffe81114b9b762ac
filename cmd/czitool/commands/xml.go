package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var xmlIndent int

var xmlCmd = &cobra.Command{
	Use:   "xml <file>",
	Short: "Print the embedded XML metadata document",
	Long: `xml writes the container's embedded metadata document to stdout.
By default the raw bytes are printed untouched; --indent re-emits the
parsed document pretty-printed with the given indent width.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := openImage(args[0])
		if err != nil {
			return err
		}
		defer img.Close()

		out := cmd.OutOrStdout()
		if xmlIndent > 0 {
			doc := img.Doc()
			doc.Indent(xmlIndent)
			if _, err := doc.WriteTo(out); err != nil {
				return err
			}

			return nil
		}

		if _, err := out.Write(img.RawXML()); err != nil {
			return err
		}
		fmt.Fprintln(out)

		return nil
	},
}

func init() {
	xmlCmd.Flags().IntVar(&xmlIndent, "indent", 0, "pretty-print with this indent width")
	rootCmd.AddCommand(xmlCmd)
}
