package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/rockstardevs/ofxtree"
)

func newNormalizeCommand(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Print the OFX body rewritten as well-formed markup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			_, body, err := ofxtree.SplitHeader(string(data))
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, func(w io.Writer) error {
				_, err := io.WriteString(w, ofxtree.GetNormalizer().Normalize(body)+"\n")
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of standard output")
	return cmd
}
