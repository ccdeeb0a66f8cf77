package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rockstardevs/ofxtree"
)

func newSerializeCommand(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "serialize [file]",
		Short: "Write a YAML or JSON tree as an OFX file",
		Long: `Serialize reads a tree in the shape printed by parse and writes it as an SGML
style OFX document. Header keys the tree lacks are taken from the configuration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			var doc ofxtree.Document
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return err
			}
			if doc.Tree == nil {
				return errors.New("error - empty document")
			}
			body, ok := doc.Body()
			if !ok {
				return fmt.Errorf("error - document has no %s element", ofxtree.RootTag)
			}
			header := doc.Header.Merge(defaultHeader(opts))
			return writeOutput(cmd, output, func(w io.Writer) error {
				_, err := io.WriteString(w, ofxtree.Serialize(header, body))
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of standard output")
	return cmd
}

// defaultHeader builds the header defaults from the configuration.
func defaultHeader(opts *options) ofxtree.Header {
	var h ofxtree.Header
	if opts.cfg.NewFileUID {
		uid, _ := ofxtree.NewHeader().Get("NEWFILEUID")
		h.Set("NEWFILEUID", uid)
	}
	for _, k := range ofxtree.HeaderKeys {
		if v, ok := opts.cfg.Header[k]; ok {
			h.Set(k, v)
		}
	}
	return h
}
