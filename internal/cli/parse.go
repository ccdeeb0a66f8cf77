package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rockstardevs/ofxtree"
	"github.com/rockstardevs/ofxtree/internal/config"
)

func newParseCommand(opts *options) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an OFX file and print its tree",
		Long: `Parse reads an OFX file, or standard input, in either dialect and prints the
parsed tree with its header under the "header" key.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "" {
				opts.cfg.Format = format
			}
			if err := opts.cfg.Validate(); err != nil {
				return err
			}
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			doc, err := ofxtree.ParseReader(bytes.NewReader(data))
			if err != nil {
				return err
			}
			glog.V(1).Infof("parsed %s document, normalized=%t", doc.Dialect(), doc.Normalized)
			return writeOutput(cmd, output, func(w io.Writer) error {
				return encodeDocument(w, doc, opts.cfg)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format, yaml or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of standard output")
	return cmd
}

func encodeDocument(w io.Writer, doc *ofxtree.Document, cfg *config.Config) error {
	if cfg.Format == config.FormatJSON {
		data, err := json.MarshalIndent(doc, "", strings.Repeat(" ", cfg.Indent))
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}
	enc := yaml.NewEncoder(w)
	if cfg.Indent > 0 {
		enc.SetIndent(cfg.Indent)
	}
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
