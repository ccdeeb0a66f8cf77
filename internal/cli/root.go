// Package cli implements the ofxtree command line tool.
//
//	ofxtree
//	├── parse      OFX file to YAML or JSON tree
//	├── serialize  YAML or JSON tree to OFX file
//	├── normalize  OFX body rewritten as well-formed markup
//	└── version
package cli

import (
	goflag "flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/rockstardevs/ofxtree/internal/config"
)

// options are shared by all subcommands.
type options struct {
	cfgFile string
	cfg     *config.Config
}

// NewRootCommand returns the ofxtree command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "ofxtree",
		Short: "Convert OFX files to and from a tree of tagged values",
		Long: `ofxtree reads OFX files in either the SGML or the XML dialect and prints them as
a YAML or JSON tree, and writes such trees back out as OFX.

Example Usage:
  ofxtree parse statement.ofx
  ofxtree parse --format json < statement.qfx
  ofxtree serialize statement.yaml > statement.ofx`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog complains unless the go flag set has been parsed.
			if err := goflag.CommandLine.Parse(nil); err != nil {
				return err
			}
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			glog.V(2).Infof("config: %+v", *cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "Path to a YAML configuration file")
	root.PersistentFlags().AddGoFlagSet(goflag.CommandLine)

	root.AddCommand(
		newParseCommand(opts),
		newSerializeCommand(opts),
		newNormalizeCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	defer glog.Flush()
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		glog.Flush()
		os.Exit(1)
	}
}

// readInput reads the file named by the first argument, or standard input without one.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return ioutil.ReadAll(cmd.InOrStdin())
	}
	return ioutil.ReadFile(args[0])
}

// writeOutput writes data to path, or to the command output when path is empty.
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
