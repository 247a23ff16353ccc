package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reoring/skema"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "skema",
		Short:         "skema validates documents against declarative schemas",
		Long:          `skema compiles a YAML schema definition and builds validated instances from JSON or YAML documents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !verbose {
				skema.SetLogger(zerolog.Nop())
				return
			}
			l := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				Level(zerolog.DebugLevel).
				With().Timestamp().Logger()
			skema.SetLogger(l)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log compilation and build events to stderr")

	root.AddCommand(newValidateCmd(), newJSONSchemaCmd())
	return root
}

// schemaFlags are shared by the subcommands that compile a definition.
type schemaFlags struct {
	path string
	name string
}

func (f *schemaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "schema", "s", "", "Path to the YAML schema definition")
	cmd.Flags().StringVar(&f.name, "name", "", "Type name (default: schema file name)")
	_ = cmd.MarkFlagRequired("schema")
}

func (f *schemaFlags) load() (*skema.Definition, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	name := f.name
	if name == "" {
		base := filepath.Base(f.path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return skema.LoadDefinition(name, data, nil)
}
