package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/skema"
	js "github.com/reoring/skema/jsonschema"
)

func newJSONSchemaCmd() *cobra.Command {
	var sf schemaFlags
	var required []string
	cmd := &cobra.Command{
		Use:   "jsonschema",
		Short: "Print the JSON Schema projection of a schema definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := sf.load()
			if err != nil {
				return report(cmd, err)
			}
			typ, err := skema.Compile(def)(skema.Config{Required: required})
			if err != nil {
				return report(cmd, err)
			}
			out, err := json.MarshalIndent(js.Document(typ.JSONSchema()), "", "  ")
			if err != nil {
				return report(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	sf.register(cmd)
	cmd.Flags().StringSliceVar(&required, "required", nil, "Required field names")
	return cmd
}
