package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/skema"
	"github.com/reoring/skema/source"
)

type validateOptions struct {
	schema     schemaFlags
	input      string
	format     string
	cast       bool
	strict     bool
	nullArrays bool
	required   []string
}

func newValidateCmd() *cobra.Command {
	o := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Build an instance from a document and print its snapshot",
		Long: `Compiles the schema, builds an instance from the input document (a file, or
stdin with "-") and prints the instance snapshot as JSON. On failure the error
and the JSON Pointer of the offending value are printed and the exit status is 1.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, o)
		},
	}
	o.schema.register(cmd)
	cmd.Flags().StringVarP(&o.input, "input", "i", "-", `Input document ("-" reads stdin)`)
	cmd.Flags().StringVar(&o.format, "format", "", "Input format: json or yaml (default: from the file extension)")
	cmd.Flags().BoolVar(&o.cast, "cast", false, "Enable casting between kinds")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "Enable strict mode")
	cmd.Flags().BoolVar(&o.nullArrays, "null-arrays", false, "Store an empty array for null array fields")
	cmd.Flags().StringSliceVar(&o.required, "required", nil, "Required field names")
	return cmd
}

func runValidate(cmd *cobra.Command, o *validateOptions) error {
	def, err := o.schema.load()
	if err != nil {
		return report(cmd, err)
	}
	typ, err := skema.Compile(def)(skema.Config{
		AttemptCast:         o.cast,
		Strict:              o.strict,
		Required:            o.required,
		MapNullToEmptyArray: o.nullArrays,
	})
	if err != nil {
		return report(cmd, err)
	}

	bag, err := readInput(cmd, o)
	if err != nil {
		return report(cmd, err)
	}
	in, err := typ.New(bag)
	if err != nil {
		return report(cmd, err)
	}
	out, err := json.MarshalIndent(in.Snapshot(), "", "  ")
	if err != nil {
		return report(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func readInput(cmd *cobra.Command, o *validateOptions) (map[string]any, error) {
	format := source.Format(o.format)
	var r io.Reader
	if o.input == "-" {
		r = cmd.InOrStdin()
		if format == "" {
			format = source.FormatJSON
		}
	} else {
		f, err := os.Open(o.input)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		defer f.Close()
		r = f
		if format == "" {
			format = source.FormatFromPath(o.input)
		}
	}
	return source.Read(r, format)
}

// reportedError marks an error already printed by report.
type reportedError struct{ err error }

func (r *reportedError) Error() string { return r.err.Error() }
func (r *reportedError) Unwrap() error { return r.err }

// report prints err, with its JSON Pointer when it is a skema error, so the
// command exits non-zero without printing it twice.
func report(cmd *cobra.Command, err error) error {
	w := cmd.ErrOrStderr()
	fmt.Fprintln(w, err)
	if e, ok := skema.AsError(err); ok && e.Pointer() != "/" {
		fmt.Fprintf(w, "  at %s\n", e.Pointer())
	}
	return &reportedError{err: err}
}
