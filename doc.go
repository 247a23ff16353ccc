// Package skema compiles declarative schemas into buildable types whose
// instances validate and coerce every write.
//
// A Definition maps field names to rules. Rules are primitive kinds (Bool,
// Text, Time, Number, Symbol), class references (ClassOf, or another compiled
// *Type), inline nested schemas (Nested), arrays (ArrayOf) and custom
// validators (MarkAsValidator). Compile turns a definition into a Configurer,
// which takes the options object and an optional parent type:
//
//	llama, err := skema.Compile(skema.Define("Llama",
//	    skema.Field("name", skema.Text),
//	    skema.Field("age", skema.Number),
//	))(skema.Config{AttemptCast: true, Required: []string{"name"}})
//
//	in, err := llama.New(map[string]any{"name": "ABC", "age": "13"})
//	in.Get("age") // 13.0
//
// Every assignment, at build time or later through Instance.Set, runs the
// coercion engine. Failures are *Error values carrying a breadcrumb trail such
// as books<array>.author<text>, a JSON Pointer, and a code matching one of the
// sentinels ErrTypeMismatch, ErrRequired, ErrValidator or ErrConfiguration.
//
// Layout:
//   - validators/: ready-made validator rules (enum, numeric, text, CEL).
//   - source/: JSON and YAML decoding into property bags.
//   - jsonschema/: JSON Schema projection of compiled types.
//   - metrics/: Prometheus Observer.
//   - middleware/: net/http (plus gin and echo) request body validation.
//   - cmd/skema: the CLI.
package skema
