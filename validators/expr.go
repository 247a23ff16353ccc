package validators

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/reoring/skema"
)

// Expr compiles a CEL expression into a validator. The value being assigned
// is bound to `value` and the field name to `field`; the expression must
// evaluate to a bool, and false rejects the value:
//
//	validators.Expr(`value >= 0 && value < 150`)
//
// Instances are exposed as their snapshot and symbols as their text form.
func Expr(expr string) (*skema.ValidatorRule, error) {
	env, err := cel.NewEnv(
		cel.Variable("value", cel.DynType),
		cel.Variable("field", cel.StringType),
		cel.CrossTypeNumericComparisons(true),
	)
	if err != nil {
		return nil, fmt.Errorf("validators: cel environment: %w", err)
	}
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("validators: compile %q: %w", expr, iss.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("validators: program %q: %w", expr, err)
	}
	return skema.NamedValidator("expr", func(v any, field string) (any, error) {
		if skema.IsNull(v) {
			return v, nil
		}
		out, _, err := prg.Eval(map[string]any{"value": celValue(v), "field": field})
		if err != nil {
			return nil, fmt.Errorf("%s: evaluating %q: %w", field, expr, err)
		}
		ok, isBool := out.Value().(bool)
		if !isBool {
			return nil, skema.ValidationErrorf("%s: expression %q must evaluate to a bool, got %T", field, expr, out.Value())
		}
		if !ok {
			return nil, skema.ValidationErrorf("%s failed %q", field, expr)
		}
		return v, nil
	}), nil
}

// MustExpr is like Expr but panics when the expression does not compile.
func MustExpr(expr string) *skema.ValidatorRule {
	r, err := Expr(expr)
	if err != nil {
		panic(err)
	}
	return r
}

func celValue(v any) any {
	switch x := v.(type) {
	case skema.Snapshotter:
		return celValue(x.Snapshot())
	case skema.Sym:
		return x.String()
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = celValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = celValue(x[i])
		}
		return out
	}
	return v
}
