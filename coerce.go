package skema

import (
	"github.com/reoring/skema/internal/prim"
)

// coerce validates value against rule for the named field and returns the
// conforming (possibly cast) value. Failures are annotated with
// field<rule> on the way out, building the error trail frame by frame.
func (t *Type) coerce(value any, rule Rule, field string) (any, error) {
	out, err := t.coerceValue(value, rule, field)
	if err != nil {
		return nil, annotate(err, field, ruleName(rule))
	}
	return out, nil
}

// coerceValue is coerce without the annotation of the current frame. Array
// elements use it so that the trail stays index-free.
func (t *Type) coerceValue(value any, rule Rule, field string) (any, error) {
	if rule == nil || !rule.valid() {
		return nil, newError(CodeUnknownRule, CodeUnknownRule, map[string]string{"field": field})
	}

	if IsNull(value) {
		_, isArray := rule.(*ArrayRule)
		v, isValidator := rule.(*ValidatorRule)
		switch {
		case t.isRequired(field):
			return nil, newError(CodeRequired, CodeRequired, map[string]string{"field": field})
		case isArray && t.cfg.MapNullToEmptyArray:
			return []any{}, nil
		case isValidator:
			return v.call(value, field)
		default:
			return value, nil
		}
	}

	switch r := rule.(type) {
	case *ValidatorRule:
		return r.call(value, field)
	case PrimitiveRule:
		return t.coerceTyped(value, r, field)
	case *NestedRule:
		return t.coerceNested(value, r, field)
	case *ArrayRule:
		return t.coerceArray(value, r, field)
	case classRule:
		return t.coerceTyped(value, r, field)
	default:
		return nil, newError(CodeUnknownRule, CodeUnknownRule, map[string]string{"field": field})
	}
}

// coerceTyped applies the ordered policy for primitive and class rules; the
// first matching step wins.
func (t *Type) coerceTyped(value any, rule Rule, field string) (any, error) {
	cast := t.cfg.AttemptCast
	valueKind := prim.Classify(value)
	pr, ruleIsPrim := rule.(PrimitiveRule)
	same := matches(rule, value)

	// a. exact type required without casting
	if !cast && !same {
		return nil, mismatch(value, rule, field)
	}
	// b. cast a non-primitive value into a class through its constructor
	if cast && valueKind == prim.None && !ruleIsPrim && !same {
		cr := rule.(classRule)
		out, ok, err := cr.construct(value)
		if err != nil {
			// keep the inner trail; constructors may return a shared *Error
			if inner, isSkema := err.(*Error); isSkema {
				return nil, inner.clone()
			}
			e := mismatch(value, rule, field)
			e.Cause = err
			e.Hint = err.Error()
			return nil, e
		}
		if ok {
			value = out
			same = cr.matches(value)
		}
	}
	// c. a class rule must be satisfied by now
	if !ruleIsPrim && !same {
		return nil, mismatch(value, rule, field)
	}
	// d. primitive-to-primitive conversion
	if valueKind != prim.None && ruleIsPrim && valueKind != pr.kind {
		out, err := prim.Convert(value, pr.kind)
		if err != nil {
			e := mismatch(value, rule, field)
			e.Cause = err
			e.Hint = err.Error()
			return nil, e
		}
		return out, nil
	}
	// a non-primitive value never satisfies a primitive rule
	if ruleIsPrim && valueKind == prim.None {
		return nil, mismatch(value, rule, field)
	}
	return value, nil
}

// coerceNested builds an instance of the nested definition's compiled type.
// Instances of that definition are accepted unchanged.
func (t *Type) coerceNested(value any, r *NestedRule, field string) (any, error) {
	if in, ok := value.(*Instance); ok && in.typ.def == r.def {
		return in, nil
	}
	if _, isBag := value.(map[string]any); !isBag && !t.cfg.AttemptCast {
		return nil, mismatch(value, r, field)
	}
	nt, err := t.nestedType(r)
	if err != nil {
		return nil, err
	}
	in, err := nt.New(value)
	if err != nil {
		return nil, err
	}
	return in, nil
}

func matches(rule Rule, v any) bool {
	switch r := rule.(type) {
	case PrimitiveRule:
		return r.matches(v)
	case classRule:
		return r.matches(v)
	}
	return false
}

func mismatch(value any, rule Rule, field string) *Error {
	return newError(CodeInvalidType, CodeInvalidType, map[string]string{
		"field":    field,
		"expected": ruleName(rule),
		"got":      typeName(value),
	})
}
