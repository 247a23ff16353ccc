// Package validators provides ready-made validator rules for skema
// definitions: enumerations, numeric and text constraints, CEL expressions
// and composition.
//
// Every constructor returns a *skema.ValidatorRule, so the coercion engine
// delegates the whole field to it. Null and undefined pass through unchanged
// unless the rule is wrapped with Required.
package validators

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/reoring/skema"
	"github.com/reoring/skema/internal/prim"
)

// Enum accepts values equal to one of values. Numbers compare by value, so
// Enum(1, 2) accepts float64(2).
func Enum(values ...any) *skema.ValidatorRule {
	return skema.NamedValidator("enum", func(v any, field string) (any, error) {
		if skema.IsNull(v) {
			return v, nil
		}
		for _, want := range values {
			if equal(v, want) {
				return v, nil
			}
		}
		return nil, skema.ValidationErrorf("%s must be one of %s", field, listValues(values))
	})
}

func equal(a, b any) bool {
	fa, okA := prim.ToFloat(a)
	fb, okB := prim.ToFloat(b)
	if okA && okB {
		return fa == fb
	}
	if prim.Classify(a) == prim.None || prim.Classify(b) == prim.None {
		return false
	}
	return a == b
}

func listValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ---- Number ----

// NumberOption constrains Number.
type NumberOption func(*numberRule)

type numberRule struct {
	min, max *float64
	integer  bool
	cast     bool
}

// Min sets an inclusive lower bound.
func Min(n float64) NumberOption { return func(r *numberRule) { r.min = &n } }

// Max sets an inclusive upper bound.
func Max(n float64) NumberOption { return func(r *numberRule) { r.max = &n } }

// Integer rejects values with a fractional part.
func Integer() NumberOption { return func(r *numberRule) { r.integer = true } }

// ParseText accepts numeric text and stores the parsed float64.
func ParseText() NumberOption { return func(r *numberRule) { r.cast = true } }

// Number accepts any Go numeric value satisfying the options. The value is
// stored as given; parsed text is stored as float64.
func Number(opts ...NumberOption) *skema.ValidatorRule {
	r := &numberRule{}
	for _, o := range opts {
		o(r)
	}
	return skema.NamedValidator("number", func(v any, field string) (any, error) {
		if skema.IsNull(v) {
			return v, nil
		}
		if s, ok := v.(string); ok && r.cast {
			out, err := prim.Convert(s, prim.Number)
			if err != nil {
				return nil, skema.ValidationErrorf("%s must be numeric, got %q", field, s)
			}
			v = out
		}
		f, ok := prim.ToFloat(v)
		if !ok || math.IsNaN(f) {
			return nil, skema.ValidationErrorf("%s must be a number", field)
		}
		if r.integer && f != math.Trunc(f) {
			return nil, skema.ValidationErrorf("%s must be an integer, got %s", field, prim.FormatFloat(f))
		}
		if r.min != nil && f < *r.min {
			return nil, skema.ValidationErrorf("%s must be >= %s, got %s", field, prim.FormatFloat(*r.min), prim.FormatFloat(f))
		}
		if r.max != nil && f > *r.max {
			return nil, skema.ValidationErrorf("%s must be <= %s, got %s", field, prim.FormatFloat(*r.max), prim.FormatFloat(f))
		}
		return v, nil
	})
}

// ---- String ----

// StringOption constrains String.
type StringOption func(*stringRule)

type stringRule struct {
	minLen, maxLen int
	pattern        *regexp.Regexp
	trim           bool
}

// MinLen sets the minimum length in runes.
func MinLen(n int) StringOption { return func(r *stringRule) { r.minLen = n } }

// MaxLen sets the maximum length in runes; zero means unbounded.
func MaxLen(n int) StringOption { return func(r *stringRule) { r.maxLen = n } }

// Pattern requires a regular expression match. It panics when expr does not
// compile, like regexp.MustCompile.
func Pattern(expr string) StringOption {
	re := regexp.MustCompile(expr)
	return func(r *stringRule) { r.pattern = re }
}

// Trim removes surrounding whitespace before checking, and stores the trimmed
// text.
func Trim() StringOption { return func(r *stringRule) { r.trim = true } }

// String accepts text satisfying the options.
func String(opts ...StringOption) *skema.ValidatorRule {
	r := &stringRule{}
	for _, o := range opts {
		o(r)
	}
	return skema.NamedValidator("string", func(v any, field string) (any, error) {
		if skema.IsNull(v) {
			return v, nil
		}
		s, ok := v.(string)
		if !ok {
			return nil, skema.ValidationErrorf("%s must be text", field)
		}
		if r.trim {
			s = strings.TrimSpace(s)
		}
		n := utf8.RuneCountInString(s)
		if n < r.minLen {
			return nil, skema.ValidationErrorf("%s must be at least %d characters", field, r.minLen)
		}
		if r.maxLen > 0 && n > r.maxLen {
			return nil, skema.ValidationErrorf("%s must be at most %d characters", field, r.maxLen)
		}
		if r.pattern != nil && !r.pattern.MatchString(s) {
			return nil, skema.ValidationErrorf("%s must match %s", field, r.pattern.String())
		}
		return s, nil
	})
}

// ---- Composition ----

// All runs rules in order, feeding each one the previous output. The first
// failure wins.
func All(rules ...*skema.ValidatorRule) *skema.ValidatorRule {
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.TypeName())
	}
	return skema.NamedValidator(strings.Join(names, "&"), func(v any, field string) (any, error) {
		for _, r := range rules {
			out, err := r.Func()(v, field)
			if err != nil {
				return nil, err
			}
			v = out
		}
		return v, nil
	})
}

// Required rejects null and undefined before delegating to rule.
func Required(rule *skema.ValidatorRule) *skema.ValidatorRule {
	return skema.NamedValidator(rule.TypeName(), func(v any, field string) (any, error) {
		if skema.IsNull(v) {
			return nil, skema.ValidationErrorf("%s is required", field)
		}
		return rule.Func()(v, field)
	})
}
