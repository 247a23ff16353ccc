package skema

import (
	"fmt"

	"github.com/reoring/skema/internal/prim"
)

// RuleKind tags the closed set of field rules.
type RuleKind int

const (
	KindPrimitive RuleKind = iota
	KindClass
	KindNested
	KindArray
	KindValidator
)

// Rule is the declared expectation for a field's value. The set of
// implementations is closed: PrimitiveRule, *Class[T], *Type, *NestedRule,
// *ArrayRule and *ValidatorRule.
type Rule interface {
	Kind() RuleKind
	// TypeName is the name used in error trails, e.g. author<text>.
	TypeName() string
	// valid reports whether the rule is usable; it is safe on nil receivers.
	valid() bool
}

// ---- Primitive ----

// PrimitiveKind enumerates the primitive scalar kinds.
type PrimitiveKind = prim.Kind

// Sym is an opaque symbol value, the value type of the Symbol rule.
type Sym = prim.Sym

// NewSym creates a fresh symbol. Symbols compare equal only to themselves.
func NewSym(desc string) Sym { return prim.NewSym(desc) }

// PrimitiveRule matches one primitive kind.
type PrimitiveRule struct{ kind prim.Kind }

// Primitive rules. Number accepts every Go integer and float type; Time
// matches time.Time; Symbol matches Sym.
var (
	Bool   = PrimitiveRule{kind: prim.Bool}
	Text   = PrimitiveRule{kind: prim.Text}
	Time   = PrimitiveRule{kind: prim.Time}
	Number = PrimitiveRule{kind: prim.Number}
	Symbol = PrimitiveRule{kind: prim.Symbol}
)

func (PrimitiveRule) Kind() RuleKind         { return KindPrimitive }
func (r PrimitiveRule) TypeName() string     { return r.kind.String() }
func (r PrimitiveRule) Primitive() prim.Kind { return r.kind }
func (r PrimitiveRule) valid() bool          { return r.kind != prim.None }
func (r PrimitiveRule) matches(v any) bool   { return prim.Classify(v) == r.kind }
func (r PrimitiveRule) String() string       { return r.TypeName() }

// KindOf reports the primitive kind of a value (zero when it is not one).
func KindOf(v any) PrimitiveKind { return prim.Classify(v) }

// IsPrimitive reports whether v belongs to a primitive kind.
func IsPrimitive(v any) bool { return prim.Classify(v) != prim.None }

// ---- Class reference ----

// classRule is implemented by every non-primitive type reference: *Class[T]
// and compiled *Type values.
type classRule interface {
	Rule
	// matches reports exact type identity.
	matches(v any) bool
	// construct is the single-argument build operation used when casting.
	// ok is false when the class has none.
	construct(v any) (out any, ok bool, err error)
}

// Class references an arbitrary Go type T. A value conforms when its dynamic
// type is exactly T.
type Class[T any] struct {
	name string
	ctor func(any) (T, error)
}

// ClassOption configures a Class.
type ClassOption[T any] func(*Class[T])

// Construct sets the single-argument constructor used when casting.
func Construct[T any](fn func(any) (T, error)) ClassOption[T] {
	return func(c *Class[T]) { c.ctor = fn }
}

// NoConstructor disables casting into the class.
func NoConstructor[T any]() ClassOption[T] {
	return func(c *Class[T]) { c.ctor = nil }
}

// ClassOf declares a class reference to T. By default casting decodes a
// property bag (or another struct) into T with mapstructure, honoring json tags.
func ClassOf[T any](name string, opts ...ClassOption[T]) *Class[T] {
	if name == "" {
		var zero T
		name = fmt.Sprintf("%T", zero)
	}
	c := &Class[T]{name: name, ctor: decodeInto[T]}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (*Class[T]) Kind() RuleKind     { return KindClass }
func (c *Class[T]) TypeName() string { return c.name }
func (c *Class[T]) valid() bool      { return c != nil }
func (c *Class[T]) String() string   { return c.name }

func (c *Class[T]) matches(v any) bool {
	_, ok := v.(T)
	return ok
}

func (c *Class[T]) construct(v any) (any, bool, error) {
	if c.ctor == nil {
		return nil, false, nil
	}
	out, err := c.ctor(v)
	if err != nil {
		return nil, true, err
	}
	return out, true, nil
}

// ---- Nested schema ----

// NestedRule embeds an inline definition. It is compiled lazily, sharing the
// configuration of the type that declares it.
type NestedRule struct {
	def *Definition
}

// Nested declares an inline nested schema.
func Nested(def *Definition) *NestedRule { return &NestedRule{def: def} }

// Definition returns the nested definition.
func (n *NestedRule) Definition() *Definition { return n.def }

func (*NestedRule) Kind() RuleKind { return KindNested }
func (n *NestedRule) TypeName() string {
	if n.def != nil && n.def.name != "" {
		return n.def.name
	}
	return "object"
}
func (n *NestedRule) valid() bool { return n != nil && n.def != nil }

// ---- Array ----

// ArrayRule means "array whose every element conforms to Elem".
type ArrayRule struct {
	elem Rule
}

// ArrayOf declares an array rule.
func ArrayOf(elem Rule) *ArrayRule { return &ArrayRule{elem: elem} }

// Elem returns the element rule.
func (a *ArrayRule) Elem() Rule { return a.elem }

func (*ArrayRule) Kind() RuleKind   { return KindArray }
func (*ArrayRule) TypeName() string { return "array" }
func (a *ArrayRule) valid() bool    { return a != nil }

// ---- Validator ----

// ValidatorFunc owns validation and coercion of one field. The returned
// value is stored as-is.
type ValidatorFunc func(value any, field string) (any, error)

// ValidatorRule is a function tagged as a custom validator.
type ValidatorRule struct {
	name string
	fn   ValidatorFunc
}

// MarkAsValidator flags fn as a validator rule so the coercion engine
// delegates to it instead of matching types.
func MarkAsValidator(fn ValidatorFunc) *ValidatorRule {
	return &ValidatorRule{name: "validator", fn: fn}
}

// NamedValidator is MarkAsValidator with a name shown in error trails.
func NamedValidator(name string, fn ValidatorFunc) *ValidatorRule {
	return &ValidatorRule{name: name, fn: fn}
}

// Func returns the wrapped function.
func (v *ValidatorRule) Func() ValidatorFunc { return v.fn }

func (*ValidatorRule) Kind() RuleKind     { return KindValidator }
func (v *ValidatorRule) TypeName() string { return v.name }
func (v *ValidatorRule) valid() bool      { return v != nil && v.fn != nil }

// call runs the validator and turns foreign errors into validator failures.
func (v *ValidatorRule) call(value any, field string) (any, error) {
	out, err := v.fn(value, field)
	if err == nil {
		return out, nil
	}
	if e, ok := err.(*Error); ok {
		// validators may return a shared *Error; annotate a copy
		return nil, e.clone()
	}
	return nil, &Error{Code: CodeValidator, Message: err.Error(), Cause: err}
}

// ruleName renders a rule for error trails; nil rules have no name.
func ruleName(r Rule) string {
	if r == nil || !r.valid() {
		return ""
	}
	return r.TypeName()
}
