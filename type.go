package skema

import (
	"sort"
	"sync"
)

// Type is a compiled schema: the buildable type produced by Configure. It is
// immutable after compilation; the lazily compiled nested types are cached
// under a mutex, so one Type can build instances from many goroutines.
type Type struct {
	name     string
	def      *Definition
	cfg      Config
	base     *Type
	required map[string]struct{}

	own    []*Accessor          // accessors declared by this type, definition order
	order  []*Accessor          // resolved accessors, base fields first
	byName map[string]*Accessor // resolved accessor per field name

	mu     sync.Mutex
	nested map[*NestedRule]*Type
}

// Ensure *Type can be used as a class reference rule.
var _ classRule = (*Type)(nil)

// Accessor is the generated getter/setter pair of one declared field. Its
// backing slot lives in each Instance and is reachable only through it.
type Accessor struct {
	owner *Type
	name  string
	rule  Rule
}

func newType(def *Definition, cfg Config, base *Type) *Type {
	t := &Type{
		name:     def.displayName(),
		def:      def,
		cfg:      cfg,
		base:     base,
		required: make(map[string]struct{}, len(cfg.Required)),
		byName:   map[string]*Accessor{},
	}
	t.cfg.Required = append([]string(nil), cfg.Required...)
	for _, k := range cfg.Required {
		t.required[k] = struct{}{}
	}
	for _, f := range def.fields {
		t.own = append(t.own, &Accessor{owner: t, name: f.Name, rule: f.Rule})
	}

	// resolve: base accessors first, own accessors override by name in place
	if base != nil {
		for _, acc := range base.order {
			t.byName[acc.name] = acc
			t.order = append(t.order, acc)
		}
	}
	for _, acc := range t.own {
		if prev, ok := t.byName[acc.name]; ok {
			for i := range t.order {
				if t.order[i] == prev {
					t.order[i] = acc
				}
			}
		} else {
			t.order = append(t.order, acc)
		}
		t.byName[acc.name] = acc
	}
	return t
}

// Name returns the type name (the definition name, or "object").
func (t *Type) Name() string { return t.name }

// Definition returns the definition the type was compiled from.
func (t *Type) Definition() *Definition { return t.def }

// Config returns a copy of the configuration.
func (t *Type) Config() Config {
	c := t.cfg
	c.Required = append([]string(nil), t.cfg.Required...)
	return c
}

// Base returns the base type, or nil.
func (t *Type) Base() *Type { return t.base }

// Fields returns the resolved accessors, base fields first.
func (t *Type) Fields() []*Accessor { return append([]*Accessor(nil), t.order...) }

// Accessor returns the resolved accessor of a declared field.
func (t *Type) Accessor(name string) (*Accessor, bool) {
	a, ok := t.byName[name]
	return a, ok
}

// Extends reports whether t is o or derives from it.
func (t *Type) Extends(o *Type) bool {
	for c := t; c != nil; c = c.base {
		if c == o {
			return true
		}
	}
	return false
}

func (t *Type) isRequired(field string) bool {
	_, ok := t.required[field]
	return ok
}

// New builds an instance from a property bag. Declared keys go through their
// accessors (base fields first, in definition order); undeclared keys are
// copied verbatim. A struct is decoded into a bag first; nil builds an empty
// instance. On failure no instance is returned.
func (t *Type) New(v any) (*Instance, error) {
	in, err := t.build(v)
	observer().ObserveBuild(t.name, err)
	if err != nil {
		logger().Debug().Str("type", t.name).Err(err).Msg("skema: build failed")
		return nil, err
	}
	return in, nil
}

// MustNew is like New but panics on error.
func (t *Type) MustNew(v any) *Instance {
	in, err := t.New(v)
	if err != nil {
		panic(err)
	}
	return in
}

func (t *Type) build(v any) (*Instance, error) {
	bag, ok, err := toBag(v)
	if !ok || err != nil {
		e := newError(CodeInvalidType, CodeInvalidType, map[string]string{
			"field":    t.name,
			"expected": t.name,
			"got":      typeName(v),
		})
		e.Cause = err
		return nil, e
	}

	in := &Instance{typ: t, slots: make(map[*Accessor]any, len(t.order))}
	for _, acc := range t.order {
		val, present := bag[acc.name]
		if !present {
			continue
		}
		if err := acc.Set(in, val); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(bag))
	for k := range bag {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, declared := t.byName[k]; declared {
			continue
		}
		if in.extra == nil {
			in.extra = map[string]any{}
		}
		in.extra[k] = bag[k]
	}
	in.keys = keys
	in.snapshot = snapshotOf(in, keys)
	return in, nil
}

// nestedType compiles a nested definition on first use with this type's
// configuration and caches the result.
func (t *Type) nestedType(r *NestedRule) (*Type, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if nt, ok := t.nested[r]; ok {
		return nt, nil
	}
	nt, err := configure(r.def, t.cfg, nil)
	if err != nil {
		return nil, err
	}
	if t.nested == nil {
		t.nested = map[*NestedRule]*Type{}
	}
	t.nested[r] = nt
	logger().Debug().Str("type", t.name).Str("nested", nt.name).Msg("skema: nested type compiled")
	return nt, nil
}

// ---- Rule implementation: a compiled type is a class reference ----

func (*Type) Kind() RuleKind     { return KindClass }
func (t *Type) TypeName() string { return t.name }
func (t *Type) valid() bool      { return t != nil }
func (t *Type) String() string   { return t.name }

// matches requires the exact type, not a derived one.
func (t *Type) matches(v any) bool {
	in, ok := v.(*Instance)
	return ok && in != nil && in.typ == t
}

func (t *Type) construct(v any) (any, bool, error) {
	in, err := t.New(v)
	if err != nil {
		return nil, true, err
	}
	return in, true, nil
}

// ---- Accessor ----

// Name returns the field name.
func (a *Accessor) Name() string { return a.name }

// Rule returns the field rule.
func (a *Accessor) Rule() Rule { return a.rule }

// Owner returns the type that declared the field.
func (a *Accessor) Owner() *Type { return a.owner }

// Set coerces v, applies the Set hook and stores the result. On failure the
// stored value is left unchanged.
func (a *Accessor) Set(in *Instance, v any) error {
	if in == nil || !in.typ.Extends(a.owner) {
		return configErrorf("field %q of %s cannot be set on this instance", a.name, a.owner.name)
	}
	val, err := a.owner.coerce(v, a.rule, a.name)
	observer().ObserveAssign(in.typ.name, a.name, err)
	if err != nil {
		return err
	}
	if h := a.owner.cfg.Set; h != nil {
		val = h(val, a.rule, a.name, a.owner.def)
	}
	in.slots[a] = val
	return nil
}

// Get returns the stored value, passed through the Get hook when one is
// configured. Unset fields read as Undefined.
func (a *Accessor) Get(in *Instance) any {
	if in == nil {
		return Undefined
	}
	v, ok := in.slots[a]
	if !ok {
		v = Undefined
	}
	if h := a.owner.cfg.Get; h != nil {
		return h(v, a.rule, a.name, a.owner.def)
	}
	return v
}
