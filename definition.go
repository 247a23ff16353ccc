package skema

// FieldSpec is one (name, rule) entry of a Definition.
type FieldSpec struct {
	Name string
	Rule Rule
}

// Field declares a field for Define.
func Field(name string, rule Rule) FieldSpec { return FieldSpec{Name: name, Rule: rule} }

// Definition is an ordered mapping from field name to rule. Field order is
// the order accessors are created and base-first build assignment runs in; it
// has no effect on validation outcomes.
type Definition struct {
	name   string
	fields []FieldSpec
}

// Define creates a named definition. The name shows up in error trails when
// the definition is nested, and as the compiled type's name.
func Define(name string, fields ...FieldSpec) *Definition {
	d := &Definition{name: name}
	d.fields = append(d.fields, fields...)
	return d
}

// Add appends a field. It allows building definitions that refer to
// themselves, which Configure then rejects as cyclic.
func (d *Definition) Add(name string, rule Rule) *Definition {
	d.fields = append(d.fields, FieldSpec{Name: name, Rule: rule})
	return d
}

// Name returns the definition name.
func (d *Definition) Name() string { return d.name }

// Len returns the number of declared fields.
func (d *Definition) Len() int { return len(d.fields) }

// Fields returns a copy of the declared fields in order.
func (d *Definition) Fields() []FieldSpec { return append([]FieldSpec(nil), d.fields...) }

// Lookup returns the rule declared for name.
func (d *Definition) Lookup(name string) (Rule, bool) {
	for _, f := range d.fields {
		if f.Name == name {
			return f.Rule, true
		}
	}
	return nil, false
}

// check validates field names and rejects cyclic nesting. Nil rules are left
// to fail at validation time with CodeUnknownRule.
func (d *Definition) check() error {
	return d.checkWith(map[*Definition]bool{})
}

func (d *Definition) checkWith(onStack map[*Definition]bool) error {
	if onStack[d] {
		return configErrorf("cyclic schema definition %q", d.displayName())
	}
	onStack[d] = true
	defer delete(onStack, d)

	seen := make(map[string]struct{}, len(d.fields))
	for _, f := range d.fields {
		if f.Name == "" {
			return configErrorf("definition %q has a field with an empty name", d.displayName())
		}
		if _, dup := seen[f.Name]; dup {
			return configErrorf("definition %q declares field %q twice", d.displayName(), f.Name)
		}
		seen[f.Name] = struct{}{}
		if err := checkRule(f.Rule, onStack); err != nil {
			if e, ok := err.(*Error); ok {
				return annotate(e, f.Name, ruleName(f.Rule))
			}
			return err
		}
	}
	return nil
}

func checkRule(r Rule, onStack map[*Definition]bool) error {
	switch x := r.(type) {
	case *NestedRule:
		if x.valid() {
			return x.def.checkWith(onStack)
		}
	case *ArrayRule:
		if x.valid() {
			return checkRule(x.elem, onStack)
		}
	}
	return nil
}

func (d *Definition) displayName() string {
	if d.name == "" {
		return "object"
	}
	return d.name
}
