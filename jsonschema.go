package skema

import (
	"sort"

	"github.com/reoring/skema/internal/prim"
	js "github.com/reoring/skema/jsonschema"
)

// JSONSchema projects the compiled type into a JSON Schema. Required fields
// come from Config.Required; undeclared keys are accepted on build, so
// additionalProperties is always true.
func (t *Type) JSONSchema() *js.Schema {
	return objectSchema(t.name, t.order, t.cfg)
}

func objectSchema(title string, fields []*Accessor, cfg Config) *js.Schema {
	props := make(map[string]*js.Schema, len(fields))
	declared := make(map[string]struct{}, len(fields))
	for _, acc := range fields {
		props[acc.name] = ruleSchema(acc.rule, cfg)
		declared[acc.name] = struct{}{}
	}
	// Required list (sorted for deterministic output)
	var req []string
	for _, k := range cfg.Required {
		if _, ok := declared[k]; ok {
			req = append(req, k)
		}
	}
	sort.Strings(req)
	return &js.Schema{Type: "object", Title: title, Properties: props, Required: req, AdditionalProperties: true}
}

func ruleSchema(r Rule, cfg Config) *js.Schema {
	if r == nil || !r.valid() {
		return &js.Schema{}
	}
	switch x := r.(type) {
	case PrimitiveRule:
		switch x.kind {
		case prim.Text:
			return &js.Schema{Type: "string"}
		case prim.Number:
			return &js.Schema{Type: "number"}
		case prim.Bool:
			return &js.Schema{Type: "boolean"}
		case prim.Time:
			return &js.Schema{Type: "string", Format: "date-time"}
		}
		return &js.Schema{Type: "string", Title: x.TypeName(), Description: "opaque symbol, exported as Symbol(description)"}
	case *NestedRule:
		fields := make([]*Accessor, 0, len(x.def.fields))
		for _, f := range x.def.fields {
			fields = append(fields, &Accessor{name: f.Name, rule: f.Rule})
		}
		return objectSchema(x.TypeName(), fields, cfg)
	case *ArrayRule:
		return &js.Schema{Type: "array", Items: ruleSchema(x.elem, cfg)}
	case *Type:
		return x.JSONSchema()
	case *ValidatorRule:
		return &js.Schema{Title: x.TypeName(), Description: "checked by a custom validator"}
	default:
		return &js.Schema{Title: r.TypeName()}
	}
}
