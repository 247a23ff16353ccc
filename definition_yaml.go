package skema

import (
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Registry resolves rule names used in YAML definitions to classes,
// validators and compiled types.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{rules: map[string]Rule{}} }

// Register binds name to rule. Built-in kind names cannot be shadowed.
func (r *Registry) Register(name string, rule Rule) error {
	if _, builtin := builtinRule(name); builtin {
		return configErrorf("rule name %q is reserved", name)
	}
	if rule == nil || !rule.valid() {
		return configErrorf("rule %q is not a valid rule", name)
	}
	r.mu.Lock()
	r.rules[name] = rule
	r.mu.Unlock()
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, rule Rule) *Registry {
	if err := r.Register(name, rule); err != nil {
		panic(err)
	}
	return r
}

// Lookup resolves a rule name, built-in kinds first.
func (r *Registry) Lookup(name string) (Rule, bool) {
	if rule, ok := builtinRule(name); ok {
		return rule, true
	}
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[name]
	return rule, ok
}

func builtinRule(name string) (Rule, bool) {
	switch strings.ToLower(name) {
	case "boolean", "bool":
		return Bool, true
	case "text", "string":
		return Text, true
	case "date", "time", "datetime":
		return Time, true
	case "number", "numeric":
		return Number, true
	case "symbol":
		return Symbol, true
	}
	return nil, false
}

// LoadDefinition parses a YAML mapping of field names to rules:
//
//	name: text
//	tags: [text]          # array rule
//	favorite:             # nested schema
//	  date: date
//	owner: Person         # resolved through reg
//
// Field order follows the document. Unknown rule names, sequences that do not
// hold exactly one rule, and alias cycles are configuration errors.
func LoadDefinition(name string, data []byte, reg *Registry) (*Definition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		e := configErrorf("invalid definition YAML: %v", err)
		e.Cause = err
		return nil, e
	}
	root := &doc
	if root.Kind == 0 {
		return Define(name), nil
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return Define(name), nil
		}
		root = root.Content[0]
	}
	l := &defLoader{reg: reg, visiting: map[*yaml.Node]bool{}}
	return l.definition(name, root)
}

type defLoader struct {
	reg      *Registry
	visiting map[*yaml.Node]bool
}

func (l *defLoader) definition(name string, n *yaml.Node) (*Definition, error) {
	if n.Kind != yaml.MappingNode {
		return nil, configErrorf("line %d: a definition must be a mapping", n.Line)
	}
	def := Define(name)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		rule, err := l.rule(val)
		if err != nil {
			return nil, annotate(err, key.Value, "")
		}
		def.Add(key.Value, rule)
	}
	return def, nil
}

func (l *defLoader) rule(n *yaml.Node) (Rule, error) {
	if l.visiting[n] {
		return nil, configErrorf("line %d: cyclic schema definition", n.Line)
	}
	l.visiting[n] = true
	defer delete(l.visiting, n)

	switch n.Kind {
	case yaml.AliasNode:
		return l.rule(n.Alias)
	case yaml.ScalarNode:
		rule, ok := l.reg.Lookup(n.Value)
		if !ok {
			return nil, configErrorf("line %d: unknown rule %q", n.Line, n.Value)
		}
		return rule, nil
	case yaml.MappingNode:
		def, err := l.definition("", n)
		if err != nil {
			return nil, err
		}
		return Nested(def), nil
	case yaml.SequenceNode:
		if len(n.Content) != 1 {
			return nil, configErrorf("line %d: an array rule holds exactly one element rule, got %d", n.Line, len(n.Content))
		}
		elem, err := l.rule(n.Content[0])
		if err != nil {
			return nil, err
		}
		return ArrayOf(elem), nil
	default:
		return nil, configErrorf("line %d: unsupported rule node", n.Line)
	}
}
