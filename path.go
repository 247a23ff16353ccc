package skema

import (
	"strconv"
	"strings"
)

// crumb is one frame of an error path: either a field annotated with the
// rule it was checked against, or an element index inside an array.
type crumb struct {
	field string
	rule  string
	index int // >= 0 for element frames
}

// pathRef accumulates crumbs from the deepest failure outward. Frames are
// prepended as the error unwinds, so parts is always outermost-first.
type pathRef struct {
	parts []crumb
}

func (p *pathRef) prependField(field, rule string) {
	p.parts = append([]crumb{{field: field, rule: rule, index: -1}}, p.parts...)
}

func (p *pathRef) prependIndex(i int) {
	p.parts = append([]crumb{{index: i}}, p.parts...)
}

// trail renders the index-free breadcrumb, e.g. books<array>.author<text>.
func (p *pathRef) trail() string {
	if p == nil {
		return ""
	}
	b := &strings.Builder{}
	for _, c := range p.parts {
		if c.index >= 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(c.field)
		if c.rule != "" {
			b.WriteByte('<')
			b.WriteString(c.rule)
			b.WriteByte('>')
		}
	}
	return b.String()
}

// pointer renders an RFC 6901 JSON Pointer including element indices.
func (p *pathRef) pointer() string {
	if p == nil || len(p.parts) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, c := range p.parts {
		b.WriteByte('/')
		if c.index >= 0 {
			b.WriteString(strconv.Itoa(c.index))
			continue
		}
		// escape '~' -> '~0', '/' -> '~1' per RFC6901
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(c.field, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

// fields returns the field names along the path, outermost first.
func (p *pathRef) fields() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.parts))
	for _, c := range p.parts {
		if c.index < 0 {
			out = append(out, c.field)
		}
	}
	return out
}
