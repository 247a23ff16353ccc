// Package jsonschema holds the JSON Schema model compiled skema types are
// projected into.
package jsonschema

// Dialect is the meta-schema URI written on top-level documents.
const Dialect = "https://json-schema.org/draft/2020-12/schema"

// Schema is the subset of JSON Schema a compiled type can express.
type Schema struct {
	Dialect     string `json:"$schema,omitempty"`
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`
}

// Document returns a shallow copy of s marked with Dialect, for use as a
// standalone document.
func Document(s *Schema) *Schema {
	if s == nil {
		return &Schema{Dialect: Dialect}
	}
	cp := *s
	cp.Dialect = Dialect
	return &cp
}
