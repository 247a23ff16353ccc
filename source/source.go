// Package source decodes JSON and YAML documents into property bags that a
// compiled skema type can build instances from.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format names an input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrNotObject is returned when the document root is not a mapping.
var ErrNotObject = errors.New("source: document root must be an object")

// FormatFromPath guesses the format from a file extension; YAML for .yaml and
// .yml, JSON otherwise.
func FormatFromPath(path string) Format {
	p := strings.ToLower(path)
	if strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// JSON decodes a JSON object into a bag. Numbers decode as float64.
func JSON(b []byte) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("source: decode json: %w", err)
	}
	return asBag(v)
}

// YAML decodes the first YAML document into a bag.
func YAML(b []byte) (map[string]any, error) {
	var v any
	dec := yaml.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("source: decode yaml: %w", err)
	}
	return asBag(v)
}

// Read decodes everything from r in the given format.
func Read(r io.Reader, f Format) (map[string]any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("source: read: %w", err)
	}
	switch f {
	case FormatYAML:
		return YAML(b)
	case FormatJSON, "":
		return JSON(b)
	default:
		return nil, fmt.Errorf("source: unknown format %q", f)
	}
}

func asBag(v any) (map[string]any, error) {
	if v == nil {
		return map[string]any{}, nil
	}
	m := toStringMap(v)
	if m == nil {
		return nil, ErrNotObject
	}
	return m, nil
}

// toStringMap normalizes decoded maps to map[string]any, dropping non-string
// keys.
func toStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalize(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalize(vv)
		}
		return out
	default:
		return nil
	}
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return toStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalize(t[i])
		}
		return arr
	default:
		return v
	}
}
