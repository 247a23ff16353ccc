package skema

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// decodeInto is the default Class constructor: it decodes a property bag or a
// struct into T using json tags for field names.
func decodeInto[T any](v any) (T, error) {
	var out T
	if in, ok := v.(*Instance); ok {
		v = in.Snapshot()
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: "json",
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(v); err != nil {
		return out, fmt.Errorf("cannot construct %T from %T: %w", out, v, err)
	}
	return out, nil
}

// toBag turns a build argument into a property bag. nil builds an empty
// instance; structs (or pointers to structs) are decoded into a bag.
func toBag(v any) (map[string]any, bool, error) {
	switch x := v.(type) {
	case nil:
		return map[string]any{}, true, nil
	case map[string]any:
		return x, true, nil
	case *Instance:
		return x.Snapshot(), true, nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct || IsPrimitive(v) {
		return nil, false, nil
	}
	bag := map[string]any{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &bag,
		TagName: "json",
	})
	if err != nil {
		return nil, true, err
	}
	if err := dec.Decode(rv.Interface()); err != nil {
		return nil, true, err
	}
	return bag, true, nil
}

// asSequence returns the elements of a slice or array value. []byte is not a
// sequence.
func asSequence(v any) ([]any, bool) {
	switch x := v.(type) {
	case []any:
		return x, true
	case []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// typeName names a value's type in error messages.
func typeName(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case undefined:
		return "undefined"
	case *Instance:
		return x.typ.name
	case map[string]any:
		return "object"
	}
	if k := KindOf(v); k != 0 {
		return k.String()
	}
	if _, ok := asSequence(v); ok {
		return "array"
	}
	return fmt.Sprintf("%T", v)
}
