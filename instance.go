package skema

import (
	"github.com/goccy/go-json"
)

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks an absent value. Keys missing from a property bag read as
// Undefined; snapshots omit Undefined fields while nil (null) is kept.
var Undefined any = undefined{}

// IsNull reports whether v is null (nil) or Undefined.
func IsNull(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case undefined:
		return true
	case *Instance:
		return x == nil
	}
	return false
}

// Snapshotter is implemented by values that export themselves as plain data.
type Snapshotter interface {
	Snapshot() map[string]any
}

// Instance is a value built by a Type. Declared fields live in private slots
// behind the type's accessors; undeclared keys of the construction bag are
// kept verbatim. An Instance is not safe for concurrent writes.
type Instance struct {
	typ      *Type
	slots    map[*Accessor]any
	extra    map[string]any
	keys     []string
	snapshot func() map[string]any
}

// Type returns the instance's compiled type.
func (in *Instance) Type() *Type { return in.typ }

// InstanceOf reports whether the instance was built by t or a type derived
// from t.
func (in *Instance) InstanceOf(t *Type) bool { return in.typ.Extends(t) }

// Get reads a field. Declared fields go through their accessor; undeclared
// keys return the copied value; anything else is Undefined.
func (in *Instance) Get(name string) any {
	if acc, ok := in.typ.byName[name]; ok {
		return acc.Get(in)
	}
	if v, ok := in.extra[name]; ok {
		return v
	}
	return Undefined
}

// Set writes a field. Declared fields are validated by their accessor and
// keep their previous value on failure; undeclared keys are stored without
// validation.
func (in *Instance) Set(name string, v any) error {
	if acc, ok := in.typ.byName[name]; ok {
		return acc.Set(in, v)
	}
	if in.extra == nil {
		in.extra = map[string]any{}
	}
	in.extra[name] = v
	return nil
}

// Keys returns the keys of the construction bag, sorted. They are the keys
// Snapshot covers.
func (in *Instance) Keys() []string { return append([]string(nil), in.keys...) }

// Snapshot exports the fields present in the construction bag with their
// current values. Fields assigned later, or declared but absent at
// construction, are not included.
func (in *Instance) Snapshot() map[string]any {
	if in.snapshot == nil {
		return map[string]any{}
	}
	return in.snapshot()
}

// MarshalJSON encodes the snapshot.
func (in *Instance) MarshalJSON() ([]byte, error) {
	return json.Marshal(in.Snapshot())
}

// String renders the snapshot as JSON.
func (in *Instance) String() string {
	b, err := in.MarshalJSON()
	if err != nil {
		return in.typ.name + "{!error: " + err.Error() + "}"
	}
	return string(b)
}

func snapshotOf(in *Instance, keys []string) func() map[string]any {
	return func() map[string]any {
		out := make(map[string]any, len(keys))
		for _, k := range keys {
			v := in.Get(k)
			if v == Undefined {
				continue
			}
			out[k] = snapshotValue(v)
		}
		return out
	}
}

func snapshotValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case undefined:
		return nil
	case Snapshotter:
		return x.Snapshot()
	}
	if items, ok := asSequence(v); ok {
		out := make([]any, len(items))
		for i := range items {
			out[i] = snapshotValue(items[i])
		}
		return out
	}
	return v
}
