package skema

import (
	"fmt"
	"sort"
)

// Hook transforms a field value on read (Config.Get) or after a validated
// write (Config.Set).
type Hook func(value any, rule Rule, key string, def *Definition) any

// Config configures a compiled type.
type Config struct {
	// AttemptCast enables casting: bags into classes and nested schemas,
	// and conversions between primitive kinds.
	AttemptCast bool
	// Strict is accepted and type-checked but currently has no effect.
	Strict bool
	// Required lists fields that reject null and undefined.
	Required []string
	// MapNullToEmptyArray stores an empty array when an array field is
	// assigned null or undefined.
	MapNullToEmptyArray bool
	// Get is applied on every read.
	Get Hook
	// Set is applied after coercion, before the value is stored.
	Set Hook
}

// Option keys recognized in option maps.
const (
	OptAttemptCast         = "attemptCast"
	OptStrict              = "strict"
	OptRequired            = "required"
	OptMapNullToEmptyArray = "mapNullToEmptyArray"
	OptGet                 = "get"
	OptSet                 = "set"
)

// ParseOptions validates an options object and converts it into a Config.
// Unknown keys and values of the wrong type are configuration errors.
func ParseOptions(opts map[string]any) (Config, error) {
	var cfg Config
	// key-sorted order for deterministic error selection
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		v := opts[key]
		switch key {
		case OptAttemptCast:
			b, ok := v.(bool)
			if !ok {
				return Config{}, configErrorf("attemptCast option must be a boolean")
			}
			cfg.AttemptCast = b
		case OptStrict:
			b, ok := v.(bool)
			if !ok {
				return Config{}, configErrorf("strict option must be a boolean")
			}
			cfg.Strict = b
		case OptMapNullToEmptyArray:
			b, ok := v.(bool)
			if !ok {
				return Config{}, configErrorf("mapNullToEmptyArray option must be a boolean")
			}
			cfg.MapNullToEmptyArray = b
		case OptRequired:
			req, err := parseRequired(v)
			if err != nil {
				return Config{}, err
			}
			cfg.Required = req
		case OptGet:
			h, ok := asHook(v)
			if !ok {
				return Config{}, configErrorf("get() hook must be a function")
			}
			cfg.Get = h
		case OptSet:
			h, ok := asHook(v)
			if !ok {
				return Config{}, configErrorf("set() hook must be a function")
			}
			cfg.Set = h
		default:
			return Config{}, configErrorf("option key <%s> is not a valid option", key)
		}
	}
	return cfg, nil
}

func parseRequired(v any) ([]string, error) {
	switch x := v.(type) {
	case []string:
		return append([]string(nil), x...), nil
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, configErrorf("required option must list field names, got %s", typeName(item))
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, configErrorf("required option must be a list of field names")
	}
}

func asHook(v any) (Hook, bool) {
	switch h := v.(type) {
	case Hook:
		return h, h != nil
	case func(any, Rule, string, *Definition) any:
		return h, h != nil
	}
	return nil, false
}

// normalizeOptions accepts the forms Configure takes for its options
// argument.
func normalizeOptions(opts any) (Config, error) {
	switch o := opts.(type) {
	case nil:
		return Config{}, nil
	case Config:
		return o, nil
	case *Config:
		if o == nil {
			return Config{}, nil
		}
		return *o, nil
	case map[string]any:
		return ParseOptions(o)
	default:
		return Config{}, configErrorf("you must provide a valid options object, got %s", fmt.Sprintf("%T", opts))
	}
}
