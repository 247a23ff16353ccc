// Package prim classifies values into the primitive kinds understood by skema
// and converts between them when casting is enabled.
package prim

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind enumerates the primitive value kinds. The zero value means "not a
// primitive" (objects, slices, class instances, ...).
type Kind int

const (
	None Kind = iota
	Bool
	Text
	Time
	Number
	Symbol
)

// String returns the name used in error messages and definitions.
func (k Kind) String() string {
	switch k {
	case Bool:
		return "boolean"
	case Text:
		return "text"
	case Time:
		return "date"
	case Number:
		return "number"
	case Symbol:
		return "symbol"
	default:
		return "object"
	}
}

// Sym is an opaque symbol. Two symbols are equal only when they come from the
// same NewSym call.
type Sym struct {
	id   uuid.UUID
	desc string
}

// NewSym creates a fresh symbol with an optional description.
func NewSym(desc string) Sym { return Sym{id: uuid.New(), desc: desc} }

// Description returns the description given to NewSym.
func (s Sym) Description() string { return s.desc }

// ID returns the symbol identity.
func (s Sym) ID() uuid.UUID { return s.id }

func (s Sym) String() string { return "Symbol(" + s.desc + ")" }

// MarshalText encodes the symbol as its String form.
func (s Sym) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Classify reports the primitive kind of v, or None.
func Classify(v any) Kind {
	switch v.(type) {
	case bool:
		return Bool
	case string:
		return Text
	case time.Time:
		return Time
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return Number
	case Sym:
		return Symbol
	default:
		return None
	}
}

// ToFloat returns the float64 value of any Go numeric type.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// ErrUnconvertible is returned when no conversion exists between two kinds.
var ErrUnconvertible = errors.New("prim: unconvertible value")

// Convert casts a primitive value to the target kind.
func Convert(v any, to Kind) (any, error) {
	switch to {
	case Text:
		return toText(v)
	case Number:
		return toNumber(v)
	case Bool:
		return toBool(v)
	case Time:
		return toTime(v)
	case Symbol:
		s, err := toText(v)
		if err != nil {
			return nil, err
		}
		return NewSym(s.(string)), nil
	default:
		return nil, fmt.Errorf("%w: unknown target kind %d", ErrUnconvertible, to)
	}
}

func toText(v any) (any, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case time.Time:
		return FormatTime(x), nil
	case Sym:
		return x.String(), nil
	}
	if f, ok := ToFloat(v); ok {
		return FormatFloat(f), nil
	}
	return nil, fmt.Errorf("%w: %T to text", ErrUnconvertible, v)
}

func toNumber(v any) (any, error) {
	switch x := v.(type) {
	case bool:
		if x {
			return float64(1), nil
		}
		return float64(0), nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return float64(0), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrUnconvertible, x)
		}
		return f, nil
	case time.Time:
		return float64(x.UnixMilli()), nil
	case Sym:
		return nil, fmt.Errorf("%w: symbol to number", ErrUnconvertible)
	}
	if f, ok := ToFloat(v); ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %T to number", ErrUnconvertible, v)
}

func toBool(v any) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		return x != "", nil
	case time.Time, Sym:
		return true, nil
	}
	if f, ok := ToFloat(v); ok {
		return f != 0 && !math.IsNaN(f), nil
	}
	return nil, fmt.Errorf("%w: %T to boolean", ErrUnconvertible, v)
}

func toTime(v any) (any, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		t, err := ParseTime(strings.TrimSpace(x))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an RFC3339 time", ErrUnconvertible, x)
		}
		return t, nil
	case bool, Sym:
		return nil, fmt.Errorf("%w: %T to date", ErrUnconvertible, v)
	}
	if f, ok := ToFloat(v); ok {
		if math.IsNaN(f) || f < minTimeMillis || f > maxTimeMillis {
			return nil, fmt.Errorf("%w: %s is not a date in years 0000-9999", ErrUnconvertible, FormatFloat(f))
		}
		return time.UnixMilli(int64(f)).UTC(), nil
	}
	return nil, fmt.Errorf("%w: %T to date", ErrUnconvertible, v)
}

// Unix millisecond bounds of the dates RFC 3339 can represent.
const (
	minTimeMillis = -62167219200000 // 0000-01-01T00:00:00Z
	maxTimeMillis = 253402300799999 // 9999-12-31T23:59:59.999Z
)

// ParseTime accepts RFC3339 and RFC3339Nano (trailing zeros optional).
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

// FormatTime normalizes to UTC and formats with RFC3339Nano.
func FormatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

// FormatFloat renders a float64 using the shortest representation, without an
// exponent below 1e21.
func FormatFloat(f float64) string {
	if math.Abs(f) < 1e21 && (f == 0 || math.Abs(f) >= 1e-6) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// 1e-07 -> 1e-7
	if i := strings.IndexAny(s, "eE"); i >= 0 && i+2 < len(s) {
		exp := strings.TrimLeft(s[i+2:], "0")
		if exp == "" {
			exp = "0"
		}
		s = s[:i+2] + exp
	}
	return s
}
