package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/skema"
)

func compile(t *testing.T, fields ...skema.FieldSpec) *skema.Type {
	t.Helper()
	typ, err := skema.Compile(skema.Define("Doc", fields...))(nil)
	require.NoError(t, err)
	return typ
}

func TestEnum(t *testing.T) {
	typ := compile(t, skema.Field("color", Enum("red", "green")), skema.Field("size", Enum(1, 2, 3)))

	in, err := typ.New(map[string]any{"color": "red", "size": 2.0})
	require.NoError(t, err)
	assert.Equal(t, "red", in.Get("color"))
	assert.Equal(t, 2.0, in.Get("size"))

	_, err = typ.New(map[string]any{"color": "blue"})
	require.ErrorIs(t, err, skema.ErrValidator)
	assert.Equal(t, "ValidationError: color<enum>: color must be one of [red, green]", err.Error())

	// null passes through
	in, err = typ.New(map[string]any{"color": nil})
	require.NoError(t, err)
	assert.Nil(t, in.Get("color"))
}

func TestNumber(t *testing.T) {
	typ := compile(t,
		skema.Field("age", Number(Min(0), Max(150), Integer())),
		skema.Field("score", Number(ParseText())),
	)

	_, err := typ.New(map[string]any{"age": 13})
	require.NoError(t, err)

	cases := []struct {
		name string
		bag  map[string]any
		msg  string
	}{
		{"below min", map[string]any{"age": -1}, "age must be >= 0, got -1"},
		{"above max", map[string]any{"age": 200.0}, "age must be <= 150, got 200"},
		{"fraction", map[string]any{"age": 1.5}, "age must be an integer, got 1.5"},
		{"not a number", map[string]any{"age": "13"}, "age must be a number"},
		{"unparsable text", map[string]any{"score": "abc"}, `score must be numeric, got "abc"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := typ.New(tc.bag)
			e, ok := skema.AsError(err)
			require.True(t, ok)
			assert.Equal(t, skema.CodeValidator, e.Code)
			assert.Equal(t, tc.msg, e.Message)
		})
	}

	in, err := typ.New(map[string]any{"score": " 4.5 "})
	require.NoError(t, err)
	assert.Equal(t, 4.5, in.Get("score"))
}

func TestString(t *testing.T) {
	typ := compile(t, skema.Field("code", String(Trim(), MinLen(2), MaxLen(4), Pattern(`^[A-Z]+$`))))

	in, err := typ.New(map[string]any{"code": "  ABC "})
	require.NoError(t, err)
	assert.Equal(t, "ABC", in.Get("code"))

	for _, bad := range []any{"A", "ABCDE", "abc", 12} {
		_, err := typ.New(map[string]any{"code": bad})
		assert.ErrorIs(t, err, skema.ErrValidator, "value %v", bad)
	}
}

func TestAllAndRequired(t *testing.T) {
	typ := compile(t, skema.Field("name", Required(All(String(Trim()), String(MinLen(1))))))

	in, err := typ.New(map[string]any{"name": " x "})
	require.NoError(t, err)
	assert.Equal(t, "x", in.Get("name"))

	_, err = typ.New(map[string]any{"name": "   "})
	require.ErrorIs(t, err, skema.ErrValidator)

	_, err = typ.New(map[string]any{"name": nil})
	require.ErrorIs(t, err, skema.ErrValidator)
	assert.Contains(t, err.Error(), "name is required")

	// absent keys are never assigned
	_, err = typ.New(map[string]any{})
	require.NoError(t, err)
}

func TestExpr(t *testing.T) {
	typ := compile(t,
		skema.Field("age", MustExpr(`value >= 0 && value < 150`)),
		skema.Field("tag", MustExpr(`field == "tag" && value.startsWith("t-")`)),
		skema.Field("bad", MustExpr(`1 + 1`)),
	)

	_, err := typ.New(map[string]any{"age": 13, "tag": "t-1"})
	require.NoError(t, err)

	_, err = typ.New(map[string]any{"age": 13.5e3})
	require.ErrorIs(t, err, skema.ErrValidator)
	assert.Contains(t, err.Error(), `age failed "value >= 0 && value < 150"`)

	_, err = typ.New(map[string]any{"bad": 1})
	require.ErrorIs(t, err, skema.ErrValidator)
	assert.Contains(t, err.Error(), "must evaluate to a bool")

	_, err = Expr(`value >=`)
	require.Error(t, err)
	assert.Panics(t, func() { MustExpr(`)`) })
}

func TestExpr_SeesNestedInstanceAsSnapshot(t *testing.T) {
	inner := compile(t, skema.Field("n", skema.Number))
	outer := compile(t, skema.Field("child", MustExpr(`value.n > 1`)))

	child := inner.MustNew(map[string]any{"n": 2})
	_, err := outer.New(map[string]any{"child": child})
	require.NoError(t, err)

	_, err = outer.New(map[string]any{"child": inner.MustNew(map[string]any{"n": 0})})
	require.ErrorIs(t, err, skema.ErrValidator)
}
