package skema_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/skema"
)

func TestCompile_Inheritance(t *testing.T) {
	animal := skema.MustCompile(skema.Define("Animal",
		skema.Field("name", skema.Text),
		skema.Field("legs", skema.Number),
	), skema.Config{AttemptCast: true})
	llama, err := skema.Compile(skema.Define("Llama",
		skema.Field("wool", skema.Bool),
		skema.Field("legs", skema.Text),
	))(nil, animal)
	require.NoError(t, err)

	assert.Same(t, animal, llama.Base())
	assert.True(t, llama.Extends(animal))
	assert.False(t, animal.Extends(llama))

	var names []string
	for _, acc := range llama.Fields() {
		names = append(names, acc.Name()+":"+acc.Owner().Name())
	}
	assert.Equal(t, []string{"name:Animal", "legs:Llama", "wool:Llama"}, names)

	// base accessors keep the base configuration; own ones use the child's
	in, err := llama.New(map[string]any{"name": 7, "legs": "four", "wool": true})
	require.NoError(t, err)
	assert.Equal(t, "7", in.Get("name"))
	assert.Equal(t, "four", in.Get("legs"))
	assert.True(t, in.InstanceOf(animal))
	assert.True(t, in.InstanceOf(llama))

	_, err = llama.New(map[string]any{"legs": 4})
	require.ErrorIs(t, err, skema.ErrTypeMismatch)

	// an instance of a derived type is not the exact class
	holder := skema.MustCompile(skema.Define("Holder", skema.Field("pet", animal)), nil)
	_, err = holder.New(map[string]any{"pet": in})
	require.ErrorIs(t, err, skema.ErrTypeMismatch)
	assert.Equal(t, "TypeError: pet<Animal>: you cannot set pet<Animal> to Llama; use Animal instead", err.Error())

	pet := animal.MustNew(map[string]any{"name": "x"})
	h, err := holder.New(map[string]any{"pet": pet})
	require.NoError(t, err)
	assert.Same(t, pet, h.Get("pet"))
}

func TestCompile_TypeAsClassCasts(t *testing.T) {
	animal := skema.MustCompile(skema.Define("Animal", skema.Field("name", skema.Text)), nil)
	holder := skema.MustCompile(skema.Define("Holder", skema.Field("pet", animal)), skema.Config{AttemptCast: true})

	h, err := holder.New(map[string]any{"pet": map[string]any{"name": "x"}})
	require.NoError(t, err)
	pet, ok := h.Get("pet").(*skema.Instance)
	require.True(t, ok)
	assert.Same(t, animal, pet.Type())

	_, err = holder.New(map[string]any{"pet": map[string]any{"name": 1}})
	e, ok := skema.AsError(err)
	require.True(t, ok)
	assert.Equal(t, skema.CodeInvalidType, e.Code)
	assert.Equal(t, "pet<Animal>.name<text>", e.Trail())
}

func TestAccessor_ForeignInstance(t *testing.T) {
	a := skema.MustCompile(skema.Define("A", skema.Field("x", skema.Text)), nil)
	b := skema.MustCompile(skema.Define("B", skema.Field("x", skema.Text)), nil)

	acc, ok := a.Accessor("x")
	require.True(t, ok)
	err := acc.Set(b.MustNew(nil), "v")
	require.ErrorIs(t, err, skema.ErrConfiguration)
	assert.Equal(t, skema.Undefined, acc.Get(nil))
}

func TestHooks(t *testing.T) {
	var setCalls []string
	typ := skema.MustCompile(llamaDef(), skema.Config{
		Get: func(v any, rule skema.Rule, key string, def *skema.Definition) any {
			if s, ok := v.(string); ok {
				return strings.ToUpper(s)
			}
			return v
		},
		Set: func(v any, rule skema.Rule, key string, def *skema.Definition) any {
			setCalls = append(setCalls, def.Name()+"."+key+"<"+rule.TypeName()+">")
			if n, ok := v.(int); ok {
				return n * 2
			}
			return v
		},
	})

	in, err := typ.New(map[string]any{"name": "abc", "age": 2})
	require.NoError(t, err)
	assert.Equal(t, "ABC", in.Get("name"))
	assert.Equal(t, 4, in.Get("age"))
	assert.Equal(t, []string{"Llama.name<text>", "Llama.age<number>"}, setCalls)

	// a rejected write never reaches the set hook
	require.Error(t, in.Set("age", "x"))
	assert.Len(t, setCalls, 2)
	assert.Equal(t, 4, in.Get("age"))
}

func TestHooks_FromOptionsMap(t *testing.T) {
	get := func(v any, _ skema.Rule, _ string, _ *skema.Definition) any { return "hooked" }
	typ, err := skema.Compile(llamaDef())(map[string]any{"get": get})
	require.NoError(t, err)
	assert.Equal(t, "hooked", typ.MustNew(map[string]any{"name": "x"}).Get("name"))
}

func TestCompile_Errors(t *testing.T) {
	base := skema.MustCompile(llamaDef(), nil)

	cases := []struct {
		name string
		run  func() error
		msg  string
	}{
		{"two parents", func() error {
			_, err := skema.Compile(llamaDef())(nil, base, base)
			return err
		}, "ConfigurationError: invalid argument length for Configure(options[, parent]): got 2 parents"},
		{"nil parent", func() error {
			_, err := skema.Compile(llamaDef())(nil, nil)
			return err
		}, "ConfigurationError: the parent you provide must be a compiled type"},
		{"bad options", func() error {
			_, err := skema.Compile(llamaDef())(5)
			return err
		}, "ConfigurationError: you must provide a valid options object, got int"},
		{"unknown option", func() error {
			_, err := skema.Compile(llamaDef())(map[string]any{"attemptCast": true, "bogus": 1})
			return err
		}, "ConfigurationError: option key <bogus> is not a valid option"},
		{"nil definition", func() error {
			_, err := skema.Compile(nil)(nil)
			return err
		}, "ConfigurationError: a schema definition is required"},
		{"non-bool attemptCast", func() error {
			_, err := skema.Compile(llamaDef())(map[string]any{"attemptCast": "yes"})
			return err
		}, "ConfigurationError: attemptCast option must be a boolean"},
		{"non-bool strict", func() error {
			_, err := skema.Compile(llamaDef())(map[string]any{"strict": 1})
			return err
		}, "ConfigurationError: strict option must be a boolean"},
		{"non-bool mapNullToEmptyArray", func() error {
			_, err := skema.Compile(llamaDef())(map[string]any{"mapNullToEmptyArray": nil})
			return err
		}, "ConfigurationError: mapNullToEmptyArray option must be a boolean"},
		{"non-function get", func() error {
			_, err := skema.Compile(llamaDef())(map[string]any{"get": "upper"})
			return err
		}, "ConfigurationError: get() hook must be a function"},
		{"non-function set", func() error {
			_, err := skema.Compile(llamaDef())(map[string]any{"set": func(v any) any { return v }})
			return err
		}, "ConfigurationError: set() hook must be a function"},
		{"required with non-string entry", func() error {
			_, err := skema.Compile(llamaDef())(map[string]any{"required": []any{"name", 1}})
			return err
		}, "ConfigurationError: required option must list field names, got number"},
		{"required not a list", func() error {
			_, err := skema.Compile(llamaDef())(map[string]any{"required": "name"})
			return err
		}, "ConfigurationError: required option must be a list of field names"},
		{"duplicate field", func() error {
			_, err := skema.Compile(skema.Define("D", skema.Field("a", skema.Text), skema.Field("a", skema.Bool)))(nil)
			return err
		}, `ConfigurationError: definition "D" declares field "a" twice`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			require.ErrorIs(t, err, skema.ErrConfiguration)
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestCompile_StrictAcceptedAndInert(t *testing.T) {
	strict, err := skema.Compile(llamaDef())(map[string]any{"strict": true, "attemptCast": true})
	require.NoError(t, err)
	assert.True(t, strict.Config().Strict)

	loose := skema.MustCompile(llamaDef(), skema.Config{AttemptCast: true})
	bag := map[string]any{"name": 7, "age": "13", "extra": true}
	a, err := strict.New(bag)
	require.NoError(t, err)
	b, err := loose.New(bag)
	require.NoError(t, err)
	assert.Equal(t, b.Snapshot(), a.Snapshot())

	_, err = strict.New(map[string]any{"age": []any{1}})
	require.ErrorIs(t, err, skema.ErrTypeMismatch)
}

func TestCompile_RejectsCycles(t *testing.T) {
	node := skema.Define("Node", skema.Field("value", skema.Number))
	node.Add("children", skema.ArrayOf(skema.Nested(node)))

	_, err := skema.Compile(node)(nil)
	require.ErrorIs(t, err, skema.ErrConfiguration)
	assert.Equal(t, `ConfigurationError: children<array>: cyclic schema definition "Node"`, err.Error())

	// the same definition nested twice side by side is not a cycle
	leaf := skema.Define("Leaf", skema.Field("v", skema.Text))
	_, err = skema.Compile(skema.Define("Pair",
		skema.Field("left", skema.Nested(leaf)),
		skema.Field("right", skema.Nested(leaf)),
	))(nil)
	require.NoError(t, err)
}

func TestType_ConcurrentBuilds(t *testing.T) {
	typ := booksType(t, skema.Config{})
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := typ.New(map[string]any{"books": []any{map[string]any{"author": "A"}}})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestNew_Arguments(t *testing.T) {
	typ := skema.MustCompile(llamaDef(), nil)

	in, err := typ.New(nil)
	require.NoError(t, err)
	assert.Empty(t, in.Keys())

	in, err = typ.New(&struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}{Name: "ABC", Age: 13})
	require.NoError(t, err)
	assert.Equal(t, "ABC", in.Get("name"))
	assert.Equal(t, 13, in.Get("age"))

	_, err = typ.New(5)
	require.ErrorIs(t, err, skema.ErrTypeMismatch)
	assert.Equal(t, "TypeError: you cannot set Llama<Llama> to number; use Llama instead", err.Error())

	assert.Panics(t, func() { typ.MustNew("x") })
}
