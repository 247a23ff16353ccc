package skema_test

import (
	"fmt"

	"github.com/reoring/skema"
)

func ExampleCompile() {
	llama, err := skema.Compile(skema.Define("Llama",
		skema.Field("name", skema.Text),
		skema.Field("age", skema.Number),
	))(skema.Config{AttemptCast: false})
	if err != nil {
		panic(err)
	}

	in, err := llama.New(map[string]any{"name": "ABC", "age": 13})
	fmt.Println(in.Get("name"), in.Get("age"), err)

	_, err = llama.New(map[string]any{"name": "ABC", "age": "13"})
	fmt.Println(err)
	// Output:
	// ABC 13 <nil>
	// TypeError: age<number>: you cannot set age<number> to text; use number instead
}

func ExampleArrayOf() {
	library := skema.MustCompile(skema.Define("Library",
		skema.Field("books", skema.ArrayOf(skema.Nested(skema.Define("Book",
			skema.Field("author", skema.Text),
			skema.Field("title", skema.Text),
		)))),
	), nil)

	in, _ := library.New(map[string]any{"books": []any{map[string]any{"author": "A", "title": "T"}}})
	fmt.Println(in)

	_, err := library.New(map[string]any{"books": []any{map[string]any{"author": 1}}})
	e, _ := skema.AsError(err)
	fmt.Println(e.Trail(), e.Pointer())
	// Output:
	// {"books":[{"author":"A","title":"T"}]}
	// books<array>.author<text> /books/0/author
}

func ExampleMarkAsValidator() {
	even := skema.MarkAsValidator(func(v any, field string) (any, error) {
		n, ok := v.(int)
		if !ok || n%2 != 0 {
			return nil, skema.ValidationErrorf("%s must be an even int", field)
		}
		return n, nil
	})
	typ := skema.MustCompile(skema.Define("Pair", skema.Field("size", even)), nil)

	_, err := typ.New(map[string]any{"size": 3})
	fmt.Println(err)
	// Output:
	// ValidationError: size<validator>: size must be an even int
}

func ExampleConfigurer_parent() {
	animal := skema.MustCompile(skema.Define("Animal", skema.Field("name", skema.Text)), nil)
	llama := skema.MustCompile(skema.Define("Llama", skema.Field("wool", skema.Bool)), nil, animal)

	in := llama.MustNew(map[string]any{"name": "ABC", "wool": true})
	fmt.Println(in.InstanceOf(animal), in.Get("name"), in.Get("wool"))
	// Output:
	// true ABC true
}

func ExampleLoadDefinition() {
	def, err := skema.LoadDefinition("Owner", []byte("name: text\ntags: [text]\n"), nil)
	if err != nil {
		panic(err)
	}
	typ := skema.MustCompile(def, map[string]any{"attemptCast": true, "required": []any{"name"}})

	in, _ := typ.New(map[string]any{"name": "ABC", "tags": []any{1, true}})
	fmt.Println(in)
	// Output:
	// {"name":"ABC","tags":["1","true"]}
}
