package skema

// Configurer is the second stage of Compile: it takes the options object and
// an optional base type and returns the compiled type.
//
// opts may be nil, a Config, a *Config or an options map (see ParseOptions).
// At most one parent may be given; the result extends it.
type Configurer func(opts any, parent ...*Type) (*Type, error)

// Compile consumes a definition and returns its Configurer.
//
//	llama, err := skema.Compile(skema.Define("Llama",
//	    skema.Field("name", skema.Text),
//	    skema.Field("age", skema.Number),
//	))(skema.Config{AttemptCast: false})
//	in, err := llama.New(map[string]any{"name": "ABC", "age": 13})
func Compile(def *Definition) Configurer {
	return func(opts any, parent ...*Type) (*Type, error) {
		if len(parent) > 1 {
			return nil, configErrorf("invalid argument length for Configure(options[, parent]): got %d parents", len(parent))
		}
		cfg, err := normalizeOptions(opts)
		if err != nil {
			return nil, err
		}
		var base *Type
		if len(parent) == 1 {
			if parent[0] == nil {
				return nil, configErrorf("the parent you provide must be a compiled type")
			}
			base = parent[0]
		}
		return configure(def, cfg, base)
	}
}

// MustCompile compiles and configures in one step, panicking on error.
func MustCompile(def *Definition, opts any, parent ...*Type) *Type {
	t, err := Compile(def)(opts, parent...)
	if err != nil {
		panic(err)
	}
	return t
}

func configure(def *Definition, cfg Config, base *Type) (*Type, error) {
	if def == nil {
		return nil, configErrorf("a schema definition is required")
	}
	if err := def.check(); err != nil {
		return nil, err
	}
	t := newType(def, cfg, base)
	ev := logger().Debug().Str("type", t.name).Int("fields", len(t.own)).Bool("attemptCast", cfg.AttemptCast)
	if base != nil {
		ev = ev.Str("base", base.name)
	}
	ev.Msg("skema: type compiled")
	return t, nil
}
