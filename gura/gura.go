// Package gura implements a codec for the Gura configuration format: a
// recursive-descent parser that turns Gura text into a Value tree, and a
// canonical serializer that turns a Value tree back into Gura text.
package gura

// Option configures a Load call's pluggable collaborators.
type Option func(*parser)

// WithFileLoader overrides how imported files are read. The default reads
// from the host filesystem via os.ReadFile.
func WithFileLoader(loader FileLoader) Option {
	return func(p *parser) { p.loader = loader }
}

// WithEnvLookup overrides how environment-variable fallback is resolved for
// variables with no in-document definition. The default wraps os.LookupEnv.
func WithEnvLookup(lookup EnvLookup) Option {
	return func(p *parser) { p.envLookup = lookup }
}

// Load parses text as a Gura document, splicing in any `import "path"`
// directives resolved relative to baseDir through the configured
// FileLoader. The returned Value is always an Object — a document
// consisting only of comments and blank lines parses to an empty Object,
// never a null result.
func Load(text string, baseDir string, opts ...Option) (Value, error) {
	p := newParser(nil, nil)
	for _, opt := range opts {
		opt(p)
	}
	p.restart(text)

	if err := p.computeImports(baseDir); err != nil {
		return Value{}, err
	}

	obj, _, err := expressionRule(p)
	if err != nil {
		return Value{}, err
	}

	for {
		if _, err := uselessLineRule(p); err != nil {
			break
		}
	}

	if err := p.assertEnd(); err != nil {
		return Value{}, err
	}

	return FromObject(obj), nil
}
