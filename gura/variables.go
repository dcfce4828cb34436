package gura

import "os"

// EnvLookup resolves an environment variable by name, mirroring
// os.LookupEnv's (value, ok) signature. It is pluggable so the parser
// stays pure and testable — see WithEnvLookup.
type EnvLookup func(name string) (string, bool)

func osEnvLookup(name string) (string, bool) { return os.LookupEnv(name) }

// lookupVariable resolves name against the variable table first, falling
// back to the environment accessor, per spec.md §4.6. The environment is
// consulted lazily at lookup time, never snapshotted — see SPEC_FULL.md
// §12 ("process-env fallback is looked up lazily").
func (p *parser) lookupVariable(name string) (string, error) {
	if v, ok := p.variables[name]; ok {
		return variableAsText(v), nil
	}
	if v, ok := p.envLookup(name); ok {
		return v, nil
	}
	return "", &VariableNotDefinedError{
		Pos:   p.here(),
		Name:  name,
		Input: p.text,
	}
}

// lookupVariableValue is like lookupVariable but returns the variable's
// native Value rather than a string, for use when $name stands alone as a
// primitive value (e.g. "port: $port") rather than inside a quoted string.
func (p *parser) lookupVariableValue(name string) (Value, error) {
	if v, ok := p.variables[name]; ok {
		return v, nil
	}
	if s, ok := p.envLookup(name); ok {
		return Text(s), nil
	}
	return Value{}, &VariableNotDefinedError{
		Pos:   p.here(),
		Name:  name,
		Input: p.text,
	}
}

// variableAsText renders a variable's stored Value for interpolation into
// a string (basic_string's $name expansion always yields text).
func variableAsText(v Value) string {
	switch v.kind {
	case KindText:
		return v.s
	default:
		rendered, err := dumpValue(v, 0)
		if err != nil {
			return ""
		}
		return rendered
	}
}

// defineVariable records name -> value, failing with DuplicatedVariableError
// if name is already bound.
func (p *parser) defineVariable(name string, v Value, at Position) error {
	if _, exists := p.variables[name]; exists {
		return &DuplicatedVariableError{Pos: at, Name: name, Input: p.text}
	}
	p.variables[name] = v
	return nil
}
