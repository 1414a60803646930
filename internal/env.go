package internal

import "fmt"

// env is one scope frame. Closures keep a pointer to the frame they were
// defined in, so frames live as long as any function that captured them.
type env struct {
	enclosing *env
	values    map[string]ternValue
}

func newEnv(enclosing *env) *env {
	return &env{
		enclosing: enclosing,
		values:    make(map[string]ternValue),
	}
}

func (e *env) get(name *token) (ternValue, error) {
	if value, ok := e.values[name.lexeme]; ok {
		return value, nil
	}
	if e.enclosing != nil {
		return e.enclosing.get(name)
	}
	return nil, newRuntimeError(name, errUndefinedVar(name.lexeme))
}

func (e *env) define(name string, value ternValue) {
	e.values[name] = value
}

func (e *env) assign(name *token, value ternValue) error {
	if _, ok := e.values[name.lexeme]; ok {
		e.values[name.lexeme] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.assign(name, value)
	}
	return newRuntimeError(name, errUndefinedVar(name.lexeme))
}

// ancestor walks distance enclosing links. The resolver guarantees the
// chain is long enough; a short chain is a resolver/evaluator mismatch.
func (e *env) ancestor(distance int) *env {
	environment := e
	for i := 0; i < distance; i++ {
		environment = environment.enclosing
		if environment == nil {
			panic(fmt.Sprintf("environment chain shorter than resolved distance %d", distance))
		}
	}
	return environment
}

func (e *env) getAt(distance int, name string) ternValue {
	scope := e.ancestor(distance)
	value, ok := scope.values[name]
	if !ok {
		panic(fmt.Sprintf("resolved variable %q missing at distance %d", name, distance))
	}
	return value
}

func (e *env) assignAt(distance int, name *token, value ternValue) {
	scope := e.ancestor(distance)
	if _, ok := scope.values[name.lexeme]; !ok {
		panic(fmt.Sprintf("resolved variable %q missing at distance %d", name.lexeme, distance))
	}
	scope.values[name.lexeme] = value
}
