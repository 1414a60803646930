package internal

import "fmt"

type ternFunction struct {
	declaration   *fnStmt
	closure       *env
	isInitializer bool
}

func (f *ternFunction) arity() int {
	return len(f.declaration.params)
}

// call runs the body in a fresh frame parented on the closure, not on
// the caller's frame.
func (f *ternFunction) call(exec *exec, arguments []ternValue) (ternValue, error) {
	environment := newEnv(f.closure)
	for i, param := range f.declaration.params {
		environment.define(param.lexeme, arguments[i])
	}

	result, err := exec.executeBlock(f.declaration.body, environment)
	if err != nil {
		return nil, err
	}

	switch result.kind {
	case completionBreak, completionContinue:
		return nil, newRuntimeError(result.keyword, errNotInLoop(result.keyword.lexeme))
	}

	if f.isInitializer {
		return f.closure.getAt(0, "this"), nil
	}
	if result.kind == completionReturn {
		return result.value, nil
	}
	return nil, nil
}

// bind returns a copy of the method whose closure defines "this".
func (f *ternFunction) bind(object *ternInstance) *ternFunction {
	environment := newEnv(f.closure)
	environment.define("this", object)
	return &ternFunction{
		declaration:   f.declaration,
		closure:       environment,
		isInitializer: f.isInitializer,
	}
}

func (f *ternFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.name.lexeme)
}
