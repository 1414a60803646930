package internal

type callable interface {
	ternValue
	arity() int
	call(exec *exec, arguments []ternValue) (ternValue, error)
}

type nativeFn struct {
	name       string
	arityValue int
	callFn     func(exec *exec, arguments []ternValue) (ternValue, error)
}

func (n *nativeFn) arity() int {
	return n.arityValue
}

func (n *nativeFn) call(exec *exec, arguments []ternValue) (ternValue, error) {
	return n.callFn(exec, arguments)
}

func (n *nativeFn) String() string {
	return "<native fn>"
}
