package internal

import "fmt"

type ternInstance struct {
	class  *ternClass
	fields map[string]ternValue
}

func newInstance(class *ternClass) *ternInstance {
	return &ternInstance{
		class:  class,
		fields: make(map[string]ternValue),
	}
}

// get looks at fields first, then binds a method found on the class chain.
func (o *ternInstance) get(name *token) (ternValue, error) {
	if val, ok := o.fields[name.lexeme]; ok {
		return val, nil
	}
	if method := o.class.findMethod(name.lexeme); method != nil {
		return method.bind(o), nil
	}
	return nil, newRuntimeError(name, errUndefinedProp(name.lexeme))
}

func (o *ternInstance) set(name *token, value ternValue) {
	o.fields[name.lexeme] = value
}

func (o *ternInstance) String() string {
	return fmt.Sprintf("<%s instance>", o.class.name)
}
