package internal

import "fmt"

type ternClass struct {
	name       string
	superclass *ternClass
	methods    map[string]*ternFunction
}

// findMethod searches the class and then its superclass chain.
func (c *ternClass) findMethod(name string) *ternFunction {
	if method, ok := c.methods[name]; ok {
		return method
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil
}

func (c *ternClass) arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.arity()
	}
	return 0
}

func (c *ternClass) call(exec *exec, arguments []ternValue) (ternValue, error) {
	obj := newInstance(c)
	if init := c.findMethod("init"); init != nil {
		if _, err := init.bind(obj).call(exec, arguments); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func (c *ternClass) String() string {
	return fmt.Sprintf("<%s class>", c.name)
}
