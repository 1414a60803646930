package internal

import "fmt"

// ternValue is a runtime value. The set of implementations is closed:
// ternBool, ternNumber, ternString, *ternFunction, *nativeFn, *ternClass
// and *ternInstance. nil is represented by a nil ternValue.
type ternValue interface {
	fmt.Stringer
	isTernValue()
}

func (ternBool) isTernValue()      {}
func (ternNumber) isTernValue()    {}
func (ternString) isTernValue()    {}
func (*ternFunction) isTernValue() {}
func (*nativeFn) isTernValue()     {}
func (*ternClass) isTernValue()    {}
func (*ternInstance) isTernValue() {}

// stringify renders a value the way print shows it.
func stringify(value ternValue) string {
	if value == nil {
		return "nil"
	}
	return value.String()
}
