package internal

// truthy: nil and false are false, everything else (0 and "" included) is true.
func truthy(value ternValue) bool {
	if value == nil {
		return false
	}
	if b, isBool := value.(ternBool); isBool {
		return bool(b)
	}
	return true
}

// isEqual: nil equals only nil, values of different kinds are never
// equal, NaN is not equal to itself and objects compare by identity.
func isEqual(left, right ternValue) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	switch l := left.(type) {
	case ternNumber:
		r, ok := right.(ternNumber)
		return ok && l == r
	case ternString:
		r, ok := right.(ternString)
		return ok && l == r
	case ternBool:
		r, ok := right.(ternBool)
		return ok && l == r
	default:
		return left == right
	}
}

func numberOperand(operator *token, operand ternValue) (ternNumber, error) {
	if n, ok := operand.(ternNumber); ok {
		return n, nil
	}
	return 0, newRuntimeError(operator, errOperandNumber)
}

func numberOperands(operator *token, left, right ternValue) (ternNumber, ternNumber, error) {
	l, okLeft := left.(ternNumber)
	r, okRight := right.(ternNumber)
	if !okLeft || !okRight {
		return 0, 0, newRuntimeError(operator, errOperandsNumbers)
	}
	return l, r, nil
}

type operatorApply func(operator *token, left, right ternValue) (ternValue, error)

func numeric(op func(l, r ternNumber) ternValue) operatorApply {
	return func(operator *token, left, right ternValue) (ternValue, error) {
		l, r, err := numberOperands(operator, left, right)
		if err != nil {
			return nil, err
		}
		return op(l, r), nil
	}
}

// add accepts two numbers or two strings; mixed operands are an error.
func add(operator *token, left, right ternValue) (ternValue, error) {
	switch l := left.(type) {
	case ternNumber:
		if r, ok := right.(ternNumber); ok {
			return l + r, nil
		}
	case ternString:
		if r, ok := right.(ternString); ok {
			return l + r, nil
		}
	}
	return nil, newRuntimeError(operator, errOperandsAdd)
}

var binaryOperations = map[tokenType]operatorApply{
	tkPlus: add,
	tkMinus: numeric(func(l, r ternNumber) ternValue {
		return l - r
	}),
	tkStar: numeric(func(l, r ternNumber) ternValue {
		return l * r
	}),
	tkSlash: numeric(func(l, r ternNumber) ternValue {
		return l / r
	}),
	tkGreater: numeric(func(l, r ternNumber) ternValue {
		return ternBool(l > r)
	}),
	tkGreaterEqual: numeric(func(l, r ternNumber) ternValue {
		return ternBool(l >= r)
	}),
	tkLess: numeric(func(l, r ternNumber) ternValue {
		return ternBool(l < r)
	}),
	tkLessEqual: numeric(func(l, r ternNumber) ternValue {
		return ternBool(l <= r)
	}),
	tkEqualEqual: func(_ *token, left, right ternValue) (ternValue, error) {
		return ternBool(isEqual(left, right)), nil
	},
	tkBangEqual: func(_ *token, left, right ternValue) (ternValue, error) {
		return ternBool(!isEqual(left, right)), nil
	},
}
