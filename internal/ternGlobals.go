package internal

import "time"

func defineGlobals(globals *env) {
	globals.define("clock", &nativeFn{
		name:       "clock",
		arityValue: 0,
		callFn: func(exec *exec, arguments []ternValue) (ternValue, error) {
			return ternNumber(float64(time.Now().UnixNano()) / float64(time.Second)), nil
		},
	})
}
