package internal

import "strconv"

type ternString string

func (s ternString) String() string {
	return string(s)
}

// Repr quotes the string, used when printing trees.
func (s ternString) Repr() string {
	return strconv.Quote(string(s))
}
