package internal

import (
	"math"
	"strconv"
)

type ternNumber float64

// String drops the fractional part of integral numbers: 6.0 prints as 6.
func (n ternNumber) String() string {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
