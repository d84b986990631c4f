package utils

import "math"

func Ptr[T any](v T) *T {
	return &v
}

// StrPtr is a simple helper to get a pointer to a string literal.
func StrPtr(s string) *string {
	return &s
}

func Val[T any](p *T) T {
	if p != nil {
		return *p
	}
	var zero T
	return zero
}

// Round2 rounds half away from zero to two decimals.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
