package source

import "strconv"

// AtoiOrZero converts a numeric OOXML attribute value to an int.
//
// Values that are not plain decimal integers coerce to 0. Timing attributes
// regularly carry the literal "indefinite" (root node durations, click-triggered
// start delays), and those must contribute nothing to a computed duration, so
// the zero fallback is the intended result rather than a swallowed error.
func AtoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// IntAttr returns nil for an absent attribute and the coerced value otherwise.
func IntAttr(s *string) *int {
	if s == nil {
		return nil
	}
	n := AtoiOrZero(*s)
	return &n
}
