package scss

import "errors"

var (
	// ErrMalformedCalc is returned for a calc() template whose "%s" placeholders
	// do not match the substituted values.
	ErrMalformedCalc = errors.New("malformed calc substitution")
	// ErrMalformedKeyframes is returned when a keyframes block starts with a bare
	// expression instead of a keyframe selector.
	ErrMalformedKeyframes = errors.New("malformed keyframes body")
)
