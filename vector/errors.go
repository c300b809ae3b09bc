package vector

import "errors"

var (
	// ErrMalformed is returned when text does not describe a vector.
	ErrMalformed = errors.New("vector: malformed input")

	// ErrInvalidType is returned when a scalar argument is neither an integer
	// nor a floating-point number.
	ErrInvalidType = errors.New("vector: invalid argument type")

	// ErrTooBig is returned when a result would exceed the codec limits.
	ErrTooBig = errors.New("vector: string or blob too big")
)
