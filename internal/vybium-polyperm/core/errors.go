package core

import "errors"

// Sentinel errors returned (wrapped) by the arithmetic in this package.
// Callers match them with errors.Is.
var (
	// ErrIncompatibleModulus is returned when two moduloed values with different moduli are combined
	ErrIncompatibleModulus = errors.New("incompatible modulus")

	// ErrNotInvertible is returned when an inverse of a non-unit is requested
	ErrNotInvertible = errors.New("not invertible")

	// ErrDivisionByZero is returned for division by a zero polynomial, residue or scalar
	ErrDivisionByZero = errors.New("division by zero")

	// ErrRequiresModulus is returned when an operation needs a modulus and none is set
	ErrRequiresModulus = errors.New("requires modulus")

	// ErrMalformedExponent is returned for negative exponents
	ErrMalformedExponent = errors.New("malformed exponent")

	// ErrInvalidModulus is returned for moduli smaller than 2
	ErrInvalidModulus = errors.New("invalid modulus")

	// ErrInvalidBound is returned for a degree bound or reducing polynomial that cannot bound degrees
	ErrInvalidBound = errors.New("invalid degree bound")

	// ErrDuplicatePoint is returned when interpolating through two points with the same x
	ErrDuplicatePoint = errors.New("duplicate interpolation point")
)
