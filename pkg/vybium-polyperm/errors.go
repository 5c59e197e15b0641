package vybiumpolyperm

import (
	"errors"
	"fmt"

	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/bridge"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/core"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/perm"
)

// ErrorCode represents a Vybium polyperm error code
type ErrorCode int

const (
	// ErrUnknown represents an unknown error
	ErrUnknown ErrorCode = iota

	// ErrInvalidConfig represents an invalid configuration error
	ErrInvalidConfig

	// ErrIncompatibleModulus represents a combination of values with different moduli
	ErrIncompatibleModulus

	// ErrNotInvertible represents an inverse of a non-unit
	ErrNotInvertible

	// ErrDivisionByZero represents a division by zero
	ErrDivisionByZero

	// ErrRequiresModulus represents a modular operation on a plain value
	ErrRequiresModulus

	// ErrNotBijective represents a function that is not a permutation
	ErrNotBijective

	// ErrMalformedExponent represents a negative exponent
	ErrMalformedExponent

	// ErrInvalidInput represents an invalid input error
	ErrInvalidInput
)

var codeNames = map[ErrorCode]string{
	ErrUnknown:             "unknown",
	ErrInvalidConfig:       "invalid config",
	ErrIncompatibleModulus: "incompatible modulus",
	ErrNotInvertible:       "not invertible",
	ErrDivisionByZero:      "division by zero",
	ErrRequiresModulus:     "requires modulus",
	ErrNotBijective:        "not bijective",
	ErrMalformedExponent:   "malformed exponent",
	ErrInvalidInput:        "invalid input",
}

// String returns the name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Error represents a Vybium polyperm error
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vybium-polyperm error [%d]: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("vybium-polyperm error [%d]: %s", e.Code, e.Message)
}

// Unwrap returns the cause of the error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// codes maps internal sentinels to public codes; the first match wins
var codes = []struct {
	sentinel error
	code     ErrorCode
}{
	{core.ErrIncompatibleModulus, ErrIncompatibleModulus},
	{core.ErrNotInvertible, ErrNotInvertible},
	{core.ErrDivisionByZero, ErrDivisionByZero},
	{core.ErrRequiresModulus, ErrRequiresModulus},
	{core.ErrMalformedExponent, ErrMalformedExponent},
	{perm.ErrNotBijective, ErrNotBijective},
	{perm.ErrDuplicateElement, ErrInvalidInput},
	{core.ErrInvalidModulus, ErrInvalidInput},
	{core.ErrInvalidBound, ErrInvalidInput},
	{core.ErrDuplicatePoint, ErrInvalidInput},
	{bridge.ErrOutOfDomain, ErrInvalidInput},
	{bridge.ErrDomainTooLarge, ErrInvalidInput},
}

// wrapError converts an internal error into an *Error. nil stays nil and
// errors that already carry a code are returned unchanged.
func wrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	var coded *Error
	if errors.As(err, &coded) {
		return err
	}

	code := ErrUnknown
	for _, c := range codes {
		if errors.Is(err, c.sentinel) {
			code = c.code
			break
		}
	}
	return &Error{Code: code, Message: message, Cause: err}
}

// CodeOf returns the code carried by err, or ErrUnknown
func CodeOf(err error) ErrorCode {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ErrUnknown
}
