package core

import (
	"fmt"
	"math"
	"math/big"

	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/numbers"
)

// Bound configures how a BoundedModularPolynomial keeps its degree down
type Bound struct {
	// Results of degree >= DegreeBound are reduced
	DegreeBound int

	// Reducer is the polynomial results are reduced by. nil means
	// x^DegreeBound - x, which vanishes on every element of a prime field of
	// size DegreeBound.
	Reducer *Polynomial
}

// DefaultBound returns the bound phi(m) + 1 with reducer x^(phi(m)+1) - x.
// For a prime m this is x^m - x.
func DefaultBound(modulus *big.Int) (*Bound, error) {
	if _, err := validateModulus(modulus); err != nil {
		return nil, err
	}
	if modulus == nil {
		return nil, fmt.Errorf("%w: bounded polynomials need a modulus", ErrRequiresModulus)
	}
	if !modulus.IsUint64() {
		return nil, fmt.Errorf("%w: default degree bound needs a modulus below 2^64, set DegreeBound explicitly", ErrInvalidBound)
	}

	phi := numbers.EulerTotient(modulus.Uint64())
	if phi >= math.MaxInt {
		return nil, fmt.Errorf("%w: totient %d does not fit a degree", ErrInvalidBound, phi)
	}
	return &Bound{DegreeBound: int(phi) + 1}, nil
}

// WithDegreeBound sets the degree bound
func (b *Bound) WithDegreeBound(n int) *Bound {
	b.DegreeBound = n
	return b
}

// WithReducingPolynomial sets the reducing polynomial
func (b *Bound) WithReducingPolynomial(p *Polynomial) *Bound {
	b.Reducer = p
	return b
}

// Clone creates a copy of the bound
func (b *Bound) Clone() *Bound {
	return &Bound{DegreeBound: b.DegreeBound, Reducer: b.Reducer}
}

// Validate checks that the bound can keep polynomials modulo modulus below
// DegreeBound
func (b *Bound) Validate(modulus *big.Int) error {
	_, err := b.resolve(modulus)
	return err
}

// resolve returns the reducer in the domain of modulus. The default reducer
// x^DegreeBound - x is never materialized: resolve returns nil for it and
// reduction folds exponents instead.
func (b *Bound) resolve(modulus *big.Int) (*Polynomial, error) {
	if b.DegreeBound < 1 {
		return nil, fmt.Errorf("%w: degree bound %d must be positive", ErrInvalidBound, b.DegreeBound)
	}

	reducer := b.Reducer
	if reducer == nil {
		if b.DegreeBound == 1 {
			return nil, fmt.Errorf("%w: default reducer x - x vanishes at degree bound 1", ErrInvalidBound)
		}
		if _, err := validateModulus(modulus); err != nil {
			return nil, err
		}
		if modulus == nil {
			return nil, fmt.Errorf("%w: bounded polynomials need a modulus", ErrRequiresModulus)
		}
		return nil, nil
	}

	if reducer.modulus != nil && reducer.modulus.Cmp(modulus) != 0 {
		return nil, fmt.Errorf("%w: reducing polynomial is taken mod %s, not %s", ErrIncompatibleModulus, reducer.modulus, modulus)
	}
	reducer, err := reducer.withModulus(modulus)
	if err != nil {
		return nil, err
	}

	if reducer.IsZero() || reducer.Degree() < 1 || reducer.Degree() > b.DegreeBound {
		return nil, fmt.Errorf("%w: reducing polynomial %s must have degree in [1, %d]", ErrInvalidBound, reducer, b.DegreeBound)
	}
	if _, err := (domain{modulus: modulus}).inverse(reducer.coefficients[reducer.Degree()]); err != nil {
		return nil, fmt.Errorf("%w: reducing polynomial leading coefficient: %w", ErrInvalidBound, err)
	}
	return reducer, nil
}
