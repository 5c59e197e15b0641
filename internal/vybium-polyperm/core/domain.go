package core

import (
	"fmt"
	"math/big"
)

// ratZero is shared read-only; never hand it out or mutate it.
var ratZero = new(big.Rat)

// domain is the coefficient ring of a polynomial: the rationals when modulus is
// nil, the integers modulo modulus otherwise. Values already normalized into a
// domain stay there under add, sub and mul.
type domain struct {
	modulus *big.Int
}

// normalize maps an arbitrary rational into the domain. Modulo m a fraction a/b
// becomes a * b^-1, which requires b to be a unit.
func (d domain) normalize(x *big.Rat) (*big.Rat, error) {
	if d.modulus == nil {
		return new(big.Rat).Set(x), nil
	}

	num := new(big.Int).Mod(x.Num(), d.modulus)
	if !x.IsInt() {
		den, err := newResidue(x.Denom(), d.modulus).Inverse()
		if err != nil {
			return nil, fmt.Errorf("coefficient %s has no image mod %s: %w", x.RatString(), d.modulus, err)
		}
		num.Mul(num, den.value).Mod(num, d.modulus)
	}
	return new(big.Rat).SetInt(num), nil
}

func (d domain) reduce(x *big.Rat) *big.Rat {
	if d.modulus != nil {
		x.SetInt(new(big.Int).Mod(x.Num(), d.modulus))
	}
	return x
}

func (d domain) add(a, b *big.Rat) *big.Rat {
	return d.reduce(new(big.Rat).Add(a, b))
}

func (d domain) sub(a, b *big.Rat) *big.Rat {
	return d.reduce(new(big.Rat).Sub(a, b))
}

func (d domain) mul(a, b *big.Rat) *big.Rat {
	return d.reduce(new(big.Rat).Mul(a, b))
}

func (d domain) neg(a *big.Rat) *big.Rat {
	return d.reduce(new(big.Rat).Neg(a))
}

// inverse is the plain reciprocal over the rationals and the residue inverse
// modulo m. x must already be normalized.
func (d domain) inverse(x *big.Rat) (*big.Rat, error) {
	if x.Sign() == 0 {
		return nil, fmt.Errorf("%w: inverse of zero coefficient", ErrDivisionByZero)
	}
	if d.modulus == nil {
		return new(big.Rat).Inv(x), nil
	}

	inv, err := newResidue(x.Num(), d.modulus).Inverse()
	if err != nil {
		return nil, err
	}
	return new(big.Rat).SetInt(inv.value), nil
}

// resolveModulus picks the modulus of a combination of two operands
func resolveModulus(a, b *big.Int) (*big.Int, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil:
		return a, nil
	case a.Cmp(b) != 0:
		return nil, fmt.Errorf("%w: polynomials modulo %s and %s", ErrIncompatibleModulus, a, b)
	default:
		return a, nil
	}
}

func validateModulus(m *big.Int) (*big.Int, error) {
	if m == nil {
		return nil, nil
	}
	if m.Cmp(big.NewInt(1)) <= 0 {
		return nil, fmt.Errorf("%w: modulus %s must be greater than 1", ErrInvalidModulus, m)
	}
	return new(big.Int).Set(m), nil
}
