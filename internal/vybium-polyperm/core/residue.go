package core

import (
	"fmt"
	"math/big"

	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/numbers"
)

// Residue is the canonical representative of an integer modulo a fixed modulus.
// Residues are immutable: every operation returns a new value. The zero value is
// not usable; construct residues with NewResidue.
type Residue struct {
	value   *big.Int
	modulus *big.Int
}

// NewResidue creates value mod modulus. The modulus must be at least 2.
func NewResidue(value, modulus *big.Int) (Residue, error) {
	if modulus == nil || modulus.Cmp(big.NewInt(1)) <= 0 {
		return Residue{}, fmt.Errorf("%w: modulus must be greater than 1", ErrInvalidModulus)
	}
	m := new(big.Int).Set(modulus)
	return Residue{value: new(big.Int).Mod(value, m), modulus: m}, nil
}

// NewResidueFromInt64 creates value mod modulus from int64s
func NewResidueFromInt64(value, modulus int64) (Residue, error) {
	return NewResidue(big.NewInt(value), big.NewInt(modulus))
}

// newResidue skips validation; m must already be a valid, unshared modulus.
func newResidue(value, m *big.Int) Residue {
	return Residue{value: new(big.Int).Mod(value, m), modulus: m}
}

// Value returns a copy of the representative in [0, modulus)
func (r Residue) Value() *big.Int {
	return new(big.Int).Set(r.value)
}

// Modulus returns a copy of the modulus
func (r Residue) Modulus() *big.Int {
	return new(big.Int).Set(r.modulus)
}

// IsZero reports whether the residue is 0
func (r Residue) IsZero() bool {
	return r.value.Sign() == 0
}

// IsOne reports whether the residue is 1
func (r Residue) IsOne() bool {
	return r.value.Cmp(big.NewInt(1)) == 0
}

// Equal reports whether both residues have the same modulus and value
func (r Residue) Equal(other Residue) bool {
	return r.modulus.Cmp(other.modulus) == 0 && r.value.Cmp(other.value) == 0
}

// Lift maps a plain integer into the ring of r
func (r Residue) Lift(x *big.Int) Residue {
	return newResidue(x, r.modulus)
}

func (r Residue) compatible(other Residue) error {
	if r.modulus.Cmp(other.modulus) != 0 {
		return fmt.Errorf("%w: %s and %s", ErrIncompatibleModulus, r.modulus, other.modulus)
	}
	return nil
}

// Add returns r + other
func (r Residue) Add(other Residue) (Residue, error) {
	if err := r.compatible(other); err != nil {
		return Residue{}, err
	}
	return newResidue(new(big.Int).Add(r.value, other.value), r.modulus), nil
}

// Sub returns r - other
func (r Residue) Sub(other Residue) (Residue, error) {
	if err := r.compatible(other); err != nil {
		return Residue{}, err
	}
	return newResidue(new(big.Int).Sub(r.value, other.value), r.modulus), nil
}

// Mul returns r * other
func (r Residue) Mul(other Residue) (Residue, error) {
	if err := r.compatible(other); err != nil {
		return Residue{}, err
	}
	return newResidue(new(big.Int).Mul(r.value, other.value), r.modulus), nil
}

// Div returns r * other^-1
func (r Residue) Div(other Residue) (Residue, error) {
	if err := r.compatible(other); err != nil {
		return Residue{}, err
	}
	if other.IsZero() {
		return Residue{}, fmt.Errorf("%w: residue division by 0 (mod %s)", ErrDivisionByZero, r.modulus)
	}
	inv, err := other.Inverse()
	if err != nil {
		return Residue{}, fmt.Errorf("division failed: %w", err)
	}
	return r.Mul(inv)
}

// Neg returns the additive inverse
func (r Residue) Neg() Residue {
	return newResidue(new(big.Int).Neg(r.value), r.modulus)
}

// Pow computes r^e by square-and-multiply. Negative exponents are rejected;
// use Inverse first.
func (r Residue) Pow(e *big.Int) (Residue, error) {
	if e.Sign() < 0 {
		return Residue{}, fmt.Errorf("%w: residue exponent %s is negative", ErrMalformedExponent, e)
	}

	accum := big.NewInt(1)
	square := new(big.Int).Set(r.value)
	for i := 0; i < e.BitLen(); i++ {
		if e.Bit(i) == 1 {
			accum.Mul(accum, square).Mod(accum, r.modulus)
		}
		square.Mul(square, square).Mod(square, r.modulus)
	}
	return newResidue(accum, r.modulus), nil
}

// Inverse computes the multiplicative inverse with the extended Euclidean algorithm
func (r Residue) Inverse() (Residue, error) {
	x := new(big.Int)
	gcd := new(big.Int).GCD(x, nil, r.value, r.modulus)
	if gcd.Cmp(big.NewInt(1)) != 0 {
		return Residue{}, fmt.Errorf("%w: %s is not a unit", ErrNotInvertible, r)
	}
	return newResidue(x, r.modulus), nil
}

// MultiplicativeOrder returns the least k > 0 with r^k = 1. Non-units have no
// order and yield ErrNotInvertible.
func (r Residue) MultiplicativeOrder() (*big.Int, error) {
	if new(big.Int).GCD(nil, nil, r.value, r.modulus).Cmp(big.NewInt(1)) != 0 {
		return nil, fmt.Errorf("%w: %s has no multiplicative order", ErrNotInvertible, r)
	}

	if r.modulus.IsUint64() {
		// The order divides phi(m), so the smallest divisor that works is the order.
		m := r.modulus.Uint64()
		v := r.value.Uint64()
		for _, d := range numbers.Divisors(numbers.EulerTotient(m)) {
			if numbers.ModExp(v, d, m) == 1 {
				return new(big.Int).SetUint64(d), nil
			}
		}
	}

	one := big.NewInt(1)
	power := new(big.Int).Set(r.value)
	count := big.NewInt(1)
	for power.Cmp(one) != 0 {
		power.Mul(power, r.value).Mod(power, r.modulus)
		count.Add(count, one)
	}
	return count, nil
}

// String renders the residue as "value (mod modulus)"
func (r Residue) String() string {
	return fmt.Sprintf("%s (mod %s)", r.value, r.modulus)
}
