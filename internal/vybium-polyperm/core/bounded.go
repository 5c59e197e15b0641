package core

import (
	"fmt"
	"math/big"
)

// BoundedModularPolynomial is a polynomial modulo m kept below a degree bound by
// reduction modulo a fixed reducing polynomial. It represents an element of the
// quotient ring Z_m[x] / (reducer); with the default reducer x^p - x over a
// prime p that ring is the set of functions from Z_p to itself.
//
// Every constructor and every arithmetic operation reduces its result, so the
// degree is always below the bound.
type BoundedModularPolynomial struct {
	poly        *Polynomial
	degreeBound int
	reducer     *Polynomial // nil for x^degreeBound - x
}

// NewBoundedModularPolynomial creates a bounded polynomial modulo modulus. A nil
// bound selects DefaultBound(modulus).
func NewBoundedModularPolynomial(modulus *big.Int, coefficients []*big.Rat, bound *Bound) (*BoundedModularPolynomial, error) {
	if modulus == nil {
		return nil, fmt.Errorf("%w: bounded polynomials need a modulus", ErrRequiresModulus)
	}
	p, err := NewPolynomial(coefficients, modulus)
	if err != nil {
		return nil, err
	}
	return bounded(p, bound)
}

// NewBoundedModularPolynomialFromInt64 creates a bounded polynomial from int64 coefficients
func NewBoundedModularPolynomialFromInt64(modulus int64, coefficients []int64, bound *Bound) (*BoundedModularPolynomial, error) {
	p, err := NewPolynomialFromInt64(coefficients, big.NewInt(modulus))
	if err != nil {
		return nil, err
	}
	return bounded(p, bound)
}

// BoundedFromPolynomial reinterprets poly modulo modulus. poly must either
// carry no modulus or the same one.
func BoundedFromPolynomial(modulus *big.Int, poly *Polynomial, bound *Bound) (*BoundedModularPolynomial, error) {
	if modulus == nil {
		return nil, fmt.Errorf("%w: bounded polynomials need a modulus", ErrRequiresModulus)
	}
	m, err := validateModulus(modulus)
	if err != nil {
		return nil, err
	}
	if _, err := resolveModulus(m, poly.modulus); err != nil {
		return nil, err
	}
	p, err := poly.withModulus(m)
	if err != nil {
		return nil, err
	}
	return bounded(p, bound)
}

// BoundedFromRoots builds leading * (x - r1) * ... * (x - rn) modulo modulus
func BoundedFromRoots(leading *big.Rat, modulus *big.Int, bound *Bound, roots ...*big.Rat) (*BoundedModularPolynomial, error) {
	if modulus == nil {
		return nil, fmt.Errorf("%w: bounded polynomials need a modulus", ErrRequiresModulus)
	}
	p, err := FromRoots(leading, modulus, roots...)
	if err != nil {
		return nil, err
	}
	return bounded(p, bound)
}

// BoundedVariable returns x modulo modulus
func BoundedVariable(modulus *big.Int, bound *Bound) (*BoundedModularPolynomial, error) {
	if modulus == nil {
		return nil, fmt.Errorf("%w: bounded polynomials need a modulus", ErrRequiresModulus)
	}
	p, err := Variable(modulus)
	if err != nil {
		return nil, err
	}
	return bounded(p, bound)
}

func bounded(p *Polynomial, bound *Bound) (*BoundedModularPolynomial, error) {
	if bound == nil {
		var err error
		if bound, err = DefaultBound(p.modulus); err != nil {
			return nil, err
		}
	}

	reducer, err := bound.resolve(p.modulus)
	if err != nil {
		return nil, err
	}

	b := &BoundedModularPolynomial{degreeBound: bound.DegreeBound, reducer: reducer}
	if b.poly, err = b.reduce(p); err != nil {
		return nil, err
	}
	return b, nil
}

// reduce replaces p by p mod reducer once p reaches the degree bound
func (b *BoundedModularPolynomial) reduce(p *Polynomial) (*Polynomial, error) {
	if p.Degree() < b.degreeBound {
		return p, nil
	}
	if b.reducer == nil {
		return foldExponents(p, b.degreeBound)
	}
	return p.Rem(b.reducer)
}

// foldExponents reduces p modulo x^n - x, n >= 2. Since x^n = x, every x^k
// with k >= n folds onto x^(((k-1) mod (n-1)) + 1).
func foldExponents(p *Polynomial, n int) (*Polynomial, error) {
	d := domain{modulus: p.modulus}
	folded := make([]*big.Rat, n)
	for k, c := range p.coefficients {
		target := k
		if k >= n {
			target = (k-1)%(n-1) + 1
		}
		if folded[target] == nil {
			folded[target] = new(big.Rat).Set(c)
		} else {
			folded[target] = d.add(folded[target], c)
		}
	}
	for i := range folded {
		if folded[i] == nil {
			folded[i] = new(big.Rat)
		}
	}
	return rebuild(folded, p.modulus)
}

// wrap reduces p and gives it b's modulus, bound and reducer
func (b *BoundedModularPolynomial) wrap(p *Polynomial, err error) (*BoundedModularPolynomial, error) {
	if err != nil {
		return nil, err
	}
	reduced, err := b.reduce(p)
	if err != nil {
		return nil, err
	}
	return &BoundedModularPolynomial{poly: reduced, degreeBound: b.degreeBound, reducer: b.reducer}, nil
}

// Polynomial returns the underlying (reduced) polynomial
func (b *BoundedModularPolynomial) Polynomial() *Polynomial {
	return b.poly
}

// Modulus returns a copy of the modulus
func (b *BoundedModularPolynomial) Modulus() *big.Int {
	return b.poly.Modulus()
}

// DegreeBound returns the exclusive upper bound on the degree
func (b *BoundedModularPolynomial) DegreeBound() int {
	return b.degreeBound
}

// Reducer returns the reducing polynomial, or nil when it is the default
// x^DegreeBound - x
func (b *BoundedModularPolynomial) Reducer() *Polynomial {
	return b.reducer
}

// Bound returns the bound b was built with
func (b *BoundedModularPolynomial) Bound() *Bound {
	return &Bound{DegreeBound: b.degreeBound, Reducer: b.reducer}
}

// Degree returns the degree of the reduced polynomial
func (b *BoundedModularPolynomial) Degree() int {
	return b.poly.Degree()
}

// Coefficient returns the coefficient of x^power
func (b *BoundedModularPolynomial) Coefficient(power int) *big.Rat {
	return b.poly.Coefficient(power)
}

// Coefficients returns a copy of the coefficients
func (b *BoundedModularPolynomial) Coefficients() []*big.Rat {
	return b.poly.Coefficients()
}

// Evaluate computes b(x) mod m
func (b *BoundedModularPolynomial) Evaluate(x *big.Rat) (*big.Rat, error) {
	return b.poly.Evaluate(x)
}

// EvaluateResidue computes b(x) for a residue of the same modulus
func (b *BoundedModularPolynomial) EvaluateResidue(x Residue) (Residue, error) {
	return b.poly.EvaluateResidue(x)
}

// Equal compares the underlying polynomials
func (b *BoundedModularPolynomial) Equal(other *BoundedModularPolynomial) bool {
	return b.poly.Equal(other.poly)
}

// Add returns b + other, reduced
func (b *BoundedModularPolynomial) Add(other *BoundedModularPolynomial) (*BoundedModularPolynomial, error) {
	return b.wrap(b.poly.Add(other.poly))
}

// Sub returns b - other, reduced
func (b *BoundedModularPolynomial) Sub(other *BoundedModularPolynomial) (*BoundedModularPolynomial, error) {
	return b.wrap(b.poly.Sub(other.poly))
}

// Mul returns b * other, reduced
func (b *BoundedModularPolynomial) Mul(other *BoundedModularPolynomial) (*BoundedModularPolynomial, error) {
	return b.wrap(b.poly.Mul(other.poly))
}

// AddScalar adds x to the constant term
func (b *BoundedModularPolynomial) AddScalar(x *big.Rat) (*BoundedModularPolynomial, error) {
	return b.wrap(b.poly.AddScalar(x))
}

// SubScalar subtracts x from the constant term
func (b *BoundedModularPolynomial) SubScalar(x *big.Rat) (*BoundedModularPolynomial, error) {
	return b.wrap(b.poly.SubScalar(x))
}

// MulScalar multiplies every coefficient by x
func (b *BoundedModularPolynomial) MulScalar(x *big.Rat) (*BoundedModularPolynomial, error) {
	return b.wrap(b.poly.MulScalar(x))
}

// Neg returns -b
func (b *BoundedModularPolynomial) Neg() *BoundedModularPolynomial {
	return &BoundedModularPolynomial{poly: b.poly.Neg(), degreeBound: b.degreeBound, reducer: b.reducer}
}

// Pow raises b to a non-negative power, reducing after every multiplication
func (b *BoundedModularPolynomial) Pow(exponent int) (*BoundedModularPolynomial, error) {
	if exponent < 0 {
		return nil, fmt.Errorf("%w: polynomial exponent %d is negative", ErrMalformedExponent, exponent)
	}

	one, err := One(b.poly.modulus)
	if err != nil {
		return nil, err
	}
	result, err := b.wrap(one, nil)
	if err != nil {
		return nil, err
	}
	for ; exponent > 0; exponent-- {
		if result, err = result.Mul(b); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Compose returns b(other(x)), reduced after every Horner step. Over a prime
// field with the default reducer this is the composition of the two functions.
func (b *BoundedModularPolynomial) Compose(other *BoundedModularPolynomial) (*BoundedModularPolynomial, error) {
	zero, err := Zero(b.poly.modulus)
	if err != nil {
		return nil, err
	}
	result, err := b.wrap(zero, nil)
	if err != nil {
		return nil, err
	}

	for i := b.poly.Degree(); i >= 0; i-- {
		if result, err = result.Mul(other); err != nil {
			return nil, err
		}
		if result, err = result.AddScalar(b.poly.coefficient(i)); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// String renders the reduced polynomial
func (b *BoundedModularPolynomial) String() string {
	return b.poly.String()
}
