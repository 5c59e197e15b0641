package core

import (
	"fmt"
	"math/big"
	"strings"
)

// Polynomial represents a polynomial with exact coefficients, either over the
// rationals or over the integers modulo a fixed modulus. Coefficients are stored
// by increasing power and always trimmed, so a Polynomial is immutable and its
// degree, leading coefficient and equality never see trailing zeros.
type Polynomial struct {
	coefficients []*big.Rat
	modulus      *big.Int
}

// NewPolynomial creates a polynomial from coefficients ordered by increasing
// power. A nil modulus gives a polynomial over the rationals.
func NewPolynomial(coefficients []*big.Rat, modulus *big.Int) (*Polynomial, error) {
	m, err := validateModulus(modulus)
	if err != nil {
		return nil, err
	}

	d := domain{modulus: m}
	normalized := make([]*big.Rat, len(coefficients))
	for i, c := range coefficients {
		if normalized[i], err = d.normalize(c); err != nil {
			return nil, err
		}
	}
	return newTrimmed(normalized, m), nil
}

// NewPolynomialFromInt64 creates a polynomial from int64 coefficients
func NewPolynomialFromInt64(coefficients []int64, modulus *big.Int) (*Polynomial, error) {
	rats := make([]*big.Rat, len(coefficients))
	for i, c := range coefficients {
		rats[i] = new(big.Rat).SetInt64(c)
	}
	return NewPolynomial(rats, modulus)
}

// Zero returns the zero polynomial
func Zero(modulus *big.Int) (*Polynomial, error) {
	return NewPolynomial(nil, modulus)
}

// One returns the constant polynomial 1
func One(modulus *big.Int) (*Polynomial, error) {
	return NewPolynomialFromInt64([]int64{1}, modulus)
}

// Variable returns the identity polynomial x
func Variable(modulus *big.Int) (*Polynomial, error) {
	return NewPolynomialFromInt64([]int64{0, 1}, modulus)
}

// FromRoots builds leading * (x - r1) * ... * (x - rn), folding in one linear
// factor at a time.
func FromRoots(leading *big.Rat, modulus *big.Int, roots ...*big.Rat) (*Polynomial, error) {
	m, err := validateModulus(modulus)
	if err != nil {
		return nil, err
	}
	d := domain{modulus: m}

	lead, err := d.normalize(leading)
	if err != nil {
		return nil, err
	}
	coefficients := []*big.Rat{lead}

	for _, root := range roots {
		r, err := d.normalize(root)
		if err != nil {
			return nil, err
		}

		// (c_0 + ... + c_k x^k)(x - r): new_i = c_{i-1} - r*c_i
		next := make([]*big.Rat, len(coefficients)+1)
		next[0] = d.neg(d.mul(r, coefficients[0]))
		for i := 1; i < len(coefficients); i++ {
			next[i] = d.sub(coefficients[i-1], d.mul(r, coefficients[i]))
		}
		next[len(coefficients)] = coefficients[len(coefficients)-1]
		coefficients = next
	}

	return newTrimmed(coefficients, m), nil
}

// newTrimmed takes ownership of already normalized coefficients
func newTrimmed(coefficients []*big.Rat, modulus *big.Int) *Polynomial {
	n := len(coefficients)
	for n > 0 && coefficients[n-1].Sign() == 0 {
		n--
	}
	return &Polynomial{coefficients: coefficients[:n:n], modulus: modulus}
}

// rebuild normalizes freshly computed coefficients into the domain of modulus
func rebuild(coefficients []*big.Rat, modulus *big.Int) (*Polynomial, error) {
	d := domain{modulus: modulus}
	for i, c := range coefficients {
		n, err := d.normalize(c)
		if err != nil {
			return nil, err
		}
		coefficients[i] = n
	}
	return newTrimmed(coefficients, modulus), nil
}

// withModulus moves p into the domain of m. m is either p's own modulus or p
// has none.
func (p *Polynomial) withModulus(m *big.Int) (*Polynomial, error) {
	if m == nil || p.modulus != nil {
		return p, nil
	}
	return rebuild(p.Coefficients(), m)
}

// Degree returns the degree; the zero polynomial has degree 0
func (p *Polynomial) Degree() int {
	if len(p.coefficients) == 0 {
		return 0
	}
	return len(p.coefficients) - 1
}

// Modulus returns a copy of the modulus, or nil over the rationals
func (p *Polynomial) Modulus() *big.Int {
	if p.modulus == nil {
		return nil
	}
	return new(big.Int).Set(p.modulus)
}

// HasModulus reports whether the coefficients are taken modulo some integer
func (p *Polynomial) HasModulus() bool {
	return p.modulus != nil
}

// IsZero reports whether p is the zero polynomial
func (p *Polynomial) IsZero() bool {
	return len(p.coefficients) == 0
}

func (p *Polynomial) coefficient(power int) *big.Rat {
	if power < 0 || power >= len(p.coefficients) {
		return ratZero
	}
	return p.coefficients[power]
}

// Coefficient returns the coefficient of x^power, or zero when power is
// negative or above the degree
func (p *Polynomial) Coefficient(power int) *big.Rat {
	return new(big.Rat).Set(p.coefficient(power))
}

// LeadingCoefficient returns the coefficient of the highest degree term
func (p *Polynomial) LeadingCoefficient() *big.Rat {
	return p.Coefficient(len(p.coefficients) - 1)
}

// Coefficients returns a copy of the trimmed coefficients
func (p *Polynomial) Coefficients() []*big.Rat {
	coeffs := make([]*big.Rat, len(p.coefficients))
	for i, c := range p.coefficients {
		coeffs[i] = new(big.Rat).Set(c)
	}
	return coeffs
}

// Equal reports whether both polynomials have the same modulus and coefficients
func (p *Polynomial) Equal(other *Polynomial) bool {
	if (p.modulus == nil) != (other.modulus == nil) {
		return false
	}
	if p.modulus != nil && p.modulus.Cmp(other.modulus) != 0 {
		return false
	}
	if len(p.coefficients) != len(other.coefficients) {
		return false
	}
	for i, c := range p.coefficients {
		if c.Cmp(other.coefficients[i]) != 0 {
			return false
		}
	}
	return true
}

// EqualScalar reports whether p is the constant x. Polynomials with a modulus
// never equal a plain scalar.
func (p *Polynomial) EqualScalar(x *big.Rat) bool {
	if p.modulus != nil || len(p.coefficients) > 1 {
		return false
	}
	return p.coefficient(0).Cmp(x) == 0
}

// Evaluate computes p(x) with Horner's method. With a modulus x is first mapped
// into the residues and the result lies in [0, modulus).
func (p *Polynomial) Evaluate(x *big.Rat) (*big.Rat, error) {
	d := domain{modulus: p.modulus}
	point, err := d.normalize(x)
	if err != nil {
		return nil, err
	}

	total := new(big.Rat)
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		total = d.add(d.mul(total, point), p.coefficients[i])
	}
	return total, nil
}

// EvaluateResidue computes p(x) for a residue with the same modulus as p
func (p *Polynomial) EvaluateResidue(x Residue) (Residue, error) {
	if p.modulus == nil {
		return Residue{}, fmt.Errorf("%w: cannot evaluate a rational polynomial at a residue", ErrRequiresModulus)
	}
	if p.modulus.Cmp(x.modulus) != 0 {
		return Residue{}, fmt.Errorf("%w: polynomial mod %s evaluated at %s", ErrIncompatibleModulus, p.modulus, x)
	}

	total := new(big.Int)
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		total.Mul(total, x.value).Add(total, p.coefficients[i].Num()).Mod(total, p.modulus)
	}
	return newResidue(total, p.modulus), nil
}

// Neg returns -p
func (p *Polynomial) Neg() *Polynomial {
	d := domain{modulus: p.modulus}
	coeffs := make([]*big.Rat, len(p.coefficients))
	for i, c := range p.coefficients {
		coeffs[i] = d.neg(c)
	}
	return newTrimmed(coeffs, p.modulus)
}

// Add adds two polynomials
func (p *Polynomial) Add(other *Polynomial) (*Polynomial, error) {
	return p.combine(other, func(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) })
}

// Sub subtracts two polynomials
func (p *Polynomial) Sub(other *Polynomial) (*Polynomial, error) {
	return p.combine(other, func(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) })
}

// combine applies op term-wise, padding the shorter operand with zeros
func (p *Polynomial) combine(other *Polynomial, op func(a, b *big.Rat) *big.Rat) (*Polynomial, error) {
	m, err := resolveModulus(p.modulus, other.modulus)
	if err != nil {
		return nil, err
	}

	n := len(p.coefficients)
	if len(other.coefficients) > n {
		n = len(other.coefficients)
	}

	coeffs := make([]*big.Rat, n)
	for i := range coeffs {
		coeffs[i] = op(p.coefficient(i), other.coefficient(i))
	}
	return rebuild(coeffs, m)
}

// Mul multiplies two polynomials
func (p *Polynomial) Mul(other *Polynomial) (*Polynomial, error) {
	m, err := resolveModulus(p.modulus, other.modulus)
	if err != nil {
		return nil, err
	}
	if p.IsZero() || other.IsZero() {
		return newTrimmed(nil, m), nil
	}

	coeffs := make([]*big.Rat, len(p.coefficients)+len(other.coefficients)-1)
	for i := range coeffs {
		coeffs[i] = new(big.Rat)
	}

	product := new(big.Rat)
	for i, a := range p.coefficients {
		for j, b := range other.coefficients {
			coeffs[i+j].Add(coeffs[i+j], product.Mul(a, b))
		}
	}
	return rebuild(coeffs, m)
}

// AddScalar adds x to the constant term
func (p *Polynomial) AddScalar(x *big.Rat) (*Polynomial, error) {
	coeffs := p.Coefficients()
	if len(coeffs) == 0 {
		coeffs = []*big.Rat{new(big.Rat)}
	}
	coeffs[0].Add(coeffs[0], x)
	return rebuild(coeffs, p.modulus)
}

// SubScalar subtracts x from the constant term
func (p *Polynomial) SubScalar(x *big.Rat) (*Polynomial, error) {
	return p.AddScalar(new(big.Rat).Neg(x))
}

// MulScalar multiplies every coefficient by x
func (p *Polynomial) MulScalar(x *big.Rat) (*Polynomial, error) {
	coeffs := p.Coefficients()
	for _, c := range coeffs {
		c.Mul(c, x)
	}
	return rebuild(coeffs, p.modulus)
}

// DivScalar multiplies every coefficient by the inverse of x in p's domain
func (p *Polynomial) DivScalar(x *big.Rat) (*Polynomial, error) {
	d := domain{modulus: p.modulus}
	n, err := d.normalize(x)
	if err != nil {
		return nil, err
	}
	inv, err := d.inverse(n)
	if err != nil {
		return nil, fmt.Errorf("division by scalar %s failed: %w", x.RatString(), err)
	}
	return p.MulScalar(inv)
}

// Pow raises p to a non-negative power by repeated multiplication
func (p *Polynomial) Pow(exponent int) (*Polynomial, error) {
	if exponent < 0 {
		return nil, fmt.Errorf("%w: polynomial exponent %d is negative", ErrMalformedExponent, exponent)
	}

	result, err := One(p.modulus)
	if err != nil {
		return nil, err
	}
	for ; exponent > 0; exponent-- {
		if result, err = result.Mul(p); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Compose returns p(q(x))
func (p *Polynomial) Compose(q *Polynomial) (*Polynomial, error) {
	m, err := resolveModulus(p.modulus, q.modulus)
	if err != nil {
		return nil, err
	}

	result := newTrimmed(nil, m)
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		if result, err = result.Mul(q); err != nil {
			return nil, err
		}
		if result, err = result.AddScalar(p.coefficients[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// String renders p by increasing degree, e.g. "-1 + 3 * x - x^2 (mod 7)"
func (p *Polynomial) String() string {
	var sb strings.Builder
	first := true
	for i, c := range p.coefficients {
		if c.Sign() == 0 {
			continue
		}

		abs := new(big.Rat).Abs(c)
		var term string
		switch i {
		case 0:
			term = abs.RatString()
		case 1:
			term = "x"
		default:
			term = fmt.Sprintf("x^%d", i)
		}
		if i > 0 && abs.Cmp(big.NewRat(1, 1)) != 0 {
			term = abs.RatString() + " * " + term
		}

		switch {
		case first && c.Sign() < 0:
			sb.WriteString("-")
		case !first && c.Sign() < 0:
			sb.WriteString(" - ")
		case !first:
			sb.WriteString(" + ")
		}
		sb.WriteString(term)
		first = false
	}

	if first {
		sb.WriteString("0")
	}
	if p.modulus != nil {
		fmt.Fprintf(&sb, " (mod %s)", p.modulus)
	}
	return sb.String()
}
