package core

import (
	"fmt"
	"math/big"
)

// DivMod divides a by b with synthetic long division and returns the quotient
// and remainder, so that a = b*q + r with deg r < deg b or r = 0.
//
// Each step cancels the current leading term of the remainder with a shifted
// copy of b scaled by lead * invLead, where invLead is the reciprocal of b's
// leading coefficient over the rationals or its residue inverse modulo m. A
// modular divisor whose leading coefficient is not a unit fails with
// ErrNotInvertible.
func DivMod(a, b *Polynomial) (*Polynomial, *Polynomial, error) {
	m, err := resolveModulus(a.modulus, b.modulus)
	if err != nil {
		return nil, nil, err
	}

	num, err := a.withModulus(m)
	if err != nil {
		return nil, nil, err
	}
	den, err := b.withModulus(m)
	if err != nil {
		return nil, nil, err
	}
	if den.IsZero() {
		return nil, nil, fmt.Errorf("%w: polynomial divided by zero", ErrDivisionByZero)
	}

	if num.IsZero() || num.Degree() < den.Degree() {
		return newTrimmed(nil, m), num, nil
	}

	d := domain{modulus: m}
	invLead, err := d.inverse(den.coefficients[den.Degree()])
	if err != nil {
		return nil, nil, fmt.Errorf("leading coefficient of divisor: %w", err)
	}

	remainder := num.Coefficients()
	divisorDegree := den.Degree()
	quotient := make([]*big.Rat, num.Degree()-divisorDegree+1)

	for shift := len(quotient) - 1; shift >= 0; shift-- {
		lead := remainder[shift+divisorDegree]
		if lead.Sign() == 0 {
			quotient[shift] = new(big.Rat)
			continue
		}

		factor := d.mul(lead, invLead)
		quotient[shift] = factor
		for j, c := range den.coefficients {
			remainder[shift+j] = d.sub(remainder[shift+j], d.mul(factor, c))
		}
	}

	return newTrimmed(quotient, m), newTrimmed(remainder[:divisorDegree], m), nil
}

// Quo returns the quotient of p divided by divisor
func (p *Polynomial) Quo(divisor *Polynomial) (*Polynomial, error) {
	q, _, err := DivMod(p, divisor)
	return q, err
}

// Rem returns the remainder of p divided by divisor
func (p *Polynomial) Rem(divisor *Polynomial) (*Polynomial, error) {
	_, r, err := DivMod(p, divisor)
	return r, err
}

// Transcript supplies verifier challenges. utils.Channel implements it.
type Transcript interface {
	Send(data []byte)
	ReceiveRandomInt(min, max *big.Int) *big.Int
}

// plainChallengeBound bounds challenge points for polynomials over the rationals
var plainChallengeBound = new(big.Int).Lsh(big.NewInt(1), 64)

// VerifyDivision checks a claimed division a = b*q + r. The degree condition on
// r is checked exactly; the identity itself is tested at rounds challenge points
// drawn from t after all four polynomials have been absorbed.
func VerifyDivision(a, b, q, r *Polynomial, t Transcript, rounds int) (bool, error) {
	m, err := resolveModulus(a.modulus, b.modulus)
	if err != nil {
		return false, err
	}
	for _, p := range []*Polynomial{q, r} {
		if m, err = resolveModulus(m, p.modulus); err != nil {
			return false, err
		}
	}

	if b.IsZero() {
		return false, fmt.Errorf("%w: claimed division by zero", ErrDivisionByZero)
	}
	if !r.IsZero() && r.Degree() >= b.Degree() {
		return false, nil
	}

	for _, p := range []*Polynomial{a, b, q, r} {
		t.Send([]byte(p.String()))
	}

	upper := plainChallengeBound
	if m != nil {
		upper = m
	}
	upper = new(big.Int).Sub(upper, big.NewInt(1))

	for i := 0; i < rounds; i++ {
		z := new(big.Rat).SetInt(t.ReceiveRandomInt(big.NewInt(0), upper))

		values := make([]*big.Rat, 4)
		for j, p := range []*Polynomial{a, b, q, r} {
			moved, err := p.withModulus(m)
			if err != nil {
				return false, err
			}
			if values[j], err = moved.Evaluate(z); err != nil {
				return false, err
			}
		}

		d := domain{modulus: m}
		rhs := d.add(d.mul(values[1], values[2]), values[3])
		if rhs.Cmp(values[0]) != 0 {
			return false, nil
		}
	}
	return true, nil
}
