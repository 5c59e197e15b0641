package core

import (
	"fmt"
	"math/big"
)

// OperandKind tags the value held by an Operand
type OperandKind uint8

const (
	// KindScalar is a plain rational number
	KindScalar OperandKind = iota
	// KindResidue is an integer modulo some modulus
	KindResidue
	// KindPolynomial is a Polynomial, with or without modulus
	KindPolynomial
)

func (k OperandKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindResidue:
		return "residue"
	case KindPolynomial:
		return "polynomial"
	default:
		return fmt.Sprintf("OperandKind(%d)", k)
	}
}

// Operand is one of scalar, residue or polynomial. Add, Sub, Mul, Div and Pow
// dispatch on the kinds of their operands and promote mixed combinations to the
// richer kind. The zero value is the scalar 0.
type Operand struct {
	kind       OperandKind
	scalar     *big.Rat
	residue    Residue
	polynomial *Polynomial
}

// ScalarOperand wraps a rational number
func ScalarOperand(x *big.Rat) Operand {
	return Operand{kind: KindScalar, scalar: new(big.Rat).Set(x)}
}

// IntOperand wraps an integer scalar
func IntOperand(x int64) Operand {
	return Operand{kind: KindScalar, scalar: new(big.Rat).SetInt64(x)}
}

// ResidueOperand wraps a residue
func ResidueOperand(r Residue) Operand {
	return Operand{kind: KindResidue, residue: r}
}

// PolynomialOperand wraps a polynomial
func PolynomialOperand(p *Polynomial) Operand {
	return Operand{kind: KindPolynomial, polynomial: p}
}

// rat returns the scalar held by o; a zero Operand holds 0
func (o Operand) rat() *big.Rat {
	if o.scalar == nil {
		return new(big.Rat)
	}
	return o.scalar
}

// Kind returns the tag of o
func (o Operand) Kind() OperandKind {
	return o.kind
}

// Scalar returns the scalar held by o, or nil
func (o Operand) Scalar() *big.Rat {
	if o.kind != KindScalar {
		return nil
	}
	return new(big.Rat).Set(o.rat())
}

// Residue returns the residue held by o
func (o Operand) Residue() (Residue, bool) {
	return o.residue, o.kind == KindResidue
}

// Polynomial returns the polynomial held by o, or nil
func (o Operand) Polynomial() *Polynomial {
	if o.kind != KindPolynomial {
		return nil
	}
	return o.polynomial
}

func (o Operand) String() string {
	switch o.kind {
	case KindScalar:
		return o.rat().RatString()
	case KindResidue:
		return o.residue.String()
	default:
		return o.polynomial.String()
	}
}

// asPolynomial promotes any operand to a polynomial. Residues become constant
// polynomials carrying their modulus.
func (o Operand) asPolynomial() (*Polynomial, error) {
	switch o.kind {
	case KindScalar:
		return NewPolynomial([]*big.Rat{o.rat()}, nil)
	case KindResidue:
		return NewPolynomial([]*big.Rat{new(big.Rat).SetInt(o.residue.value)}, o.residue.modulus)
	default:
		return o.polynomial, nil
	}
}

// asResidue lifts a scalar into the ring of like
func (o Operand) asResidue(like Residue) (Residue, error) {
	if o.kind == KindResidue {
		return o.residue, nil
	}
	n, err := domain{modulus: like.modulus}.normalize(o.rat())
	if err != nil {
		return Residue{}, err
	}
	return like.Lift(n.Num()), nil
}

type operation struct {
	scalar     func(a, b *big.Rat) (*big.Rat, error)
	residue    func(a, b Residue) (Residue, error)
	polynomial func(a, b *Polynomial) (*Polynomial, error)
}

func dispatch(a, b Operand, op operation) (Operand, error) {
	switch {
	case a.kind == KindPolynomial || b.kind == KindPolynomial:
		pa, err := a.asPolynomial()
		if err != nil {
			return Operand{}, err
		}
		pb, err := b.asPolynomial()
		if err != nil {
			return Operand{}, err
		}
		p, err := op.polynomial(pa, pb)
		if err != nil {
			return Operand{}, err
		}
		return PolynomialOperand(p), nil

	case a.kind == KindResidue || b.kind == KindResidue:
		like := a.residue
		if a.kind != KindResidue {
			like = b.residue
		}
		ra, err := a.asResidue(like)
		if err != nil {
			return Operand{}, err
		}
		rb, err := b.asResidue(like)
		if err != nil {
			return Operand{}, err
		}
		r, err := op.residue(ra, rb)
		if err != nil {
			return Operand{}, err
		}
		return ResidueOperand(r), nil

	default:
		s, err := op.scalar(a.rat(), b.rat())
		if err != nil {
			return Operand{}, err
		}
		return Operand{kind: KindScalar, scalar: s}, nil
	}
}

// Add returns a + b
func Add(a, b Operand) (Operand, error) {
	return dispatch(a, b, operation{
		scalar:     func(x, y *big.Rat) (*big.Rat, error) { return new(big.Rat).Add(x, y), nil },
		residue:    Residue.Add,
		polynomial: (*Polynomial).Add,
	})
}

// Sub returns a - b
func Sub(a, b Operand) (Operand, error) {
	return dispatch(a, b, operation{
		scalar:     func(x, y *big.Rat) (*big.Rat, error) { return new(big.Rat).Sub(x, y), nil },
		residue:    Residue.Sub,
		polynomial: (*Polynomial).Sub,
	})
}

// Mul returns a * b
func Mul(a, b Operand) (Operand, error) {
	return dispatch(a, b, operation{
		scalar:     func(x, y *big.Rat) (*big.Rat, error) { return new(big.Rat).Mul(x, y), nil },
		residue:    Residue.Mul,
		polynomial: (*Polynomial).Mul,
	})
}

// Div returns a / b. For polynomials this is the quotient of DivMod; a scalar
// or residue divisor multiplies by its inverse.
func Div(a, b Operand) (Operand, error) {
	if a.kind == KindPolynomial && b.kind == KindScalar {
		p, err := a.polynomial.DivScalar(b.rat())
		if err != nil {
			return Operand{}, err
		}
		return PolynomialOperand(p), nil
	}

	return dispatch(a, b, operation{
		scalar: func(x, y *big.Rat) (*big.Rat, error) {
			if y.Sign() == 0 {
				return nil, fmt.Errorf("%w: scalar division by zero", ErrDivisionByZero)
			}
			return new(big.Rat).Quo(x, y), nil
		},
		residue:    Residue.Div,
		polynomial: (*Polynomial).Quo,
	})
}

// Pow raises a to a non-negative integer power
func Pow(a Operand, exponent int) (Operand, error) {
	if exponent < 0 {
		return Operand{}, fmt.Errorf("%w: exponent %d is negative", ErrMalformedExponent, exponent)
	}

	switch a.kind {
	case KindPolynomial:
		p, err := a.polynomial.Pow(exponent)
		if err != nil {
			return Operand{}, err
		}
		return PolynomialOperand(p), nil
	case KindResidue:
		r, err := a.residue.Pow(big.NewInt(int64(exponent)))
		if err != nil {
			return Operand{}, err
		}
		return ResidueOperand(r), nil
	default:
		result := big.NewRat(1, 1)
		for i := 0; i < exponent; i++ {
			result.Mul(result, a.rat())
		}
		return Operand{kind: KindScalar, scalar: result}, nil
	}
}
