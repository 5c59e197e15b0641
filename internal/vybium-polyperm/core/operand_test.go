package core

import (
	"errors"
	"testing"
)

func TestOperandDispatch(t *testing.T) {
	three := IntOperand(3)
	four := IntOperand(4)
	r3 := ResidueOperand(mustResidue(t, 3, 5))
	r4 := ResidueOperand(mustResidue(t, 4, 5))
	p := PolynomialOperand(mustPoly(t, 0, 1, 1))
	pm := PolynomialOperand(mustPoly(t, 5, 1, 1))

	tests := []struct {
		name     string
		op       func(a, b Operand) (Operand, error)
		a, b     Operand
		wantKind OperandKind
		want     string
	}{
		{"scalar+scalar", Add, three, four, KindScalar, "7"},
		{"scalar/scalar", Div, three, four, KindScalar, "3/4"},
		{"residue+residue", Add, r3, r4, KindResidue, "2 (mod 5)"},
		{"scalar*residue", Mul, four, r3, KindResidue, "2 (mod 5)"},
		{"residue-scalar", Sub, r3, four, KindResidue, "4 (mod 5)"},
		{"residue/residue", Div, r3, r4, KindResidue, "2 (mod 5)"},
		{"poly+scalar", Add, p, three, KindPolynomial, "4 + x"},
		{"scalar-poly", Sub, three, p, KindPolynomial, "2 - x"},
		{"poly*scalar", Mul, p, three, KindPolynomial, "3 + 3 * x"},
		{"poly*residue", Mul, p, r3, KindPolynomial, "3 + 3 * x (mod 5)"},
		{"poly*poly", Mul, p, p, KindPolynomial, "1 + 2 * x + x^2"},
		{"modpoly+poly", Add, pm, p, KindPolynomial, "2 + 2 * x (mod 5)"},
		{"poly/poly", Div, PolynomialOperand(mustPoly(t, 0, -1, 0, 1)), p, KindPolynomial, "-1 + x"},
		{"poly/scalar", Div, p, IntOperand(2), KindPolynomial, "1/2 + 1/2 * x"},
		{"scalar/poly", Div, three, p, KindPolynomial, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Kind() != tt.wantKind {
				t.Errorf("kind = %s, want %s", got.Kind(), tt.wantKind)
			}
			if got.String() != tt.want {
				t.Errorf("result = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestOperandErrors(t *testing.T) {
	if _, err := Div(IntOperand(1), IntOperand(0)); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
	if _, err := Div(ResidueOperand(mustResidue(t, 1, 5)), IntOperand(0)); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
	if _, err := Add(ResidueOperand(mustResidue(t, 1, 5)), ResidueOperand(mustResidue(t, 1, 7))); !errors.Is(err, ErrIncompatibleModulus) {
		t.Errorf("expected ErrIncompatibleModulus, got %v", err)
	}
	if _, err := Mul(PolynomialOperand(mustPoly(t, 7, 1)), ResidueOperand(mustResidue(t, 1, 5))); !errors.Is(err, ErrIncompatibleModulus) {
		t.Errorf("expected ErrIncompatibleModulus, got %v", err)
	}
	if _, err := Pow(IntOperand(2), -1); !errors.Is(err, ErrMalformedExponent) {
		t.Errorf("expected ErrMalformedExponent, got %v", err)
	}
}

func TestOperandPow(t *testing.T) {
	tests := []struct {
		a    Operand
		e    int
		want string
	}{
		{IntOperand(2), 10, "1024"},
		{ScalarOperand(rat(1, 2)), 3, "1/8"},
		{ResidueOperand(mustResidue(t, 2, 7)), 3, "1 (mod 7)"},
		{PolynomialOperand(mustPoly(t, 0, 0, 1)), 4, "x^4"},
		{IntOperand(5), 0, "1"},
	}

	for _, tt := range tests {
		got, err := Pow(tt.a, tt.e)
		if err != nil {
			t.Fatalf("Pow(%s, %d): %v", tt.a, tt.e, err)
		}
		if got.String() != tt.want {
			t.Errorf("Pow(%s, %d) = %q, want %q", tt.a, tt.e, got.String(), tt.want)
		}
	}
}

func TestOperandAccessors(t *testing.T) {
	s := IntOperand(4)
	if s.Scalar().Cmp(rat(4, 1)) != 0 || s.Polynomial() != nil {
		t.Error("scalar accessors")
	}
	if _, ok := s.Residue(); ok {
		t.Error("scalar reported a residue")
	}

	r := ResidueOperand(mustResidue(t, 2, 3))
	if got, ok := r.Residue(); !ok || got.Value().Int64() != 2 {
		t.Error("residue accessors")
	}
	if r.Scalar() != nil {
		t.Error("residue reported a scalar")
	}
}

func TestZeroOperandIsScalarZero(t *testing.T) {
	var zero Operand
	if zero.Kind() != KindScalar || zero.String() != "0" || zero.Scalar().Sign() != 0 {
		t.Fatalf("zero Operand = %s (%s)", zero, zero.Kind())
	}

	tests := []struct {
		name string
		op   func(a, b Operand) (Operand, error)
		a, b Operand
		want string
	}{
		{"zero+scalar", Add, zero, IntOperand(5), "5"},
		{"scalar*zero", Mul, IntOperand(5), zero, "0"},
		{"residue-zero", Sub, ResidueOperand(mustResidue(t, 3, 5)), zero, "3 (mod 5)"},
		{"poly+zero", Add, PolynomialOperand(mustPoly(t, 0, 1, 1)), zero, "1 + x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := Div(IntOperand(1), zero); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
	if got, err := Pow(zero, 0); err != nil || got.String() != "1" {
		t.Errorf("Pow(zero, 0) = %s, %v", got, err)
	}
}
