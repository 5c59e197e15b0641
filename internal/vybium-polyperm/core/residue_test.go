package core

import (
	"errors"
	"math/big"
	"testing"
)

func mustResidue(t *testing.T, value, modulus int64) Residue {
	t.Helper()
	r, err := NewResidueFromInt64(value, modulus)
	if err != nil {
		t.Fatalf("NewResidueFromInt64(%d, %d): %v", value, modulus, err)
	}
	return r
}

func TestNewResidue(t *testing.T) {
	r := mustResidue(t, -3, 5)
	if r.Value().Int64() != 2 {
		t.Errorf("-3 mod 5 = %s, want 2", r.Value())
	}

	for _, m := range []int64{1, 0, -7} {
		if _, err := NewResidueFromInt64(3, m); !errors.Is(err, ErrInvalidModulus) {
			t.Errorf("modulus %d: expected ErrInvalidModulus, got %v", m, err)
		}
	}
}

func TestResidueArithmetic(t *testing.T) {
	a := mustResidue(t, 3, 5)
	b := mustResidue(t, 4, 5)

	tests := []struct {
		name string
		op   func(Residue, Residue) (Residue, error)
		want int64
	}{
		{"add", Residue.Add, 2},
		{"sub", Residue.Sub, 4},
		{"mul", Residue.Mul, 2},
		{"div", Residue.Div, 2}, // 3 * 4^-1 = 3 * 4 = 12 = 2
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(a, b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(mustResidue(t, tt.want, 5)) {
				t.Errorf("got %s, want %d (mod 5)", got, tt.want)
			}
		})
	}

	if got := a.Neg(); !got.Equal(mustResidue(t, 2, 5)) {
		t.Errorf("-3 = %s, want 2 (mod 5)", got)
	}
}

func TestResidueIncompatibleModulus(t *testing.T) {
	a := mustResidue(t, 1, 5)
	b := mustResidue(t, 1, 7)

	for name, op := range map[string]func(Residue, Residue) (Residue, error){
		"add": Residue.Add,
		"sub": Residue.Sub,
		"mul": Residue.Mul,
		"div": Residue.Div,
	} {
		if _, err := op(a, b); !errors.Is(err, ErrIncompatibleModulus) {
			t.Errorf("%s: expected ErrIncompatibleModulus, got %v", name, err)
		}
	}
}

func TestResidueInverse(t *testing.T) {
	inv, err := mustResidue(t, 3, 5).Inverse()
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if !inv.Equal(mustResidue(t, 2, 5)) {
		t.Errorf("3^-1 mod 5 = %s, want 2", inv)
	}

	// a * a^-1 == 1 for every unit, ErrNotInvertible otherwise
	const m = 12
	one := mustResidue(t, 1, m)
	for v := int64(0); v < m; v++ {
		a := mustResidue(t, v, m)
		inv, err := a.Inverse()
		unit := new(big.Int).GCD(nil, nil, big.NewInt(v), big.NewInt(m)).Int64() == 1
		if !unit {
			if !errors.Is(err, ErrNotInvertible) {
				t.Errorf("%d mod %d: expected ErrNotInvertible, got %v", v, m, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%d mod %d: %v", v, m, err)
		}
		product, _ := a.Mul(inv)
		if !product.Equal(one) {
			t.Errorf("%d * %s = %s, want 1", v, inv, product)
		}
	}
}

func TestResidueDivision(t *testing.T) {
	// (a / b) * b == a whenever b is a unit
	const m = 7
	for av := int64(0); av < m; av++ {
		for bv := int64(1); bv < m; bv++ {
			a, b := mustResidue(t, av, m), mustResidue(t, bv, m)
			q, err := a.Div(b)
			if err != nil {
				t.Fatalf("%d / %d: %v", av, bv, err)
			}
			back, _ := q.Mul(b)
			if !back.Equal(a) {
				t.Errorf("(%d / %d) * %d = %s", av, bv, bv, back)
			}
		}
	}

	if _, err := mustResidue(t, 3, 7).Div(mustResidue(t, 0, 7)); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
	if _, err := mustResidue(t, 3, 8).Div(mustResidue(t, 2, 8)); !errors.Is(err, ErrNotInvertible) {
		t.Errorf("expected ErrNotInvertible, got %v", err)
	}
}

func TestResiduePow(t *testing.T) {
	tests := []struct {
		value, exponent, modulus, want int64
	}{
		{3, 0, 5, 1},
		{3, 1, 5, 3},
		{3, 4, 5, 1},
		{2, 10, 1000, 24},
		{0, 0, 7, 1},
		{0, 5, 7, 0},
	}

	for _, tt := range tests {
		got, err := mustResidue(t, tt.value, tt.modulus).Pow(big.NewInt(tt.exponent))
		if err != nil {
			t.Fatalf("Pow: %v", err)
		}
		if got.Value().Int64() != tt.want {
			t.Errorf("%d^%d mod %d = %s, want %d", tt.value, tt.exponent, tt.modulus, got.Value(), tt.want)
		}
	}

	if _, err := mustResidue(t, 3, 5).Pow(big.NewInt(-1)); !errors.Is(err, ErrMalformedExponent) {
		t.Errorf("expected ErrMalformedExponent, got %v", err)
	}
}

func TestResidueMultiplicativeOrder(t *testing.T) {
	tests := []struct {
		value, modulus, want int64
	}{
		{1, 7, 1},
		{2, 7, 3},
		{3, 7, 6},
		{6, 7, 2},
		{5, 12, 2},
		{2, 9, 6},
	}

	for _, tt := range tests {
		order, err := mustResidue(t, tt.value, tt.modulus).MultiplicativeOrder()
		if err != nil {
			t.Fatalf("order of %d mod %d: %v", tt.value, tt.modulus, err)
		}
		if order.Int64() != tt.want {
			t.Errorf("order of %d mod %d = %s, want %d", tt.value, tt.modulus, order, tt.want)
		}
	}

	if _, err := mustResidue(t, 4, 12).MultiplicativeOrder(); !errors.Is(err, ErrNotInvertible) {
		t.Errorf("expected ErrNotInvertible, got %v", err)
	}
}

func TestResidueString(t *testing.T) {
	if got := mustResidue(t, 3, 5).String(); got != "3 (mod 5)" {
		t.Errorf("String() = %q", got)
	}
}
