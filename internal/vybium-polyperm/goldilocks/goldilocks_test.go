package goldilocks

import (
	"errors"
	"math/big"
	"testing"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/bridge"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/core"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/perm"
)

func goldilocksPoly(t *testing.T, coeffs ...int64) *core.Polynomial {
	t.Helper()
	p, err := core.NewPolynomialFromInt64(coeffs, Modulus())
	if err != nil {
		t.Fatalf("NewPolynomialFromInt64: %v", err)
	}
	return p
}

func coreValue(t *testing.T, p *core.Polynomial, x uint64) uint64 {
	t.Helper()
	v, err := p.Evaluate(new(big.Rat).SetInt(new(big.Int).SetUint64(x)))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return v.Num().Uint64()
}

func TestModulus(t *testing.T) {
	want, _ := new(big.Int).SetString("18446744069414584321", 10)
	if Modulus().Cmp(want) != 0 {
		t.Errorf("Modulus() = %s", Modulus())
	}
}

func TestEvaluateMatchesCore(t *testing.T) {
	tests := []struct {
		name   string
		coeffs []int64
	}{
		{"zero", nil},
		{"constant", []int64{42}},
		{"negative coefficients", []int64{-1, 0, -5, 3}},
		{"dense", []int64{7, 1 << 40, -(1 << 50), 9, 123456789}},
	}
	xs := []uint64{0, 1, 2, 1 << 33, field.P - 1, 987654321}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := goldilocksPoly(t, tt.coeffs...)
			got, err := Evaluate(p, xs)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			for i, x := range xs {
				if want := coreValue(t, p, x); got[i] != want {
					t.Errorf("p(%d) = %d, want %d", x, got[i], want)
				}
			}
		})
	}
}

func TestLift(t *testing.T) {
	plain, _ := core.NewPolynomialFromInt64([]int64{-3, 2}, nil)
	lifted, err := Lift(plain)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	if lifted.Degree() != 1 {
		t.Errorf("Degree() = %d, want 1", lifted.Degree())
	}
	if v := lifted.Evaluate(field.New(1)); v.Value() != field.P-1 {
		t.Errorf("(-3 + 2x)(1) = %d, want p - 1", v.Value())
	}

	other, _ := core.NewPolynomialFromInt64([]int64{1}, big.NewInt(97))
	if _, err := Lift(other); !errors.Is(err, core.ErrIncompatibleModulus) {
		t.Errorf("expected ErrIncompatibleModulus, got %v", err)
	}
}

func TestDivideMatchesCore(t *testing.T) {
	a := goldilocksPoly(t, 5, -2, 0, 9, 1, 4)
	b := goldilocksPoly(t, 3, 0, 1)

	q, r, err := Divide(a, b)
	if err != nil {
		t.Fatalf("Divide: %v", err)
	}
	cq, cr, err := core.DivMod(a, b)
	if err != nil {
		t.Fatalf("DivMod: %v", err)
	}
	if q.Degree() != cq.Degree() {
		t.Errorf("quotient degree %d, want %d", q.Degree(), cq.Degree())
	}

	for _, x := range []uint64{0, 3, 1 << 20, field.P - 2} {
		fx := field.New(x)
		if got, want := q.Evaluate(fx).Value(), coreValue(t, cq, x); got != want {
			t.Errorf("q(%d) = %d, want %d", x, got, want)
		}
		if got, want := r.Evaluate(fx).Value(), coreValue(t, cr, x); got != want {
			t.Errorf("r(%d) = %d, want %d", x, got, want)
		}
	}

	if _, _, err := Divide(a, goldilocksPoly(t)); !errors.Is(err, core.ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestInterpolatePermutation(t *testing.T) {
	pi := perm.MustNew([]int{0, 5, 2}, []int{3, 7})
	const size = 8

	poly, err := InterpolatePermutation(pi, size)
	if err != nil {
		t.Fatalf("InterpolatePermutation: %v", err)
	}
	if poly.Degree() >= size {
		t.Errorf("degree %d not below %d", poly.Degree(), size)
	}
	for i := 0; i < size; i++ {
		if got := poly.Evaluate(field.New(uint64(i))).Value(); got != uint64(pi.Apply(i)) {
			t.Errorf("P(%d) = %d, want %d", i, got, pi.Apply(i))
		}
	}

	if _, err := InterpolatePermutation(pi, 4); !errors.Is(err, bridge.ErrOutOfDomain) {
		t.Errorf("expected ErrOutOfDomain, got %v", err)
	}
}

func TestDigest(t *testing.T) {
	a := goldilocksPoly(t, 1, 2, 3)
	b := goldilocksPoly(t, 1, 2, 4)

	da, err := Digest(a)
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	again, _ := Digest(goldilocksPoly(t, 1, 2, 3))
	if da != again {
		t.Error("equal polynomials produced different digests")
	}
	if db, _ := Digest(b); da == db {
		t.Error("different polynomials produced the same digest")
	}

	plain, _ := core.NewPolynomialFromInt64([]int64{1, 2, 3}, nil)
	if dp, err := Digest(plain); err != nil || dp != da {
		t.Errorf("plain polynomial digest differs: %v", err)
	}

	other, _ := core.NewPolynomialFromInt64([]int64{1}, big.NewInt(97))
	if _, err := Digest(other); !errors.Is(err, core.ErrIncompatibleModulus) {
		t.Errorf("expected ErrIncompatibleModulus, got %v", err)
	}
}

func TestCommitPermutation(t *testing.T) {
	swap := perm.MustNew([]int{1, 4})
	tree, err := CommitPermutation(swap, 5)
	if err != nil {
		t.Fatalf("CommitPermutation: %v", err)
	}
	again, _ := CommitPermutation(perm.MustNew([]int{4, 1}), 5)
	if tree.Root() != again.Root() {
		t.Error("equal permutations produced different roots")
	}

	cycle, _ := CommitPermutation(perm.MustNew([]int{1, 2, 4}), 5)
	if tree.Root() == cycle.Root() {
		t.Error("different permutations produced the same root")
	}

	tests := []struct {
		name string
		pi   *perm.Permutation
		size int
	}{
		{"empty domain", perm.Identity(), 0},
		{"moved element outside", swap, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CommitPermutation(tt.pi, tt.size); !errors.Is(err, bridge.ErrOutOfDomain) {
				t.Errorf("expected ErrOutOfDomain, got %v", err)
			}
		})
	}
}
