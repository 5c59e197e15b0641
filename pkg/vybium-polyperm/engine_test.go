package vybiumpolyperm

import (
	"bytes"
	"errors"
	"testing"
)

func newTestEngine(t *testing.T, modulus int64) *Engine {
	t.Helper()
	engine, err := NewEngine(DefaultConfig().WithModulus(modulus))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func TestNewEngine(t *testing.T) {
	if _, err := NewEngine(nil); err != nil {
		t.Fatalf("NewEngine(nil): %v", err)
	}

	tests := []struct {
		name   string
		config *Config
	}{
		{"composite modulus", DefaultConfig().WithModulus(8)},
		{"zero rounds", DefaultConfig().WithRounds(0)},
		{"bound one", DefaultConfig().WithDegreeBound(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.config)
			if CodeOf(err) != ErrInvalidConfig {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestEngineDoesNotShareConfig(t *testing.T) {
	config := DefaultConfig().WithModulus(11)
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	config.WithModulus(13)
	if engine.Modulus() != 11 {
		t.Errorf("Modulus() = %d after caller mutation", engine.Modulus())
	}
	engine.Config().WithModulus(17)
	if engine.Modulus() != 11 {
		t.Error("Config() exposed internal state")
	}
}

func TestEngineRoundTrip(t *testing.T) {
	engine := newTestEngine(t, 5)
	swap, err := engine.ParsePermutation("(0 1)")
	if err != nil {
		t.Fatalf("ParsePermutation: %v", err)
	}

	poly, err := engine.PermToPoly(swap)
	if err != nil {
		t.Fatalf("PermToPoly: %v", err)
	}
	if got := poly.String(); got != "1 + 2 * x + x^2 + x^3 (mod 5)" {
		t.Errorf("PermToPoly((0 1)) = %q", got)
	}

	back, err := engine.PolyToPerm(poly.Polynomial())
	if err != nil {
		t.Fatalf("PolyToPerm: %v", err)
	}
	if !back.Equal(swap) {
		t.Errorf("round trip gave %s", back)
	}

	ok, err := engine.Verify(poly.Polynomial(), swap)
	if err != nil || !ok {
		t.Errorf("Verify = %v, %v", ok, err)
	}
}

func TestEngineRandomRoundTrip(t *testing.T) {
	engine := newTestEngine(t, 19)
	for i := 0; i < 5; i++ {
		p, err := engine.RandomPermutation()
		if err != nil {
			t.Fatalf("RandomPermutation: %v", err)
		}
		poly, err := engine.PermToPoly(p)
		if err != nil {
			t.Fatalf("PermToPoly: %v", err)
		}
		back, err := engine.PolyToPerm(poly.Polynomial())
		if err != nil {
			t.Fatalf("PolyToPerm: %v", err)
		}
		if !back.Equal(p) {
			t.Errorf("round trip of %s gave %s", p, back)
		}
	}
}

func TestEngineDegreeBound(t *testing.T) {
	engine, err := NewEngine(DefaultConfig().WithModulus(7).WithDegreeBound(3))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	p, _ := engine.ParsePermutation("(0 1 2 3 4 5 6)")
	poly, err := engine.PermToPoly(p)
	if err != nil {
		t.Fatalf("PermToPoly: %v", err)
	}
	if poly.DegreeBound() != 3 || poly.Degree() >= 3 {
		t.Errorf("got %s with bound %d", poly, poly.DegreeBound())
	}
}

func TestParsePermutation(t *testing.T) {
	engine := newTestEngine(t, 7)
	tests := []struct {
		input string
		want  string
	}{
		{"()", "()"},
		{"(0 1)", "(0 1)"},
		{"(0,1)(2, 4, 3)", "(0 1)(2 4 3)"},
		{" (3 2) ", "(2 3)"},
		{"(0 1)(1 2)", "(0 1 2)"},
	}
	for _, tt := range tests {
		p, err := engine.ParsePermutation(tt.input)
		if err != nil {
			t.Errorf("ParsePermutation(%q): %v", tt.input, err)
			continue
		}
		if p.String() != tt.want {
			t.Errorf("ParsePermutation(%q) = %s, want %s", tt.input, p, tt.want)
		}
	}

	for _, bad := range []string{"", "0 1", "(0 1", "(a b)", "(0 9)", "(0 1 0)"} {
		_, err := engine.ParsePermutation(bad)
		if !errors.Is(err, &Error{Code: ErrInvalidInput}) {
			t.Errorf("ParsePermutation(%q): expected ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestEngineErrorCodes(t *testing.T) {
	engine := newTestEngine(t, 5)

	plain, _ := NewPolynomial([]int64{0, 1}, 0)
	if _, err := engine.PolyToPerm(plain); CodeOf(err) != ErrRequiresModulus {
		t.Errorf("expected ErrRequiresModulus, got %v", err)
	}

	square, _ := NewPolynomial([]int64{0, 0, 1}, 5)
	if _, err := engine.PolyToPerm(square); CodeOf(err) != ErrNotBijective {
		t.Errorf("expected ErrNotBijective, got %v", err)
	}

	wide, _ := engine.ParsePermutation("(0 4)")
	small := newTestEngine(t, 3)
	if _, err := small.PermToPoly(wide); CodeOf(err) != ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	if _, err := engine.Interpolate([]int64{1, 2}); CodeOf(err) != ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEngineVerifyDivision(t *testing.T) {
	engine := newTestEngine(t, 13)
	a, _ := NewPolynomial([]int64{1, 2, 3, 4, 5}, 13)
	b, _ := NewPolynomial([]int64{2, 1}, 13)
	q, r, err := DivMod(a, b)
	if err != nil {
		t.Fatalf("DivMod: %v", err)
	}
	if ok, err := engine.VerifyDivision(a, b, q, r); err != nil || !ok {
		t.Errorf("VerifyDivision = %v, %v", ok, err)
	}

	zero, _ := NewPolynomial(nil, 13)
	if _, _, err := DivMod(a, zero); CodeOf(err) != ErrDivisionByZero {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestEngineCommit(t *testing.T) {
	engine := newTestEngine(t, 7)
	swap, _ := engine.ParsePermutation("(1 5)")
	same, _ := engine.ParsePermutation("(5,1)")
	cycle, _ := engine.ParsePermutation("(1 5 6)")

	root, err := engine.Commit(swap)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if len(root) == 0 {
		t.Fatal("empty root")
	}
	if again, _ := engine.Commit(same); !bytes.Equal(root, again) {
		t.Error("equal permutations committed to different roots")
	}
	if other, _ := engine.Commit(cycle); bytes.Equal(root, other) {
		t.Error("different permutations committed to the same root")
	}

	wide := newTestEngine(t, 1048583)
	if _, err := wide.Commit(swap); CodeOf(err) != ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput for a large domain, got %v", err)
	}
}

func TestEngineFingerprint(t *testing.T) {
	engine := newTestEngine(t, 5)
	a, _ := NewPolynomial([]int64{1, 2, 1, 1}, 5)
	b, _ := NewPolynomial([]int64{6, 2, 1, 1}, 5)
	c, _ := NewPolynomial([]int64{1, 2, 1}, 5)

	fa, err := engine.Fingerprint(a)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if fb, _ := engine.Fingerprint(b); !bytes.Equal(fa, fb) {
		t.Error("congruent polynomials have different fingerprints")
	}
	if fc, _ := engine.Fingerprint(c); bytes.Equal(fa, fc) {
		t.Error("different polynomials share a fingerprint")
	}
}
