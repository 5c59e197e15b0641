// Package bridge converts between permutations of {0, ..., p-1} and the
// polynomials over Z_p that realize them pointwise.
//
// Every function on a prime field is a polynomial function of degree below p,
// so each permutation has exactly one such representative. PermToPoly builds
// it directly from the cycle structure; PolyToPerm recovers the permutation by
// evaluating on the whole domain.
package bridge

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/core"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/numbers"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/perm"
)

// maxDomain caps the moduli whose whole domain is enumerated
const maxDomain = 1 << 24

var (
	// ErrOutOfDomain is returned when a permutation moves an element outside [0, m)
	ErrOutOfDomain = errors.New("element outside of domain")

	// ErrDomainTooLarge is returned when a modulus is too large to enumerate
	ErrDomainTooLarge = errors.New("domain too large to enumerate")
)

// PermToPoly returns the polynomial of degree below modulus that agrees with p
// on every element of Z_modulus, using the default bound for the modulus.
//
// modulus must be prime. A composite modulus fails here with
// core.ErrInvalidModulus instead of producing a polynomial that PolyToPerm
// would later reject as not bijective.
func PermToPoly(p *perm.Permutation, modulus int64) (*core.BoundedModularPolynomial, error) {
	return PermToPolyWithBound(p, modulus, nil)
}

// PermToPolyWithBound is PermToPoly with an explicit bound. A nil bound
// selects the default.
//
// With F the fixed points and M the moved points, the result is
//
//	x + Π_{f∈F}(x - f) · Σ_{a∈M} -(p(a) - a) · Π_{b∈M, b≠a}(x - b)
//
// At a moved point a, the two products together run over every non-zero
// difference a - y, which multiply to -1 mod a prime by Wilson's theorem, so
// the correction evaluates to p(a) - a.
func PermToPolyWithBound(p *perm.Permutation, modulus int64, bound *core.Bound) (*core.BoundedModularPolynomial, error) {
	m, err := primeModulus(modulus)
	if err != nil {
		return nil, err
	}

	moved := p.Moved()
	for _, x := range moved {
		if x < 0 || int64(x) >= modulus {
			return nil, fmt.Errorf("%w: %s moves %d, modulus is %d", ErrOutOfDomain, p, x, modulus)
		}
	}
	if len(moved) == 0 {
		return core.BoundedVariable(m, bound)
	}

	fixed := make([]*big.Rat, 0, modulus-int64(len(moved)))
	for x := int64(0); x < modulus; x++ {
		if !p.IsMoved(int(x)) {
			fixed = append(fixed, big.NewRat(x, 1))
		}
	}
	fixedPoly, err := core.FromRoots(big.NewRat(1, 1), m, fixed...)
	if err != nil {
		return nil, err
	}

	shifter, err := core.Zero(m)
	if err != nil {
		return nil, err
	}
	others := make([]*big.Rat, 0, len(moved)-1)
	for i, x := range moved {
		others = others[:0]
		for j, y := range moved {
			if j != i {
				others = append(others, big.NewRat(int64(y), 1))
			}
		}

		shift := big.NewRat(int64(x-p.Apply(x)), 1)
		term, err := core.FromRoots(shift, m, others...)
		if err != nil {
			return nil, err
		}
		if shifter, err = shifter.Add(term); err != nil {
			return nil, err
		}
	}

	correction, err := shifter.Mul(fixedPoly)
	if err != nil {
		return nil, err
	}
	x, err := core.Variable(m)
	if err != nil {
		return nil, err
	}
	result, err := correction.Add(x)
	if err != nil {
		return nil, err
	}
	return core.BoundedFromPolynomial(m, result, bound)
}

// PolyToPerm evaluates poly on every element of its modulus' domain and returns
// the permutation it induces.
func PolyToPerm(poly *core.Polynomial) (*perm.Permutation, error) {
	images, err := PolyToFunction(poly)
	if err != nil {
		return nil, err
	}

	table := make([]int, len(images))
	for i, y := range images {
		table[i] = int(y)
	}
	return perm.FromImages(table)
}

// BoundedToPerm is PolyToPerm for a bounded polynomial
func BoundedToPerm(b *core.BoundedModularPolynomial) (*perm.Permutation, error) {
	return PolyToPerm(b.Polynomial())
}

// PolyToFunction returns the value table [poly(0), ..., poly(m-1)]
func PolyToFunction(poly *core.Polynomial) ([]int64, error) {
	if !poly.HasModulus() {
		return nil, fmt.Errorf("%w: cannot enumerate the domain of %s", core.ErrRequiresModulus, poly)
	}
	m := poly.Modulus()
	if !m.IsInt64() || m.Int64() > maxDomain {
		return nil, fmt.Errorf("%w: modulus %s", ErrDomainTooLarge, m)
	}

	size := m.Int64()
	images := make([]int64, size)
	for x := int64(0); x < size; x++ {
		y, err := poly.Evaluate(big.NewRat(x, 1))
		if err != nil {
			return nil, err
		}
		images[x] = y.Num().Int64()
	}
	return images, nil
}

// IsPermutationPolynomial reports whether poly permutes the domain of its modulus
func IsPermutationPolynomial(poly *core.Polynomial) (bool, error) {
	_, err := PolyToPerm(poly)
	if errors.Is(err, perm.ErrNotBijective) {
		return false, nil
	}
	return err == nil, err
}

// FunctionToPoly interpolates the polynomial of degree below modulus taking
// the value images[x] at each x. images must list the whole domain.
func FunctionToPoly(images []int64, modulus int64) (*core.BoundedModularPolynomial, error) {
	m, err := primeModulus(modulus)
	if err != nil {
		return nil, err
	}
	if int64(len(images)) != modulus {
		return nil, fmt.Errorf("%w: %d values for modulus %d", ErrOutOfDomain, len(images), modulus)
	}

	points := make([]core.Point, len(images))
	for x, y := range images {
		points[x] = core.NewPoint(int64(x), y)
	}
	poly, err := core.Interpolate(points, m)
	if err != nil {
		return nil, err
	}
	return core.BoundedFromPolynomial(m, poly, nil)
}

// VerifyPermutationPolynomial spot-checks poly against p at rounds points drawn
// from t. Both values are absorbed first so the points depend on them.
func VerifyPermutationPolynomial(poly *core.Polynomial, p *perm.Permutation, t core.Transcript, rounds int) (bool, error) {
	if !poly.HasModulus() {
		return false, fmt.Errorf("%w: cannot sample the domain of %s", core.ErrRequiresModulus, poly)
	}
	m := poly.Modulus()
	upper := new(big.Int).Sub(m, big.NewInt(1))

	t.Send([]byte(poly.String()))
	t.Send([]byte(p.String()))

	for i := 0; i < rounds; i++ {
		x := t.ReceiveRandomInt(big.NewInt(0), upper)
		got, err := poly.Evaluate(new(big.Rat).SetInt(x))
		if err != nil {
			return false, err
		}
		want := big.NewInt(int64(p.Apply(int(x.Int64()))))
		want.Mod(want, m)
		if got.Num().Cmp(want) != 0 {
			return false, nil
		}
	}
	return true, nil
}

func primeModulus(modulus int64) (*big.Int, error) {
	if modulus < 2 || !numbers.IsPrime(uint64(modulus)) {
		return nil, fmt.Errorf("%w: %d is not prime", core.ErrInvalidModulus, modulus)
	}
	if modulus > maxDomain {
		return nil, fmt.Errorf("%w: modulus %d", ErrDomainTooLarge, modulus)
	}
	return big.NewInt(modulus), nil
}
