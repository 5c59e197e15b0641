// Package goldilocks moves polynomials over Z_p, p = 2^64 - 2^32 + 1, between
// the exact engine and the word-sized field arithmetic of vybium-crypto.
package goldilocks

import (
	"fmt"
	"math/big"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/merkle"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/polynomial"

	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/bridge"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/core"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/perm"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/utils"
)

// Modulus returns the Goldilocks prime
func Modulus() *big.Int {
	return new(big.Int).SetUint64(field.P)
}

// Lift converts p into a vybium-crypto polynomial. p must carry the
// Goldilocks modulus; a plain polynomial is reduced into the field first.
func Lift(p *core.Polynomial) (*polynomial.Polynomial, error) {
	elements, err := coefficients(p)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return polynomial.New([]field.Element{field.Zero}), nil
	}
	return polynomial.New(elements), nil
}

// coefficients returns p's coefficients as field elements, lowest degree first
func coefficients(p *core.Polynomial) ([]field.Element, error) {
	m := Modulus()
	if p.HasModulus() && p.Modulus().Cmp(m) != 0 {
		return nil, fmt.Errorf("%w: %s is not the Goldilocks prime", core.ErrIncompatibleModulus, p.Modulus())
	}
	if !p.HasModulus() {
		moved, err := core.NewPolynomial(p.Coefficients(), m)
		if err != nil {
			return nil, err
		}
		p = moved
	}

	cs := p.Coefficients()
	elements := make([]field.Element, len(cs))
	for i, c := range cs {
		elements[i] = field.New(c.Num().Uint64())
	}
	return elements, nil
}

// Evaluate evaluates p at every point of xs in the Goldilocks field
func Evaluate(p *core.Polynomial, xs []uint64) ([]uint64, error) {
	lifted, err := Lift(p)
	if err != nil {
		return nil, err
	}

	values := make([]uint64, len(xs))
	for i, x := range xs {
		values[i] = lifted.Evaluate(field.New(x)).Value()
	}
	return values, nil
}

// Divide divides a by b in the Goldilocks field
func Divide(a, b *core.Polynomial) (*polynomial.Polynomial, *polynomial.Polynomial, error) {
	la, err := Lift(a)
	if err != nil {
		return nil, nil, err
	}
	lb, err := Lift(b)
	if err != nil {
		return nil, nil, err
	}
	if lb.IsZero() {
		return nil, nil, core.ErrDivisionByZero
	}

	q, r := la.Divide(lb)
	return q, r, nil
}

// InterpolatePermutation returns the polynomial of degree below size mapping
// each i in [0, size) to pi(i) inside the Goldilocks field.
func InterpolatePermutation(pi *perm.Permutation, size int) (*polynomial.Polynomial, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: empty domain", bridge.ErrOutOfDomain)
	}
	for _, x := range pi.Moved() {
		if x < 0 || x >= size {
			return nil, fmt.Errorf("%w: %s moves %d, domain size is %d", bridge.ErrOutOfDomain, pi, x, size)
		}
	}

	points := make([][2]field.Element, size)
	for i := range points {
		points[i] = [2]field.Element{field.New(uint64(i)), field.New(uint64(pi.Apply(i)))}
	}
	return polynomial.Interpolate(points), nil
}

// Digest returns the Tip5 digest of p's coefficients in the Goldilocks field.
// The coefficient count is absorbed first so trailing zeros cannot collide.
func Digest(p *core.Polynomial) (hash.Digest, error) {
	cs, err := coefficients(p)
	if err != nil {
		return hash.Digest{}, err
	}
	elements := append([]field.Element{field.New(uint64(len(cs)))}, cs...)
	return hash.HashVarlen(elements), nil
}

// CommitPermutation builds a Merkle tree whose leaf i is Tip5(i, pi(i)). The
// table is padded with fixed points up to a power of two.
func CommitPermutation(pi *perm.Permutation, size int) (*merkle.MerkleTree, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: empty domain", bridge.ErrOutOfDomain)
	}
	for _, x := range pi.Moved() {
		if x < 0 || x >= size {
			return nil, fmt.Errorf("%w: %s moves %d, domain size is %d", bridge.ErrOutOfDomain, pi, x, size)
		}
	}

	leaves := make([]hash.Digest, utils.NextPowerOfTwo(size))
	for i := range leaves {
		pair := []field.Element{field.New(uint64(i)), field.New(uint64(pi.Apply(i)))}
		leaves[i] = hash.HashVarlen(pair)
	}

	tree, err := merkle.New(leaves)
	if err != nil {
		return nil, fmt.Errorf("failed to create Merkle tree: %w", err)
	}
	return tree, nil
}
