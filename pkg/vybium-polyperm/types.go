package vybiumpolyperm

import (
	"math/big"

	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/core"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/perm"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/utils"
)

// Polynomial is an immutable polynomial with exact coefficients and an optional modulus
type Polynomial = core.Polynomial

// Residue is an integer modulo m
type Residue = core.Residue

// BoundedModularPolynomial is a polynomial over Z_m kept below a degree bound
type BoundedModularPolynomial = core.BoundedModularPolynomial

// Bound configures the degree bound and reducing polynomial
type Bound = core.Bound

// Permutation is a bijection of a finite set of integers in cycle form
type Permutation = perm.Permutation

// Config represents the configuration of an Engine
type Config = utils.Config

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return utils.DefaultConfig()
}

// NewPolynomial creates a polynomial from integer coefficients in increasing
// degree order. A modulus of 0 leaves the coefficients rational.
func NewPolynomial(coefficients []int64, modulus int64) (*Polynomial, error) {
	var m *big.Int
	if modulus != 0 {
		m = big.NewInt(modulus)
	}
	p, err := core.NewPolynomialFromInt64(coefficients, m)
	return p, wrapError(err, "failed to create polynomial")
}

// NewResidue creates value mod modulus
func NewResidue(value, modulus int64) (Residue, error) {
	r, err := core.NewResidueFromInt64(value, modulus)
	return r, wrapError(err, "failed to create residue")
}

// NewPermutation creates a permutation from cycles, applying the last cycle first
func NewPermutation(cycles ...[]int) (*Permutation, error) {
	p, err := perm.New(cycles...)
	return p, wrapError(err, "failed to create permutation")
}

// DivMod divides a by b, returning quotient and remainder
func DivMod(a, b *Polynomial) (*Polynomial, *Polynomial, error) {
	q, r, err := core.DivMod(a, b)
	if err != nil {
		return nil, nil, wrapError(err, "polynomial division failed")
	}
	return q, r, nil
}
