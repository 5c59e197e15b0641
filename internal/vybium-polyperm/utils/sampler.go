package utils

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/big"

	lattigo "github.com/tuneinsight/lattigo/v4/utils"

	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/core"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/numbers"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/perm"
)

// ErrNoPrime is returned when a range holds no prime
var ErrNoPrime = errors.New("no prime in range")

// Sampler draws permutations, polynomials and primes from a PRNG. A keyed
// sampler replays the same sequence for the same seed.
type Sampler struct {
	prng lattigo.PRNG
}

// NewSampler returns a sampler keyed by seed, or an unkeyed one for an empty seed
func NewSampler(seed []byte) (*Sampler, error) {
	var (
		prng lattigo.PRNG
		err  error
	)
	if len(seed) == 0 {
		prng, err = lattigo.NewPRNG()
	} else {
		prng, err = lattigo.NewKeyedPRNG(seed)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create PRNG: %w", err)
	}
	return &Sampler{prng: prng}, nil
}

func (s *Sampler) uint64() (uint64, error) {
	var buf [8]byte
	if _, err := s.prng.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// Intn returns a uniform integer in [0, n)
func (s *Sampler) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid range %d", n)
	}
	limit := math.MaxUint64 - math.MaxUint64%uint64(n)
	for {
		v, err := s.uint64()
		if err != nil {
			return 0, err
		}
		if v < limit {
			return int(v % uint64(n)), nil
		}
	}
}

// Below returns a uniform integer in [0, m)
func (s *Sampler) Below(m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, fmt.Errorf("invalid range %s", m)
	}
	// 64 extra bits keep the modular bias negligible
	buf := make([]byte, len(m.Bytes())+8)
	if _, err := s.prng.Read(buf); err != nil {
		return nil, err
	}
	v := new(big.Int).SetBytes(buf)
	return v.Mod(v, m), nil
}

// RandomPermutation returns a uniform permutation of {0, ..., n-1}
func (s *Sampler) RandomPermutation(n int) (*perm.Permutation, error) {
	images := make([]int, n)
	for i := range images {
		images[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j, err := s.Intn(i + 1)
		if err != nil {
			return nil, err
		}
		images[i], images[j] = images[j], images[i]
	}
	return perm.FromImages(images)
}

// RandomPolynomial returns a polynomial over Z_modulus with uniform
// coefficients up to x^degree. The degree may come out lower.
func (s *Sampler) RandomPolynomial(degree int, modulus *big.Int) (*core.Polynomial, error) {
	if modulus == nil {
		return nil, fmt.Errorf("%w: random coefficients need a finite range", core.ErrRequiresModulus)
	}
	coefficients := make([]*big.Rat, degree+1)
	for i := range coefficients {
		c, err := s.Below(modulus)
		if err != nil {
			return nil, err
		}
		coefficients[i] = new(big.Rat).SetInt(c)
	}
	return core.NewPolynomial(coefficients, modulus)
}

// RandomPrime returns a prime in [lo, hi]: the first prime at or after a
// random starting point, wrapping around once.
func (s *Sampler) RandomPrime(lo, hi int64) (int64, error) {
	if lo < 2 {
		lo = 2
	}
	if lo > hi {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrNoPrime, lo, hi)
	}

	span := big.NewInt(hi - lo + 1)
	offset, err := s.Below(span)
	if err != nil {
		return 0, err
	}
	start := lo + offset.Int64()
	for n := start; n <= hi; n++ {
		if numbers.IsPrime(uint64(n)) {
			return n, nil
		}
	}
	for n := lo; n < start; n++ {
		if numbers.IsPrime(uint64(n)) {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: [%d, %d]", ErrNoPrime, lo, hi)
}
