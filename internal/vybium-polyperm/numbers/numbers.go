// Package numbers holds the small number-theoretic helpers the polynomial engine
// relies on: factorization, Euler's totient and primality.
package numbers

import (
	"math/big"
	"sort"

	"github.com/tuneinsight/lattigo/v4/ring"
)

// barrettLimit bounds the moduli handed to ring.ModExp, whose Barrett reduction
// needs headroom above the modulus.
const barrettLimit = uint64(1) << 61

// PrimePower is a single factor p^k of a factorization
type PrimePower struct {
	Prime    uint64
	Exponent int
}

// Factors returns the prime factorization of n in increasing order of primes.
// 0 and 1 have no factors.
func Factors(n uint64) []PrimePower {
	if n < 2 {
		return nil
	}

	var factors []PrimePower
	// extract divides out every power of k and reports whether the cofactor
	// left over is 1 or prime, which ends the search
	extract := func(k uint64) bool {
		count := 0
		for n%k == 0 {
			n /= k
			count++
		}
		if count == 0 {
			return false
		}
		factors = append(factors, PrimePower{Prime: k, Exponent: count})
		return n == 1 || IsPrime(n)
	}

	if !IsPrime(n) && !extract(2) && !extract(3) {
		// Candidates of the form 6k±1
		for i := uint64(6); n > 1 && (i-1) <= n/(i-1); i += 6 {
			if extract(i-1) || extract(i+1) {
				break
			}
		}
	}

	if n > 1 {
		factors = append(factors, PrimePower{Prime: n, Exponent: 1})
	}
	return factors
}

// Divisors returns every positive divisor of n in increasing order
func Divisors(n uint64) []uint64 {
	if n == 0 {
		return nil
	}

	divisors := []uint64{1}
	for _, f := range Factors(n) {
		next := make([]uint64, 0, len(divisors)*(f.Exponent+1))
		power := uint64(1)
		for k := 0; k <= f.Exponent; k++ {
			for _, d := range divisors {
				next = append(next, d*power)
			}
			power *= f.Prime
		}
		divisors = next
	}

	sort.Slice(divisors, func(i, j int) bool { return divisors[i] < divisors[j] })
	return divisors
}

// JordanTotient computes J_k(n) = n^k * Π (1 - p^-k) over the primes p dividing n.
func JordanTotient(n uint64, k int) uint64 {
	if n == 0 {
		return 0
	}

	total := uint64(1)
	for _, f := range Factors(n) {
		pk := pow(f.Prime, k)
		total *= (pk - 1) * pow(pk, f.Exponent-1)
	}
	return total
}

// EulerTotient counts the integers in [1, n] coprime to n
func EulerTotient(n uint64) uint64 {
	return JordanTotient(n, 1)
}

// IsPrime reports whether n is prime
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	return ring.IsPrime(n)
}

// ModExp computes x^e mod m. m must be non-zero.
func ModExp(x, e, m uint64) uint64 {
	if m == 1 {
		return 0
	}
	if m < barrettLimit {
		return ring.ModExp(x%m, e, m)
	}

	result := new(big.Int).Exp(
		new(big.Int).SetUint64(x),
		new(big.Int).SetUint64(e),
		new(big.Int).SetUint64(m),
	)
	return result.Uint64()
}

func pow(base uint64, exp int) uint64 {
	result := uint64(1)
	for ; exp > 0; exp-- {
		result *= base
	}
	return result
}
