// Package vybiumpolyperm converts permutations of {0, ..., p-1} into the
// polynomials over Z_p that realize them, and back.
//
// Every function on a prime field Z_p is a polynomial function of degree
// below p. For a permutation this polynomial is a permutation polynomial, and
// the package computes it directly from the cycle structure.
//
// # Quick Start
//
// Converting a permutation:
//
//	engine, err := vybiumpolyperm.NewEngine(vybiumpolyperm.DefaultConfig().WithModulus(5))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	swap, err := engine.ParsePermutation("(0 1)")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	poly, err := engine.PermToPoly(swap)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(poly) // 1 + 2 * x + x^2 + x^3 (mod 5)
//
// Recovering it:
//
//	back, err := engine.PolyToPerm(poly.Polynomial())
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(back) // (0 1)
//
// # Commitments
//
// Commit hashes the table (x, p(x)) into a Merkle tree over the Goldilocks
// field using Tip5, and Fingerprint digests the coefficients of a polynomial
// the same way. Both are deterministic, so two parties holding the same
// permutation agree on the root without exchanging the table.
//
// # Errors
//
// Every error returned by this package is an *Error carrying an ErrorCode.
// Match codes with errors.Is against an *Error of the same code, or read
// them with CodeOf.
package vybiumpolyperm
