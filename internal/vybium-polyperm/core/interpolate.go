package core

import (
	"fmt"
	"math/big"
)

// Point represents a point for polynomial interpolation
type Point struct {
	X *big.Rat
	Y *big.Rat
}

// NewPoint creates a point from int64 coordinates
func NewPoint(x, y int64) Point {
	return Point{X: big.NewRat(x, 1), Y: big.NewRat(y, 1)}
}

// Interpolate returns the unique polynomial of degree < len(points) passing
// through every point, built as a sum of Lagrange basis polynomials. With a
// modulus the interpolation happens in the residues, which needs every
// difference x_i - x_j to be a unit.
func Interpolate(points []Point, modulus *big.Int) (*Polynomial, error) {
	m, err := validateModulus(modulus)
	if err != nil {
		return nil, err
	}
	d := domain{modulus: m}

	xs := make([]*big.Rat, len(points))
	ys := make([]*big.Rat, len(points))
	for i, point := range points {
		if xs[i], err = d.normalize(point.X); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		if ys[i], err = d.normalize(point.Y); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		for j := 0; j < i; j++ {
			if xs[j].Cmp(xs[i]) == 0 {
				return nil, fmt.Errorf("%w: points %d and %d share x = %s", ErrDuplicatePoint, j, i, xs[i].RatString())
			}
		}
	}

	result := newTrimmed(nil, m)
	others := make([]*big.Rat, 0, len(points))
	for i := range points {
		if ys[i].Sign() == 0 {
			continue
		}

		others = others[:0]
		denominator := big.NewRat(1, 1)
		for j := range points {
			if j == i {
				continue
			}
			others = append(others, xs[j])
			denominator = d.mul(denominator, d.sub(xs[i], xs[j]))
		}

		inv, err := d.inverse(denominator)
		if err != nil {
			return nil, fmt.Errorf("basis polynomial %d: %w", i, err)
		}

		basis, err := FromRoots(d.mul(ys[i], inv), m, others...)
		if err != nil {
			return nil, err
		}
		if result, err = result.Add(basis); err != nil {
			return nil, err
		}
	}

	return result, nil
}
