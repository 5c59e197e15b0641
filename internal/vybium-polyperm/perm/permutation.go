// Package perm implements permutations of finite sets of integers in disjoint
// cycle form.
package perm

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrNotBijective is returned when a function is not a bijection on its domain
	ErrNotBijective = errors.New("not a bijection")

	// ErrDuplicateElement is returned when a single cycle repeats an element
	ErrDuplicateElement = errors.New("duplicate element in cycle")
)

// Permutation is an immutable bijection stored as disjoint cycles. Each cycle
// starts at its smallest element and cycles are sorted by that element, so two
// equal permutations have identical representations.
type Permutation struct {
	cycles  [][]int
	mapping map[int]int
}

// Identity returns the permutation that moves nothing
func Identity() *Permutation {
	return &Permutation{mapping: map[int]int{}}
}

// New builds a permutation from cycles that need not be disjoint. Cycles are
// composed right to left: the last cycle is applied first.
func New(cycles ...[]int) (*Permutation, error) {
	seen := make(map[int]struct{})
	var order []int
	for _, cycle := range cycles {
		inCycle := make(map[int]struct{}, len(cycle))
		for _, x := range cycle {
			if _, dup := inCycle[x]; dup {
				return nil, fmt.Errorf("%w: %d repeats in cycle %v", ErrDuplicateElement, x, cycle)
			}
			inCycle[x] = struct{}{}
			if _, ok := seen[x]; !ok {
				seen[x] = struct{}{}
				order = append(order, x)
			}
		}
	}

	apply := func(x int) int {
		for i := len(cycles) - 1; i >= 0; i-- {
			cycle := cycles[i]
			for j, y := range cycle {
				if y == x {
					x = cycle[(j+1)%len(cycle)]
					break
				}
			}
		}
		return x
	}

	mapping := make(map[int]int, len(order))
	for _, x := range order {
		if y := apply(x); y != x {
			mapping[x] = y
		}
	}
	return fromMapping(mapping), nil
}

// MustNew is New for literal cycles known to be valid
func MustNew(cycles ...[]int) *Permutation {
	p, err := New(cycles...)
	if err != nil {
		panic(err)
	}
	return p
}

// fromMapping walks the moved elements once with a visited set to split them
// into cycles. mapping must only hold moved elements.
func fromMapping(mapping map[int]int) *Permutation {
	moved := make([]int, 0, len(mapping))
	for x := range mapping {
		moved = append(moved, x)
	}
	sort.Ints(moved)

	visited := make(map[int]bool, len(moved))
	var cycles [][]int
	for _, head := range moved {
		if visited[head] {
			continue
		}
		cycle := []int{head}
		visited[head] = true
		for x := mapping[head]; x != head; x = mapping[x] {
			cycle = append(cycle, x)
			visited[x] = true
		}
		cycles = append(cycles, cycle)
	}

	return &Permutation{cycles: cycles, mapping: mapping}
}

// FromFunction reconstructs the permutation f induces on domain. It fails with
// ErrNotBijective if f leaves the domain or maps two elements to one image.
func FromFunction(f func(int) int, domain []int) (*Permutation, error) {
	inDomain := make(map[int]bool, len(domain))
	for _, x := range domain {
		inDomain[x] = true
	}

	hit := make(map[int]bool, len(domain))
	mapping := make(map[int]int)
	for x := range inDomain {
		y := f(x)
		if !inDomain[y] {
			return nil, fmt.Errorf("%w: %d maps to %d outside the domain", ErrNotBijective, x, y)
		}
		if hit[y] {
			return nil, fmt.Errorf("%w: %d is hit twice", ErrNotBijective, y)
		}
		hit[y] = true
		if y != x {
			mapping[x] = y
		}
	}
	return fromMapping(mapping), nil
}

// FromImages builds the permutation i -> images[i] of {0, ..., len(images)-1}
func FromImages(images []int) (*Permutation, error) {
	domain := make([]int, len(images))
	for i := range domain {
		domain[i] = i
	}
	return FromFunction(func(x int) int { return images[x] }, domain)
}

// Apply returns the image of x; elements outside every cycle are fixed
func (p *Permutation) Apply(x int) int {
	if y, ok := p.mapping[x]; ok {
		return y
	}
	return x
}

// Moved returns the moved elements in increasing order
func (p *Permutation) Moved() []int {
	moved := make([]int, 0, len(p.mapping))
	for x := range p.mapping {
		moved = append(moved, x)
	}
	sort.Ints(moved)
	return moved
}

// IsMoved reports whether p moves x
func (p *Permutation) IsMoved(x int) bool {
	_, ok := p.mapping[x]
	return ok
}

// Cycles returns a copy of the disjoint cycles
func (p *Permutation) Cycles() [][]int {
	cycles := make([][]int, len(p.cycles))
	for i, c := range p.cycles {
		cycles[i] = append([]int(nil), c...)
	}
	return cycles
}

// IsIdentity reports whether p moves nothing
func (p *Permutation) IsIdentity() bool {
	return len(p.mapping) == 0
}

// Equal reports whether p and other are the same bijection
func (p *Permutation) Equal(other *Permutation) bool {
	if len(p.mapping) != len(other.mapping) {
		return false
	}
	for x, y := range p.mapping {
		if other.mapping[x] != y {
			return false
		}
	}
	return true
}

// Compose returns the permutation x -> p(other(x))
func (p *Permutation) Compose(other *Permutation) *Permutation {
	mapping := make(map[int]int)
	for x := range other.mapping {
		if y := p.Apply(other.Apply(x)); y != x {
			mapping[x] = y
		}
	}
	for x := range p.mapping {
		if _, done := other.mapping[x]; done {
			continue
		}
		if y := p.Apply(x); y != x {
			mapping[x] = y
		}
	}
	return fromMapping(mapping)
}

// Inverse returns the inverse permutation
func (p *Permutation) Inverse() *Permutation {
	mapping := make(map[int]int, len(p.mapping))
	for x, y := range p.mapping {
		mapping[y] = x
	}
	return fromMapping(mapping)
}

// Pow returns p^n; negative n raises the inverse
func (p *Permutation) Pow(n int) *Permutation {
	step := p
	if n < 0 {
		step, n = p.Inverse(), -n
	}

	result := Identity()
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = result.Compose(step)
		}
		step = step.Compose(step)
	}
	return result
}

// Order returns the least k > 0 with p^k = identity
func (p *Permutation) Order() int {
	order := 1
	for _, c := range p.cycles {
		order = lcm(order, len(c))
	}
	return order
}

// Parity returns +1 for even and -1 for odd permutations
func (p *Permutation) Parity() int {
	parity := 1
	for _, c := range p.cycles {
		if len(c)%2 == 0 {
			parity = -parity
		}
	}
	return parity
}

// String renders p in cycle notation, e.g. "(0 1)(2 4 3)"; the identity is "()"
func (p *Permutation) String() string {
	if len(p.cycles) == 0 {
		return "()"
	}

	var sb strings.Builder
	for _, c := range p.cycles {
		sb.WriteByte('(')
		for i, x := range c {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(x))
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

func lcm(a, b int) int {
	x, y := a, b
	for y != 0 {
		x, y = y, x%y
	}
	return a / x * b
}
