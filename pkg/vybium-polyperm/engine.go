package vybiumpolyperm

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/bridge"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/core"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/goldilocks"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/perm"
	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/utils"
)

// maxCommitDomain caps the number of Merkle leaves Commit will build
const maxCommitDomain = 1 << 20

// Engine converts between permutations and polynomials over one prime field
type Engine struct {
	config  *Config
	modulus *big.Int
	bound   *core.Bound
	sampler *utils.Sampler
}

// NewEngine creates an engine with the given configuration; nil selects DefaultConfig
func NewEngine(config *Config) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	config = config.Clone()
	if err := config.Validate(); err != nil {
		return nil, &Error{Code: ErrInvalidConfig, Message: "invalid configuration", Cause: err}
	}

	modulus := big.NewInt(config.Modulus)
	var bound *core.Bound
	if config.DegreeBound > 0 {
		bound = (&core.Bound{}).WithDegreeBound(config.DegreeBound)
		if err := bound.Validate(modulus); err != nil {
			return nil, &Error{Code: ErrInvalidConfig, Message: "invalid degree bound", Cause: err}
		}
	}

	sampler, err := utils.NewSampler(config.Seed)
	if err != nil {
		return nil, &Error{Code: ErrInvalidConfig, Message: "failed to create sampler", Cause: err}
	}

	return &Engine{
		config:  config,
		modulus: modulus,
		bound:   bound,
		sampler: sampler,
	}, nil
}

// Config returns a copy of the engine configuration
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Modulus returns the prime the engine works over
func (e *Engine) Modulus() int64 {
	return e.config.Modulus
}

// PermToPoly returns the polynomial of degree below the modulus realizing p
func (e *Engine) PermToPoly(p *Permutation) (*BoundedModularPolynomial, error) {
	poly, err := bridge.PermToPolyWithBound(p, e.config.Modulus, e.bound)
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("cannot convert %s", p))
	}
	return poly, nil
}

// PolyToPerm returns the permutation poly induces on its domain
func (e *Engine) PolyToPerm(poly *Polynomial) (*Permutation, error) {
	p, err := bridge.PolyToPerm(poly)
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("cannot convert %s", poly))
	}
	return p, nil
}

// Interpolate returns the polynomial of degree below the modulus taking the
// value images[x] at x
func (e *Engine) Interpolate(images []int64) (*BoundedModularPolynomial, error) {
	poly, err := bridge.FunctionToPoly(images, e.config.Modulus)
	if err != nil {
		return nil, wrapError(err, "interpolation failed")
	}
	return poly, nil
}

// Verify spot-checks poly against p at Rounds transcript-derived points
func (e *Engine) Verify(poly *Polynomial, p *Permutation) (bool, error) {
	ch := utils.NewChannel(e.config.HashFunction)
	ok, err := bridge.VerifyPermutationPolynomial(poly, p, ch, e.config.Rounds)
	return ok, wrapError(err, "verification failed")
}

// VerifyDivision checks a == b*q + r at Rounds transcript-derived points
func (e *Engine) VerifyDivision(a, b, q, r *Polynomial) (bool, error) {
	ch := utils.NewChannel(e.config.HashFunction)
	ok, err := core.VerifyDivision(a, b, q, r, ch, e.config.Rounds)
	return ok, wrapError(err, "division check failed")
}

// RandomPermutation samples a permutation of the whole domain
func (e *Engine) RandomPermutation() (*Permutation, error) {
	p, err := e.sampler.RandomPermutation(int(e.config.Modulus))
	return p, wrapError(err, "sampling failed")
}

// Commit returns the Merkle root over the table (x, p(x)) for every x in the
// domain, serialized little-endian.
func (e *Engine) Commit(p *Permutation) ([]byte, error) {
	if e.config.Modulus > maxCommitDomain {
		return nil, &Error{
			Code:    ErrInvalidInput,
			Message: fmt.Sprintf("domain of %d elements is too large to commit", e.config.Modulus),
		}
	}
	tree, err := goldilocks.CommitPermutation(p, int(e.config.Modulus))
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("cannot commit %s", p))
	}
	root := tree.Root()
	out := make([]byte, len(root)*8)
	for i, elem := range root {
		binary.LittleEndian.PutUint64(out[i*8:], elem.Value())
	}
	return out, nil
}

// Fingerprint returns the Tip5 digest of poly's canonical coefficients,
// serialized little-endian. Polynomials with equal coefficients over any
// modulus share a fingerprint.
func (e *Engine) Fingerprint(poly *Polynomial) ([]byte, error) {
	plain, err := core.NewPolynomial(poly.Coefficients(), nil)
	if err != nil {
		return nil, wrapError(err, "cannot fingerprint")
	}
	digest, err := goldilocks.Digest(plain)
	if err != nil {
		return nil, wrapError(err, "cannot fingerprint")
	}
	out := make([]byte, len(digest)*8)
	for i, elem := range digest {
		binary.LittleEndian.PutUint64(out[i*8:], elem.Value())
	}
	return out, nil
}

// ParsePermutation reads cycle notation such as "(0 1)(2 4 3)" or "(0,1)".
// "()" is the identity.
func (e *Engine) ParsePermutation(s string) (*Permutation, error) {
	cycles, err := parseCycles(s)
	if err != nil {
		return nil, &Error{Code: ErrInvalidInput, Message: fmt.Sprintf("cannot parse %q", s), Cause: err}
	}
	for _, cycle := range cycles {
		for _, x := range cycle {
			if x < 0 || int64(x) >= e.config.Modulus {
				return nil, &Error{
					Code:    ErrInvalidInput,
					Message: fmt.Sprintf("element %d outside [0, %d)", x, e.config.Modulus),
				}
			}
		}
	}

	p, err := perm.New(cycles...)
	return p, wrapError(err, fmt.Sprintf("cannot parse %q", s))
}

func parseCycles(s string) ([][]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty permutation")
	}

	var cycles [][]int
	for s != "" {
		if s[0] != '(' {
			return nil, fmt.Errorf("expected '(' at %q", s)
		}
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return nil, fmt.Errorf("unclosed cycle %q", s)
		}

		fields := strings.FieldsFunc(s[1:end], func(r rune) bool {
			return r == ' ' || r == ','
		})
		cycle := make([]int, len(fields))
		for i, f := range fields {
			x, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("invalid element %q: %w", f, err)
			}
			cycle[i] = x
		}
		if len(cycle) > 0 {
			cycles = append(cycles, cycle)
		}
		s = strings.TrimSpace(s[end+1:])
	}
	return cycles, nil
}
