package utils

import (
	"fmt"

	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/numbers"
)

// Config holds the parameters shared by the engine and the command line tool
type Config struct {
	// Prime modulus of the permutation domain
	Modulus int64

	// Degree bound of bounded results; 0 selects phi(Modulus) + 1
	DegreeBound int

	// Transcript parameters
	HashFunction string // "sha3", "sha256", "shake256" or "tip5"
	Rounds       int    // spot checks per verification

	// Sampler seed; empty draws from the system PRNG
	Seed []byte
}

// DefaultConfig returns a configuration over Z_7
func DefaultConfig() *Config {
	return &Config{
		Modulus:      7,
		DegreeBound:  0,
		HashFunction: HashSHA3,
		Rounds:       16,
		Seed:         []byte("vybium-polyperm"),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Modulus < 2 || !numbers.IsPrime(uint64(c.Modulus)) {
		return fmt.Errorf("modulus must be prime, got %d", c.Modulus)
	}

	if c.DegreeBound < 0 {
		return fmt.Errorf("degree bound must not be negative")
	}

	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive")
	}

	switch c.HashFunction {
	case HashSHA3, HashSHA256, HashShake, HashTip5:
	default:
		return fmt.Errorf("hash function must be '%s', '%s', '%s' or '%s', got '%s'",
			HashSHA3, HashSHA256, HashShake, HashTip5, c.HashFunction)
	}

	return nil
}

// WithModulus sets the modulus
func (c *Config) WithModulus(modulus int64) *Config {
	c.Modulus = modulus
	return c
}

// WithDegreeBound sets the degree bound
func (c *Config) WithDegreeBound(bound int) *Config {
	c.DegreeBound = bound
	return c
}

// WithHashFunction sets the hash function
func (c *Config) WithHashFunction(hashFunc string) *Config {
	c.HashFunction = hashFunc
	return c
}

// WithRounds sets the number of spot checks
func (c *Config) WithRounds(rounds int) *Config {
	c.Rounds = rounds
	return c
}

// WithSeed sets the sampler seed
func (c *Config) WithSeed(seed []byte) *Config {
	c.Seed = append([]byte(nil), seed...)
	return c
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	return &Config{
		Modulus:      c.Modulus,
		DegreeBound:  c.DegreeBound,
		HashFunction: c.HashFunction,
		Rounds:       c.Rounds,
		Seed:         append([]byte(nil), c.Seed...),
	}
}
