package utils

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"

	"github.com/vybium/vybium-polyperm/internal/vybium-polyperm/core"
)

// Supported transcript hash functions
const (
	HashSHA3   = "sha3"
	HashSHA256 = "sha256"
	HashShake  = "shake256"
	HashTip5   = "tip5"
)

// Channel is a Fiat-Shamir transcript. Everything sent is absorbed into a
// running hash whose state seeds every challenge, so challenges are a
// deterministic function of the messages that preceded them.
type Channel struct {
	state    []byte
	log      []string
	hashFunc string
}

var _ core.Transcript = (*Channel)(nil)

// NewChannel creates a channel using hashFunc, defaulting to sha3
func NewChannel(hashFunc string) *Channel {
	if hashFunc == "" {
		hashFunc = HashSHA3
	}
	return &Channel{
		state:    []byte{0},
		log:      make([]string, 0, 32),
		hashFunc: hashFunc,
	}
}

// Send absorbs data into the channel state
func (c *Channel) Send(data []byte) {
	c.log = append(c.log, fmt.Sprintf("send:%s", hex.EncodeToString(data)))
	c.state = c.hash(append(c.state, data...))
}

// SendPolynomial absorbs the canonical rendering of p
func (c *Channel) SendPolynomial(p *core.Polynomial) {
	c.Send([]byte(p.String()))
}

// ReceiveRandomInt derives an integer in [min, max] from the current state.
// Returns nil if min > max.
func (c *Channel) ReceiveRandomInt(min, max *big.Int) *big.Int {
	if min.Cmp(max) > 0 {
		return nil
	}

	span := new(big.Int).Sub(max, min)
	span.Add(span, big.NewInt(1))

	random := new(big.Int).SetBytes(c.state)
	random.Mod(random, span)
	random.Add(random, min)

	c.log = append(c.log, fmt.Sprintf("receive:%s", random.String()))
	c.state = c.hash(c.state)

	return random
}

// ReceiveRandomResidue derives a challenge residue modulo modulus
func (c *Channel) ReceiveRandomResidue(modulus *big.Int) (core.Residue, error) {
	if modulus == nil || modulus.Cmp(big.NewInt(1)) <= 0 {
		return core.Residue{}, fmt.Errorf("%w: %v", core.ErrInvalidModulus, modulus)
	}
	upper := new(big.Int).Sub(modulus, big.NewInt(1))
	return core.NewResidue(c.ReceiveRandomInt(big.NewInt(0), upper), modulus)
}

// State returns a copy of the current state
func (c *Channel) State() []byte {
	return append([]byte(nil), c.state...)
}

// Log returns the transcript of sends and receives
func (c *Channel) Log() []string {
	return append([]string(nil), c.log...)
}

func (c *Channel) hash(data []byte) []byte {
	switch c.hashFunc {
	case HashSHA256:
		h := sha256.Sum256(data)
		return h[:]
	case HashShake:
		out := make([]byte, 64)
		sha3.ShakeSum256(out, data)
		return out
	case HashTip5:
		return tip5Bytes(data)
	default:
		h := sha3.Sum256(data)
		return h[:]
	}
}

// String returns the transcript as one line
func (c *Channel) String() string {
	return strings.Join(c.log, " ")
}

// tip5Bytes hashes data as Goldilocks elements, packing 7 bytes per element so
// every chunk is already reduced, and serializes the digest little-endian.
func tip5Bytes(data []byte) []byte {
	elements := make([]field.Element, 0, len(data)/7+2)
	for i := 0; i < len(data); i += 7 {
		var v uint64
		for j := i; j < i+7 && j < len(data); j++ {
			v |= uint64(data[j]) << (8 * (j - i))
		}
		elements = append(elements, field.New(v))
	}
	// The length separates inputs that differ only in trailing zero bytes
	elements = append(elements, field.New(uint64(len(data))))

	digest := hash.HashVarlen(elements)
	out := make([]byte, len(digest)*8)
	for i, elem := range digest {
		binary.LittleEndian.PutUint64(out[i*8:], elem.Value())
	}
	return out
}
