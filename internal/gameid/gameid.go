// Package gameid generates hand identifiers: UUIDv7 values rendered as 26
// lower-case Crockford base32 characters, so that ids sort by creation time.
package gameid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an id
const Length = 26

// RandSource supplies the random bits of an id. *rand.Rand satisfies it.
type RandSource interface {
	Uint64() uint64
}

type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
	return binary.BigEndian.Uint64(b[:])
}

// Generator produces ids from a clock and a random source
type Generator struct {
	clock quartz.Clock
	src   RandSource
}

// NewGenerator creates a generator. A nil source uses crypto/rand.
func NewGenerator(clock quartz.Clock, src RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if src == nil {
		src = cryptoSource{}
	}
	return &Generator{clock: clock, src: src}
}

// Next returns the next id
func (g *Generator) Next() string {
	ms := uint64(g.clock.Now("gameid").UnixMilli())
	r1, r2 := g.src.Uint64(), g.src.Uint64()

	// 48-bit timestamp, version 7, 12 random bits
	hi := ms<<16 | 0x7000 | (r1 & 0x0fff)
	// variant 10, 62 random bits
	lo := 0x8000000000000000 | (r2 & 0x3fffffffffffffff)

	return encode(hi, lo)
}

// encode renders 128 bits as 26 base32 characters. The leading character
// only carries 3 bits, so it is always 0-7.
func encode(hi, lo uint64) string {
	var out [Length]byte
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}

// Validate checks if an id is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("id must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("id first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
