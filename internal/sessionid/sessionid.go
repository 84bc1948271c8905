// Package sessionid issues sortable identifiers for server sessions: a
// UUIDv7 encoded as 26 characters of Crockford base32.
package sessionid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
	"github.com/lox/concentration/internal/randutil"
)

// Crockford's base32, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded session ID
const Length = 26

// Generator issues session IDs. The zero value is not usable; call New.
type Generator struct {
	clock quartz.Clock
	rand  randutil.Source
}

// New creates a generator. A nil clock means wall time; a nil source means
// crypto/rand.
func New(clock quartz.Clock, source randutil.Source) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rand: source}
}

// Generate returns a new session ID
func (g *Generator) Generate() string {
	id := g.uuidv7()
	return encode(id)
}

// uuidv7 lays out a 48-bit millisecond timestamp followed by random bits,
// with the version and variant fields set.
func (g *Generator) uuidv7() [16]byte {
	var id [16]byte

	now := g.clock.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(now >> (40 - 8*i))
	}

	if g.rand != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.rand.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return id
}

// encode writes the 128 bits as 26 five-bit groups, padding the tail with
// two zero bits.
func encode(data [16]byte) string {
	result := make([]byte, Length)

	for i := 0; i < Length; i++ {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if bitIndex <= 3 {
			value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
		} else {
			value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
			if byteIndex+1 < 16 {
				value |= data[byteIndex+1] >> (11 - bitIndex)
			}
		}

		result[i] = alphabet[value]
	}

	return string(result)
}

// Validate checks that id has the length and alphabet of a session ID
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("session ID must be exactly %d characters, got %d", Length, len(id))
	}

	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}

	return nil
}
