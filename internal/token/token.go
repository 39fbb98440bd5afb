// Package token generates short random identifiers: websocket request ids
// and the ids stamped on records synthesized while the backing store is
// unreachable. Collisions only need to be unlikely, not impossible, so the
// generator favours speed over uniform distribution.
package token

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

const (
	bytesInUint64 = 8
	charset       = "abcdefghijklmnopqrstuvwxyz0123456789" // base-36, lower case
)

var charsetLen = len(charset)

var defaultSource = newSource()

func newSource() *source {
	seed := make([]byte, bytesInUint64*2)

	if _, err := cryptorand.Read(seed); err != nil {
		panic("unreachable")
	}

	return &source{
		//nolint:gosec // identifiers are not security sensitive
		rng: rand.New(rand.NewPCG(
			binary.LittleEndian.Uint64(seed[:8]),
			binary.LittleEndian.Uint64(seed[8:]),
		)),
	}
}

type source struct {
	mut sync.Mutex
	rng *rand.Rand
}

func (s *source) fill(buf []byte) {
	s.mut.Lock()
	defer s.mut.Unlock()

	for i := range buf {
		buf[i] = charset[s.rng.IntN(charsetLen)]
	}
}

// New returns a random base-36 token of the given length.
func New(length int) string {
	buf := make([]byte, length)
	defaultSource.fill(buf)
	return string(buf)
}
