package pkg

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RandString returns a short human friendly code used as the table id.
func RandString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// NewSeed reads a PRNG seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
