// Package internal provides the hash primitives used by lanerng.
// This package wraps golang.org/x/crypto and crypto/* packages.
package internal

import (
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Blake2b256 computes a 256-bit Blake2b hash (32 bytes).
func Blake2b256(data []byte) [32]byte {
	return blake2b.Sum256(data)
}

// Blake2bStream provides streaming Blake2b-256 hashing.
type Blake2bStream struct {
	hasher hash.Hash
}

// NewBlake2bStream creates a new streaming Blake2b-256 hasher, keyed when key
// is non-empty.
func NewBlake2bStream(key []byte) (*Blake2bStream, error) {
	hasher, err := blake2b.New256(key)
	if err != nil {
		return nil, err
	}
	return &Blake2bStream{hasher: hasher}, nil
}

// Write adds data to the hash.
func (b *Blake2bStream) Write(data []byte) (int, error) {
	return b.hasher.Write(data)
}

// Sum returns the current hash value.
func (b *Blake2bStream) Sum() [32]byte {
	var out [32]byte
	copy(out[:], b.hasher.Sum(nil))
	return out
}

// Reset resets the hasher to initial state.
func (b *Blake2bStream) Reset() {
	b.hasher.Reset()
}
