package internal

import (
	"crypto/sha256"
)

// DigestSize is the size of a block digest in bytes.
const DigestSize = sha256.Size

// BlockDigest returns the SHA-256 digest of block.
func BlockDigest(block []byte) [DigestSize]byte {
	return sha256.Sum256(block)
}
