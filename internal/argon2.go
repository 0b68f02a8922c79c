package internal

import (
	"golang.org/x/crypto/argon2"
)

// Argon2Config specifies Argon2id parameters for passphrase seeds.
type Argon2Config struct {
	Time      uint32 // Number of iterations
	Memory    uint32 // Memory in KB
	Threads   uint8  // Parallelism factor
	OutputLen uint32 // Output length in bytes
	Salt      []byte // Salt value
}

// DefaultSeedArgon2Config returns the configuration used to turn a
// passphrase into seed bytes.
func DefaultSeedArgon2Config() Argon2Config {
	return Argon2Config{
		Time:      1,
		Memory:    64 * 1024, // 64 MB
		Threads:   4,
		OutputLen: 32,
		Salt:      []byte("lanerng seed v1"),
	}
}

// DeriveSeed stretches passphrase into config.OutputLen seed bytes with
// Argon2id. The result depends only on the passphrase and config.
func DeriveSeed(passphrase []byte, config Argon2Config) []byte {
	return argon2.IDKey(
		passphrase,
		config.Salt,
		config.Time,
		config.Memory,
		config.Threads,
		config.OutputLen,
	)
}
