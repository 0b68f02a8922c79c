// Package lanerng provides a deterministic, seedable pseudo-random number
// generator built from two coupled families of 64-bit lanes.
//
// A short seed is diffused into a state buffer with repeated SHA-256 mixing
// and sliced into six lanes. Three "multiplicative" lanes behave like
// independent linear-congruential generators; three "xor" lanes perturb them
// and advance once per full sweep of the multiplicative lanes. The output
// stream is bit-exact reproducible for a given seed and state size.
//
// The generator is NOT cryptographically secure.
//
// Example usage:
//
//	gen, err := lanerng.New(lanerng.Config{
//	    Size: 64,
//	    Seed: []byte{0x01, 0x02},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v := gen.Uint64()
//	f := gen.Float64()
package lanerng

import (
	"errors"
	"fmt"
)

const (
	// BlockSize is the size in bytes of one diffusion block. It equals the
	// SHA-256 digest size.
	BlockSize = 32

	// MinSize is the smallest state size accepted by New. Sizes must be
	// strictly larger than one block.
	MinSize = 2 * BlockSize
)

// ErrInvalidSize is returned when the requested state size is not a multiple
// of BlockSize or does not exceed it.
var ErrInvalidSize = errors.New("lanerng: invalid state size")

// Config specifies the configuration for a Generator.
type Config struct {
	// Size is the state buffer size in bytes. It must be a multiple of
	// BlockSize and larger than BlockSize. Each lane holds Size/8 values.
	Size uint64

	// Seed is the seed material. Any length is accepted, including empty.
	// Seeds longer than Size are folded into the buffer with XOR.
	Seed []byte
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Size%BlockSize != 0 {
		return fmt.Errorf("%w: %d is not a multiple of %d", ErrInvalidSize, c.Size, BlockSize)
	}
	if c.Size <= BlockSize {
		return fmt.Errorf("%w: %d must be larger than %d", ErrInvalidSize, c.Size, BlockSize)
	}
	return nil
}

// New creates a generator from the configured seed and state size.
//
// Both the current state and the checkpoint start out equal to the freshly
// seeded state.
func New(config Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	buf, lanes, err := seedLanes(config.Seed, config.Size)
	if err != nil {
		return nil, fmt.Errorf("lanerng: seeding: %w", err)
	}

	g := newGenerator(buf, lanes)
	log.Debugf("Seeded %d lanes of %d values from %d seed bytes (fingerprint %x)",
		laneCount, g.n, len(config.Seed), g.curr.Fingerprint())
	traceState("initial state", &g.curr)

	return g, nil
}
