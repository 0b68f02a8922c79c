package lanerng

import (
	"bytes"
	"encoding/binary"

	"github.com/opd-ai/go-lanerng/internal"
)

// Lane indices in seeding order. The diffusion passes fill the lanes in
// exactly this order.
const (
	laneMultX = iota
	laneMultA
	laneMultB
	laneXorX
	laneXorA
	laneXorB

	laneCount
)

// laneNames maps lane indices to the labels used in trace output.
var laneNames = [laneCount]string{"mult_x", "mult_a", "mult_b", "xor_x", "xor_a", "xor_b"}

// signMask clears bit 63 before residues are taken.
const signMask = 0x7FFF_FFFF_FFFF_FFFF

// seeder expands seed material into a state buffer by repeated
// hash-mixing of adjacent blocks.
type seeder struct {
	buf    []byte // State buffer, len is a multiple of BlockSize
	blocks int    // Number of BlockSize blocks in buf
}

// newSeeder allocates a zeroed buffer of size bytes and absorbs seed into it.
// Seed bytes past the end of the buffer wrap around and are XORed in.
func newSeeder(seed []byte, size int) *seeder {
	s := &seeder{
		buf:    make([]byte, size),
		blocks: size / BlockSize,
	}

	for i, b := range seed {
		s.buf[i%size] ^= b
	}

	return s
}

// block returns the in-place view of block i.
func (s *seeder) block(i int) []byte {
	return s.buf[i*BlockSize : (i+1)*BlockSize]
}

// diffuse runs one diffusion pass: 2*blocks steps, each folding block i and
// both block digests into block i+1 (cyclically).
func (s *seeder) diffuse() {
	var block0, block1 [BlockSize]byte

	for i := 0; i < 2*s.blocks; i++ {
		target := s.block((i + 1) % s.blocks)
		copy(block0[:], s.block(i%s.blocks))
		copy(block1[:], target)

		// Identical inputs would cancel the digests against each other.
		if bytes.Equal(block0[:], block1[:]) {
			traceLog("diffusion step %d: blocks %d and %d collide, perturbing",
				i, i%s.blocks, (i+1)%s.blocks)
			for j := range block1 {
				target[j] ^= byte(j + 1)
				block1[j] ^= byte(j + 1)
			}
		}

		h0 := internal.BlockDigest(block0[:])
		h1 := internal.BlockDigest(block1[:])

		for j := range target {
			target[j] ^= h0[j] ^ h1[j] ^ block0[j]
		}
	}
}

// lane decodes the buffer into 64-bit values, eight little-endian bytes per
// value.
func (s *seeder) lane() []uint64 {
	lane := make([]uint64, len(s.buf)/8)
	for i := range lane {
		lane[i] = binary.LittleEndian.Uint64(s.buf[i*8:])
	}
	return lane
}

// seedLanes builds the state buffer for seed and derives the six corrected
// lanes from it. The returned buffer holds the content after the last
// diffusion pass.
func seedLanes(seed []byte, size uint64) ([]byte, [laneCount][]uint64, error) {
	var lanes [laneCount][]uint64

	config := Config{Size: size}
	if err := config.Validate(); err != nil {
		return nil, lanes, err
	}

	s := newSeeder(seed, int(size))
	for i := range lanes {
		s.diffuse()
		lanes[i] = s.lane()
	}

	correctParameters(&lanes)

	return s.buf, lanes, nil
}

// residue returns v mod m computed on v with its top bit cleared.
func residue(v, m uint64) uint64 {
	return (v & signMask) % m
}

// correctParameters forces the multiplier and increment lanes into the
// residue classes the recurrence relies on:
//
//	mult_a = 1 (mod 4), mult_b odd, xor_a even, xor_b odd
//
// All arithmetic wraps modulo 2^64.
func correctParameters(lanes *[laneCount][]uint64) {
	multA, multB := lanes[laneMultA], lanes[laneMultB]
	xorA, xorB := lanes[laneXorA], lanes[laneXorB]

	for i := range multA {
		multA[i] += 1 - residue(multA[i], 4)
		multB[i] += 1 - residue(multB[i], 2)
		xorA[i] -= residue(xorA[i], 2)
		xorB[i] += 1 - residue(xorB[i], 2)
	}
}
