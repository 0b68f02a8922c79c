package lanerng

import (
	"encoding/binary"
	"math/rand"
)

const (
	// float64Mask keeps the low 53 bits, the width of a float64 mantissa.
	float64Mask = 1<<53 - 1

	// float64Scale is 2^-53.
	float64Scale = 0x1p-53
)

var _ rand.Source64 = (*Generator)(nil)

// Generator produces a reproducible stream of 64-bit values.
//
// A Generator holds two states: the current state, advanced by every
// generated value, and a checkpoint written by Save and read by Restore.
// The two never share storage.
//
// Generator is not safe for concurrent use. Every value depends on the state
// left by the previous one, so callers sharing a generator must serialize
// access themselves.
type Generator struct {
	buf     []byte // Diffused state buffer as left by seeding
	n       int    // Lane length
	curr    State
	saved   State
	started bool
}

// newGenerator wraps freshly seeded lanes. The checkpoint starts equal to the
// current state.
func newGenerator(buf []byte, lanes [laneCount][]uint64) *Generator {
	g := &Generator{
		buf:  buf,
		n:    len(lanes[laneMultX]),
		curr: newState(lanes),
	}
	g.saved.copyFrom(&g.curr)
	return g
}

// Len returns the number of values in each lane.
func (g *Generator) Len() int {
	return g.n
}

// Started reports whether at least one value has been generated since the
// generator was seeded.
func (g *Generator) Started() bool {
	return g.started
}

// Uint64 returns the next value of the stream.
//
// The active multiplicative lane i is advanced as
//
//	x[i] = (a[i]*x[i] + b[i]) ^ xorX[j]
//
// where j is the active xor lane. After the last multiplicative lane, the
// active xor lane is advanced once as xorX[j] = (xorA[j] ^ xorX[j]) + xorB[j]
// and the next xor lane becomes active.
func (g *Generator) Uint64() uint64 {
	s := &g.curr
	i, j := s.IdxMult, s.IdxXor

	v := (s.MultA[i]*s.MultX[i] + s.MultB[i]) ^ s.XorX[j]
	s.MultX[i] = v

	s.IdxMult++
	if s.IdxMult == g.n {
		s.IdxMult = 0
		s.XorX[j] = (s.XorA[j] ^ s.XorX[j]) + s.XorB[j]
		s.IdxXor++
		if s.IdxXor == g.n {
			s.IdxXor = 0
		}
	}

	g.started = true
	return v
}

// Float64 returns the next value of the stream as a float64 in [0, 1) with
// 53 bits of resolution.
func (g *Generator) Float64() float64 {
	return float64(g.Uint64()&float64Mask) * float64Scale
}

// Uint64s returns the next n values. The result matches n calls to Uint64.
func (g *Generator) Uint64s(n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = g.Uint64()
	}
	return out
}

// Float64s returns the next n floats. The result matches n calls to Float64.
func (g *Generator) Float64s(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = g.Float64()
	}
	return out
}

// Save overwrites the checkpoint with a copy of the current state.
func (g *Generator) Save() {
	g.saved.copyFrom(&g.curr)
	log.Debugf("Saved checkpoint at cursors (%d, %d)", g.curr.IdxMult, g.curr.IdxXor)
}

// Restore overwrites the current state with a copy of the checkpoint.
func (g *Generator) Restore() {
	g.curr.copyFrom(&g.saved)
	log.Debugf("Restored checkpoint at cursors (%d, %d)", g.curr.IdxMult, g.curr.IdxXor)
}

// State returns a deep copy of the current state.
func (g *Generator) State() State {
	return g.curr.Clone()
}

// Checkpoint returns a deep copy of the saved state.
func (g *Generator) Checkpoint() State {
	return g.saved.Clone()
}

// Buffer returns a copy of the diffused state buffer the lanes were derived
// from.
func (g *Generator) Buffer() []byte {
	return cloneBytes(g.buf)
}

// Int63 returns a non-negative 63-bit value. It implements rand.Source.
func (g *Generator) Int63() int64 {
	return int64(g.Uint64() >> 1)
}

// Seed reseeds the generator from the eight little-endian bytes of seed,
// keeping the current state size. Both the current state and the checkpoint
// are replaced. It implements rand.Source.
func (g *Generator) Seed(seed int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(seed))

	// The size was validated when g was created.
	buf, lanes, err := seedLanes(b[:], uint64(len(g.buf)))
	if err != nil {
		panic(err)
	}

	zeroBytes(g.buf)
	*g = *newGenerator(buf, lanes)
	log.Debugf("Reseeded from %d (fingerprint %x)", seed, g.curr.Fingerprint())
}
