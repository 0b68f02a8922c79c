package lanerng

import (
	"encoding/binary"

	"github.com/opd-ai/go-lanerng/internal"
)

// State is a snapshot of the generator lanes and cursors.
//
// MultA, MultB, XorA and XorB are fixed after seeding; MultX and XorX evolve
// with every generated value.
type State struct {
	MultX []uint64 // Evolving values of the multiplicative lanes
	MultA []uint64 // Multipliers, each = 1 (mod 4)
	MultB []uint64 // Increments, each odd
	XorX  []uint64 // Evolving values of the xor lanes
	XorA  []uint64 // Xor masks, each even
	XorB  []uint64 // Xor increments, each odd

	IdxMult int // Next multiplicative lane, in [0, len(MultX))
	IdxXor  int // Active xor lane, in [0, len(XorX))
}

// newState builds a state that takes ownership of the given lanes.
func newState(lanes [laneCount][]uint64) State {
	return State{
		MultX: lanes[laneMultX],
		MultA: lanes[laneMultA],
		MultB: lanes[laneMultB],
		XorX:  lanes[laneXorX],
		XorA:  lanes[laneXorA],
		XorB:  lanes[laneXorB],
	}
}

// lanes returns the six lanes in seeding order. The slices alias s.
func (s *State) lanes() [laneCount][]uint64 {
	return [laneCount][]uint64{s.MultX, s.MultA, s.MultB, s.XorX, s.XorA, s.XorB}
}

// Clone returns a deep copy of s.
func (s *State) Clone() State {
	var c State
	c.copyFrom(s)
	return c
}

// copyFrom overwrites s with the contents of other, reusing the lane storage
// of s when it is large enough.
func (s *State) copyFrom(other *State) {
	s.MultX = copyLane(s.MultX, other.MultX)
	s.MultA = copyLane(s.MultA, other.MultA)
	s.MultB = copyLane(s.MultB, other.MultB)
	s.XorX = copyLane(s.XorX, other.XorX)
	s.XorA = copyLane(s.XorA, other.XorA)
	s.XorB = copyLane(s.XorB, other.XorB)
	s.IdxMult = other.IdxMult
	s.IdxXor = other.IdxXor
}

// Equal reports whether s and other hold identical lanes and cursors.
func (s *State) Equal(other *State) bool {
	if s.IdxMult != other.IdxMult || s.IdxXor != other.IdxXor {
		return false
	}
	a, b := s.lanes(), other.lanes()
	for i := range a {
		if !lanesEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Fingerprint returns a BLAKE2b-256 digest of the lanes (little-endian, in
// seeding order) followed by both cursors. Equal states have equal
// fingerprints.
func (s *State) Fingerprint() [32]byte {
	// Unkeyed construction cannot fail.
	h, _ := internal.NewBlake2bStream(nil)

	var word [8]byte
	for _, lane := range s.lanes() {
		for _, v := range lane {
			binary.LittleEndian.PutUint64(word[:], v)
			h.Write(word[:])
		}
	}
	binary.LittleEndian.PutUint64(word[:], uint64(s.IdxMult))
	h.Write(word[:])
	binary.LittleEndian.PutUint64(word[:], uint64(s.IdxXor))
	h.Write(word[:])

	return h.Sum()
}
