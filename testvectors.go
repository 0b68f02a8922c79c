package lanerng

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// TestVector is a known-answer case: a seed, a state size and the values the
// generator must produce from them.
type TestVector struct {
	Name     string   `json:"name"`
	Size     uint64   `json:"size"`
	Seed     string   `json:"seed"`     // Hex-encoded seed bytes
	MultX0   string   `json:"mult_x0"`  // First mult_x value after seeding
	XorB0    string   `json:"xor_b0"`   // First xor_b value after seeding
	Expected []string `json:"expected"` // Hex-encoded Uint64 outputs, in order
	IdxMult  int      `json:"idx_mult"` // Cursor after all expected values
	IdxXor   int      `json:"idx_xor"`
}

// TestVectorSuite contains all test vectors with metadata about their source.
type TestVectorSuite struct {
	Version     string       `json:"version"`
	Description string       `json:"description"`
	Vectors     []TestVector `json:"vectors"`
}

// LoadTestVectors loads test vectors from a JSON file.
func LoadTestVectors(path string) (*TestVectorSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test vectors: %w", err)
	}

	var suite TestVectorSuite
	if err := json.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse test vectors: %w", err)
	}

	return &suite, nil
}

// Config returns the generator configuration described by the vector.
func (tv *TestVector) Config() (Config, error) {
	seed, err := hex.DecodeString(tv.Seed)
	if err != nil {
		return Config{}, fmt.Errorf("invalid seed hex: %w", err)
	}
	return Config{Size: tv.Size, Seed: seed}, nil
}

// GetExpected returns the decoded expected outputs.
func (tv *TestVector) GetExpected() ([]uint64, error) {
	out := make([]uint64, len(tv.Expected))
	for i, s := range tv.Expected {
		v, err := parseHex64(s)
		if err != nil {
			return nil, fmt.Errorf("expected value %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// GetLaneHeads returns the decoded first mult_x and xor_b values.
func (tv *TestVector) GetLaneHeads() (multX0, xorB0 uint64, err error) {
	if multX0, err = parseHex64(tv.MultX0); err != nil {
		return 0, 0, fmt.Errorf("mult_x0: %w", err)
	}
	if xorB0, err = parseHex64(tv.XorB0); err != nil {
		return 0, 0, fmt.Errorf("xor_b0: %w", err)
	}
	return multX0, xorB0, nil
}

func parseHex64(s string) (uint64, error) {
	if len(s) != 16 {
		return 0, fmt.Errorf("want 16 hex digits, got %q", s)
	}
	return strconv.ParseUint(s, 16, 64)
}
