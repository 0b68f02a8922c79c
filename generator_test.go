package lanerng

import (
	"math"
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func newTestGenerator(t *testing.T, size uint64, seed []byte) *Generator {
	t.Helper()
	g, err := New(Config{Size: size, Seed: seed})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func TestDeterminism(t *testing.T) {
	tests := []struct {
		name string
		size uint64
		seed []byte
	}{
		{"two bytes", 64, []byte{0x01, 0x02}},
		{"text", 96, []byte("Hello, lanes!")},
		{"long seed", 128, make([]byte, 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g1 := newTestGenerator(t, tt.size, tt.seed)
			g2 := newTestGenerator(t, tt.size, tt.seed)

			for i := 0; i < 1000; i++ {
				v1, v2 := g1.Uint64(), g2.Uint64()
				if v1 != v2 {
					t.Fatalf("value %d differs: %016X != %016X", i, v1, v2)
				}
			}
			s1, s2 := g1.State(), g2.State()
			if !s1.Equal(&s2) {
				t.Errorf("states differ after generation:\n%s\n%s", spew.Sdump(s1), spew.Sdump(s2))
			}
		})
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	g1 := newTestGenerator(t, 64, []byte{0x01, 0x02})
	g2 := newTestGenerator(t, 64, []byte{0x01, 0x03})

	same := 0
	for i := 0; i < 64; i++ {
		if g1.Uint64() == g2.Uint64() {
			same++
		}
	}
	if same > 0 {
		t.Errorf("%d of 64 values identical for different seeds", same)
	}
}

func TestRecurrence(t *testing.T) {
	g := newTestGenerator(t, 64, []byte("recurrence"))
	st := g.State()

	for call := 0; call < 3*g.Len(); call++ {
		i, j := st.IdxMult, st.IdxXor
		want := (st.MultA[i]*st.MultX[i] + st.MultB[i]) ^ st.XorX[j]
		got := g.Uint64()
		if got != want {
			t.Fatalf("call %d: got %016X, want %016X", call, got, want)
		}

		// Advance the model by hand.
		st.MultX[i] = want
		st.IdxMult++
		if st.IdxMult == g.Len() {
			st.IdxMult = 0
			st.XorX[j] = (st.XorA[j] ^ st.XorX[j]) + st.XorB[j]
			st.IdxXor = (j + 1) % g.Len()
		}

		cur := g.State()
		if !cur.Equal(&st) {
			t.Fatalf("call %d: state diverged from model", call)
		}
	}
}

func TestCursorWraparound(t *testing.T) {
	g := newTestGenerator(t, 64, []byte{0x01, 0x02})
	if g.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", g.Len())
	}

	for sweep := 1; sweep <= 2*g.Len()+1; sweep++ {
		for i := 0; i < g.Len(); i++ {
			g.Uint64()
		}
		st := g.State()
		if st.IdxMult != 0 {
			t.Fatalf("sweep %d: idx_mult = %d, want 0", sweep, st.IdxMult)
		}
		if want := sweep % g.Len(); st.IdxXor != want {
			t.Fatalf("sweep %d: idx_xor = %d, want %d", sweep, st.IdxXor, want)
		}
	}
}

// TestFirstSweepScenario walks the size 64, seed 01,02 case: eight values
// finish one sweep, advance xor_x[0], and make xor lane 1 active for the
// ninth value.
func TestFirstSweepScenario(t *testing.T) {
	g := newTestGenerator(t, 64, []byte{0x01, 0x02})
	initial := g.State()

	if g.Started() {
		t.Error("Started() = true before any value was generated")
	}
	g.Uint64s(8)
	if !g.Started() {
		t.Error("Started() = false after generating values")
	}

	st := g.State()
	if st.IdxMult != 0 || st.IdxXor != 1 {
		t.Fatalf("cursors = (%d, %d), want (0, 1)", st.IdxMult, st.IdxXor)
	}

	wantXor0 := (initial.XorA[0] ^ initial.XorX[0]) + initial.XorB[0]
	if st.XorX[0] != wantXor0 {
		t.Errorf("xor_x[0] = %016X, want %016X", st.XorX[0], wantXor0)
	}
	for i := 1; i < g.Len(); i++ {
		if st.XorX[i] != initial.XorX[i] {
			t.Errorf("xor_x[%d] changed during the first sweep", i)
		}
	}

	want := (st.MultA[0]*st.MultX[0] + st.MultB[0]) ^ st.XorX[1]
	if got := g.Uint64(); got != want {
		t.Errorf("ninth value = %016X, want %016X", got, want)
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	for _, k := range []int{1, 7, 8, 9, 64, 200} {
		g := newTestGenerator(t, 64, []byte("save restore"))
		g.Uint64s(5)

		g.Save()
		v1 := g.Uint64s(k)
		g.Restore()
		v2 := g.Uint64s(k)

		for i := range v1 {
			if v1[i] != v2[i] {
				t.Fatalf("k=%d: value %d differs after restore: %016X != %016X", k, i, v1[i], v2[i])
			}
		}
	}
}

func TestRestoreWithoutSaveReturnsToSeededState(t *testing.T) {
	g := newTestGenerator(t, 96, []byte("checkpoint"))
	first := g.Uint64s(20)

	g.Restore()
	again := g.Uint64s(20)
	for i := range first {
		if first[i] != again[i] {
			t.Fatalf("value %d differs after restoring the initial checkpoint", i)
		}
	}
}

func TestCheckpointIsACopy(t *testing.T) {
	g := newTestGenerator(t, 64, []byte("aliasing"))
	g.Save()
	saved := g.Checkpoint()

	g.Uint64s(100)
	cp := g.Checkpoint()
	if !cp.Equal(&saved) {
		t.Fatal("generating values mutated the checkpoint")
	}

	// Mutating a returned snapshot must not reach the generator.
	snap := g.State()
	snap.MultX[0] ^= 0xFFFF
	cur := g.State()
	if cur.Equal(&snap) {
		t.Fatal("State() returned storage shared with the generator")
	}

	g.Restore()
	cur = g.State()
	if !cur.Equal(&saved) {
		t.Fatal("Restore() did not bring back the saved state")
	}

	// Generating after a restore must leave the checkpoint intact.
	g.Uint64s(3)
	cp = g.Checkpoint()
	if !cp.Equal(&saved) {
		t.Fatal("generating after Restore() mutated the checkpoint")
	}
}

func TestFloat64Range(t *testing.T) {
	g := newTestGenerator(t, 256, []byte("floats"))
	var sum float64
	const n = 100000
	for i := 0; i < n; i++ {
		f := g.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64() = %v, want [0, 1)", f)
		}
		sum += f
	}
	if mean := sum / n; math.Abs(mean-0.5) > 0.01 {
		t.Errorf("mean = %v, want about 0.5", mean)
	}
}

func TestFloat64Extremes(t *testing.T) {
	if got := float64(uint64(float64Mask)) * float64Scale; got >= 1 {
		t.Errorf("largest float = %v, want < 1", got)
	}
	if got := float64(uint64(float64Mask)) * float64Scale; got != 1-0x1p-53 {
		t.Errorf("largest float = %v, want 1-2^-53", got)
	}
	if got := float64(uint64(0)) * float64Scale; got != 0 {
		t.Errorf("smallest float = %v, want 0", got)
	}
}

func TestFloat64MatchesUint64(t *testing.T) {
	g1 := newTestGenerator(t, 64, []byte{0x01, 0x02})
	g2 := newTestGenerator(t, 64, []byte{0x01, 0x02})

	for i := 0; i < 50; i++ {
		want := float64(g1.Uint64()&(1<<53-1)) / (1 << 53)
		if got := g2.Float64(); got != want {
			t.Fatalf("value %d: Float64() = %v, want %v", i, got, want)
		}
	}
}

func TestBatchesMatchSingleCalls(t *testing.T) {
	g1 := newTestGenerator(t, 64, []byte("batches"))
	g2 := newTestGenerator(t, 64, []byte("batches"))

	u := g1.Uint64s(13)
	f := g1.Float64s(11)
	for i := range u {
		if v := g2.Uint64(); v != u[i] {
			t.Fatalf("Uint64s()[%d] = %016X, want %016X", i, u[i], v)
		}
	}
	for i := range f {
		if v := g2.Float64(); v != f[i] {
			t.Fatalf("Float64s()[%d] = %v, want %v", i, f[i], v)
		}
	}

	if got := g1.Uint64s(0); len(got) != 0 {
		t.Errorf("Uint64s(0) returned %d values", len(got))
	}
}

func TestParametersFixedDuringGeneration(t *testing.T) {
	g := newTestGenerator(t, 64, []byte("fixed"))
	before := g.State()
	g.Uint64s(1000)
	after := g.State()

	for name, pair := range map[string][2][]uint64{
		"mult_a": {before.MultA, after.MultA},
		"mult_b": {before.MultB, after.MultB},
		"xor_a":  {before.XorA, after.XorA},
		"xor_b":  {before.XorB, after.XorB},
	} {
		if !lanesEqual(pair[0], pair[1]) {
			t.Errorf("%s changed during generation", name)
		}
	}
}

func TestRandSource(t *testing.T) {
	g := newTestGenerator(t, 64, []byte("source"))
	r := rand.New(g)

	for i := 0; i < 1000; i++ {
		if n := r.Intn(10); n < 0 || n >= 10 {
			t.Fatalf("Intn(10) = %d", n)
		}
		if v := g.Int63(); v < 0 {
			t.Fatalf("Int63() = %d, want non-negative", v)
		}
	}
}

func TestSeedReseeds(t *testing.T) {
	g := newTestGenerator(t, 96, []byte("original"))
	g.Uint64s(10)

	g.Seed(42)
	if g.Started() {
		t.Error("Started() = true right after Seed")
	}
	if g.Len() != 12 {
		t.Errorf("Len() = %d after Seed, want 12", g.Len())
	}

	want := newTestGenerator(t, 96, []byte{42, 0, 0, 0, 0, 0, 0, 0})
	for i := 0; i < 20; i++ {
		if a, b := g.Uint64(), want.Uint64(); a != b {
			t.Fatalf("value %d after Seed(42) = %016X, want %016X", i, a, b)
		}
	}

	cp, ws := g.Checkpoint(), want.Checkpoint()
	if !cp.Equal(&ws) {
		t.Error("Seed did not reset the checkpoint")
	}
}

func BenchmarkUint64(b *testing.B) {
	g, err := New(Config{Size: 1024, Seed: []byte("bench")})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Uint64()
	}
}

func BenchmarkNew(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := New(Config{Size: 1024, Seed: []byte("bench")}); err != nil {
			b.Fatal(err)
		}
	}
}
