package lanerng

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Field labels of the text dump format, in the order WriteState emits them.
const (
	LabelBuffer  = "v_state_u8"
	LabelMultX   = "v_x_mult"
	LabelMultA   = "v_a_mult"
	LabelMultB   = "v_b_mult"
	LabelXorX    = "v_x_xor"
	LabelXorA    = "v_a_xor"
	LabelXorB    = "v_b_xor"
	LabelIdxMult = "idx_values_mult"
	LabelIdxXor  = "idx_values_xor"

	LabelUint64s  = "v_vec_u64"
	LabelFloat64s = "v_vec_f64"
)

// Float64Tolerance is the largest difference CompareDumps accepts between two
// v_vec_f64 values. It matches the 16 fractional digits of the dump format.
const Float64Tolerance = 1e-16

// ErrEmptyDump is returned by ReadDump when the input holds no fields.
var ErrEmptyDump = errors.New("lanerng: empty dump")

// FormatBytes renders b as comma-separated two-digit uppercase hex.
func FormatBytes(b []byte) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%02X", v)
	}
	return sb.String()
}

// FormatUint64s renders vals as comma-separated sixteen-digit uppercase hex.
func FormatUint64s(vals []uint64) string {
	var sb strings.Builder
	for i, v := range vals {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%016X", v)
	}
	return sb.String()
}

// FormatFloat64s renders vals as comma-separated fixed-point decimals with
// sixteen fractional digits.
func FormatFloat64s(vals []float64) string {
	var sb strings.Builder
	for i, v := range vals {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(v, 'f', 16, 64))
	}
	return sb.String()
}

// fieldWriter writes label:value lines and remembers the first error.
type fieldWriter struct {
	w   io.Writer
	err error
}

func (fw *fieldWriter) field(label, value string) {
	if fw.err != nil {
		return
	}
	_, fw.err = fmt.Fprintf(fw.w, "%s:%s\n", label, value)
}

// WriteState writes the full state dump of g: the diffused buffer, the six
// current lanes and both cursors.
func WriteState(w io.Writer, g *Generator) error {
	s := &g.curr
	fw := fieldWriter{w: w}
	fw.field(LabelBuffer, FormatBytes(g.buf))
	fw.field(LabelMultX, FormatUint64s(s.MultX))
	fw.field(LabelMultA, FormatUint64s(s.MultA))
	fw.field(LabelMultB, FormatUint64s(s.MultB))
	fw.field(LabelXorX, FormatUint64s(s.XorX))
	fw.field(LabelXorA, FormatUint64s(s.XorA))
	fw.field(LabelXorB, FormatUint64s(s.XorB))
	fw.field(LabelIdxMult, strconv.Itoa(s.IdxMult))
	fw.field(LabelIdxXor, strconv.Itoa(s.IdxXor))
	if fw.err != nil {
		return fmt.Errorf("lanerng: write state: %w", fw.err)
	}
	return nil
}

// WriteUint64s writes a generated batch as a v_vec_u64 line.
func WriteUint64s(w io.Writer, vals []uint64) error {
	fw := fieldWriter{w: w}
	fw.field(LabelUint64s, FormatUint64s(vals))
	if fw.err != nil {
		return fmt.Errorf("lanerng: write u64 batch: %w", fw.err)
	}
	return nil
}

// WriteFloat64s writes a generated batch as a v_vec_f64 line.
func WriteFloat64s(w io.Writer, vals []float64) error {
	fw := fieldWriter{w: w}
	fw.field(LabelFloat64s, FormatFloat64s(vals))
	if fw.err != nil {
		return fmt.Errorf("lanerng: write f64 batch: %w", fw.err)
	}
	return nil
}

// Field is one label:value line of a dump. List fields are split on commas.
type Field struct {
	Label  string
	Values []string
}

// Dump is a parsed dump file.
type Dump []Field

// ReadDump parses label:value lines. Blank lines are skipped; a line without
// exactly one colon is an error.
func ReadDump(r io.Reader) (Dump, error) {
	var d Dump

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), math.MaxInt32)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" {
			continue
		}
		if strings.Count(text, ":") != 1 {
			return nil, fmt.Errorf("lanerng: dump line %d: want label:value, got %q", line, text)
		}
		label, value, _ := strings.Cut(text, ":")
		d = append(d, Field{Label: label, Values: strings.Split(value, ",")})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("lanerng: read dump: %w", err)
	}
	if len(d) == 0 {
		return nil, ErrEmptyDump
	}
	return d, nil
}

// CompareDumps checks that a and b hold the same fields in the same order.
// Values must match exactly except in v_vec_f64 fields, where each pair may
// differ by up to Float64Tolerance.
func CompareDumps(a, b Dump) error {
	if len(a) != len(b) {
		return fmt.Errorf("lanerng: dumps have %d and %d fields", len(a), len(b))
	}
	for i := range a {
		fa, fb := a[i], b[i]
		if fa.Label != fb.Label {
			return fmt.Errorf("lanerng: field %d: label %q != %q", i+1, fa.Label, fb.Label)
		}
		if len(fa.Values) != len(fb.Values) {
			return fmt.Errorf("lanerng: field %d (%s): %d != %d values",
				i+1, fa.Label, len(fa.Values), len(fb.Values))
		}
		for j := range fa.Values {
			if err := compareValue(fa.Label, fa.Values[j], fb.Values[j]); err != nil {
				return fmt.Errorf("lanerng: field %d (%s) value %d: %w", i+1, fa.Label, j, err)
			}
		}
	}
	return nil
}

// float64Tolerance is Float64Tolerance as an exact decimal.
var float64Tolerance = new(big.Rat).SetFrac64(1, 1e16)

// compareValue compares two values of the given field. Floats are compared as
// exact decimals so that neighbouring 16-digit renderings stay within
// tolerance.
func compareValue(label, a, b string) error {
	if label != LabelFloat64s {
		if a != b {
			return fmt.Errorf("%s != %s", a, b)
		}
		return nil
	}

	ra, ok := new(big.Rat).SetString(a)
	if !ok {
		return fmt.Errorf("invalid decimal %q", a)
	}
	rb, ok := new(big.Rat).SetString(b)
	if !ok {
		return fmt.Errorf("invalid decimal %q", b)
	}
	diff := ra.Sub(ra, rb)
	if diff.Abs(diff).Cmp(float64Tolerance) > 0 {
		return fmt.Errorf("%s and %s differ by more than %g", a, b, Float64Tolerance)
	}
	return nil
}
