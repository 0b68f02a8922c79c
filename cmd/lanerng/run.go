package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/opd-ai/go-lanerng"
)

// generate writes the initial state dump of gen to w, then every requested
// batch followed by a fresh state dump.
func generate(w io.Writer, gen *lanerng.Generator, batches []batchReq) error {
	if err := lanerng.WriteState(w, gen); err != nil {
		return err
	}

	for _, b := range batches {
		var err error
		switch b.Kind {
		case batchU64:
			err = lanerng.WriteUint64s(w, gen.Uint64s(b.Amount))
		case batchF64:
			err = lanerng.WriteFloat64s(w, gen.Float64s(b.Amount))
		default:
			err = fmt.Errorf("unknown batch type %v", b.Kind)
		}
		if err != nil {
			return err
		}

		if err := lanerng.WriteState(w, gen); err != nil {
			return err
		}
		log.Debugf("Wrote %d %v values", b.Amount, b.Kind)
	}

	return nil
}

// runJob seeds a generator for j and writes its output file.  The file is
// only created once the generator has been seeded successfully.
func runJob(j *job) error {
	gen, err := lanerng.New(j.Config())
	if err != nil {
		return err
	}

	f, err := os.Create(j.FilePath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := generate(w, gen, j.Batches); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", j.FilePath, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", j.FilePath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", j.FilePath, err)
	}

	st := gen.State()
	log.Infof("Wrote %d batches to %s (final state %x)", len(j.Batches), j.FilePath, st.Fingerprint())
	return nil
}
