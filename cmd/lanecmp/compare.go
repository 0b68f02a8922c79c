package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/opd-ai/go-lanerng"
	"github.com/opd-ai/go-lanerng/internal"
)

// errTooFewFiles is returned when there is nothing to compare against.
var errTooFewFiles = errors.New("need at least two dump files")

// expandPaths turns the command line paths into a list of files.  A single
// directory argument expands to the regular files it contains, sorted by
// name.
func expandPaths(paths []string) ([]string, error) {
	if len(paths) == 1 {
		dir := paths[0]
		fi, err := os.Stat(dir)
		if err != nil {
			return nil, err
		}
		if fi.IsDir() {
			entries, err := os.ReadDir(dir)
			if err != nil {
				return nil, err
			}
			paths = nil
			for _, e := range entries {
				if e.Type().IsRegular() {
					paths = append(paths, filepath.Join(dir, e.Name()))
				}
			}
			sort.Strings(paths)
		}
	}
	if len(paths) < 2 {
		return nil, errTooFewFiles
	}
	return paths, nil
}

// readDumpFile parses one dump file.
func readDumpFile(path string) (lanerng.Dump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("%s: %d bytes, blake2b %x", path, len(data), internal.Blake2b256(data))

	d, err := lanerng.ReadDump(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// compareFiles compares every file against the first and returns the number
// of files that differ.  Unreadable or malformed files are an error.
func compareFiles(files []string) (int, error) {
	if len(files) < 2 {
		return 0, errTooFewFiles
	}

	ref, err := readDumpFile(files[0])
	if err != nil {
		return 0, err
	}

	var mismatches int
	for _, path := range files[1:] {
		d, err := readDumpFile(path)
		if err != nil {
			return 0, err
		}
		if err := lanerng.CompareDumps(ref, d); err != nil {
			log.Warnf("%s differs from %s: %v", path, files[0], err)
			mismatches++
			continue
		}
		log.Debugf("%s matches %s", path, files[0])
	}
	return mismatches, nil
}
