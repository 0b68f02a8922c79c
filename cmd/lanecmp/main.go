// Command lanecmp checks that dump files written by lanerng agree.
//
// Usage:
//
//	lanecmp [OPTIONS] FILE FILE...
//	lanecmp [OPTIONS] DIR
//
// Every file is compared against the first one.  Floats in v_vec_f64 lines
// may differ by up to 1e-16; every other value must match exactly.  The exit
// status is 1 when any file differs.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/decred/slog"
	flags "github.com/jessevdk/go-flags"
)

var (
	backendLog = slog.NewBackend(os.Stderr)
	log        = backendLog.Logger("LCMP")
)

type options struct {
	DebugLevel string `short:"d" long:"debuglevel" env:"LANERNG_DEBUGLEVEL" description:"Logging level {trace, debug, info, warn, error, critical, off}"`
	Args       struct {
		Paths []string `positional-arg-name:"PATH" required:"1"`
	} `positional-args:"yes"`
}

func loadConfig(args []string) (*options, error) {
	opts := options{DebugLevel: "info"}
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	lvl, ok := slog.LevelFromString(opts.DebugLevel)
	if !ok {
		return nil, fmt.Errorf("invalid debug level %q", opts.DebugLevel)
	}
	log.SetLevel(lvl)
	return &opts, nil
}

func main() {
	opts, err := loadConfig(os.Args[1:])
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) {
			if e.Type == flags.ErrHelp {
				os.Exit(0)
			}
			os.Exit(2)
		}
		log.Criticalf("Invalid configuration: %v", err)
		os.Exit(2)
	}

	files, err := expandPaths(opts.Args.Paths)
	if err != nil {
		log.Criticalf("%v", err)
		os.Exit(2)
	}

	mismatches, err := compareFiles(files)
	if err != nil {
		log.Criticalf("%v", err)
		os.Exit(2)
	}
	if mismatches > 0 {
		log.Errorf("%d of %d files differ from %s", mismatches, len(files)-1, files[0])
		os.Exit(1)
	}
	log.Infof("All %d files match", len(files))
}
