// Command lanerng seeds a dual-lane generator and writes generated batches
// together with state dumps to a file.
//
// Usage:
//
//	lanerng [OPTIONS] file_path=out.txt seed_u8=01,02 length_u8=64 types_of_arr=u64:10,f64:5
//
// An optional .env file in the working directory is loaded first; its
// variables act as defaults for the LANERNG_* environment options.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

func fatalf(format string, args ...any) {
	log.Criticalf(format, args...)
	os.Exit(1)
}

// loadConfig parses the command line into options and a job.
func loadConfig(args []string) (*options, *job, error) {
	opts := options{DebugLevel: "info"}
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS] file_path=PATH seed_u8=HEX[,HEX...] length_u8=N types_of_arr=TYPE:N[,TYPE:N...]"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}
	if err := setLogLevels(opts.DebugLevel); err != nil {
		return nil, nil, err
	}

	kv, err := parseKeyArgs(rest)
	if err != nil {
		return nil, nil, err
	}
	if err := applySeedSource(kv, &opts); err != nil {
		return nil, nil, err
	}
	j, err := decodeJob(kv)
	if err != nil {
		return nil, nil, err
	}
	return &opts, j, nil
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "loading .env failed: %v\n", err)
		os.Exit(1)
	}

	_, j, err := loadConfig(os.Args[1:])
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) {
			if e.Type == flags.ErrHelp {
				os.Exit(0)
			}
			os.Exit(2)
		}
		fatalf("Invalid configuration: %v", err)
	}

	if err := runJob(j); err != nil {
		fatalf("%v", err)
	}
}
