package main

import (
	"fmt"
	"os"

	"github.com/decred/slog"
	"github.com/opd-ai/go-lanerng"
)

// Loggers per subsystem.  A single backend logger is created and all
// subsystem loggers created from it write to stderr.
var (
	backendLog = slog.NewBackend(os.Stderr)

	log     = backendLog.Logger("LRNG")
	prngLog = backendLog.Logger("PRNG")
)

func init() {
	lanerng.UseLogger(prngLog)
}

// setLogLevels sets the logging level of every subsystem logger.
func setLogLevels(level string) error {
	lvl, ok := slog.LevelFromString(level)
	if !ok {
		return fmt.Errorf("invalid debug level %q", level)
	}
	log.SetLevel(lvl)
	prngLog.SetLevel(lvl)
	return nil
}
