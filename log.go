package lanerng

import (
	"github.com/decred/slog"
)

// log is a logger that is initialized with no output filters.  This
// means the package will not perform any logging by default until the caller
// requests it.
var log = slog.Disabled

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger slog.Logger) {
	log = logger
}

// traceLog outputs a trace message if trace logging is enabled.
func traceLog(format string, args ...interface{}) {
	if log.Level() <= slog.LevelTrace {
		log.Tracef(format, args...)
	}
}

// traceState outputs every lane of s and both cursors.
func traceState(name string, s *State) {
	if log.Level() > slog.LevelTrace {
		return
	}
	log.Tracef("%s:", name)
	for i, lane := range s.lanes() {
		log.Tracef("  %-6s %s", laneNames[i], FormatUint64s(lane))
	}
	log.Tracef("  idx_mult=%d idx_xor=%d", s.IdxMult, s.IdxXor)
}
