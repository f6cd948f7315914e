// Package telemetry wires structured logging into the lazysort debug
// surface. Nothing on the hot query path (sortToRank, findItem,
// sortRange) logs through here; only DebugPivots, CheckInvariants, and
// the cmd/lazysort CLI touch it, so a library caller who never asks for
// diagnostics pays for a disabled logger and nothing else.
package telemetry

import (
	"io"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.Mutex
	logger = zerolog.New(io.Discard).With().Timestamp().Logger()
)

// SetOutput redirects subsequent diagnostic logging to w at the given
// level. The CLI calls this once at startup; library callers that never
// call it keep the default discarding logger.
func SetOutput(w io.Writer, level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Logger returns the shared diagnostic logger.
func Logger() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return &logger
}
