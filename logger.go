package meshy

import (
	"log/slog"
	"sync/atomic"
)

var (
	silent = slog.New(slog.DiscardHandler)
	logger atomic.Pointer[slog.Logger]
)

// SetLogger routes meshy's diagnostics to l. A nil l silences them again,
// which is also the state before the first call.
//
// Records are emitted at three levels. Debug covers ignored view extents and
// stale updates that were dropped. Info reports control point creation. Warn
// flags recoverable failures such as an unwritable screenshot directory.
//
//	meshy.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the logger meshy writes to, never nil.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return silent
}
