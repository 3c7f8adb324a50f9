package datastore

import (
	"fmt"
	"os"
	"path/filepath"

	"oppwatch/internal/errorwrapper"

	"github.com/rs/zerolog"
)

// RunLock is an advisory file lock held for the duration of one
// load→classify→save cycle. The scheduler never overlaps runs in-process;
// the lock guards against a second process invocation racing the
// check-then-act on the state file.
type RunLock struct {
	path   string
	logger zerolog.Logger
	held   bool
}

// NewRunLock creates a new RunLock at the given path. An empty path
// disables locking.
func NewRunLock(path string, logger zerolog.Logger) *RunLock {
	return &RunLock{
		path:   path,
		logger: logger.With().Str("component", "RunLock").Logger(),
	}
}

// Acquire takes the lock by exclusively creating the lock file. If another
// process holds it, ErrLockHeld is returned.
func (l *RunLock) Acquire() error {
	if l.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return errorwrapper.WrapError(err, "failed to create lock directory")
	}

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return errorwrapper.ErrLockHeld
		}
		return errorwrapper.WrapErrorf(err, "failed to create lock file '%s'", l.path)
	}

	_, _ = fmt.Fprintf(file, "%d\n", os.Getpid())
	if err := file.Close(); err != nil {
		l.logger.Warn().Err(err).Msg("Failed to close lock file after writing")
	}
	l.held = true
	return nil
}

// Release removes the lock file. Releasing an unheld lock is a no-op.
func (l *RunLock) Release() {
	if !l.held {
		return
	}
	if err := os.Remove(l.path); err != nil {
		l.logger.Warn().Err(err).Str("path", l.path).Msg("Failed to remove lock file")
	}
	l.held = false
}
