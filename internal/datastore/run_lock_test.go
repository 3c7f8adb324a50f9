package datastore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"oppwatch/internal/errorwrapper"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLock_AcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")
	lock := NewRunLock(path, zerolog.Nop())

	require.NoError(t, lock.Acquire())
	_, err := os.Stat(path)
	assert.NoError(t, err)

	lock.Release()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRunLock_SecondAcquireFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")
	first := NewRunLock(path, zerolog.Nop())
	second := NewRunLock(path, zerolog.Nop())

	require.NoError(t, first.Acquire())
	defer first.Release()

	err := second.Acquire()
	assert.True(t, errors.Is(err, errorwrapper.ErrLockHeld))
}

func TestRunLock_ReacquireAfterRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")
	lock := NewRunLock(path, zerolog.Nop())

	require.NoError(t, lock.Acquire())
	lock.Release()
	require.NoError(t, lock.Acquire())
	lock.Release()
}

func TestRunLock_EmptyPathDisablesLocking(t *testing.T) {
	lock := NewRunLock("", zerolog.Nop())

	require.NoError(t, lock.Acquire())
	lock.Release()
}

func TestRunLock_ReleaseWithoutAcquireIsNoop(t *testing.T) {
	lock := NewRunLock(filepath.Join(t.TempDir(), "run.lock"), zerolog.Nop())
	lock.Release()
}
