package ledger

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MystenLabs/suiup/pkg/errors"
)

const (
	lockRetries    = 50
	lockRetryDelay = 100 * time.Millisecond

	// A lock older than this is presumed abandoned even when the owner
	// PID cannot be probed.
	lockStaleAfter = 5 * time.Minute
)

// fileLock serializes ledger read-modify-write cycles across processes
// with an exclusive-create PID file. The lock file lives next to the
// ledger files so every process competing for them sees it.
type fileLock struct {
	path string

	// zero values mean the package defaults
	retries int
	delay   time.Duration
}

// acquire takes the lock, retrying with a fixed delay. Locks whose
// owning process is gone, or that have outlived the staleness window,
// are reclaimed. The returned release func must be called exactly once.
func (l *fileLock) acquire() (func(), error) {
	retries, delay := l.retries, l.delay
	if retries == 0 {
		retries = lockRetries
	}
	if delay == 0 {
		delay = lockRetryDelay
	}

	for attempt := 0; attempt < retries; attempt++ {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d\n", os.Getpid())
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(l.path)
				return nil, errors.Wrap(firstErr(werr, cerr), errors.ErrFileAccess,
					"cannot write lock file")
			}
			return func() { _ = os.Remove(l.path) }, nil
		}
		if !os.IsExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileAccess,
				"cannot create lock file %s", l.path)
		}

		if l.reclaimStale() {
			continue
		}
		time.Sleep(delay)
	}

	return nil, errors.Newf(errors.ErrLedgerLocked,
		"ledger is locked by another suiup process (lock file: %s)", l.path).
		WithDetail("lock_file", l.path)
}

// reclaimStale removes the lock file if its owner is verifiably gone or
// the file is old enough to be abandoned. Returns true if the lock was
// removed and acquisition should be retried immediately.
func (l *fileLock) reclaimStale() bool {
	data, err := os.ReadFile(l.path)
	if err != nil {
		// Raced with the owner's release; retry.
		return os.IsNotExist(err)
	}

	if pid, perr := strconv.Atoi(strings.TrimSpace(string(data))); perr == nil {
		if pid == os.Getpid() || !processAlive(pid) {
			_ = os.Remove(l.path)
			return true
		}
	}

	if info, serr := os.Stat(l.path); serr == nil && time.Since(info.ModTime()) > lockStaleAfter {
		_ = os.Remove(l.path)
		return true
	}
	return false
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
