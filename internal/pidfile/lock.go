package pidfile

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	serrors "github.com/vnetman/screencast/internal/errors"
)

// withLock runs fn while holding an exclusive advisory lock on the pid
// file. A missing pid file means there are no peers to contend with, so fn
// runs unlocked (the file is created lazily by the first write). The lock
// is released and the handle closed on every return path.
func (r *Registry) withLock(fn func() error) error {
	f, err := os.Open(r.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fn()
		}
		return fmt.Errorf("opening pid file %s for locking: %w", r.Path(), err)
	}
	defer f.Close()

	if err := r.lockRetry(f); err != nil {
		return err
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	return fn()
}

// lockRetry attempts a non-blocking exclusive flock, pausing between
// attempts. Pid files are never held for long, so exhausting the retries
// means a peer is stuck and the operation fails with ErrLockTimeout.
func (r *Registry) lockRetry(f *os.File) error {
	for attempt := 1; ; attempt++ {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) {
			return fmt.Errorf("locking pid file %s: %w", r.Path(), err)
		}
		if attempt >= r.attempts {
			return serrors.LockTimeoutf("%s still locked after %d attempts", r.Path(), attempt)
		}
		time.Sleep(r.retryDelay)
	}
}
