// Package pidfile tracks the pids of running instances of a program in a
// shared per-user pid file.
//
// Each instance appends its own pid on startup and removes it on exit. The
// file is a plain newline-delimited list of decimal pids, ordered by start
// time, so the last entry is always the most recently started instance. A
// separate kill path uses that ordering to signal the newest instance.
//
// Every operation opens, locks, reads, writes, unlocks, and closes the file
// independently; nothing is cached between calls. Mutual exclusion across
// instances comes from a non-blocking exclusive flock with bounded retry.
package pidfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vnetman/screencast/internal/config"
	serrors "github.com/vnetman/screencast/internal/errors"
)

// Registry manages the pid file for one program name and one user.
// Concurrency contract:
//   - A Registry holds no open handles and no state between calls; it is
//     safe to create one per operation or share one across goroutines.
//   - Serialization against other processes (and other goroutines) happens
//     entirely through the exclusive flock taken for each operation.
type Registry struct {
	program    string
	dir        string
	log        *slog.Logger
	inspector  ProcessInspector
	attempts   int
	retryDelay time.Duration
}

// Option configures a Registry
type Option func(*Registry)

// WithDirectory overrides the per-user runtime directory holding the pid file
func WithDirectory(dir string) Option {
	return func(r *Registry) { r.dir = dir }
}

// WithInspector overrides the process table inspector used by Sanitize
func WithInspector(pi ProcessInspector) Option {
	return func(r *Registry) { r.inspector = pi }
}

// WithRetry overrides the lock retry policy
func WithRetry(attempts int, delay time.Duration) Option {
	return func(r *Registry) {
		r.attempts = attempts
		r.retryDelay = delay
	}
}

// New creates a Registry for the named program
func New(program string, logger *slog.Logger, opts ...Option) *Registry {
	r := &Registry{
		program:    program,
		dir:        config.GetRuntimeDir(),
		log:        logger,
		inspector:  systemInspector{},
		attempts:   config.DefaultLockAttempts,
		retryDelay: config.DefaultLockRetryDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the pid file path for the program. Pure computation, no I/O.
func (r *Registry) Path() string {
	return filepath.Join(r.dir, r.program+config.PidFileSuffix)
}

// Add appends the calling process's pid to the pid file, creating the file
// if needed. Returns the pid for the caller's logging convenience. Fails
// with ErrAlreadyRegistered if the pid is already present.
func (r *Registry) Add() (int, error) {
	pid := os.Getpid()
	err := r.withLock(func() error {
		return r.add(pid)
	})
	return pid, err
}

// Remove deletes the calling process's pid from the pid file. Fails with
// ErrNotRegistered if the pid is not present, which means the caller never
// called Add or already removed itself.
func (r *Registry) Remove() error {
	pid := os.Getpid()
	return r.withLock(func() error {
		return r.remove(pid)
	})
}

// Last returns the most recently registered pid. The bool is false when the
// registry is empty, including when the pid file does not exist.
func (r *Registry) Last() (int, bool, error) {
	var last int
	var ok bool
	err := r.withLock(func() error {
		pids, err := r.readPids()
		if err != nil {
			return err
		}
		if len(pids) > 0 {
			last = pids[len(pids)-1]
			ok = true
		}
		return nil
	})
	return last, ok, err
}

// Sanitize rewrites the pid file keeping only pids that belong to live
// processes with the same name and real uid as the calling process. Each
// pruned pid is logged with its reason; pruning is not an error. The call
// fails only if the file cannot be read or written, or if a process's
// identity cannot be determined.
func (r *Registry) Sanitize() error {
	return r.withLock(func() error {
		pids, err := r.readPids()
		if err != nil {
			return err
		}

		valid := pids[:0]
		for _, pid := range pids {
			stale, reason, err := r.stalePid(pid)
			if err != nil {
				return err
			}
			if stale {
				r.log.Info("Removing pid from pid file", "pid", pid, "reason", reason)
				continue
			}
			valid = append(valid, pid)
		}

		return r.writePids(valid)
	})
}

func (r *Registry) add(pid int) error {
	pids, err := r.readPids()
	if err != nil {
		return err
	}

	for _, p := range pids {
		if p == pid {
			return serrors.AlreadyRegisteredf("%d already in %s", pid, r.Path())
		}
	}

	return r.writePids(append(pids, pid))
}

func (r *Registry) remove(pid int) error {
	pids, err := r.readPids()
	if err != nil {
		return err
	}

	idx := -1
	for i, p := range pids {
		if p == pid {
			idx = i
			break
		}
	}
	if idx < 0 {
		return serrors.NotRegisteredf("%d not in %s", pid, r.Path())
	}

	return r.writePids(append(pids[:idx], pids[idx+1:]...))
}

// stalePid reports whether pid should be pruned, and why. A pid is stale
// when it is not running, when its process name differs from ours (pid
// reuse by an unrelated program), or when its real uid differs from ours.
func (r *Registry) stalePid(pid int) (bool, string, error) {
	exists, err := r.inspector.Exists(pid)
	if err != nil {
		return false, "", fmt.Errorf("checking existence of pid %d: %w", pid, err)
	}
	if !exists {
		return true, "not running", nil
	}

	self := os.Getpid()

	ourName, err := r.inspector.Name(self)
	if err != nil {
		return false, "", fmt.Errorf("looking up own process name: %w", err)
	}
	name, err := r.inspector.Name(pid)
	if err != nil {
		return false, "", fmt.Errorf("looking up name of pid %d: %w", pid, err)
	}
	if name != ourName {
		r.log.Debug("process name mismatch", "pid", pid, "name", name, "expected", ourName)
		return true, "name mismatch", nil
	}

	ourUID, err := r.inspector.RealUID(self)
	if err != nil {
		return false, "", err
	}
	uid, err := r.inspector.RealUID(pid)
	if err != nil {
		return false, "", err
	}
	if uid != ourUID {
		r.log.Debug("process uid mismatch", "pid", pid, "uid", uid, "expected", ourUID)
		return true, "uid mismatch", nil
	}

	return false, "", nil
}

// readPids parses the pid file into a slice, preserving file order.
// A missing file is an empty registry, not an error.
func (r *Registry) readPids() ([]int, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading pid file %s: %w", r.Path(), err)
	}

	var pids []int
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pid, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("malformed entry %q in pid file %s: %w", line, r.Path(), err)
		}
		pids = append(pids, pid)
	}
	return pids, nil
}

// writePids replaces the pid file contents with the given list, one decimal
// pid per line. The file is rewritten in full so it always mirrors the list.
func (r *Registry) writePids(pids []int) error {
	var sb strings.Builder
	for _, pid := range pids {
		sb.WriteString(strconv.Itoa(pid))
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(r.Path(), []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing pid file %s: %w", r.Path(), err)
	}
	return nil
}
