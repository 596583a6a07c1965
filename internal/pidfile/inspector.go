package pidfile

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/process"

	serrors "github.com/vnetman/screencast/internal/errors"
)

// ProcessInspector answers the three questions the staleness check asks of
// the process table. Keeping it behind an interface keeps Sanitize
// platform-neutral and testable with fakes.
type ProcessInspector interface {
	// Exists reports whether a process with the given pid is running
	Exists(pid int) (bool, error)

	// Name returns the display name of the process
	Name(pid int) (string, error)

	// RealUID returns the real user id owning the process. Failures wrap
	// ErrIdentityLookup.
	RealUID(pid int) (int, error)
}

// systemInspector reads the live process table via gopsutil
type systemInspector struct{}

func (systemInspector) Exists(pid int) (bool, error) {
	return process.PidExists(int32(pid))
}

func (systemInspector) Name(pid int) (string, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return "", fmt.Errorf("pid %d: %w", pid, err)
	}
	return p.Name()
}

func (systemInspector) RealUID(pid int) (int, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return 0, serrors.IdentityLookupf("pid %d: %v", pid, err)
	}
	uids, err := p.Uids()
	if err != nil {
		return 0, serrors.IdentityLookupf("reading uids of pid %d: %v", pid, err)
	}
	if len(uids) == 0 {
		return 0, serrors.IdentityLookupf("pid %d reported no uids", pid)
	}
	// The first entry is the real uid (real, effective, saved, fs)
	return int(uids[0]), nil
}
