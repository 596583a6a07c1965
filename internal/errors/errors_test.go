package errors

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	// Verify sentinel errors exist and have expected messages
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"ErrLockTimeout", ErrLockTimeout, "pid file lock timeout"},
		{"ErrAlreadyRegistered", ErrAlreadyRegistered, "pid already registered"},
		{"ErrNotRegistered", ErrNotRegistered, "pid not registered"},
		{"ErrIdentityLookup", ErrIdentityLookup, "identity lookup failed"},
		{"ErrInvalidInput", ErrInvalidInput, "invalid input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("%s.Error() = %q, want %q", tt.name, tt.err.Error(), tt.expected)
			}
		})
	}
}

func TestLogErrorAndReturn(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	t.Run("returns nil for nil error", func(t *testing.T) {
		result := LogErrorAndReturn(logger, nil, "test message")
		if result != nil {
			t.Errorf("LogErrorAndReturn(nil) = %v, want nil", result)
		}
	})

	t.Run("returns the same error", func(t *testing.T) {
		err := errors.New("test error")
		result := LogErrorAndReturn(logger, err, "test message", "key", "value")
		if result != err {
			t.Errorf("LogErrorAndReturn returned different error")
		}
	})
}

func TestWrapErrorf(t *testing.T) {
	t.Run("returns nil for nil error", func(t *testing.T) {
		result := WrapErrorf(nil, "context %s", "value")
		if result != nil {
			t.Errorf("WrapErrorf(nil) = %v, want nil", result)
		}
	})

	t.Run("wraps error with context", func(t *testing.T) {
		base := errors.New("base error")
		wrapped := WrapErrorf(base, "while doing %s", "work")
		if !errors.Is(wrapped, base) {
			t.Errorf("wrapped error does not wrap base error")
		}
		if !strings.Contains(wrapped.Error(), "while doing work") {
			t.Errorf("wrapped error missing context: %q", wrapped.Error())
		}
	})
}

func TestFormattedConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{"LockTimeoutf", LockTimeoutf("pid file %s", "/run/user/1000/x.pid"), ErrLockTimeout, "/run/user/1000/x.pid"},
		{"AlreadyRegisteredf", AlreadyRegisteredf("pid %d", 1234), ErrAlreadyRegistered, "1234"},
		{"NotRegisteredf", NotRegisteredf("pid %d", 1234), ErrNotRegistered, "1234"},
		{"IdentityLookupf", IdentityLookupf("pid %d", 99), ErrIdentityLookup, "99"},
		{"InvalidInputf", InvalidInputf("area %s", "(0,0)-(0,0)"), ErrInvalidInput, "(0,0)-(0,0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("%s does not wrap its sentinel", tt.name)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("%s = %q, want it to contain %q", tt.name, tt.err.Error(), tt.contains)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	if !IsLockTimeout(WrapErrorf(ErrLockTimeout, "outer")) {
		t.Error("IsLockTimeout failed to match wrapped sentinel")
	}
	if IsLockTimeout(ErrNotRegistered) {
		t.Error("IsLockTimeout matched unrelated sentinel")
	}
	if !IsAlreadyRegistered(AlreadyRegisteredf("pid %d", 1)) {
		t.Error("IsAlreadyRegistered failed to match constructor result")
	}
	if !IsNotRegistered(NotRegisteredf("pid %d", 1)) {
		t.Error("IsNotRegistered failed to match constructor result")
	}
	if !IsIdentityLookup(IdentityLookupf("pid %d", 1)) {
		t.Error("IsIdentityLookup failed to match constructor result")
	}
	if !IsInvalidInput(InvalidInputf("bad")) {
		t.Error("IsInvalidInput failed to match constructor result")
	}
}
