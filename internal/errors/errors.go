package errors

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrLockTimeout is returned when the pid file lock cannot be acquired within the bounded retries
var ErrLockTimeout = errors.New("pid file lock timeout")

// ErrAlreadyRegistered is returned when add finds the current pid already in the registry
var ErrAlreadyRegistered = errors.New("pid already registered")

// ErrNotRegistered is returned when remove finds no entry for the current pid
var ErrNotRegistered = errors.New("pid not registered")

// ErrIdentityLookup is returned when the real uid of a process cannot be determined
var ErrIdentityLookup = errors.New("identity lookup failed")

// ErrInvalidInput is returned when the provided input is invalid
var ErrInvalidInput = errors.New("invalid input")

// LogErrorAndReturn logs an error with structured context and returns it
func LogErrorAndReturn(logger *slog.Logger, err error, message string, args ...any) error {
	// Don't modify nil errors
	if err == nil {
		return nil
	}

	logger.Error(message, append([]any{"error", err}, args...)...)
	return err
}

// WrapErrorf wraps an error with additional context using fmt.Errorf
func WrapErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// IsLockTimeout returns true if the error is or wraps ErrLockTimeout
func IsLockTimeout(err error) bool {
	return errors.Is(err, ErrLockTimeout)
}

// IsAlreadyRegistered returns true if the error is or wraps ErrAlreadyRegistered
func IsAlreadyRegistered(err error) bool {
	return errors.Is(err, ErrAlreadyRegistered)
}

// IsNotRegistered returns true if the error is or wraps ErrNotRegistered
func IsNotRegistered(err error) bool {
	return errors.Is(err, ErrNotRegistered)
}

// IsIdentityLookup returns true if the error is or wraps ErrIdentityLookup
func IsIdentityLookup(err error) bool {
	return errors.Is(err, ErrIdentityLookup)
}

// IsInvalidInput returns true if the error is or wraps ErrInvalidInput
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// LockTimeoutf returns a formatted ErrLockTimeout error
func LockTimeoutf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrLockTimeout)...)
}

// AlreadyRegisteredf returns a formatted ErrAlreadyRegistered error
func AlreadyRegisteredf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrAlreadyRegistered)...)
}

// NotRegisteredf returns a formatted ErrNotRegistered error
func NotRegisteredf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotRegistered)...)
}

// IdentityLookupf returns a formatted ErrIdentityLookup error
func IdentityLookupf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrIdentityLookup)...)
}

// InvalidInputf returns a formatted ErrInvalidInput error
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}
