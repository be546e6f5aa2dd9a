// Package errors defines application errors and exit code mapping.
package errors

import sterrors "errors"

var (
	// ErrUsage indicates a command usage failure.
	ErrUsage = sterrors.New("usage error")
	// ErrChecksumMismatch indicates at least one file did not match its recorded digest.
	ErrChecksumMismatch = sterrors.New("checksum mismatch")
	// ErrMalformedLine indicates an unparseable checksum list line.
	ErrMalformedLine = sterrors.New("malformed checksum line")
	// ErrLockBusy indicates another process holds the checkpoint lock.
	ErrLockBusy = sterrors.New("checkpoint lock busy")
)

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	if sterrors.Is(err, ErrUsage) {
		return 2
	}
	if sterrors.Is(err, ErrLockBusy) {
		return 3
	}

	return 1
}
