package cli

import (
	"errors"

	"github.com/yaklabco/mtlsort/internal/configloader"
	"github.com/yaklabco/mtlsort/pkg/mtl"
	"github.com/yaklabco/mtlsort/pkg/runner"
)

// Exit codes for mtlsort, following sysexits.h.
const (
	// ExitSuccess indicates the pair was sorted (or was already sorted).
	ExitSuccess = 0

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates the inputs could not be rewritten, for example
	// a usage with no matching declaration.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78
)

var (
	// ErrUsage marks errors caused by how the command was invoked.
	ErrUsage = errors.New("invalid usage")

	// ErrIO marks file errors raised by the commands themselves.
	ErrIO = errors.New("i/o error")
)

// ExitCodeFromError maps an error returned by a command to a process exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *configloader.ValidationError

	switch {
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, mtl.ErrUnresolvedUsage), errors.Is(err, mtl.ErrNameOverflow):
		return ExitDataError
	case errors.Is(err, ErrIO),
		errors.Is(err, runner.ErrInput),
		errors.Is(err, runner.ErrOutput),
		errors.Is(err, runner.ErrConcurrentModification):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
