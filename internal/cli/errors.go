package cli

import "github.com/polyglot-hello/polyglot/internal/common/apperrors"

// Error definitions for the package.
// All errors are derived from ErrCLI.
var (
	// ErrCLI is the base error for the package.
	ErrCLI = apperrors.New("cli error")

	// ErrUsage is returned for bad arguments or flags.
	ErrUsage = ErrCLI.New("usage error").SetExitCode(2)

	// ErrConfig is returned when the configuration cannot be loaded.
	ErrConfig = ErrCLI.New("invalid configuration").SetExitCode(2)

	// ErrInternal is reported when a command panics.
	ErrInternal = ErrCLI.New("internal error").SetExitCode(1)

	// ErrAlreadyHandled marks errors whose details were already printed.
	ErrAlreadyHandled = ErrCLI.New("already handled")

	// ErrEntriesFailed is returned by run_all when at least one entry failed.
	ErrEntriesFailed = ErrAlreadyHandled.New("one or more entries failed").SetExitCode(1)
)
