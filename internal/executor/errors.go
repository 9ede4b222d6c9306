package executor

import "github.com/polyglot-hello/polyglot/internal/common/apperrors"

// Error definitions for the package.
// All errors are derived from ErrExecutor.
var (
	// ErrExecutor is the base error for the package.
	ErrExecutor = apperrors.New("executor error")

	// ErrRootUnreadable is returned when the languages root cannot be listed.
	ErrRootUnreadable = ErrExecutor.New("cannot read languages root").SetExitCode(2)

	// ErrInterrupted is returned when the batch is cancelled between entries.
	ErrInterrupted = ErrExecutor.New("run interrupted")

	// ErrReport is returned when the run report cannot be encoded or written.
	ErrReport = ErrExecutor.New("cannot write report")
)
