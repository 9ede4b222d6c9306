package scaffold

import "github.com/polyglot-hello/polyglot/internal/common/apperrors"

// Error definitions for the package.
// All errors are derived from ErrScaffold.
var (
	// ErrScaffold is the base error for the package.
	ErrScaffold = apperrors.New("scaffold error").SetExitCode(1)

	// ErrManifestUnreadable is returned when the manifest cannot be opened or read.
	ErrManifestUnreadable = ErrScaffold.New("cannot read manifest").SetExitCode(2)

	// ErrWrite is returned when an artifact or directory cannot be written.
	// It aborts the whole run.
	ErrWrite = ErrScaffold.New("cannot write artifact")

	// ErrWatch is returned when the manifest cannot be watched for changes.
	ErrWatch = ErrScaffold.New("cannot watch manifest")
)
