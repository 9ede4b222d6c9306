package manifest

import "github.com/polyglot-hello/polyglot/internal/common/apperrors"

var (
	// ErrManifest is the base error for the package.
	ErrManifest = apperrors.New("manifest error")

	// ErrMalformedRow is returned for a data row that fails validation.
	// It never aborts a compile run.
	ErrMalformedRow = ErrManifest.New("malformed row")

	// ErrRead is returned when the manifest stream cannot be read.
	ErrRead = ErrManifest.New("cannot read manifest")
)
