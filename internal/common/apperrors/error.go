// Package apperrors provides chainable application errors for the polyglot
// command line tools. An Error keeps the error it was derived from, any errors
// attached to it, and the process exit code a command should terminate with.
package apperrors

// Error extends the standard error interface with derivation, wrapping and
// exit code management. All methods return Error to support method chaining.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // creates a new error using current as template
	Msg(msg string) Error                  // creates a new error with message and wraps original
	MsgErr(msg string, err ...error) Error // creates error with message and wraps extra errors
	Err(err ...error) Error                // attaches additional errors to current error
	SetExitCode(int) Error                 // sets the process exit code for the error
	ExitCode() int                         // returns the exit code, 1 when unset
	ErrorAll() string                      // returns full message including attached errors
}
