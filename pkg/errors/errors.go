// Package errors wraps github.com/go-errors/errors so that every error
// created inside the engine carries a stack trace, while keeping the
// standard Is/As/Unwrap semantics.
package errors

import (
	stderrors "errors"

	goerrors "github.com/go-errors/errors"
)

// New returns a new error with the given message and a captured stack.
func New(msg string) error {
	return goerrors.Wrap(stderrors.New(msg), 1)
}

// Errorf formats an error like fmt.Errorf (including %w wrapping) and
// captures the call stack.
func Errorf(format string, args ...interface{}) error {
	return goerrors.Errorf(format, args...)
}

// Wrap annotates err with a stack trace at the point Wrap was called.
// Returns nil if err is nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, 1)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// StackTrace returns the formatted stack trace captured by err, or an
// empty string when err carries none.
func StackTrace(err error) string {
	var ge *goerrors.Error
	if stderrors.As(err, &ge) {
		return string(ge.Stack())
	}
	return ""
}
