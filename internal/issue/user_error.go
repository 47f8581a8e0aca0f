// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
)

// UserError reports input the user typed wrong: an empty or degenerate
// command line, an unknown command, a bad flag or a missing argument.
// The console prints it without a stack of causes and keeps running.
type UserError struct {
	// Message is the complete, user-readable description.
	Message string

	// Suggestion is an optional replacement the user probably meant.
	Suggestion string
}

// NewUserError formats a UserError.
func NewUserError(format string, args ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// WithSuggestion returns a copy of e carrying a "did you mean" hint.
func (e *UserError) WithSuggestion(s string) *UserError {
	cp := *e
	cp.Suggestion = s
	return &cp
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Suggestion == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (did you mean %q?)", e.Message, e.Suggestion)
}

// IsUserError reports whether err is or wraps a *UserError.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}
