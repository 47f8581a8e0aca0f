// SPDX-License-Identifier: MPL-2.0

package cmdtree

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
	ErrInvalidName = errors.New("invalid name")
	// ErrNameConflict is the sentinel error wrapped by NameConflictError.
	ErrNameConflict = errors.New("name conflict")
	// ErrDuplicateCommand is returned when a command name is registered twice
	// in the same namespace.
	ErrDuplicateCommand = errors.New("duplicate command")
	// ErrMissingBody is returned when a command is registered without a body.
	ErrMissingBody = errors.New("command has no body")
	// ErrAliasConflict is the sentinel error wrapped by AliasConflictError.
	ErrAliasConflict = errors.New("alias conflict")
	// ErrUnknownAliasTarget is returned when an alias points at a name that
	// is not registered in the alias's namespace.
	ErrUnknownAliasTarget = errors.New("unknown alias target")
	// ErrInvalidCommandSpec is the sentinel error wrapped by InvalidCommandSpecError.
	ErrInvalidCommandSpec = errors.New("invalid command spec")
)

type (
	// InvalidNameError is returned for names that cannot be registered:
	// empty names and names containing whitespace, quotes, dots or other
	// characters the command line uses as syntax.
	InvalidNameError struct {
		Value string
	}

	// NameConflictError is returned when a new child namespace or command
	// would reuse a name already taken in its namespace.
	NameConflictError struct {
		Namespace string
		Name      string
		// Existing is "namespace", "command" or "alias".
		Existing string
	}

	// AliasConflictError is returned when an alias is already taken by a
	// different entity, either in its namespace or in the root shorthand
	// table.
	AliasConflictError struct {
		// Scope is the namespace path, or "shorthand" for the root table.
		Scope    string
		Alias    string
		Existing string
		Target   string
	}

	// InvalidCommandSpecError reports an inconsistent option or argument
	// schema.
	InvalidCommandSpecError struct {
		Command string
		Reason  string
	}
)

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name %q (use letters, digits, '_' and '-', starting with a letter or '_')", e.Value)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// Error implements the error interface.
func (e *NameConflictError) Error() string {
	return fmt.Sprintf("name %q in namespace %q is already taken by a %s", e.Name, e.Namespace, e.Existing)
}

// Unwrap returns ErrNameConflict for errors.Is() compatibility.
func (e *NameConflictError) Unwrap() error { return ErrNameConflict }

// Error implements the error interface.
func (e *AliasConflictError) Error() string {
	return fmt.Sprintf("alias %q in %s already refers to %s, cannot point it at %s", e.Alias, e.Scope, e.Existing, e.Target)
}

// Unwrap returns ErrAliasConflict for errors.Is() compatibility.
func (e *AliasConflictError) Unwrap() error { return ErrAliasConflict }

// Error implements the error interface.
func (e *InvalidCommandSpecError) Error() string {
	return fmt.Sprintf("command %q: %s", e.Command, e.Reason)
}

// Unwrap returns ErrInvalidCommandSpec for errors.Is() compatibility.
func (e *InvalidCommandSpecError) Unwrap() error { return ErrInvalidCommandSpec }
