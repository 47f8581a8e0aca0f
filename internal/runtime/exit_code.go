// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrScriptFailed is the sentinel error wrapped by ScriptExitError.
var ErrScriptFailed = errors.New("script failed")

type (
	// ExitCode is a shell exit status in the range 0-255. The zero value
	// means success.
	ExitCode int

	// ScriptExitError is returned by script command bodies whose script
	// exited with a non-zero status.
	ScriptExitError struct {
		Name string
		Code ExitCode
	}
)

// Error implements the error interface.
func (e *ScriptExitError) Error() string {
	return fmt.Sprintf("%s: exit status %d", e.Name, e.Code)
}

// Unwrap returns ErrScriptFailed for errors.Is() compatibility.
func (e *ScriptExitError) Unwrap() error { return ErrScriptFailed }

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
