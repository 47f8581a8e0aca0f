// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
)

type (
	// IOContext holds the standard streams of an execution.
	IOContext struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// ExecutionContext describes one script execution.
	ExecutionContext struct {
		Context context.Context

		// Name labels the script in syntax errors and logs, usually the
		// command path.
		Name string
		// Script is the POSIX shell source to run.
		Script string
		// Args become the positional parameters $1..$n.
		Args []string
		// Flags are exported as VCONSOLE_FLAG_<NAME>.
		Flags map[string]string
		// ExtraEnv is layered over the inherited host environment, e.g.
		// VCONSOLE_MODULE_DIR for scripts loaded from a module file.
		ExtraEnv map[string]string
		// WorkDir defaults to the process working directory. It is checked
		// before the script starts.
		WorkDir string

		IO IOContext

		// Dispatcher receives every simple command before the host PATH
		// is searched. It may be nil.
		Dispatcher Dispatcher
	}

	// Result is the outcome of an execution. Error is set for failures of
	// the runtime itself; a script that ran and exited non-zero only sets
	// ExitCode.
	Result struct {
		ExitCode ExitCode
		Error    error
	}
)

// NewExecutionContext returns a context for running script with stdio
// bound to the process streams.
func NewExecutionContext(ctx context.Context, name, script string) *ExecutionContext {
	return &ExecutionContext{
		Context: ctx,
		Name:    name,
		Script:  script,
		IO: IOContext{
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		},
	}
}

// Success reports whether the script exited 0 without a runtime error.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// EnvToSlice converts a map of environment variables to KEY=VALUE form.
func EnvToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		result = append(result, k+"="+env[k])
	}
	return result
}

// FilterConsoleEnvVars drops the per-invocation variables (VCONSOLE_FLAG_*,
// VCONSOLE_ARG_*, ARGC and ARGn) from environ, so that a script started
// from another script does not see its caller's arguments.
func FilterConsoleEnvVars(environ []string) []string {
	result := make([]string, 0, len(environ))
	for _, e := range environ {
		name, _, ok := strings.Cut(e, "=")
		if ok && isInvocationVar(name) {
			continue
		}
		result = append(result, e)
	}
	return result
}

func isInvocationVar(name string) bool {
	if strings.HasPrefix(name, flagEnvPrefix) || strings.HasPrefix(name, argEnvPrefix) {
		return true
	}
	if name == "ARGC" {
		return true
	}
	rest, ok := strings.CutPrefix(name, "ARG")
	if !ok || rest == "" {
		return false
	}
	for _, c := range rest {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
