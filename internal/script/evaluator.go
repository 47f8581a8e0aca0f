// SPDX-License-Identifier: MPL-2.0

package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"vconsole/internal/runtime"
)

const (
	// LanguageShell selects ShellEvaluator.
	LanguageShell = "sh"
	// LanguageGo selects GoEvaluator.
	LanguageGo = "go"
)

var (
	// ErrExited is returned by Eval when the statement asked the session to
	// end, e.g. the sh "exit" builtin.
	ErrExited = errors.New("scripting session exited")

	// ErrUnknownLanguage is the sentinel error wrapped by UnknownLanguageError.
	ErrUnknownLanguage = errors.New("unknown scripting language")
)

type (
	// Evaluator runs one scripting-language statement at a time against a
	// session whose state persists between calls.
	Evaluator interface {
		Name() string
		Eval(ctx context.Context, statement string) error
	}

	// DispatcherSetter is implemented by evaluators that can call console
	// commands. The shell installs itself through it.
	DispatcherSetter interface {
		SetDispatcher(d runtime.Dispatcher)
	}

	// UnknownLanguageError is returned by New for unsupported languages.
	UnknownLanguageError struct {
		Value string
	}

	// Option configures an evaluator.
	Option func(*options)

	options struct {
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
		fatal  []error
		logger *log.Logger
	}
)

// Error implements the error interface.
func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("unknown scripting language %q (valid: %s, %s)", e.Value, LanguageShell, LanguageGo)
}

// Unwrap returns ErrUnknownLanguage for errors.Is() compatibility.
func (e *UnknownLanguageError) Unwrap() error { return ErrUnknownLanguage }

// WithIO sets the standard streams. Nil streams are left at their default
// (the process streams).
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(o *options) {
		if stdin != nil {
			o.stdin = stdin
		}
		if stdout != nil {
			o.stdout = stdout
		}
		if stderr != nil {
			o.stderr = stderr
		}
	}
}

// WithFatalErrors lists command errors that abort a statement instead of
// becoming a non-zero exit status. The shell passes its exit request here.
func WithFatalErrors(errs ...error) Option {
	return func(o *options) { o.fatal = append(o.fatal, errs...) }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns the evaluator for language.
func New(language string, opts ...Option) (Evaluator, error) {
	switch language {
	case LanguageShell, "":
		return NewShellEvaluator(opts...)
	case LanguageGo:
		return NewGoEvaluator(opts...)
	default:
		return nil, &UnknownLanguageError{Value: language}
	}
}
