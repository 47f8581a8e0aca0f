// SPDX-License-Identifier: MPL-2.0

package script

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"vconsole/internal/runtime"
)

// ShellEvaluator is a persistent POSIX shell session.
type ShellEvaluator struct {
	runner     *interp.Runner
	parser     *syntax.Parser
	dispatcher runtime.Dispatcher
	fatal      []error
	logger     *log.Logger
}

// NewShellEvaluator starts a shell session inheriting the process
// environment.
func NewShellEvaluator(opts ...Option) (*ShellEvaluator, error) {
	o := newOptions(opts)
	e := &ShellEvaluator{
		parser: syntax.NewParser(),
		fatal:  o.fatal,
		logger: o.logger,
	}

	runnerOpts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(runtime.FilterConsoleEnvVars(os.Environ())...)),
		interp.StdIO(o.stdin, o.stdout, o.stderr),
		interp.ExecHandlers(e.dispatch),
	}

	runner, err := interp.New(runnerOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create interpreter: %w", err)
	}
	e.runner = runner
	return e, nil
}

// Name returns LanguageShell.
func (e *ShellEvaluator) Name() string { return LanguageShell }

// SetDispatcher lets statements call console commands by name.
func (e *ShellEvaluator) SetDispatcher(d runtime.Dispatcher) {
	e.dispatcher = d
}

// dispatch resolves the dispatcher at call time, so SetDispatcher may be
// called after the runner was built.
func (e *ShellEvaluator) dispatch(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		return runtime.DispatchMiddleware(e.dispatcher, e.fatal...)(next)(ctx, args)
	}
}

// Eval parses and runs statement in the session. A non-zero exit status is
// not an error: the status is available as $? to the next statement, as in
// an interactive shell. The "exit" builtin yields ErrExited.
func (e *ShellEvaluator) Eval(ctx context.Context, statement string) error {
	file, err := e.parser.Parse(strings.NewReader(statement), "")
	if err != nil {
		return fmt.Errorf("sh: %w", err)
	}

	err = e.runner.Run(ctx, file)
	status, isStatus := interp.IsExitStatus(err)
	if err != nil && !isStatus {
		return err
	}
	if e.runner.Exited() {
		return ErrExited
	}
	if isStatus {
		e.logger.Debug("statement failed", "status", status)
	}
	return nil
}

// lookupVar returns the string value of a shell variable.
func (e *ShellEvaluator) lookupVar(name string) string {
	return e.runner.Vars[name].String()
}
