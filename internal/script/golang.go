// SPDX-License-Identifier: MPL-2.0

package script

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"io"
	"reflect"

	"github.com/charmbracelet/log"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"vconsole/internal/runtime"
)

// consolePackage is the import path of the command bridge exposed to Go
// statements:
//
//	import "console"
//	console.Run("vm.create", "small")
//	console.Quit()
const consolePackage = "console"

// GoEvaluator is a persistent Go interpreter session. Declarations and
// imports stay in scope across statements. Bare non-call expressions are
// echoed as "=> value".
type GoEvaluator struct {
	interp     *interp.Interpreter
	stdout     io.Writer
	stderr     io.Writer
	dispatcher runtime.Dispatcher
	fatal      []error
	logger     *log.Logger

	ctx      context.Context
	exited   bool
	fatalErr error
}

// NewGoEvaluator starts a Go interpreter with the standard library and the
// console package available for import.
func NewGoEvaluator(opts ...Option) (*GoEvaluator, error) {
	o := newOptions(opts)
	e := &GoEvaluator{
		stdout: o.stdout,
		stderr: o.stderr,
		fatal:  o.fatal,
		logger: o.logger,
		ctx:    context.Background(),
	}

	i := interp.New(interp.Options{
		Stdin:  o.stdin,
		Stdout: o.stdout,
		Stderr: o.stderr,
	})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to load stdlib symbols: %w", err)
	}
	if err := i.Use(e.exports()); err != nil {
		return nil, fmt.Errorf("failed to load console symbols: %w", err)
	}
	e.interp = i
	return e, nil
}

func (e *GoEvaluator) exports() interp.Exports {
	return interp.Exports{
		consolePackage + "/" + consolePackage: {
			"Run":  reflect.ValueOf(e.run),
			"Quit": reflect.ValueOf(e.quit),
		},
	}
}

// Name returns LanguageGo.
func (e *GoEvaluator) Name() string { return LanguageGo }

// SetDispatcher lets console.Run call console commands.
func (e *GoEvaluator) SetDispatcher(d runtime.Dispatcher) {
	e.dispatcher = d
}

// Eval evaluates statement. Compile and runtime errors are returned; a
// console.Quit call yields ErrExited and a fatal command error is returned
// as is.
func (e *GoEvaluator) Eval(ctx context.Context, statement string) error {
	e.ctx = ctx
	e.exited, e.fatalErr = false, nil
	defer func() { e.ctx = context.Background() }()

	res, err := e.interp.EvalWithContext(ctx, statement)
	switch {
	case e.fatalErr != nil:
		return e.fatalErr
	case e.exited:
		return ErrExited
	case err != nil:
		return fmt.Errorf("go: %w", err)
	}

	if echoes(statement) && res.IsValid() && res.CanInterface() {
		fmt.Fprintf(e.stdout, "=> %v\n", res.Interface())
	}
	return nil
}

// run is console.Run.
func (e *GoEvaluator) run(words ...string) error {
	if len(words) == 0 {
		return errors.New("console.Run: no command given")
	}
	if e.dispatcher == nil {
		return errors.New("console.Run: console commands are not available")
	}

	handled, err := e.dispatcher.Dispatch(e.ctx, words, e.stdout, e.stderr)
	if !handled {
		return fmt.Errorf("console.Run: unknown command %q", words[0])
	}
	for _, f := range e.fatal {
		if errors.Is(err, f) {
			e.logger.Debug("fatal command error", "command", words[0], "error", err)
			e.fatalErr = err
		}
	}
	return err
}

// quit is console.Quit.
func (e *GoEvaluator) quit() {
	e.exited = true
}

// echoes reports whether statement is a single expression whose value
// should be printed. Calls are left silent so that statements run for
// their side effects do not print a result.
func echoes(statement string) bool {
	expr, err := parser.ParseExpr(statement)
	if err != nil {
		return false
	}
	_, isCall := ast.Unparen(expr).(*ast.CallExpr)
	return !isCall
}
