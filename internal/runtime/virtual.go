// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime runs scripts with the embedded mvdan/sh interpreter.
type VirtualRuntime struct {
	// FatalErrors lists errors that abort the whole script when a
	// dispatched console command returns them. Any other command error
	// is printed and turned into exit status 1.
	FatalErrors []error

	logger *log.Logger
}

// NewVirtualRuntime creates a virtual runtime. A nil logger discards logs.
func NewVirtualRuntime(logger *log.Logger, fatal ...error) *VirtualRuntime {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &VirtualRuntime{FatalErrors: fatal, logger: logger}
}

// Parse parses script, using name as the file name in syntax errors.
func (r *VirtualRuntime) Parse(name, script string) (*syntax.File, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), name)
	if err != nil {
		return nil, fmt.Errorf("script syntax error: %w", err)
	}
	return prog, nil
}

// Execute runs the script with the streams of ctx.IO, in ctx.WorkDir when
// it is set.
func (r *VirtualRuntime) Execute(ctx *ExecutionContext) *Result {
	prog, err := r.Parse(ctx.Name, ctx.Script)
	if err != nil {
		return NewErrorResult(1, err)
	}
	if err := validateWorkDir(ctx.WorkDir); err != nil {
		return NewErrorResult(1, err)
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(EnvToSlice(buildEnv(ctx))...)),
		interp.StdIO(ctx.IO.Stdin, ctx.IO.Stdout, ctx.IO.Stderr),
		interp.ExecHandlers(DispatchMiddleware(ctx.Dispatcher, r.FatalErrors...)),
	}
	if ctx.WorkDir != "" {
		opts = append(opts, interp.Dir(ctx.WorkDir))
	}

	// "--" keeps arguments such as -v from being read as shell options.
	if len(ctx.Args) > 0 {
		params := append([]string{"--"}, ctx.Args...)
		opts = append(opts, interp.Params(params...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err))
	}

	execCtx := ctx.Context
	if execCtx == nil {
		execCtx = context.Background()
	}

	r.logger.Debug("running script", "name", ctx.Name, "args", len(ctx.Args), "dir", ctx.WorkDir)
	return resultFromRunError(runner.Run(execCtx, prog))
}

func resultFromRunError(err error) *Result {
	if err == nil {
		return NewSuccessResult()
	}
	var exitStatus interp.ExitStatus
	if errors.As(err, &exitStatus) {
		return NewExitCodeResult(ExitCode(exitStatus))
	}
	return NewErrorResult(1, fmt.Errorf("script execution failed: %w", err))
}
