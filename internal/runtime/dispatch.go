// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"

	"mvdan.cc/sh/v3/interp"
)

// Dispatcher runs console commands named by shell words. Dispatch reports
// false when args[0] is not a console command.
type Dispatcher interface {
	Dispatch(ctx context.Context, args []string, stdout, stderr io.Writer) (bool, error)
}

// DispatchMiddleware returns an exec handler middleware that offers every
// simple command to d before falling through to next (host programs).
//
// Errors of a dispatched command follow shell conventions: they are printed
// to the interpreter's stderr and become exit status 1, and a failed script
// body keeps its own exit status. Errors matching one of fatal, and context
// cancellation, are returned unchanged so the interpreter stops.
func DispatchMiddleware(d Dispatcher, fatal ...error) func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			if handled, err := tryDispatch(ctx, d, args, fatal); handled {
				return err
			}
			return next(ctx, args)
		}
	}
}

// tryDispatch returns (false, nil) when d does not know args[0], so that the
// caller falls back to the next handler, and (true, err) otherwise.
func tryDispatch(ctx context.Context, d Dispatcher, args []string, fatal []error) (bool, error) {
	if d == nil || len(args) == 0 {
		return false, nil
	}

	hc := interp.HandlerCtx(ctx)
	handled, err := d.Dispatch(ctx, args, hc.Stdout, hc.Stderr)
	if !handled {
		return false, nil
	}
	return true, shellStatus(err, args[0], hc.Stderr, fatal)
}

func shellStatus(err error, name string, stderr io.Writer, fatal []error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	for _, f := range fatal {
		if errors.Is(err, f) {
			return err
		}
	}

	var scriptErr *ScriptExitError
	if errors.As(err, &scriptErr) {
		return interp.NewExitStatus(uint8(scriptErr.Code))
	}

	fmt.Fprintf(stderr, "%s: %v\n", name, err)
	return interp.NewExitStatus(1)
}
