// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"vconsole/internal/cmdline"
	"vconsole/internal/cmdtree"
	"vconsole/internal/issue"
	"vconsole/internal/script"
)

const (
	toggleLine    = "//"
	inversePrefix = "/"
)

// EvalInput evaluates one line typed at the console.
//
// "//" toggles the mode. A line starting with "/" is evaluated without
// the slash in the other mode, for this line only. Errors are written to
// stderr and swallowed, except ErrExit and context cancellation, which are
// returned so the caller can stop reading.
func (s *Shell) EvalInput(ctx context.Context, line string) error {
	input := strings.TrimSpace(line)
	if input == toggleLine {
		s.mode = s.mode.inverse()
		s.logger.Debug("mode changed", "mode", s.mode)
		return nil
	}

	mode := s.mode
	if rest, ok := strings.CutPrefix(input, inversePrefix); ok {
		input = strings.TrimSpace(rest)
		mode = mode.inverse()
	}
	if input == "" {
		return nil
	}

	var err error
	if mode == ModeScripting {
		err = s.EvalScript(ctx, input)
	} else {
		err = s.EvalCommand(ctx, input)
	}
	return s.report(err)
}

// EvalCommand runs a command line. The empty line, "." and "?" are
// rejected, as is a path that resolves to no command. Errors of the command
// itself are returned unchanged.
func (s *Shell) EvalCommand(ctx context.Context, raw string) error {
	line := strings.TrimSpace(raw)
	switch line {
	case "":
		return issue.NewUserError("empty command line")
	case ".", "?":
		return issue.NewUserError("%q is not a command; type help to list commands", line)
	}

	path, args := cmdline.ParseInput(line)
	if path.IsEmpty() {
		return issue.NewUserError("%q is not a command; type help to list commands", line)
	}

	c := s.lookupCommand(path)
	if c == nil {
		return s.unknownCommand(path)
	}

	s.logger.Debug("invoking command", "command", c.Path().String(), "args", len(args))
	return c.Invoke(ctx, s.env(s.stdout, s.stderr), args)
}

// EvalScript evaluates statement with the scripting evaluator regardless
// of the current mode. An exit statement is reported as ErrExit.
func (s *Shell) EvalScript(ctx context.Context, statement string) error {
	if s.evaluator == nil {
		return issue.NewUserError("scripting mode is not available: no evaluator configured")
	}
	err := s.evaluator.Eval(ctx, statement)
	if errors.Is(err, script.ErrExited) {
		return ErrExit
	}
	return err
}

// Dispatch runs args as a command line when args[0] names a command,
// writing to the given streams. It reports false for anything else so the
// caller can treat args as an external program.
func (s *Shell) Dispatch(ctx context.Context, args []string, stdout, stderr io.Writer) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	path := cmdline.ParsePath(args[0])
	if path.IsEmpty() {
		return false, nil
	}

	c := s.lookupCommand(path)
	if c == nil {
		return false, nil
	}
	s.logger.Debug("dispatching command", "command", c.Path().String(), "args", len(args)-1)
	return true, c.Invoke(ctx, s.env(stdout, stderr), args[1:])
}

// report prints err and reports whether the caller should stop.
func (s *Shell) report(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrExit),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}

	s.logger.Debug("line failed", "error", err, "user_error", issue.IsUserError(err))
	fmt.Fprintln(s.stderr, errorStyle.Render("error:")+" "+err.Error())
	return nil
}

// unknownCommand builds the diagnostic for a path that resolved to nothing,
// suggesting the closest known command name.
func (s *Shell) unknownCommand(path cmdline.Path) error {
	err := issue.NewUserError("unknown command: %s", path)
	if suggestion, ok := issue.DidYouMean(path.String(), s.commandNames()); ok {
		return err.WithSuggestion(suggestion)
	}
	return err
}

// commandNames lists the spellings that reach a command: absolute paths,
// paths relative to the cursor and root shorthands.
func (s *Shell) commandNames() []string {
	var names []string
	_ = s.tree.Walk(func(ns *cmdtree.Namespace) error {
		for _, c := range ns.Commands() {
			names = append(names, c.Path().String())
		}
		return nil
	})
	if !s.cursor.IsRoot() {
		for _, c := range s.cursor.Commands() {
			names = append(names, c.Name())
		}
	}
	for alias, target := range s.tree.Shorthands() {
		if s.tree.LookupCommand(target, nil) != nil {
			names = append(names, alias)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}
