// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"vconsole/internal/cmdline"
	"vconsole/internal/runtime"
	"vconsole/internal/shell"
)

func newEvalCommand(app *App, flags *rootFlags) *cobra.Command {
	var scripting bool

	evalCmd := &cobra.Command{
		Use:   "eval [command line...]",
		Short: "Evaluate a single line, or every line of stdin",
		Long: `Evaluate a single line, or every line of stdin.

With arguments, they form one command line and are evaluated. A single
argument is taken as the whole line. Several arguments are quoted word by
word, so an argument with spaces stays one word. In scripting mode the
arguments are joined verbatim. The exit status reflects the outcome (a
failing script command keeps its own status). Flags after the first
argument belong to the console command.

Without arguments, stdin is evaluated line by line like an interactive
session without a prompt; errors are reported and evaluation continues.`,
		Example: `  vconsole eval vm.create web --size 2
  vconsole eval --scripting 'echo $HOME'
  printf 'use vm\nlist\n' | vconsole eval`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole(cmd.Context(), app, flags, false)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return c.shell.Run(cmd.Context(), app.stdin)
			}

			if scripting {
				err = c.shell.EvalScript(cmd.Context(), strings.Join(args, " "))
			} else {
				err = c.shell.EvalCommand(cmd.Context(), commandLine(args))
			}
			return evalExit(err)
		},
	}

	evalCmd.Flags().SetInterspersed(false)
	evalCmd.Flags().BoolVarP(&scripting, "scripting", "s", false, "evaluate the line in scripting mode")

	return evalCmd
}

// commandLine rebuilds the console line from CLI arguments.
func commandLine(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return cmdline.Format(cmdline.ParsePath(args[0]), args[1:])
}

// evalExit maps the outcome of a one-shot evaluation to the CLI result.
// quit succeeds; a failed script keeps its exit status.
func evalExit(err error) error {
	if err == nil || errors.Is(err, shell.ErrExit) {
		return nil
	}
	var scriptErr *runtime.ScriptExitError
	if errors.As(err, &scriptErr) {
		return &ExitError{Code: int(scriptErr.Code)}
	}
	return err
}
