// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

// exitCodeInterrupted is the conventional status of a process stopped by
// SIGINT.
const exitCodeInterrupted = 130

func newShellCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive console",
		Long: `Start the interactive console.

Lines are read from stdin until EOF or quit. A prompt showing the current
namespace and mode is printed when stdin is a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), app, flags)
		},
	}
}

func runShell(ctx context.Context, app *App, flags *rootFlags) error {
	c, err := newConsole(ctx, app, flags, app.isTerminal())
	if err != nil {
		return err
	}

	c.logger.Debug("shell started", "language", c.cfg.Scripting.Language)
	if err := c.shell.Run(ctx, app.stdin); err != nil {
		if errors.Is(err, context.Canceled) {
			return &ExitError{Code: exitCodeInterrupted}
		}
		return err
	}
	return nil
}
