// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"golang.org/x/term"

	"vconsole/internal/config"
)

type (
	// App wires CLI services and shared dependencies. Every cobra handler
	// receives the App and reads its streams and config through it.
	App struct {
		Config     config.Provider
		stdin      io.Reader
		stdout     io.Writer
		stderr     io.Writer
		isTerminal func() bool
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// IsTerminal reports whether stdin is interactive. The shell only
		// prompts when it is.
		IsTerminal func() bool
	}
)

// NewApp creates an App, filling unset dependencies with the process
// defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:     deps.Config,
		stdin:      deps.Stdin,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
		isTerminal: deps.IsTerminal,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	if app.isTerminal == nil {
		app.isTerminal = stdinIsTerminal
	}
	return app
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
