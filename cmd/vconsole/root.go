// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	modules    []string
	verbose    bool
	language   string
}

// NewRootCommand builds the vconsole command tree over app. Without a
// subcommand it starts the interactive shell.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "vconsole",
		Short: "A hierarchical, extensible command console",
		Long: TitleStyle.Render("vconsole") + SubtitleStyle.Render(" - A hierarchical, extensible command console") + `

vconsole resolves typed command lines against a tree of namespaces loaded
from module files (CUE, TOML or YAML). Commands are addressed by dotted
paths (vm.create) or by the short aliases their modules publish (mk).
Typing // switches between command mode and scripting mode, where lines are
evaluated by a POSIX shell (sh) or a Go interpreter (go).

` + SubtitleStyle.Render("Examples:") + `
  vconsole                         Start the interactive console
  vconsole --modules ./modules     Load extra modules
  vconsole eval vm.create web      Run a single command line
  vconsole modules                 List every namespace and command
  vconsole config show             Show current configuration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), app, flags)
		},
	}

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/vconsole/config.cue)")
	pf.StringSliceVarP(&flags.modules, "modules", "m", nil, "module file or directory to load, in addition to modules.paths")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output and debug logging")
	pf.StringVarP(&flags.language, "language", "l", "", "scripting language (sh or go)")

	rootCmd.AddCommand(
		newShellCommand(app, flags),
		newEvalCommand(app, flags),
		newModulesCommand(app, flags),
		newConfigCommand(app, flags),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, app *App, args []string) int {
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)

	verbose := func() bool {
		v, _ := rootCmd.PersistentFlags().GetBool("verbose")
		return v
	}

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			renderError(w, err, verbose(), "auto")
		}),
	)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// Main runs the CLI with the process arguments and streams.
func Main() int {
	return Run(context.Background(), NewApp(Dependencies{}), os.Args[1:])
}

// Execute runs the CLI and exits the process with its exit code.
func Execute() {
	os.Exit(Main())
}
