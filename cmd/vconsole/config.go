// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"vconsole/internal/config"
	"vconsole/internal/issue"
)

// newConfigCommand creates the `vconsole config` command tree.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vconsole configuration",
		Long: `Manage vconsole configuration.

Configuration is stored in:
  - Linux: ~/.config/vconsole/config.cue
  - macOS: ~/Library/Application Support/vconsole/config.cue
  - Windows: %APPDATA%\vconsole\config.cue

Set VCONSOLE_CONFIG_DIR to use another directory. Every key can be
overridden from the environment, e.g. VCONSOLE_SCRIPTING_LANGUAGE=go.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := loadConfig(cmd.Context(), app, flags)
			if err != nil {
				return err
			}

			source := SubtitleStyle.Render("(using defaults)")
			if path != "" {
				source = path
			}
			fmt.Fprintf(app.stdout, "// %s: %s\n", CmdStyle.Render("Config file"), source)
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path, created, err := config.CreateDefaultConfig("")
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return issue.WrapWithOperation(err, "locate config directory")
			}
			fmt.Fprintln(app.stdout, filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
			return nil
		},
	})

	return cfgCmd
}
