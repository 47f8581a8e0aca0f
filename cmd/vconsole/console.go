// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"vconsole/internal/cmdtree"
	"vconsole/internal/config"
	"vconsole/internal/issue"
	"vconsole/internal/module"
	"vconsole/internal/runtime"
	"vconsole/internal/script"
	"vconsole/internal/session"
	"vconsole/internal/shell"
)

// console is a shell ready to evaluate input, with the configuration it
// was built from.
type console struct {
	shell  *shell.Shell
	cfg    *config.Config
	logger *log.Logger
}

// loadConfig loads the configuration and applies the flag overrides.
func loadConfig(ctx context.Context, app *App, flags *rootFlags) (*config.Config, string, error) {
	cfg, path, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		return nil, "", newServiceError(err, issue.ConfigLoadFailedId)
	}

	if flags.verbose {
		cfg.UI.Verbose = true
	}
	if flags.language != "" {
		lang := config.ScriptingLanguage(flags.language)
		if valid, errs := lang.IsValid(); !valid {
			return nil, "", newServiceError(errs[0], issue.UnknownLanguageId)
		}
		cfg.Scripting.Language = lang
	}
	cfg.Modules.Paths = append(cfg.Modules.Paths, flags.modules...)

	return cfg, path, nil
}

// newLogger writes to stderr at the configured level; verbose mode always
// logs debug messages.
func newLogger(app *App, cfg *config.Config) *log.Logger {
	level, err := log.ParseLevel(cfg.Log.Level.String())
	if err != nil {
		level = log.WarnLevel
	}
	if cfg.UI.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(app.stderr, log.Options{
		Prefix: "vconsole",
		Level:  level,
	})
}

// markdownStyle maps the configured color scheme to a glamour style.
func markdownStyle(cs config.ColorScheme) string {
	switch cs {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// newConsole builds the command tree (built-ins plus every configured
// module) and a shell over it. prompt is honored only if ui.prompt allows.
func newConsole(ctx context.Context, app *App, flags *rootFlags, prompt bool) (*console, error) {
	cfg, cfgPath, err := loadConfig(ctx, app, flags)
	if err != nil {
		return nil, err
	}

	logger := newLogger(app, cfg)
	if cfgPath != "" {
		logger.Debug("configuration loaded", "path", cfgPath)
	}

	tree, err := buildTree(cfg, logger)
	if err != nil {
		return nil, err
	}

	ev, err := script.New(cfg.Scripting.Language.String(),
		script.WithIO(app.stdin, app.stdout, app.stderr),
		script.WithFatalErrors(shell.ErrExit),
		script.WithLogger(logger),
	)
	if err != nil {
		return nil, newServiceError(err, issue.UnknownLanguageId)
	}

	sess := session.New()
	logger.Debug("session started", "session", sess.String())

	sh := shell.New(tree, sess,
		shell.WithEvaluator(ev),
		shell.WithOutput(app.stdout, app.stderr),
		shell.WithLogger(logger),
		shell.WithPrompt(prompt && cfg.UI.Prompt),
		shell.WithMarkdownStyle(markdownStyle(cfg.UI.ColorScheme)),
	)

	return &console{shell: sh, cfg: cfg, logger: logger}, nil
}

// buildTree registers the built-in commands and loads the module paths in
// order. A directory is loaded with LoadDir into the root; a file becomes a
// namespace named after it.
func buildTree(cfg *config.Config, logger *log.Logger) (*cmdtree.Tree, error) {
	tree := cmdtree.New()
	opts := []module.Option{
		module.WithRuntime(runtime.NewVirtualRuntime(logger, shell.ErrExit)),
		module.WithLogger(logger),
	}

	if err := shell.RegisterBuiltins(tree, opts...); err != nil {
		return nil, fmt.Errorf("failed to register built-in commands: %w", err)
	}

	for _, path := range cfg.Modules.Paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, newServiceError(issue.NewErrorContext().
				WithOperation("load modules").
				WithResource(path).
				WithSuggestions(
					"Check the modules.paths entries of your config file",
					"Check the paths passed with --modules",
				).
				Wrap(err).
				Build(), issue.ModulePathNotFoundId)
		}

		if info.IsDir() {
			err = module.LoadDir(tree.Root(), path, opts...)
		} else {
			err = module.LoadFile(tree.Root(), path, opts...)
		}
		if err != nil {
			return nil, newServiceError(issue.NewErrorContext().
				WithOperation("load modules").
				WithResource(path).
				WithSuggestion("Fix the module source reported above").
				WithSuggestion("Make sure command names and aliases do not collide with other modules").
				Wrap(err).
				Build(), issue.ModuleLoadFailedId)
		}
	}

	logger.Debug("command tree built", "namespaces", tree.Len(), "shorthands", len(tree.Shorthands()))
	return tree, nil
}
