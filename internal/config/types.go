// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// LanguageShell selects the POSIX shell evaluator for scripting mode.
	LanguageShell ScriptingLanguage = "sh"
	// LanguageGo selects the Go interpreter for scripting mode.
	LanguageGo ScriptingLanguage = "go"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidScriptingLanguage is returned when a ScriptingLanguage value is not recognized.
	ErrInvalidScriptingLanguage = errors.New("invalid scripting language")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidModulePath is returned for blank module paths.
	ErrInvalidModulePath = errors.New("invalid module path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ScriptingLanguage selects the evaluator behind scripting mode.
	ScriptingLanguage string

	// InvalidScriptingLanguageError is returned when a ScriptingLanguage value is not recognized.
	// It wraps ErrInvalidScriptingLanguage for errors.Is() compatibility.
	InvalidScriptingLanguageError struct {
		Value ScriptingLanguage
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level of log messages written to stderr.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidModulePathError is returned for a blank entry of modules.paths.
	InvalidModulePathError struct {
		Index int
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sections.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Modules lists where module files are loaded from.
		Modules ModulesConfig `json:"modules" mapstructure:"modules"`
		// Scripting configures scripting mode.
		Scripting ScriptingConfig `json:"scripting" mapstructure:"scripting"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Log configures logging.
		Log LogConfig `json:"log" mapstructure:"log"`
	}

	// ModulesConfig lists module directories.
	ModulesConfig struct {
		Paths []string `json:"paths" mapstructure:"paths"`
	}

	// ScriptingConfig configures scripting mode.
	ScriptingConfig struct {
		Language ScriptingLanguage `json:"language" mapstructure:"language"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme of rendered markdown.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose error output and debug logging.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Prompt shows a prompt in the interactive shell when stdin is a terminal.
		Prompt bool `json:"prompt" mapstructure:"prompt"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Modules:   ModulesConfig{Paths: []string{}},
		Scripting: ScriptingConfig{Language: LanguageShell},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
			Prompt:      true,
		},
		Log: LogConfig{Level: LogLevelWarn},
	}
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for i, p := range c.Modules.Paths {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, &InvalidModulePathError{Index: i})
		}
	}
	if valid, fieldErrs := c.Scripting.Language.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface for InvalidModulePathError.
func (e *InvalidModulePathError) Error() string {
	return fmt.Sprintf("modules.paths[%d] must not be blank", e.Index)
}

// Unwrap returns ErrInvalidModulePath for errors.Is() compatibility.
func (e *InvalidModulePathError) Unwrap() error { return ErrInvalidModulePath }

// Error implements the error interface for InvalidScriptingLanguageError.
func (e *InvalidScriptingLanguageError) Error() string {
	return fmt.Sprintf("invalid scripting language %q (valid: sh, go)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidScriptingLanguageError) Unwrap() error {
	return ErrInvalidScriptingLanguage
}

// String returns the string representation of the ScriptingLanguage.
func (l ScriptingLanguage) String() string { return string(l) }

// IsValid returns whether the ScriptingLanguage is one of the supported
// languages, and a list of validation errors if it is not.
func (l ScriptingLanguage) IsValid() (bool, []error) {
	switch l {
	case LanguageShell, LanguageGo:
		return true, nil
	default:
		return false, []error{&InvalidScriptingLanguageError{Value: l}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is known.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}
