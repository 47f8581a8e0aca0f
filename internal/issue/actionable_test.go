// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

// errModuleSyntax stands in for a CUE decode failure of a module file.
var errModuleSyntax = errors.New("commands.0.name: incomplete value string")

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "module path only",
			err:  &ActionableError{Operation: "load modules"},
			want: "failed to load modules",
		},
		{
			name: "module path with resource",
			err:  &ActionableError{Operation: "load modules", Resource: "modules/vm.cue"},
			want: "failed to load modules: modules/vm.cue",
		},
		{
			name: "missing module path",
			err: &ActionableError{
				Operation: "load modules",
				Resource:  "/srv/consoles",
				Cause:     fs.ErrNotExist,
			},
			want: "failed to load modules: /srv/consoles: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("load modules").
		WithResource("/srv/consoles").
		Wrap(fs.ErrNotExist).
		Build()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("errors.Is(%v, fs.ErrNotExist) = false", err)
	}

	bare := &ActionableError{Operation: "load modules"}
	if bare.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want nil", bare.Unwrap())
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	moduleErr := NewErrorContext().
		WithOperation("load modules").
		WithResource("modules/vm.cue").
		WithSuggestions(
			"Fix the module source reported above",
			"Make sure command names and aliases do not collide with other modules",
		).
		Wrap(WrapWithContext(errModuleSyntax, "decode module", "vm.cue")).
		Build()

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:    "suggestions are bulleted",
			err:     moduleErr,
			verbose: false,
			contains: []string{
				"failed to load modules: modules/vm.cue: failed to decode module: vm.cue: commands.0.name",
				"\n\n  • Fix the module source reported above",
				"\n  • Make sure command names",
			},
			excludes: []string{"Error chain:"},
		},
		{
			name:    "verbose appends the chain",
			err:     moduleErr,
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. failed to decode module: vm.cue: commands.0.name",
				"2. commands.0.name: incomplete value string",
			},
		},
		{
			name:     "no suggestions no blank line",
			err:      &ActionableError{Operation: "locate config directory", Cause: errors.New("$HOME is not defined")},
			verbose:  false,
			contains: []string{"failed to locate config directory: $HOME is not defined"},
			excludes: []string{"\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() contains %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if got := NewErrorContext().WithResource("modules/vm.cue").Build(); got != nil {
		t.Errorf("Build() without operation = %v, want nil", got)
	}
	if err := NewErrorContext().WithResource("modules/vm.cue").BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %#v, want untyped nil", err)
	}

	ctx := NewErrorContext().
		WithOperation("load config").
		WithResource("config.cue").
		WithSuggestion("Run 'vconsole config show' to see the effective configuration")

	first := ctx.Wrap(errors.New("scripting.language: invalid value")).Build()
	second := ctx.Wrap(errors.New("ui.color_scheme: invalid value")).
		WithSuggestion("Valid color schemes: auto, dark, light").
		Build()

	if first.Operation != "load config" || first.Resource != "config.cue" {
		t.Errorf("first = %+v", first)
	}
	if first.Cause.Error() == second.Cause.Error() {
		t.Error("reused builder kept the first cause")
	}
	if len(first.Suggestions) != 1 || len(second.Suggestions) != 2 {
		t.Errorf("suggestions shared between builds: %v / %v", first.Suggestions, second.Suggestions)
	}

	var ae *ActionableError
	if err := ctx.BuildError(); !errors.As(err, &ae) {
		t.Errorf("BuildError() = %v, want *ActionableError", err)
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if err := WrapWithContext(nil, "write config file", "config.cue"); err != nil {
		t.Errorf("WrapWithContext(nil) = %#v, want untyped nil", err)
	}
	if err := WrapWithOperation(nil, "locate config directory"); err != nil {
		t.Errorf("WrapWithOperation(nil) = %#v, want untyped nil", err)
	}

	err := WrapWithContext(fs.ErrPermission, "write config file", "/etc/vconsole/config.cue")
	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("WrapWithContext() = %v, want *ActionableError", err)
	}
	if ae.Operation != "write config file" || ae.Resource != "/etc/vconsole/config.cue" {
		t.Errorf("wrapped = %+v", ae)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is(err, fs.ErrPermission) = false")
	}

	err = WrapWithOperation(errors.New("$HOME is not defined"), "locate config directory")
	if got := err.Error(); got != "failed to locate config directory: $HOME is not defined" {
		t.Errorf("WrapWithOperation().Error() = %q", got)
	}
}
