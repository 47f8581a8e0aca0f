// SPDX-License-Identifier: MPL-2.0

package module

import (
	"errors"
	"fmt"

	"vconsole/internal/cmdtree"
)

var (
	// ErrBody is returned for commands that declare no body or both a
	// script and a builtin.
	ErrBody = errors.New("command needs exactly one of script or builtin")

	// ErrUnknownBuiltin is returned for builtin bodies missing from the
	// Builtins registry.
	ErrUnknownBuiltin = errors.New("unknown builtin")
)

type (
	// Module is the decoded form of a module source.
	Module struct {
		Commands []CommandDecl `json:"commands,omitempty" toml:"commands" yaml:"commands"`
		Aliases  []AliasDecl   `json:"aliases,omitempty" toml:"aliases" yaml:"aliases"`
	}

	// CommandDecl declares one command.
	CommandDecl struct {
		Name        string       `json:"name" toml:"name" yaml:"name"`
		Summary     string       `json:"summary,omitempty" toml:"summary" yaml:"summary"`
		Description string       `json:"description,omitempty" toml:"description" yaml:"description"`
		Options     []OptionDecl `json:"options,omitempty" toml:"options" yaml:"options"`
		Args        []ArgDecl    `json:"args,omitempty" toml:"args" yaml:"args"`
		Script      string       `json:"script,omitempty" toml:"script" yaml:"script"`
		Builtin     string       `json:"builtin,omitempty" toml:"builtin" yaml:"builtin"`
		Workdir     string       `json:"workdir,omitempty" toml:"workdir" yaml:"workdir"`
		Aliases     []string     `json:"aliases,omitempty" toml:"aliases" yaml:"aliases"`
	}

	// OptionDecl declares one --flag. Default holds a scalar (string,
	// number or bool) exactly as written in the source.
	OptionDecl struct {
		Name        string `json:"name" toml:"name" yaml:"name"`
		Short       string `json:"short,omitempty" toml:"short" yaml:"short"`
		Type        string `json:"type,omitempty" toml:"type" yaml:"type"`
		Default     any    `json:"default,omitempty" toml:"default" yaml:"default"`
		Description string `json:"description,omitempty" toml:"description" yaml:"description"`
	}

	// ArgDecl declares one positional argument.
	ArgDecl struct {
		Name        string `json:"name" toml:"name" yaml:"name"`
		Description string `json:"description,omitempty" toml:"description" yaml:"description"`
		Required    bool   `json:"required,omitempty" toml:"required" yaml:"required"`
		Variadic    bool   `json:"variadic,omitempty" toml:"variadic" yaml:"variadic"`
	}

	// AliasDecl declares a namespace-level alias.
	AliasDecl struct {
		Name   string `json:"name" toml:"name" yaml:"name"`
		Target string `json:"target" toml:"target" yaml:"target"`
	}

	// Builtins maps builtin names used by modules to Go command bodies.
	Builtins map[string]cmdtree.BodyFunc

	// BodyError reports a command whose body declaration is invalid.
	BodyError struct {
		Command string
	}

	// UnknownBuiltinError reports a builtin body missing from the registry.
	UnknownBuiltinError struct {
		Command string
		Builtin string
	}

	// LoadError is returned for every module that fails to load. Nothing
	// from the module has been registered when it is returned.
	LoadError struct {
		Label string
		Err   error
	}
)

// Error implements the error interface.
func (e *BodyError) Error() string {
	return fmt.Sprintf("command %q: %s", e.Command, ErrBody)
}

// Unwrap returns ErrBody for errors.Is() compatibility.
func (e *BodyError) Unwrap() error { return ErrBody }

// Error implements the error interface.
func (e *UnknownBuiltinError) Error() string {
	return fmt.Sprintf("command %q: unknown builtin %q", e.Command, e.Builtin)
}

// Unwrap returns ErrUnknownBuiltin for errors.Is() compatibility.
func (e *UnknownBuiltinError) Unwrap() error { return ErrUnknownBuiltin }

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load module %s: %v", e.Label, e.Err)
}

// Unwrap returns the cause.
func (e *LoadError) Unwrap() error { return e.Err }

// aliases returns the (alias, target) pairs declared by m: per-command
// aliases target their command, module-level aliases their explicit target.
func (m *Module) aliases() []AliasDecl {
	var out []AliasDecl
	for _, c := range m.Commands {
		for _, a := range c.Aliases {
			out = append(out, AliasDecl{Name: a, Target: c.Name})
		}
	}
	return append(out, m.Aliases...)
}
