// SPDX-License-Identifier: MPL-2.0

package cmdtree

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"vconsole/internal/cmdline"
)

const (
	OptionBool    OptionType = "bool"
	OptionString  OptionType = "string"
	OptionInt     OptionType = "int"
	OptionStrings OptionType = "strings"

	helpFlag      = "help"
	helpShorthand = "h"
)

type (
	// OptionType is the value type of a command option.
	OptionType string

	// OptionSpec declares one --flag of a command.
	OptionSpec struct {
		Name        string
		Short       string
		Type        OptionType
		Default     string
		Description string
	}

	// ArgSpec declares one positional argument of a command. Required
	// arguments come first; only the last argument may be variadic.
	ArgSpec struct {
		Name        string
		Description string
		Required    bool
		Variadic    bool
	}

	// BodyFunc is the code behind a command.
	BodyFunc func(ctx context.Context, inv *Invocation) error

	// CommandSpec describes a command to register with Namespace.AddCommand.
	CommandSpec struct {
		Name        string
		Summary     string
		Description string
		Options     []OptionSpec
		Args        []ArgSpec
		Body        BodyFunc
	}

	// Command is a registered command. It belongs to exactly one namespace.
	Command struct {
		spec CommandSpec
		tree *Tree
		ns   NamespaceID
	}

	// Dispatcher runs a command line given as words, reporting false when
	// args[0] does not name a command.
	Dispatcher interface {
		Dispatch(ctx context.Context, args []string, stdout, stderr io.Writer) (bool, error)
	}

	// Env is what the caller of Invoke provides to the command body.
	Env struct {
		Stdout     io.Writer
		Stderr     io.Writer
		Session    any
		Dispatcher Dispatcher
	}

	// Invocation is passed to a BodyFunc.
	Invocation struct {
		Command *Command
		// Args are the positional arguments left after flag parsing.
		Args []string
		// Flags holds the parsed options.
		Flags *pflag.FlagSet
		// Raw is the argument list as typed.
		Raw        []string
		Stdout     io.Writer
		Stderr     io.Writer
		Session    any
		Dispatcher Dispatcher
	}
)

// AddCommand registers a new command in n.
func (n *Namespace) AddCommand(spec CommandSpec) (*Command, error) {
	if err := ValidateName(spec.Name); err != nil {
		return nil, err
	}
	if _, ok := n.commands[spec.Name]; ok {
		return nil, fmt.Errorf("%w: %q in namespace %q", ErrDuplicateCommand, spec.Name, n)
	}
	if err := n.checkFree(spec.Name); err != nil {
		return nil, err
	}
	if spec.Body == nil {
		return nil, fmt.Errorf("%w: %q in namespace %q", ErrMissingBody, spec.Name, n)
	}
	if err := spec.validate(); err != nil {
		return nil, err
	}

	spec.Options = slices.Clone(spec.Options)
	spec.Args = slices.Clone(spec.Args)
	c := &Command{spec: spec, tree: n.tree, ns: n.id}
	n.commands[spec.Name] = c
	return c, nil
}

// Validate checks the option and argument schema without registering the
// command.
func (s CommandSpec) Validate() error {
	if err := ValidateName(s.Name); err != nil {
		return err
	}
	return s.validate()
}

func (s CommandSpec) validate() error {
	invalid := func(format string, args ...any) error {
		return &InvalidCommandSpecError{Command: s.Name, Reason: fmt.Sprintf(format, args...)}
	}

	longs := map[string]bool{helpFlag: true}
	shorts := map[string]bool{helpShorthand: true}
	for _, o := range s.Options {
		if err := ValidateName(o.Name); err != nil {
			return invalid("option: %v", err)
		}
		if longs[o.Name] {
			return invalid("option --%s declared twice or reserved", o.Name)
		}
		longs[o.Name] = true

		if o.Short != "" {
			if len(o.Short) != 1 {
				return invalid("option --%s: shorthand %q must be a single character", o.Name, o.Short)
			}
			if shorts[o.Short] {
				return invalid("option --%s: shorthand -%s declared twice or reserved", o.Name, o.Short)
			}
			shorts[o.Short] = true
		}

		if _, err := o.parseDefault(); err != nil {
			return invalid("option --%s: %v", o.Name, err)
		}
	}

	seen := make(map[string]bool, len(s.Args))
	optional := false
	for i, a := range s.Args {
		if a.Name == "" {
			return invalid("argument %d has no name", i+1)
		}
		if seen[a.Name] {
			return invalid("argument <%s> declared twice", a.Name)
		}
		seen[a.Name] = true

		if a.Required && optional {
			return invalid("required argument <%s> follows an optional one", a.Name)
		}
		optional = optional || !a.Required

		if a.Variadic && i != len(s.Args)-1 {
			return invalid("only the last argument may be variadic, not <%s>", a.Name)
		}
	}
	return nil
}

func (o OptionSpec) typ() OptionType {
	if o.Type == "" {
		return OptionString
	}
	return o.Type
}

// parseDefault converts Default to the Go value of the option type.
func (o OptionSpec) parseDefault() (any, error) {
	switch o.typ() {
	case OptionBool:
		if o.Default == "" {
			return false, nil
		}
		return strconv.ParseBool(o.Default)
	case OptionInt:
		if o.Default == "" {
			return 0, nil
		}
		return strconv.Atoi(o.Default)
	case OptionStrings:
		if o.Default == "" {
			return []string(nil), nil
		}
		return strings.Split(o.Default, ","), nil
	case OptionString:
		return o.Default, nil
	default:
		return nil, fmt.Errorf("unknown type %q (valid: bool, string, int, strings)", o.Type)
	}
}

// Name returns the command name.
func (c *Command) Name() string { return c.spec.Name }

// Summary returns the one-line description.
func (c *Command) Summary() string { return c.spec.Summary }

// Description returns the long description, which may be empty.
func (c *Command) Description() string { return c.spec.Description }

// Options returns a copy of the option schema.
func (c *Command) Options() []OptionSpec { return slices.Clone(c.spec.Options) }

// Args returns a copy of the argument schema.
func (c *Command) Args() []ArgSpec { return slices.Clone(c.spec.Args) }

// Kind returns KindCommand.
func (c *Command) Kind() Kind { return KindCommand }

// Namespace returns the namespace owning c.
func (c *Command) Namespace() *Namespace { return c.tree.nodes[c.ns] }

// Path returns the absolute path of c.
func (c *Command) Path() cmdline.Path {
	return c.Namespace().Path().Append(c.spec.Name)
}

// FlagSet returns a fresh flag set for the option schema, including --help.
func (c *Command) FlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(c.Path().String(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false

	for _, o := range c.spec.Options {
		// Defaults were checked at registration.
		def, _ := o.parseDefault()
		switch o.typ() {
		case OptionBool:
			fs.BoolP(o.Name, o.Short, def.(bool), o.Description)
		case OptionInt:
			fs.IntP(o.Name, o.Short, def.(int), o.Description)
		case OptionStrings:
			fs.StringSliceP(o.Name, o.Short, def.([]string), o.Description)
		default:
			fs.StringP(o.Name, o.Short, def.(string), o.Description)
		}
	}
	fs.BoolP(helpFlag, helpShorthand, false, "show help for "+c.Path().String())
	return fs
}

// Usage returns the synopsis line, e.g. "vm.info [flags] <vm> [more...]".
func (c *Command) Usage() string {
	var b strings.Builder
	b.WriteString(c.Path().String())
	b.WriteString(" [flags]")
	for _, a := range c.spec.Args {
		name := a.Name
		if a.Variadic {
			name += "..."
		}
		if a.Required {
			fmt.Fprintf(&b, " <%s>", name)
		} else {
			fmt.Fprintf(&b, " [%s]", name)
		}
	}
	return b.String()
}

// Help returns the plain-text help for c.
func (c *Command) Help() string {
	var b strings.Builder

	switch {
	case c.spec.Description != "":
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(c.spec.Description))
	case c.spec.Summary != "":
		fmt.Fprintf(&b, "%s\n\n", c.spec.Summary)
	}

	fmt.Fprintf(&b, "Usage:\n  %s\n", c.Usage())

	if len(c.spec.Args) > 0 {
		b.WriteString("\nArguments:\n")
		tw := tabwriter.NewWriter(&b, 2, 0, 3, ' ', 0)
		for _, a := range c.spec.Args {
			fmt.Fprintf(tw, "  %s\t%s\n", a.Name, a.Description)
		}
		tw.Flush()
	}

	b.WriteString("\nFlags:\n")
	b.WriteString(c.FlagSet().FlagUsages())
	return b.String()
}

// Invoke parses args against the option and argument schema and runs the
// command body. Schema violations are reported as *issue.UserError; --help
// prints Help to env.Stdout and does not run the body.
func (c *Command) Invoke(ctx context.Context, env Env, args []string) error {
	stdout, stderr := orDiscard(env.Stdout), orDiscard(env.Stderr)

	fs := c.FlagSet()
	if err := fs.Parse(args); err != nil {
		return c.flagError(err)
	}
	if help, _ := fs.GetBool(helpFlag); help {
		fmt.Fprint(stdout, c.Help())
		return nil
	}

	positional := fs.Args()
	if err := c.checkArgs(positional); err != nil {
		return err
	}

	return c.spec.Body(ctx, &Invocation{
		Command:    c,
		Args:       positional,
		Flags:      fs,
		Raw:        slices.Clone(args),
		Stdout:     stdout,
		Stderr:     stderr,
		Session:    env.Session,
		Dispatcher: env.Dispatcher,
	})
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
