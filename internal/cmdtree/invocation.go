// SPDX-License-Identifier: MPL-2.0

package cmdtree

import (
	"fmt"
	"strings"

	"vconsole/internal/issue"
)

const unknownFlagPrefix = "unknown flag: --"

func (c *Command) flagError(err error) error {
	ue := issue.NewUserError("%s: %v", c.Path(), err)

	msg := err.Error()
	if name, ok := strings.CutPrefix(msg, unknownFlagPrefix); ok {
		names := make([]string, 0, len(c.spec.Options))
		for _, o := range c.spec.Options {
			names = append(names, o.Name)
		}
		if s, ok := issue.DidYouMean(name, names); ok {
			return ue.WithSuggestion("--" + s)
		}
	}
	return ue
}

func (c *Command) checkArgs(positional []string) error {
	if len(c.spec.Args) == 0 {
		return nil
	}

	required := 0
	for _, a := range c.spec.Args {
		if a.Required {
			required++
		}
	}
	if len(positional) < required {
		return issue.NewUserError("%s: missing required argument <%s> (usage: %s)",
			c.Path(), c.spec.Args[len(positional)].Name, c.Usage())
	}

	last := c.spec.Args[len(c.spec.Args)-1]
	if len(positional) > len(c.spec.Args) && !last.Variadic {
		return issue.NewUserError("%s: too many arguments: expected at most %d, got %d (usage: %s)",
			c.Path(), len(c.spec.Args), len(positional), c.Usage())
	}
	return nil
}

// Arg returns the i-th positional argument, or "" when absent.
func (inv *Invocation) Arg(i int) string {
	if i < 0 || i >= len(inv.Args) {
		return ""
	}
	return inv.Args[i]
}

// Bool returns the value of a bool option, false if undeclared.
func (inv *Invocation) Bool(name string) bool {
	v, _ := inv.Flags.GetBool(name)
	return v
}

// String returns the value of a string option, "" if undeclared.
func (inv *Invocation) String(name string) string {
	v, _ := inv.Flags.GetString(name)
	return v
}

// Int returns the value of an int option, 0 if undeclared.
func (inv *Invocation) Int(name string) int {
	v, _ := inv.Flags.GetInt(name)
	return v
}

// Strings returns the value of a strings option, nil if undeclared.
func (inv *Invocation) Strings(name string) []string {
	v, _ := inv.Flags.GetStringSlice(name)
	return v
}

// Changed reports whether the option was given on the command line.
func (inv *Invocation) Changed(name string) bool {
	return inv.Flags.Changed(name)
}

// Printf writes to the invocation's standard output.
func (inv *Invocation) Printf(format string, args ...any) {
	fmt.Fprintf(inv.Stdout, format, args...)
}
