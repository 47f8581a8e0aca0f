// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"

	"vconsole/internal/cmdline"
	"vconsole/internal/cmdtree"
	"vconsole/internal/issue"
	"vconsole/internal/module"
	"vconsole/internal/session"
)

// BuiltinNamespace is the namespace RegisterBuiltins fills.
const BuiltinNamespace = "basic"

//go:embed basic.cue
var basicModule []byte

var errNoShell = errors.New("command must be run from a console shell")

// RegisterBuiltins adds the basic namespace (help, quit, use, mark and
// marks) to tree and publishes each command under its bare name.
func RegisterBuiltins(tree *cmdtree.Tree, opts ...module.Option) error {
	ns, err := tree.Root().ChildNamespace(BuiltinNamespace)
	if err != nil {
		return err
	}

	builtins := module.Builtins{
		"help":  helpCommand,
		"quit":  quitCommand,
		"use":   useCommand,
		"mark":  markCommand,
		"marks": marksCommand,
	}
	opts = append(opts, module.WithBuiltins(builtins))
	return module.LoadCode(ns, basicModule, "basic.cue", opts...)
}

func shellOf(inv *cmdtree.Invocation) (*Shell, error) {
	s, ok := inv.Dispatcher.(*Shell)
	if !ok {
		return nil, fmt.Errorf("%s: %w", inv.Command.Path(), errNoShell)
	}
	return s, nil
}

func helpCommand(_ context.Context, inv *cmdtree.Invocation) error {
	s, err := shellOf(inv)
	if err != nil {
		return err
	}

	ns := s.Cursor()
	if len(inv.Args) > 0 {
		path := cmdline.ParsePath(inv.Arg(0))
		switch e := s.Lookup(path, cmdtree.KindAny).(type) {
		case *cmdtree.Command:
			fmt.Fprint(inv.Stdout, e.Help())
			return nil
		case *cmdtree.Namespace:
			ns = e
		default:
			return issue.NewUserError("help: unknown command or namespace: %s", path)
		}
	}

	out, err := glamour.Render(listing(ns), s.style)
	if err != nil {
		return fmt.Errorf("failed to render help: %w", err)
	}
	fmt.Fprint(inv.Stdout, out)
	return nil
}

// listing renders the commands below ns as markdown, one list per
// namespace, followed by the shorthands when ns is the root.
func listing(ns *cmdtree.Namespace) string {
	var b strings.Builder
	if ns.IsRoot() {
		b.WriteString("# Commands\n\n")
	} else {
		fmt.Fprintf(&b, "# %s\n\n", ns)
	}

	var walk func(*cmdtree.Namespace)
	walk = func(n *cmdtree.Namespace) {
		if cmds := n.Commands(); len(cmds) > 0 {
			fmt.Fprintf(&b, "## %s\n\n", n)
			for _, c := range cmds {
				fmt.Fprintf(&b, "- `%s` %s\n", c.Path(), c.Summary())
			}
			b.WriteString("\n")
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(ns)

	if ns.IsRoot() {
		if shorthands := ns.Tree().Shorthands(); len(shorthands) > 0 {
			b.WriteString("## Shorthands\n\n")
			for _, name := range slices.Sorted(maps.Keys(shorthands)) {
				fmt.Fprintf(&b, "- `%s` runs `%s`\n", name, shorthands[name])
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("Type `help <command>` for the options of a command. ")
	b.WriteString("Type `//` to switch between command and scripting mode.\n")
	return b.String()
}

func quitCommand(context.Context, *cmdtree.Invocation) error {
	return ErrExit
}

func useCommand(_ context.Context, inv *cmdtree.Invocation) error {
	s, err := shellOf(inv)
	if err != nil {
		return err
	}
	if len(inv.Args) == 0 {
		s.SetCursor(nil)
		return nil
	}

	path := cmdline.ParsePath(inv.Arg(0))
	ns, _ := s.Lookup(path, cmdtree.KindNamespace).(*cmdtree.Namespace)
	if ns == nil {
		return issue.NewUserError("use: unknown namespace: %s", path)
	}
	s.SetCursor(ns)
	return nil
}

func markerOf(inv *cmdtree.Invocation) (session.Marker, error) {
	m, ok := inv.Session.(session.Marker)
	if !ok {
		return nil, issue.NewUserError("%s: this session cannot store marks", inv.Command.Path())
	}
	return m, nil
}

func markCommand(_ context.Context, inv *cmdtree.Invocation) error {
	m, err := markerOf(inv)
	if err != nil {
		return err
	}
	m.Mark(inv.Arg(0), inv.Args[1:])
	return nil
}

func marksCommand(_ context.Context, inv *cmdtree.Invocation) error {
	m, err := markerOf(inv)
	if err != nil {
		return err
	}
	for _, name := range m.MarkNames() {
		values, _ := m.Marked(name)
		inv.Printf("%s\t%s\n", name, cmdline.Join(values))
	}
	return nil
}
