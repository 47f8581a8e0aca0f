// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vconsole/internal/cmdline"
	"vconsole/internal/cmdtree"
	"vconsole/internal/issue"
)

func newModulesCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "modules [namespace]",
		Short: "List loaded namespaces, commands and shorthands",
		Long: `List loaded namespaces, commands and shorthands.

Every namespace holding commands is printed with its commands and their
summaries. Listing the whole tree also prints the root shorthand table.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole(cmd.Context(), app, flags, false)
			if err != nil {
				return err
			}

			tree := c.shell.Tree()
			ns := tree.Root()
			if len(args) == 1 {
				if ns = tree.LookupNamespace(cmdline.ParsePath(args[0]), nil); ns == nil {
					return issue.NewUserError("unknown namespace: %s", args[0])
				}
			}
			return listModules(app.stdout, ns)
		},
	}
}

// listModules prints the commands of ns and its descendants, then the
// shorthand table when ns is the root.
func listModules(w io.Writer, ns *cmdtree.Namespace) error {
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)

	walkNamespaces(ns, func(n *cmdtree.Namespace) {
		commands := n.Commands()
		if len(commands) == 0 {
			return
		}
		fmt.Fprintln(tw, TitleStyle.Render(n.String()))
		for _, c := range commands {
			fmt.Fprintf(tw, "  %s\t%s\n", c.Name(), c.Summary())
		}
		aliases := n.Aliases()
		for _, alias := range slices.Sorted(maps.Keys(aliases)) {
			fmt.Fprintf(tw, "  %s\t%s\n", alias, SubtitleStyle.Render("alias of "+aliases[alias]))
		}
	})

	if ns.IsRoot() {
		shorthands := ns.Tree().Shorthands()
		if len(shorthands) > 0 {
			fmt.Fprintln(tw, TitleStyle.Render("shorthands"))
			for _, alias := range slices.Sorted(maps.Keys(shorthands)) {
				fmt.Fprintf(tw, "  %s\t%s\n", alias, shorthands[alias])
			}
		}
	}

	return tw.Flush()
}

// walkNamespaces visits ns and its descendants, parents first.
func walkNamespaces(ns *cmdtree.Namespace, fn func(*cmdtree.Namespace)) {
	fn(ns)
	for _, child := range ns.Children() {
		walkNamespaces(child, fn)
	}
}
