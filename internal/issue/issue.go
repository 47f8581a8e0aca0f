// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

type (
	// Id identifies an entry of the issue catalog.
	Id int

	// MarkdownMsg is the Markdown body of an issue.
	MarkdownMsg string

	// HttpLink is a documentation URL shown under "See also".
	HttpLink string

	// Issue is a longer explanation of a failure class, rendered for the
	// terminal with glamour.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

const (
	ConfigLoadFailedId Id = iota + 1
	ModuleLoadFailedId
	ModulePathNotFoundId
	CommandNotFoundId
	ScriptFailedId
	UnknownLanguageId
)

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the configuration!

vconsole reads ` + "`config.cue`" + ` from its configuration directory.

## Things you can try:
- Show the effective configuration:
~~~
$ vconsole config show
~~~
- Point vconsole at another directory:
~~~
$ VCONSOLE_CONFIG_DIR=/tmp/vconsole vconsole
~~~
- Remove unknown keys: only ` + "`modules`, `scripting`, `ui` and `log`" + ` are accepted.`,
	}

	moduleLoadFailedIssue = &Issue{
		id: ModuleLoadFailedId,
		mdMsg: `
# Failed to load a command module!

A module file declares the commands and aliases of one namespace.
Loading stops at the first invalid module; nothing from it is registered.

## Common issues:
- A command without ` + "`script`" + ` or ` + "`builtin`" + ` (exactly one is required)
- An alias that is already used by a different command in the same namespace
- A shell syntax error in a ` + "`script`" + ` body

## Example module:
~~~cue
commands: [{
	name:    "info"
	summary: "Show VM info"
	args: [{name: "vm", required: true}]
	script:  "echo info $1"
	aliases: ["info", "i"]
}]
~~~`,
	}

	modulePathNotFoundIssue = &Issue{
		id: ModulePathNotFoundId,
		mdMsg: `
# Module directory not found!

Each entry of ` + "`modules.paths`" + ` must be an existing directory.

## Things you can try:
- Check the paths in your config file
- Pass the directory explicitly:
~~~
$ vconsole --modules ./modules
~~~`,
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Command not found!

Commands are addressed by their dotted path, relative to the current
namespace or from the root, or by a root-level alias.

## Things you can try:
- List everything that is registered:
~~~
> help
~~~
- Move into a namespace and list it:
~~~
> use vm
> help
~~~`,
	}

	scriptFailedIssue = &Issue{
		id: ScriptFailedId,
		mdMsg: `
# Script failed!

A script body or scripting-mode statement returned a non-zero status.

## Things you can try:
- Run the statement directly in scripting mode (prefix the line with ` + "`/`" + `)
- Check that the external programs it calls are on your PATH`,
	}

	unknownLanguageIssue = &Issue{
		id: UnknownLanguageId,
		mdMsg: `
# Unknown scripting language!

` + "`scripting.language`" + ` must be ` + "`sh`" + ` (POSIX shell) or ` + "`go`" + ` (Go interpreter).`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		moduleLoadFailedIssue.Id():   moduleLoadFailedIssue,
		modulePathNotFoundIssue.Id(): modulePathNotFoundIssue,
		commandNotFoundIssue.Id():    commandNotFoundIssue,
		scriptFailedIssue.Id():       scriptFailedIssue,
		unknownLanguageIssue.Id():    unknownLanguageIssue,
	}
)

// Id returns the catalog id.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the unrendered body.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns a copy of the documentation links.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// ExtLinks returns a copy of the external links.
func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown using the glamour style
// stylePath ("dark", "light", "notty", "auto" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range i.docLinks {
			md.WriteString("- " + string(link) + "\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- " + string(link) + "\n")
		}
	}
	return render(md.String(), stylePath)
}

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
}

// Get returns the issue for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
