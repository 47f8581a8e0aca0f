// SPDX-License-Identifier: MPL-2.0

package cmdtree

import (
	"fmt"
	"maps"
	"slices"

	"vconsole/internal/cmdline"
)

const (
	// RootID is the id of the root namespace of every tree.
	RootID NamespaceID = 0

	// RootName is the name of the root namespace. It never appears in a
	// Path.
	RootName = "root"

	noParent NamespaceID = -1

	shorthandScope = "shorthand"
)

type (
	// NamespaceID indexes a namespace in its tree's arena.
	NamespaceID int

	// Tree is the arena owning every namespace of a console. The zero value
	// is not usable; create trees with New.
	Tree struct {
		nodes     []*Namespace
		shorthand map[string]cmdline.Path
	}

	// Namespace is a named grouping of commands, child namespaces and
	// aliases. Namespaces are created with Tree.Root and ChildNamespace and
	// are never removed.
	Namespace struct {
		tree     *Tree
		id       NamespaceID
		name     string
		parent   NamespaceID
		children map[string]NamespaceID
		commands map[string]*Command
		aliases  map[string]string
	}
)

// New returns a tree holding only the root namespace.
func New() *Tree {
	t := &Tree{shorthand: make(map[string]cmdline.Path)}
	t.nodes = append(t.nodes, t.newNamespace(RootName, noParent))
	return t
}

func (t *Tree) newNamespace(name string, parent NamespaceID) *Namespace {
	return &Namespace{
		tree:     t,
		id:       NamespaceID(len(t.nodes)),
		name:     name,
		parent:   parent,
		children: make(map[string]NamespaceID),
		commands: make(map[string]*Command),
		aliases:  make(map[string]string),
	}
}

// Root returns the root namespace.
func (t *Tree) Root() *Namespace {
	return t.nodes[RootID]
}

// Namespace returns the namespace with the given id, or nil.
func (t *Tree) Namespace(id NamespaceID) *Namespace {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Len returns the number of namespaces, root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// AddShorthand publishes alias in the root shorthand table as a name for the
// entity at the absolute path target. Publishing the same mapping twice is a
// no-op; publishing alias for a different target fails with an
// *AliasConflictError.
func (t *Tree) AddShorthand(alias string, target cmdline.Path) error {
	if err := ValidateName(alias); err != nil {
		return err
	}
	if target.IsEmpty() {
		return fmt.Errorf("%w: shorthand %q has an empty target", ErrUnknownAliasTarget, alias)
	}
	if existing, ok := t.shorthand[alias]; ok {
		if slices.Equal(existing, target) {
			return nil
		}
		return &AliasConflictError{
			Scope:    shorthandScope,
			Alias:    alias,
			Existing: existing.String(),
			Target:   target.String(),
		}
	}
	t.shorthand[alias] = slices.Clone(target)
	return nil
}

// Shorthand returns the absolute path published under alias.
func (t *Tree) Shorthand(alias string) (cmdline.Path, bool) {
	p, ok := t.shorthand[alias]
	return slices.Clone(p), ok
}

// Shorthands returns a copy of the root shorthand table.
func (t *Tree) Shorthands() map[string]cmdline.Path {
	out := make(map[string]cmdline.Path, len(t.shorthand))
	for k, v := range t.shorthand {
		out[k] = slices.Clone(v)
	}
	return out
}

// Walk calls fn for every namespace, parents before children and siblings
// in name order, stopping at the first error.
func (t *Tree) Walk(fn func(*Namespace) error) error {
	return t.Root().walk(fn)
}

func (n *Namespace) walk(fn func(*Namespace) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, child := range n.Children() {
		if err := child.walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// ID returns the arena index of n.
func (n *Namespace) ID() NamespaceID { return n.id }

// Name returns the namespace name; the root is named RootName.
func (n *Namespace) Name() string { return n.name }

// Kind returns KindNamespace.
func (n *Namespace) Kind() Kind { return KindNamespace }

// Tree returns the owning tree.
func (n *Namespace) Tree() *Tree { return n.tree }

// IsRoot reports whether n is the root namespace.
func (n *Namespace) IsRoot() bool { return n.parent == noParent }

// Parent returns the enclosing namespace, or nil for the root.
func (n *Namespace) Parent() *Namespace {
	if n.IsRoot() {
		return nil
	}
	return n.tree.nodes[n.parent]
}

// Path returns the absolute path of n. The root has the empty path.
func (n *Namespace) Path() cmdline.Path {
	var rev []string
	for ns := n; !ns.IsRoot(); ns = ns.Parent() {
		rev = append(rev, ns.name)
	}
	slices.Reverse(rev)
	return cmdline.Path(rev)
}

// String returns the dotted path, or RootName for the root.
func (n *Namespace) String() string {
	if n.IsRoot() {
		return RootName
	}
	return n.Path().String()
}

// ChildNamespace returns the child namespace called name, creating it if it
// does not exist yet.
func (n *Namespace) ChildNamespace(name string) (*Namespace, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if id, ok := n.children[name]; ok {
		return n.tree.nodes[id], nil
	}
	if err := n.checkFree(name); err != nil {
		return nil, err
	}

	child := n.tree.newNamespace(name, n.id)
	n.tree.nodes = append(n.tree.nodes, child)
	n.children[name] = child.id
	return child, nil
}

// checkFree fails if name is already taken by a command or by an alias.
func (n *Namespace) checkFree(name string) error {
	if _, ok := n.commands[name]; ok {
		return &NameConflictError{Namespace: n.String(), Name: name, Existing: "command"}
	}
	if _, ok := n.children[name]; ok {
		return &NameConflictError{Namespace: n.String(), Name: name, Existing: "namespace"}
	}
	if _, ok := n.aliases[name]; ok {
		return &NameConflictError{Namespace: n.String(), Name: name, Existing: "alias"}
	}
	return nil
}

// Child returns the child namespace called name, or nil. Aliases are not
// followed.
func (n *Namespace) Child(name string) *Namespace {
	if id, ok := n.children[name]; ok {
		return n.tree.nodes[id]
	}
	return nil
}

// Command returns the command called name, or nil. Aliases are not
// followed.
func (n *Namespace) Command(name string) *Command {
	return n.commands[name]
}

// Children returns the child namespaces sorted by name.
func (n *Namespace) Children() []*Namespace {
	out := make([]*Namespace, 0, len(n.children))
	for _, name := range slices.Sorted(maps.Keys(n.children)) {
		out = append(out, n.tree.nodes[n.children[name]])
	}
	return out
}

// Commands returns the commands sorted by name.
func (n *Namespace) Commands() []*Command {
	out := make([]*Command, 0, len(n.commands))
	for _, name := range slices.Sorted(maps.Keys(n.commands)) {
		out = append(out, n.commands[name])
	}
	return out
}

// Aliases returns a copy of the alias → target table of n.
func (n *Namespace) Aliases() map[string]string {
	return maps.Clone(n.aliases)
}

// Names returns every name usable from n: children, commands and aliases,
// sorted.
func (n *Namespace) Names() []string {
	names := slices.Collect(maps.Keys(n.children))
	names = slices.AppendSeq(names, maps.Keys(n.commands))
	names = slices.AppendSeq(names, maps.Keys(n.aliases))
	slices.Sort(names)
	return names
}

// AddAlias makes alias a second name for target, a child namespace or
// command of n. An alias equal to its target is accepted and has no local
// effect. Re-adding an identical alias is a no-op. An alias whose name is
// taken by a namespace, a command or an alias to a different target fails
// with an *AliasConflictError.
func (n *Namespace) AddAlias(alias, target string) error {
	if err := ValidateName(alias); err != nil {
		return err
	}
	if n.resolveLiteral(target) == nil {
		return fmt.Errorf("%w: %q in namespace %q", ErrUnknownAliasTarget, target, n)
	}
	if alias == target {
		return nil
	}

	if e := n.resolveLiteral(alias); e != nil {
		return &AliasConflictError{
			Scope:    n.String(),
			Alias:    alias,
			Existing: e.Kind().String() + " " + e.Path().String(),
			Target:   target,
		}
	}
	if existing, ok := n.aliases[alias]; ok {
		if existing == target {
			return nil
		}
		return &AliasConflictError{Scope: n.String(), Alias: alias, Existing: existing, Target: target}
	}

	n.aliases[alias] = target
	return nil
}

// resolveLiteral returns the child namespace or command called name.
func (n *Namespace) resolveLiteral(name string) Entry {
	if id, ok := n.children[name]; ok {
		return n.tree.nodes[id]
	}
	if c, ok := n.commands[name]; ok {
		return c
	}
	return nil
}

// resolve looks name up as a literal, then as an alias of n.
func (n *Namespace) resolve(name string) Entry {
	if e := n.resolveLiteral(name); e != nil {
		return e
	}
	if target, ok := n.aliases[name]; ok {
		return n.resolveLiteral(target)
	}
	return nil
}
