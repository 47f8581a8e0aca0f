// SPDX-License-Identifier: MPL-2.0

package cmdtree

import "vconsole/internal/cmdline"

const (
	// KindAny accepts namespaces and commands.
	KindAny Kind = iota
	// KindNamespace accepts namespaces only.
	KindNamespace
	// KindCommand accepts commands only.
	KindCommand
)

type (
	// Kind selects which entities a lookup may return.
	Kind int

	// Entry is a resolved entity: a *Namespace or a *Command.
	Entry interface {
		Name() string
		Path() cmdline.Path
		Kind() Kind
	}
)

// String returns the kind in lower case.
func (k Kind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindCommand:
		return "command"
	default:
		return "entry"
	}
}

func (k Kind) accepts(e Entry) bool {
	return e != nil && (k == KindAny || e.Kind() == k)
}

// Lookup resolves path starting at from (the root when from is nil).
//
// Each segment is looked up in the current namespace as a child namespace
// or command, then as an alias of that namespace. A segment that does not
// resolve, or a command reached before the last segment, ends the lookup
// with nil. The resolved entity must then be of kind want. The empty path
// resolves to from itself.
//
// When a single-segment path does not yield an acceptable entity, the root
// shorthand table is consulted and the published absolute path is resolved
// from the root with the same kind filter.
//
// Evaluating an input line uses KindCommand (see LookupCommand), so a
// namespace never hides a command of the same name published as a
// shorthand. With KindAny the literal entity under from wins and the
// shorthand is only tried when nothing there resolves.
func (t *Tree) Lookup(path cmdline.Path, want Kind, from *Namespace) Entry {
	if from == nil {
		from = t.Root()
	}

	if e := walk(path, from); want.accepts(e) {
		return e
	}

	if len(path) == 1 {
		if target, ok := t.shorthand[path[0]]; ok {
			if e := walk(target, t.Root()); want.accepts(e) {
				return e
			}
		}
	}
	return nil
}

// LookupCommand is Lookup restricted to commands.
func (t *Tree) LookupCommand(path cmdline.Path, from *Namespace) *Command {
	if c, ok := t.Lookup(path, KindCommand, from).(*Command); ok {
		return c
	}
	return nil
}

// LookupNamespace is Lookup restricted to namespaces.
func (t *Tree) LookupNamespace(path cmdline.Path, from *Namespace) *Namespace {
	if ns, ok := t.Lookup(path, KindNamespace, from).(*Namespace); ok {
		return ns
	}
	return nil
}

func walk(path cmdline.Path, from *Namespace) Entry {
	var cur Entry = from
	for _, seg := range path {
		ns, ok := cur.(*Namespace)
		if !ok {
			return nil
		}
		cur = ns.resolve(seg)
		if cur == nil {
			return nil
		}
	}
	return cur
}
