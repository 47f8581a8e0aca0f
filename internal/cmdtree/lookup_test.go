// SPDX-License-Identifier: MPL-2.0

package cmdtree

import (
	"testing"

	"vconsole/internal/cmdline"
)

type fixture struct {
	tree   *Tree
	foo    *Namespace
	bar    *Namespace
	fooCmd *Command
	barCmd *Command
}

// newFixture builds namespace foo holding command foo (aliases foo and f)
// and namespace foo.bar holding command bar (alias bar), with the aliases
// published to the shorthand table the way the module loader does.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	tree := New()
	foo := mustChild(t, tree.Root(), "foo")
	fooCmd := mustCommand(t, foo, "foo")
	bar := mustChild(t, foo, "bar")
	barCmd := mustCommand(t, bar, "bar")

	for _, a := range []struct {
		ns     *Namespace
		alias  string
		target string
	}{
		{foo, "foo", "foo"},
		{foo, "f", "foo"},
		{bar, "bar", "bar"},
	} {
		if err := a.ns.AddAlias(a.alias, a.target); err != nil {
			t.Fatalf("AddAlias(%q) error = %v", a.alias, err)
		}
		if err := tree.AddShorthand(a.alias, a.ns.Path().Append(a.target)); err != nil {
			t.Fatalf("AddShorthand(%q) error = %v", a.alias, err)
		}
	}

	return &fixture{tree: tree, foo: foo, bar: bar, fooCmd: fooCmd, barCmd: barCmd}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	tests := []struct {
		name string
		path cmdline.Path
		kind Kind
		want Entry
	}{
		{name: "empty path as namespace is root", path: nil, kind: KindNamespace, want: f.tree.Root()},
		{name: "empty path as any is root", path: cmdline.Path{}, kind: KindAny, want: f.tree.Root()},
		{name: "empty path as command", path: nil, kind: KindCommand, want: nil},
		{name: "qualified command", path: cmdline.Path{"foo", "foo"}, kind: KindCommand, want: f.fooCmd},
		{name: "qualified command as namespace", path: cmdline.Path{"foo", "foo"}, kind: KindNamespace, want: nil},
		{name: "namespace name as command via shorthand", path: cmdline.Path{"foo"}, kind: KindCommand, want: f.fooCmd},
		{name: "namespace name as namespace", path: cmdline.Path{"foo"}, kind: KindNamespace, want: f.foo},
		{name: "namespace name as any prefers literal", path: cmdline.Path{"foo"}, kind: KindAny, want: f.foo},
		{name: "root shorthand", path: cmdline.Path{"f"}, kind: KindCommand, want: f.fooCmd},
		{name: "local alias", path: cmdline.Path{"foo", "f"}, kind: KindCommand, want: f.fooCmd},
		{name: "nested namespace", path: cmdline.Path{"foo", "bar"}, kind: KindNamespace, want: f.bar},
		{name: "nested command", path: cmdline.Path{"foo", "bar", "bar"}, kind: KindCommand, want: f.barCmd},
		{name: "nested shorthand", path: cmdline.Path{"bar"}, kind: KindCommand, want: f.barCmd},
		{name: "unknown as namespace", path: cmdline.Path{"nonexistent"}, kind: KindNamespace, want: nil},
		{name: "unknown prefix", path: cmdline.Path{"nonexistent", "foo"}, kind: KindCommand, want: nil},
		{name: "unknown prefix any", path: cmdline.Path{"nonexistent", "foo"}, kind: KindAny, want: nil},
		{name: "through a command", path: cmdline.Path{"foo", "foo", "x"}, kind: KindAny, want: nil},
		{name: "shorthand only for single names", path: cmdline.Path{"f", "x"}, kind: KindAny, want: nil},
		{name: "root is not addressable", path: cmdline.Path{RootName}, kind: KindAny, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := f.tree.Lookup(tt.path, tt.kind, nil)
			if got != tt.want {
				t.Errorf("Lookup(%v, %v) = %v, want %v", tt.path, tt.kind, got, tt.want)
			}
		})
	}
}

func TestLookup_FromNamespace(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	if got := f.tree.Lookup(cmdline.Path{"bar", "bar"}, KindCommand, f.foo); got != f.barCmd {
		t.Errorf("relative lookup = %v, want %v", got, f.barCmd)
	}
	if got := f.tree.Lookup(nil, KindNamespace, f.bar); got != f.bar {
		t.Errorf("empty path from foo.bar = %v, want foo.bar", got)
	}
	// The shorthand table is absolute, so it resolves from anywhere.
	if got := f.tree.Lookup(cmdline.Path{"f"}, KindCommand, f.bar); got != f.fooCmd {
		t.Errorf("shorthand from foo.bar = %v, want %v", got, f.fooCmd)
	}
	if got := f.tree.Lookup(cmdline.Path{"foo", "foo"}, KindCommand, f.bar); got != nil {
		t.Errorf("relative miss = %v, want nil", got)
	}
}

func TestLookupTyped(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	if got := f.tree.LookupCommand(cmdline.Path{"foo"}, nil); got != f.fooCmd {
		t.Errorf("LookupCommand(foo) = %v", got)
	}
	if got := f.tree.LookupCommand(cmdline.Path{"nonexistent"}, nil); got != nil {
		t.Errorf("LookupCommand(nonexistent) = %v, want nil", got)
	}
	if got := f.tree.LookupNamespace(cmdline.Path{"foo", "bar"}, nil); got != f.bar {
		t.Errorf("LookupNamespace(foo.bar) = %v", got)
	}
	if got := f.tree.LookupNamespace(cmdline.Path{"f"}, nil); got != nil {
		t.Errorf("LookupNamespace(f) = %v, want nil", got)
	}
}
