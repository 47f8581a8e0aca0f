// SPDX-License-Identifier: MPL-2.0

package cmdtree

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"vconsole/internal/cmdline"
)

func noop(context.Context, *Invocation) error { return nil }

func mustChild(t *testing.T, ns *Namespace, name string) *Namespace {
	t.Helper()

	child, err := ns.ChildNamespace(name)
	if err != nil {
		t.Fatalf("ChildNamespace(%q) error = %v", name, err)
	}
	return child
}

func mustCommand(t *testing.T, ns *Namespace, name string) *Command {
	t.Helper()

	c, err := ns.AddCommand(CommandSpec{Name: name, Summary: name + " it", Body: noop})
	if err != nil {
		t.Fatalf("AddCommand(%q) error = %v", name, err)
	}
	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	tree := New()
	root := tree.Root()

	if root.ID() != RootID || root.Name() != RootName || !root.IsRoot() {
		t.Errorf("unexpected root: id=%d name=%q", root.ID(), root.Name())
	}
	if root.Parent() != nil {
		t.Error("root should have no parent")
	}
	if !root.Path().IsEmpty() {
		t.Errorf("root path = %v, want empty", root.Path())
	}
	if tree.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tree.Len())
	}
	if tree.Namespace(RootID) != root || tree.Namespace(42) != nil || tree.Namespace(-1) != nil {
		t.Error("Namespace(id) mismatch")
	}
}

func TestChildNamespace(t *testing.T) {
	t.Parallel()

	tree := New()
	foo := mustChild(t, tree.Root(), "foo")
	bar := mustChild(t, foo, "bar")

	again := mustChild(t, tree.Root(), "foo")
	if again != foo {
		t.Error("ChildNamespace should return the existing namespace")
	}
	if tree.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tree.Len())
	}

	if bar.Parent() != foo || foo.Parent() != tree.Root() {
		t.Error("parent links mismatch")
	}
	if diff := cmp.Diff(cmdline.Path{"foo", "bar"}, bar.Path()); diff != "" {
		t.Errorf("Path() mismatch (-want +got):\n%s", diff)
	}
	if bar.String() != "foo.bar" || tree.Root().String() != RootName {
		t.Errorf("String() = %q / %q", bar.String(), tree.Root().String())
	}
	if foo.Child("bar") != bar || foo.Child("nope") != nil {
		t.Error("Child() mismatch")
	}
}

func TestChildNamespace_Errors(t *testing.T) {
	t.Parallel()

	tree := New()
	root := tree.Root()
	mustCommand(t, root, "taken")
	mustChild(t, root, "target")
	if err := root.AddAlias("al", "target"); err != nil {
		t.Fatalf("AddAlias() error = %v", err)
	}

	tests := []struct {
		name    string
		child   string
		wantErr error
	}{
		{name: "empty", child: "", wantErr: ErrInvalidName},
		{name: "dotted", child: "a.b", wantErr: ErrInvalidName},
		{name: "space", child: "a b", wantErr: ErrInvalidName},
		{name: "question mark", child: "?", wantErr: ErrInvalidName},
		{name: "command name", child: "taken", wantErr: ErrNameConflict},
		{name: "alias name", child: "al", wantErr: ErrNameConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := root.ChildNamespace(tt.child)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ChildNamespace(%q) error = %v, want %v", tt.child, err, tt.wantErr)
			}
		})
	}
}

func TestAddCommand_Errors(t *testing.T) {
	t.Parallel()

	tree := New()
	root := tree.Root()
	mustCommand(t, root, "dup")
	mustChild(t, root, "ns")

	tests := []struct {
		name    string
		spec    CommandSpec
		wantErr error
	}{
		{name: "duplicate", spec: CommandSpec{Name: "dup", Body: noop}, wantErr: ErrDuplicateCommand},
		{name: "namespace clash", spec: CommandSpec{Name: "ns", Body: noop}, wantErr: ErrNameConflict},
		{name: "missing body", spec: CommandSpec{Name: "nobody"}, wantErr: ErrMissingBody},
		{name: "invalid name", spec: CommandSpec{Name: "-x", Body: noop}, wantErr: ErrInvalidName},
		{
			name: "reserved help option",
			spec: CommandSpec{Name: "c1", Body: noop, Options: []OptionSpec{{Name: "help"}}},
			wantErr: ErrInvalidCommandSpec,
		},
		{
			name: "bad default",
			spec: CommandSpec{Name: "c2", Body: noop, Options: []OptionSpec{{Name: "n", Type: OptionInt, Default: "x"}}},
			wantErr: ErrInvalidCommandSpec,
		},
		{
			name: "unknown option type",
			spec: CommandSpec{Name: "c3", Body: noop, Options: []OptionSpec{{Name: "n", Type: "float"}}},
			wantErr: ErrInvalidCommandSpec,
		},
		{
			name: "long shorthand",
			spec: CommandSpec{Name: "c4", Body: noop, Options: []OptionSpec{{Name: "name", Short: "nm"}}},
			wantErr: ErrInvalidCommandSpec,
		},
		{
			name: "required after optional",
			spec: CommandSpec{Name: "c5", Body: noop, Args: []ArgSpec{{Name: "a"}, {Name: "b", Required: true}}},
			wantErr: ErrInvalidCommandSpec,
		},
		{
			name: "variadic not last",
			spec: CommandSpec{Name: "c6", Body: noop, Args: []ArgSpec{{Name: "a", Variadic: true}, {Name: "b"}}},
			wantErr: ErrInvalidCommandSpec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := root.AddCommand(tt.spec)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddCommand() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if root.Command("nobody") != nil || root.Command("c1") != nil {
		t.Error("failed registrations must not leave commands behind")
	}
}

func TestAddAlias(t *testing.T) {
	t.Parallel()

	tree := New()
	foo := mustChild(t, tree.Root(), "foo")
	cmd := mustCommand(t, foo, "foo")
	mustCommand(t, foo, "other")
	mustChild(t, foo, "sub")

	if err := foo.AddAlias("foo", "foo"); err != nil {
		t.Errorf("self alias error = %v", err)
	}
	if err := foo.AddAlias("f", "foo"); err != nil {
		t.Errorf("AddAlias(f) error = %v", err)
	}
	if err := foo.AddAlias("f", "foo"); err != nil {
		t.Errorf("repeated AddAlias(f) should be a no-op, got %v", err)
	}
	if err := foo.AddAlias("s", "sub"); err != nil {
		t.Errorf("namespace alias error = %v", err)
	}

	if diff := cmp.Diff(map[string]string{"f": "foo", "s": "sub"}, foo.Aliases()); diff != "" {
		t.Errorf("Aliases() mismatch (-want +got):\n%s", diff)
	}
	if got := tree.Lookup(cmdline.Path{"foo", "f"}, KindAny, nil); got != cmd {
		t.Errorf("alias lookup = %v, want %v", got, cmd)
	}
	if diff := cmp.Diff([]string{"f", "foo", "other", "s", "sub"}, foo.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestAddAlias_Conflicts(t *testing.T) {
	t.Parallel()

	tree := New()
	ns := mustChild(t, tree.Root(), "vm")
	mustCommand(t, ns, "info")
	mustCommand(t, ns, "power")
	mustChild(t, ns, "disk")
	if err := ns.AddAlias("i", "info"); err != nil {
		t.Fatalf("AddAlias() error = %v", err)
	}

	tests := []struct {
		name    string
		alias   string
		target  string
		wantErr error
	}{
		{name: "alias taken by other target", alias: "i", target: "power", wantErr: ErrAliasConflict},
		{name: "alias shadows command", alias: "power", target: "info", wantErr: ErrAliasConflict},
		{name: "alias shadows namespace", alias: "disk", target: "info", wantErr: ErrAliasConflict},
		{name: "unknown target", alias: "x", target: "missing", wantErr: ErrUnknownAliasTarget},
		{name: "invalid alias", alias: "a.b", target: "info", wantErr: ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ns.AddAlias(tt.alias, tt.target)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddAlias(%q, %q) error = %v, want %v", tt.alias, tt.target, err, tt.wantErr)
			}
		})
	}

	if got := ns.Aliases()["i"]; got != "info" {
		t.Errorf("conflicting registration changed alias i to %q", got)
	}
}

func TestAddShorthand(t *testing.T) {
	t.Parallel()

	tree := New()

	if err := tree.AddShorthand("f", cmdline.Path{"foo", "foo"}); err != nil {
		t.Fatalf("AddShorthand() error = %v", err)
	}
	if err := tree.AddShorthand("f", cmdline.Path{"foo", "foo"}); err != nil {
		t.Errorf("identical AddShorthand() should be a no-op, got %v", err)
	}

	err := tree.AddShorthand("f", cmdline.Path{"bar", "bar"})
	var conflict *AliasConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("AddShorthand() error = %v, want *AliasConflictError", err)
	}
	if conflict.Scope != shorthandScope || conflict.Existing != "foo.foo" || conflict.Target != "bar.bar" {
		t.Errorf("unexpected conflict: %+v", conflict)
	}

	if err := tree.AddShorthand("g", nil); !errors.Is(err, ErrUnknownAliasTarget) {
		t.Errorf("empty target error = %v", err)
	}

	p, ok := tree.Shorthand("f")
	if !ok || p.String() != "foo.foo" {
		t.Errorf("Shorthand(f) = %v, %v", p, ok)
	}
	p[0] = "mutated"
	if again, _ := tree.Shorthand("f"); again.String() != "foo.foo" {
		t.Error("Shorthand() must return a copy")
	}
	if len(tree.Shorthands()) != 1 {
		t.Errorf("Shorthands() = %v", tree.Shorthands())
	}
}

func TestWalk(t *testing.T) {
	t.Parallel()

	tree := New()
	root := tree.Root()
	b := mustChild(t, root, "b")
	mustChild(t, root, "a")
	mustChild(t, b, "z")
	mustChild(t, b, "c")

	var visited []string
	err := tree.Walk(func(ns *Namespace) error {
		visited = append(visited, ns.String())
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if diff := cmp.Diff([]string{"root", "a", "b", "b.c", "b.z"}, visited); diff != "" {
		t.Errorf("Walk order mismatch (-want +got):\n%s", diff)
	}

	stop := errors.New("stop")
	count := 0
	err = tree.Walk(func(*Namespace) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || count != 2 {
		t.Errorf("Walk() should stop at the first error: err=%v count=%d", err, count)
	}
}
