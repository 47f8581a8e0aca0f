// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"vconsole/internal/cmdtree"
	"vconsole/internal/issue"
	"vconsole/internal/module"
	"vconsole/internal/session"
)

// fakeEvaluator records statements and fails with err when set.
type fakeEvaluator struct {
	statements []string
	err        error
}

func (e *fakeEvaluator) Name() string { return "fake" }

func (e *fakeEvaluator) Eval(_ context.Context, statement string) error {
	e.statements = append(e.statements, statement)
	return e.err
}

type harness struct {
	shell  *Shell
	tree   *cmdtree.Tree
	calls  [][]string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func (h *harness) record(_ context.Context, inv *cmdtree.Invocation) error {
	h.calls = append(h.calls, append([]string{inv.Command.Path().String()}, inv.Args...))
	return nil
}

// newHarness builds the basic namespace plus:
//
//	vm          create <name> (alias mk), list (script)
//	vm.snapshot take
func newHarness(t *testing.T, sess any, opts ...Option) *harness {
	t.Helper()

	h := &harness{tree: cmdtree.New(), stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	if err := RegisterBuiltins(h.tree); err != nil {
		t.Fatalf("RegisterBuiltins() error = %v", err)
	}

	builtins := module.WithBuiltins(module.Builtins{"record": h.record})
	vm, err := h.tree.Root().ChildNamespace("vm")
	if err != nil {
		t.Fatal(err)
	}
	if err := module.LoadCode(vm, []byte(`
commands: [{
	name:    "create"
	summary: "Create a VM"
	builtin: "record"
	args: [{name: "name", required: true}]
	aliases: ["mk"]
}, {
	name:    "list"
	summary: "List VMs"
	script:  "echo listed"
}]
`), "vm.cue", builtins); err != nil {
		t.Fatalf("LoadCode(vm) error = %v", err)
	}
	snap, err := vm.ChildNamespace("snapshot")
	if err != nil {
		t.Fatal(err)
	}
	if err := module.LoadCode(snap, []byte(`commands: [{name: "take", builtin: "record"}]`), "snapshot.cue", builtins); err != nil {
		t.Fatalf("LoadCode(snapshot) error = %v", err)
	}

	opts = append([]Option{WithOutput(h.stdout, h.stderr), WithMarkdownStyle("notty")}, opts...)
	h.shell = New(h.tree, sess, opts...)
	return h
}

func (h *harness) eval(t *testing.T, lines ...string) {
	t.Helper()

	for _, line := range lines {
		if err := h.shell.EvalInput(context.Background(), line); err != nil {
			t.Fatalf("EvalInput(%q) error = %v", line, err)
		}
	}
}

func TestEvalInput_ModeToggle(t *testing.T) {
	t.Parallel()

	ev := &fakeEvaluator{}
	h := newHarness(t, nil, WithEvaluator(ev))

	if h.shell.Mode() != ModeCommand {
		t.Fatalf("initial mode = %v", h.shell.Mode())
	}

	h.eval(t, "/x = 1")
	if h.shell.Mode() != ModeCommand {
		t.Errorf("mode after /line = %v, want command", h.shell.Mode())
	}

	h.eval(t, "//")
	if h.shell.Mode() != ModeScripting {
		t.Fatalf("mode after // = %v, want scripting", h.shell.Mode())
	}

	h.eval(t, "y = 2", "/vm.create web1", "  ")
	if h.shell.Mode() != ModeScripting {
		t.Errorf("mode after /line = %v, want scripting", h.shell.Mode())
	}

	h.eval(t, " // ")
	if h.shell.Mode() != ModeCommand {
		t.Errorf("mode after second // = %v, want command", h.shell.Mode())
	}

	if diff := cmp.Diff([]string{"x = 1", "y = 2"}, ev.statements); diff != "" {
		t.Errorf("evaluated statements mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"vm.create", "web1"}}, h.calls); diff != "" {
		t.Errorf("command calls mismatch (-want +got):\n%s", diff)
	}
}

func TestEvalInput_ReportsErrors(t *testing.T) {
	t.Parallel()

	ev := &fakeEvaluator{err: errors.New("bad statement")}
	h := newHarness(t, nil, WithEvaluator(ev))

	h.eval(t, "vm.craete web1", "vm.create", "/oops")

	stderr := h.stderr.String()
	for _, want := range []string{
		`unknown command: vm.craete (did you mean "vm.create"?)`,
		"missing required argument <name>",
		"bad statement",
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
	if got := strings.Count(stderr, "error:"); got != 3 {
		t.Errorf("stderr has %d error lines, want 3:\n%s", got, stderr)
	}
}

func TestEvalInput_Exit(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"quit", "exit", "q", "basic.quit", "/quit"} {
		h := newHarness(t, nil, WithEvaluator(&fakeEvaluator{}))
		if line == "/quit" {
			h.eval(t, "//")
		}
		if err := h.shell.EvalInput(context.Background(), line); !errors.Is(err, ErrExit) {
			t.Errorf("EvalInput(%q) error = %v, want ErrExit", line, err)
		}
	}
}

func TestEvalInput_ContextCanceled(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil, WithEvaluator(&fakeEvaluator{err: context.Canceled}))
	h.eval(t, "//")
	if err := h.shell.EvalInput(context.Background(), "sleep"); !errors.Is(err, context.Canceled) {
		t.Errorf("EvalInput() error = %v, want context.Canceled", err)
	}
}

func TestEvalInput_NoEvaluator(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	h.eval(t, "/x = 1")
	if !strings.Contains(h.stderr.String(), "scripting mode is not available") {
		t.Errorf("stderr = %q", h.stderr.String())
	}
}

func TestEvalCommand_UserErrors(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	for _, line := range []string{"", "   ", ".", "?", "..", "nonexistent", "nonexistent.foo", "vm"} {
		err := h.shell.EvalCommand(context.Background(), line)
		if !issue.IsUserError(err) {
			t.Errorf("EvalCommand(%q) error = %v, want *issue.UserError", line, err)
		}
	}
	if len(h.calls) != 0 {
		t.Errorf("commands ran: %v", h.calls)
	}
}

func TestEvalCommand_PropagatesErrors(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	err := h.shell.EvalCommand(context.Background(), "quit")
	if !errors.Is(err, ErrExit) {
		t.Errorf("EvalCommand(quit) error = %v, want ErrExit", err)
	}
}

func TestEvalCommand_Cursor(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	ctx := context.Background()

	if err := h.shell.EvalCommand(ctx, "create web1"); !issue.IsUserError(err) {
		t.Fatalf("create from root error = %v, want unknown command", err)
	}

	h.eval(t, "use vm", "create web1", "mk web2", "snapshot.take s1")
	if got := h.shell.Cursor().String(); got != "vm" {
		t.Errorf("Cursor() = %q, want vm", got)
	}

	// Absolute paths still resolve from a nested cursor.
	h.eval(t, "use snapshot", "vm.create web3", "take s2", "use")
	if !h.shell.Cursor().IsRoot() {
		t.Errorf("Cursor() = %v, want root", h.shell.Cursor())
	}

	want := [][]string{
		{"vm.create", "web1"},
		{"vm.create", "web2"},
		{"vm.snapshot.take", "s1"},
		{"vm.create", "web3"},
		{"vm.snapshot.take", "s2"},
	}
	if diff := cmp.Diff(want, h.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}

	h.eval(t, "use nowhere")
	if !strings.Contains(h.stderr.String(), "use: unknown namespace: nowhere") {
		t.Errorf("stderr = %q", h.stderr.String())
	}
}

func TestShell_Lookup(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	vm := h.tree.Root().Child("vm")
	create := vm.Command("create")

	if got := h.shell.Lookup([]string{"mk"}, cmdtree.KindCommand); got != create {
		t.Errorf("Lookup(mk) = %v", got)
	}
	h.shell.SetCursor(vm)
	if got := h.shell.Lookup([]string{"create"}, cmdtree.KindCommand); got != create {
		t.Errorf("Lookup(create) from vm = %v", got)
	}
	if got := h.shell.Lookup([]string{"basic"}, cmdtree.KindNamespace); got == nil {
		t.Error("Lookup(basic) from vm fell back to nothing")
	}
}

func TestShell_Dispatch(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	var out bytes.Buffer

	handled, err := h.shell.Dispatch(context.Background(), []string{"vm.list"}, &out, &out)
	if !handled || err != nil {
		t.Fatalf("Dispatch(vm.list) = %v, %v", handled, err)
	}
	if out.String() != "listed\n" {
		t.Errorf("output = %q", out.String())
	}

	for _, args := range [][]string{nil, {"ls", "-l"}, {"."}, {"./run.sh"}} {
		if handled, err := h.shell.Dispatch(context.Background(), args, &out, &out); handled || err != nil {
			t.Errorf("Dispatch(%q) = %v, %v, want unhandled", args, handled, err)
		}
	}
}

func TestBuiltins_Help(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	h.eval(t, "help")
	out := h.stdout.String()
	for _, want := range []string{"vm.create", "Create a VM", "vm.snapshot.take", "basic.quit", "Shorthands"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}

	h.stdout.Reset()
	h.eval(t, "help vm.snapshot")
	if out := h.stdout.String(); !strings.Contains(out, "vm.snapshot.take") || strings.Contains(out, "vm.create") {
		t.Errorf("help vm.snapshot output:\n%s", out)
	}

	h.stdout.Reset()
	h.eval(t, "help mk")
	if out := h.stdout.String(); !strings.Contains(out, "vm.create [flags] <name>") {
		t.Errorf("help mk output:\n%s", out)
	}

	h.eval(t, "help nothing")
	if !strings.Contains(h.stderr.String(), "help: unknown command or namespace: nothing") {
		t.Errorf("stderr = %q", h.stderr.String())
	}
}

func TestBuiltins_Marks(t *testing.T) {
	t.Parallel()

	h := newHarness(t, session.New())
	h.eval(t, "mark hosts web1 \"web 2\"", "mark dc lab", "mark dc", "marks")

	if got := h.stdout.String(); got != "hosts\tweb1 \"web 2\"\n" {
		t.Errorf("marks output = %q", got)
	}

	plain := newHarness(t, "opaque")
	plain.eval(t, "mark x 1")
	if !strings.Contains(plain.stderr.String(), "cannot store marks") {
		t.Errorf("stderr = %q", plain.stderr.String())
	}
}

func TestBuiltins_NeedShell(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	use := h.tree.Root().Child(BuiltinNamespace).Command("use")
	err := use.Invoke(context.Background(), cmdtree.Env{}, []string{"vm"})
	if !errors.Is(err, errNoShell) {
		t.Errorf("Invoke(use) without shell error = %v", err)
	}
}

func TestRegisterBuiltins_Twice(t *testing.T) {
	t.Parallel()

	tree := cmdtree.New()
	if err := RegisterBuiltins(tree); err != nil {
		t.Fatal(err)
	}
	var loadErr *module.LoadError
	if err := RegisterBuiltins(tree); !errors.As(err, &loadErr) {
		t.Errorf("second RegisterBuiltins() error = %v, want *module.LoadError", err)
	}
}
