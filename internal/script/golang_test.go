// SPDX-License-Identifier: MPL-2.0

package script

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func newGo(t *testing.T) (*GoEvaluator, *bytes.Buffer) {
	t.Helper()

	var stdout bytes.Buffer
	ev, err := NewGoEvaluator(
		WithIO(strings.NewReader(""), &stdout, &bytes.Buffer{}),
		WithFatalErrors(errFatal),
	)
	if err != nil {
		t.Fatalf("NewGoEvaluator() error = %v", err)
	}
	return ev, &stdout
}

func evalAll(t *testing.T, ev *GoEvaluator, stmts ...string) {
	t.Helper()

	for _, stmt := range stmts {
		if err := ev.Eval(context.Background(), stmt); err != nil {
			t.Fatalf("Eval(%q) error = %v", stmt, err)
		}
	}
}

func TestGoEvaluator_Echo(t *testing.T) {
	t.Parallel()

	ev, stdout := newGo(t)
	evalAll(t, ev, "x := 21", "x * 2", `import "strings"`, `strings.Repeat("a", 3)`)

	if got := stdout.String(); got != "=> 42\n" {
		t.Errorf("stdout = %q, want only the non-call expression echoed", got)
	}
}

func TestGoEvaluator_CompileError(t *testing.T) {
	t.Parallel()

	ev, _ := newGo(t)
	err := ev.Eval(context.Background(), "undefinedThing + 1")
	if err == nil || !strings.HasPrefix(err.Error(), "go: ") {
		t.Fatalf("Eval() error = %v, want go error", err)
	}
}

func TestGoEvaluator_Console(t *testing.T) {
	t.Parallel()

	ev, stdout := newGo(t)
	d := &fakeDispatcher{}
	ev.SetDispatcher(d)

	evalAll(t, ev, `import "console"`, `err := console.Run("greet", "bob")`, "err == nil")
	if got := stdout.String(); got != "hi bob\n=> true\n" {
		t.Errorf("stdout = %q", got)
	}

	stdout.Reset()
	evalAll(t, ev, `err = console.Run("fail")`, "msg := err.Error()", "msg")
	if got := stdout.String(); got != "=> it failed\n" {
		t.Errorf("stdout = %q", got)
	}

	stdout.Reset()
	evalAll(t, ev, `err = console.Run("nope")`, "msg = err.Error()", "msg")
	if got := stdout.String(); got != "=> console.Run: unknown command \"nope\"\n" {
		t.Errorf("stdout = %q", got)
	}

	if err := ev.Eval(context.Background(), `console.Run("boom")`); !errors.Is(err, errFatal) {
		t.Errorf("Eval(boom) error = %v, want errFatal", err)
	}
	if err := ev.Eval(context.Background(), "console.Quit()"); !errors.Is(err, ErrExited) {
		t.Errorf("Eval(Quit) error = %v, want ErrExited", err)
	}
	evalAll(t, ev, "1 + 1")
}

func TestEchoes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stmt string
		want bool
	}{
		{"x", true},
		{"x * 2", true},
		{`"text"`, true},
		{"f()", false},
		{"(f())", false},
		{"x := 1", false},
		{`import "fmt"`, false},
		{"for {}", false},
	}
	for _, tt := range tests {
		if got := echoes(tt.stmt); got != tt.want {
			t.Errorf("echoes(%q) = %v, want %v", tt.stmt, got, tt.want)
		}
	}
}
