// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"vconsole/internal/cmdline"
	"vconsole/internal/cmdtree"
	"vconsole/internal/script"
)

const (
	ModeCommand Mode = iota
	ModeScripting
)

const defaultName = "vconsole"

// ErrExit is returned by EvalInput and by the quit command when the user
// asked to leave the console.
var ErrExit = errors.New("exit requested")

type (
	// Mode selects how EvalInput reads a line.
	Mode int

	// Shell is one console session over a namespace tree. It is not safe
	// for concurrent use.
	Shell struct {
		tree      *cmdtree.Tree
		cursor    *cmdtree.Namespace
		mode      Mode
		session   any
		evaluator script.Evaluator

		stdout io.Writer
		stderr io.Writer
		logger *log.Logger
		prompt bool
		name   string
		style  string
	}

	// Option configures a Shell.
	Option func(*Shell)
)

// String returns "command" or "scripting".
func (m Mode) String() string {
	if m == ModeScripting {
		return "scripting"
	}
	return "command"
}

func (m Mode) inverse() Mode {
	if m == ModeScripting {
		return ModeCommand
	}
	return ModeScripting
}

// WithEvaluator sets the scripting-mode evaluator. If it can call console
// commands, the shell installs itself as its dispatcher.
func WithEvaluator(ev script.Evaluator) Option {
	return func(s *Shell) { s.evaluator = ev }
}

// WithOutput sets the streams commands and diagnostics are written to.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *Shell) {
		if stdout != nil {
			s.stdout = stdout
		}
		if stderr != nil {
			s.stderr = stderr
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPrompt enables the prompt printed by Run before each line.
func WithPrompt(prompt bool) Option {
	return func(s *Shell) { s.prompt = prompt }
}

// WithName sets the name shown in the prompt.
func WithName(name string) Option {
	return func(s *Shell) {
		if name != "" {
			s.name = name
		}
	}
}

// WithMarkdownStyle sets the glamour style used by help ("auto", "dark",
// "light", "notty", ...).
func WithMarkdownStyle(style string) Option {
	return func(s *Shell) {
		if style != "" {
			s.style = style
		}
	}
}

// New returns a shell over tree in command mode with the cursor at the
// root. session is passed unchanged to every command.
func New(tree *cmdtree.Tree, session any, opts ...Option) *Shell {
	s := &Shell{
		tree:    tree,
		cursor:  tree.Root(),
		mode:    ModeCommand,
		session: session,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		logger:  log.New(io.Discard),
		name:    defaultName,
		style:   "auto",
	}
	for _, opt := range opts {
		opt(s)
	}
	if ds, ok := s.evaluator.(script.DispatcherSetter); ok {
		ds.SetDispatcher(s)
	}
	return s
}

// Tree returns the namespace tree.
func (s *Shell) Tree() *cmdtree.Tree { return s.tree }

// Session returns the session handle given to New.
func (s *Shell) Session() any { return s.session }

// Mode returns the current mode.
func (s *Shell) Mode() Mode { return s.mode }

// Cursor returns the namespace relative command paths are resolved from.
func (s *Shell) Cursor() *cmdtree.Namespace { return s.cursor }

// SetCursor moves the cursor. A nil namespace means the root.
func (s *Shell) SetCursor(ns *cmdtree.Namespace) {
	if ns == nil {
		ns = s.tree.Root()
	}
	s.cursor = ns
	s.logger.Debug("cursor moved", "namespace", ns.String())
}

// Lookup resolves path from the cursor, falling back to the root when the
// cursor is elsewhere.
func (s *Shell) Lookup(path cmdline.Path, want cmdtree.Kind) cmdtree.Entry {
	if e := s.tree.Lookup(path, want, s.cursor); e != nil {
		return e
	}
	if s.cursor.IsRoot() {
		return nil
	}
	return s.tree.Lookup(path, want, nil)
}

func (s *Shell) lookupCommand(path cmdline.Path) *cmdtree.Command {
	c, _ := s.Lookup(path, cmdtree.KindCommand).(*cmdtree.Command)
	return c
}

func (s *Shell) env(stdout, stderr io.Writer) cmdtree.Env {
	return cmdtree.Env{
		Stdout:     stdout,
		Stderr:     stderr,
		Session:    s.session,
		Dispatcher: s,
	}
}
