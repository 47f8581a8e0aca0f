// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Run reads lines from in and evaluates them until EOF, an exit request or
// cancellation of ctx. An exit request is not an error.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.prompt {
			fmt.Fprint(s.stdout, s.Prompt())
		}
		if !scanner.Scan() {
			break
		}

		err := s.EvalInput(ctx, scanner.Text())
		if errors.Is(err, ErrExit) {
			s.logger.Debug("exit requested")
			return nil
		}
		if err != nil {
			return err
		}
	}

	if s.prompt {
		fmt.Fprintln(s.stdout)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// Prompt returns the prompt for the current cursor and mode, e.g.
// "vconsole vm.snapshot> " or "vconsole (sh)> ".
func (s *Shell) Prompt() string {
	var b strings.Builder
	b.WriteString(promptNameStyle.Render(s.name))
	if !s.cursor.IsRoot() {
		b.WriteString(" ")
		b.WriteString(promptPathStyle.Render(s.cursor.String()))
	}
	if s.mode == ModeScripting {
		lang := "script"
		if s.evaluator != nil {
			lang = s.evaluator.Name()
		}
		b.WriteString(" ")
		b.WriteString(promptModeStyle.Render("(" + lang + ")"))
	}
	b.WriteString("> ")
	return b.String()
}
