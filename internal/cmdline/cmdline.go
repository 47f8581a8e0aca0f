// SPDX-License-Identifier: MPL-2.0

package cmdline

import (
	"strings"
	"unicode"

	"github.com/anmitsu/go-shlex"
)

const (
	// PathSeparator separates the segments of a command path.
	PathSeparator = "."

	quoteChar  = '"'
	escapeChar = '\\'
)

// Path is a command path, one element per namespace level, the last one
// naming a namespace or a command. The zero value is the empty path.
type Path []string

// String renders the path in its dotted form.
func (p Path) String() string {
	return strings.Join(p, PathSeparator)
}

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool {
	return len(p) == 0
}

// Last returns the final segment, or "" for the empty path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Append returns a new path with segs added; p is not modified.
func (p Path) Append(segs ...string) Path {
	out := make(Path, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}

// ParsePath splits a dotted path. Empty segments are dropped, so "." and
// ".." both yield the empty path and "vm..info" yields [vm info].
func ParsePath(s string) Path {
	var p Path
	for seg := range strings.SplitSeq(s, PathSeparator) {
		if seg != "" {
			p = append(p, seg)
		}
	}
	return p
}

// consoleTokenizer is a POSIX-like shlex tokenizer in which double quotes are
// the only quoting characters. Single quotes are ordinary word characters so
// that arguments like don't survive unchanged.
type consoleTokenizer struct{}

func (consoleTokenizer) IsWord(r rune) bool {
	return !unicode.IsSpace(r) && r != quoteChar && r != escapeChar
}

func (consoleTokenizer) IsWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}

func (consoleTokenizer) IsQuote(r rune) bool {
	return r == quoteChar
}

func (consoleTokenizer) IsEscape(r rune) bool {
	return r == escapeChar
}

func (consoleTokenizer) IsEscapedQuote(r rune) bool {
	return r == quoteChar
}

// Split breaks line into words. Unterminated quotes and a dangling trailing
// backslash are recovered silently: the quote is closed at the end of the
// line and the backslash is dropped. Words that are empty after unquoting
// ("") are omitted.
func Split(line string) []string {
	lexer := shlex.NewLexerString(line, true, true)
	lexer.SetTokenizer(consoleTokenizer{})

	// Split returns the words read so far along with ErrNoClosing or
	// ErrNoEscaped; both are recoverable at this layer.
	words, _ := lexer.Split()
	if len(words) == 0 {
		return nil
	}
	return words
}

// ParseInput tokenizes line into a command path and its arguments. The first
// word is split on "." into the path; all remaining words are returned as
// arguments without any flag interpretation. A blank line yields an empty path
// and nil arguments.
func ParseInput(line string) (Path, []string) {
	words := Split(line)
	if len(words) == 0 {
		return nil, nil
	}

	var args []string
	if len(words) > 1 {
		args = words[1:]
	}
	return ParsePath(words[0]), args
}

// Quote returns word in a form that Split reads back as exactly word.
// Words without whitespace, quotes or backslashes are returned unchanged.
func Quote(word string) string {
	if word != "" && !strings.ContainsFunc(word, needsQuoting) {
		return word
	}

	var b strings.Builder
	b.Grow(len(word) + 2)
	b.WriteRune(quoteChar)
	for _, r := range word {
		if r == quoteChar || r == escapeChar {
			b.WriteRune(escapeChar)
		}
		b.WriteRune(r)
	}
	b.WriteRune(quoteChar)
	return b.String()
}

// Join quotes each word and joins them with single spaces.
func Join(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = Quote(w)
	}
	return strings.Join(quoted, " ")
}

// Format renders a path and arguments as an input line that ParseInput
// parses back into the same path and arguments.
func Format(path Path, args []string) string {
	if len(args) == 0 {
		return path.String()
	}
	return path.String() + " " + Join(args)
}

func needsQuoting(r rune) bool {
	return unicode.IsSpace(r) || r == quoteChar || r == escapeChar
}
