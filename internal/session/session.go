// SPDX-License-Identifier: MPL-2.0

// Package session provides the in-memory session handle passed, opaquely,
// to every console command.
package session

import (
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
)

type (
	// Marker is implemented by sessions that can store named values for
	// later commands.
	Marker interface {
		Mark(name string, value []string)
		Marked(name string) ([]string, bool)
		MarkNames() []string
	}

	// MemorySession is a session that lives as long as the process.
	MemorySession struct {
		id    uuid.UUID
		marks map[string][]string
	}
)

// New returns an empty session with a fresh random id.
func New() *MemorySession {
	return &MemorySession{
		id:    uuid.New(),
		marks: make(map[string][]string),
	}
}

// ID returns the session id.
func (s *MemorySession) ID() uuid.UUID { return s.id }

// String returns the short form of the id used in prompts and logs.
func (s *MemorySession) String() string {
	id, _, _ := strings.Cut(s.id.String(), "-")
	return id
}

// Mark stores value under name, replacing any previous value. An empty
// value removes the mark.
func (s *MemorySession) Mark(name string, value []string) {
	if len(value) == 0 {
		delete(s.marks, name)
		return
	}
	s.marks[name] = slices.Clone(value)
}

// Marked returns a copy of the value stored under name.
func (s *MemorySession) Marked(name string) ([]string, bool) {
	v, ok := s.marks[name]
	return slices.Clone(v), ok
}

// MarkNames returns the mark names in sorted order.
func (s *MemorySession) MarkNames() []string {
	return slices.Sorted(maps.Keys(s.marks))
}
