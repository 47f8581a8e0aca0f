// SPDX-License-Identifier: MPL-2.0

// Package cmdline splits console input lines into a command path and its
// arguments.
//
// The first word of a line is the dotted command path (vm.power.on); the
// remaining words are passed to the command verbatim. Words are separated by
// whitespace and may be grouped with double quotes:
//
//	vm.create --name "my vm" -c 2
//
// yields the path [vm create] and the arguments [--name, my vm, -c, 2].
// Malformed quoting never fails: an unterminated quote is closed at the end
// of the line.
package cmdline
