// SPDX-License-Identifier: MPL-2.0

// Package shell is the console engine: it reads lines, resolves them
// against the namespace tree and runs the commands they name.
//
// The shell has two modes. In command mode a line is a dotted command
// path followed by arguments. In scripting mode a line is handed to the
// configured script.Evaluator. The line "//" switches modes, and a line
// starting with a single "/" is evaluated once in the other mode.
package shell
