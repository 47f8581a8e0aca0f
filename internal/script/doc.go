// SPDX-License-Identifier: MPL-2.0

// Package script provides the evaluators behind the console's scripting
// mode.
//
// Two languages are available. "sh" is a persistent POSIX shell session
// (mvdan.cc/sh): variables, functions and the working directory survive
// from one statement to the next, and console commands can be called like
// programs. "go" is a Go interpreter session (yaegi) with the standard
// library and a small "console" package for calling commands.
package script
