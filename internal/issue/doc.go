// SPDX-License-Identifier: MPL-2.0

// Package issue holds the console's user-facing error types.
//
// UserError marks input the user can correct (an unknown command, a bad
// flag, an empty line). ActionableError wraps lower-level failures with the
// operation that failed and suggestions for fixing it, and the issue catalog
// provides longer Markdown guidance rendered with glamour.
package issue
