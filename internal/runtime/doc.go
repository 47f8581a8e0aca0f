// SPDX-License-Identifier: MPL-2.0

// Package runtime executes the script bodies of module commands.
//
// Scripts run in VirtualRuntime, an embedded POSIX shell interpreter
// (mvdan.cc/sh) that needs no host shell. Positional arguments are
// available as $1..$n, parsed options as VCONSOLE_FLAG_<NAME> variables and
// the argument list as ARGC/ARG1..ARGn.
//
// A script may call other console commands by name. The interpreter's exec
// handler chain first offers every simple command to a Dispatcher (the
// shell), and only falls back to host programs when the dispatcher does not
// know the name.
package runtime
