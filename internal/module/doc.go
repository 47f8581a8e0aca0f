// SPDX-License-Identifier: MPL-2.0

// Package module loads declarative command modules into a namespace tree.
//
// A module source lists commands (with their option and argument schema,
// a script or builtin body, and aliases) and namespace-level aliases. CUE
// is the primary format; TOML and YAML sources are accepted too and are
// validated against the same #Module schema. A module is applied to its
// namespace all-or-nothing: every declaration is checked against the
// current tree before anything is registered.
//
// LoadDir maps a directory onto the tree: each module file becomes a child
// namespace named after the file, and each subdirectory a child namespace
// holding the modules below it.
package module
