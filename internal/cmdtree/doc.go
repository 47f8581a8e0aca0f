// SPDX-License-Identifier: MPL-2.0

// Package cmdtree holds the console's command hierarchy.
//
// A Tree owns every Namespace in an arena; a namespace refers to its parent
// and children by NamespaceID only. Each namespace holds commands, child
// namespaces and aliases, all sharing one name space: a name refers to at
// most one entity. Aliases declared by modules are additionally published to
// the tree's root shorthand table so that a nested command can be called by
// its alias from anywhere.
//
// Tree.Lookup resolves a cmdline.Path against the hierarchy. It never fails;
// a miss is reported as a nil Entry.
package cmdtree
