// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the vconsole command-line interface: the interactive
// shell, one-shot evaluation, the module listing and configuration
// management, all built on cobra and executed through fang.
package cmd
