// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from config.cue in the vconsole configuration directory
// ($XDG_CONFIG_HOME/vconsole on Linux, ~/Library/Application Support/vconsole on macOS,
// %APPDATA%\vconsole on Windows, or $VCONSOLE_CONFIG_DIR when set), validated against the
// embedded #Config schema (config_schema.cue) and merged over the defaults. Every key can
// be overridden from the environment with the VCONSOLE_ prefix, e.g.
// VCONSOLE_SCRIPTING_LANGUAGE=go.
package config
