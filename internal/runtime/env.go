// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"maps"
	"os"
	"strconv"
	"strings"
)

const (
	flagEnvPrefix = "VCONSOLE_FLAG_"
	argEnvPrefix  = "VCONSOLE_ARG_"
)

// FlagEnvName returns the variable an option is exported as:
// "dry-run" becomes VCONSOLE_FLAG_DRY_RUN.
func FlagEnvName(flag string) string {
	return flagEnvPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// buildEnv layers, from lowest to highest precedence:
//  1. the host environment without inherited invocation variables
//  2. ExtraEnv
//  3. VCONSOLE_FLAG_<NAME> for every option
//  4. ARGC, ARGn and VCONSOLE_ARG_n for the positional arguments
func buildEnv(ctx *ExecutionContext) map[string]string {
	env := make(map[string]string)
	for _, entry := range FilterConsoleEnvVars(os.Environ()) {
		if name, value, ok := strings.Cut(entry, "="); ok && name != "" {
			env[name] = value
		}
	}

	maps.Copy(env, ctx.ExtraEnv)

	for name, value := range ctx.Flags {
		env[FlagEnvName(name)] = value
	}

	env["ARGC"] = strconv.Itoa(len(ctx.Args))
	for i, arg := range ctx.Args {
		env[fmt.Sprintf("ARG%d", i+1)] = arg
		env[fmt.Sprintf("%s%d", argEnvPrefix, i+1)] = arg
	}
	return env
}

// validateWorkDir returns a readable error when dir is not a usable
// directory. The empty string means the process working directory.
func validateWorkDir(dir string) error {
	if dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
		if os.IsPermission(err) {
			return fmt.Errorf("permission denied: %s", dir)
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}
	return nil
}
