// SPDX-License-Identifier: MPL-2.0

package cmdtree

import "regexp"

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidateName returns an *InvalidNameError unless name can be registered as
// a namespace, command or alias.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return &InvalidNameError{Value: name}
	}
	return nil
}
