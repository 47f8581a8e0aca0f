// SPDX-License-Identifier: MPL-2.0

package main

import "vconsole/cmd/vconsole"

func main() {
	cmd.Execute()
}
