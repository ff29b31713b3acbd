// SPDX-License-Identifier: MPL-2.0

package main

import cmd "jlm-cli/cmd/jlm"

func main() {
	cmd.Execute()
}
