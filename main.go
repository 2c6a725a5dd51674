// SPDX-License-Identifier: MPL-2.0

// modsleuth inspects installed mods for known packaging defects and
// reports every finding in a single grouped report.
package main

import cmd "github.com/modsleuth/modsleuth/cmd/modsleuth"

func main() {
	cmd.Execute()
}
