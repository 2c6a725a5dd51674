// SPDX-License-Identifier: MPL-2.0

package report

import "strings"

// reportHeader prefixes every rendered report.
const reportHeader = "Bad mods found: \n"

// Render produces the report tree: one "- <info>" line per source in sorted
// order, each followed by its "  - <finding>" lines in insertion order.
// Lines are joined with single newlines. Given the same finding set the
// output is byte-identical regardless of the order findings were added.
func (a *Aggregate) Render() string {
	entries := sortedEntries(a.entries)

	var b strings.Builder
	b.WriteString(reportHeader)
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(e.src.Info())
		for _, f := range e.findings {
			b.WriteString("\n  - ")
			b.WriteString(f)
		}
	}
	return b.String()
}
