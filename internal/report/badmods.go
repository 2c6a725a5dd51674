// SPDX-License-Identifier: MPL-2.0

package report

// BadModsError is the terminal failure raised when at least one defect was
// recorded for a run. Its message is the full rendered report.
type BadModsError struct {
	Aggregate *Aggregate
}

// Error returns the rendered report.
func (e *BadModsError) Error() string {
	return e.Aggregate.Render()
}
