package budget

import "fmt"

// Target is a named category entries are filed under. DefaultAmount is
// the goal applied to months without an override, in cents.
type Target struct {
	ID            int
	Name          string
	DefaultAmount int
}

// TargetSummary is a target with its progress computed for one
// timeframe.
type TargetSummary struct {
	Target
	// Current is the sum of entry amounts in the frame.
	Current int
	// Goal is the amount the target should reach: the monthly override
	// when one is set, otherwise the default. For a year view it is the
	// sum over all twelve months.
	Goal int
}

// Failing reports whether the target is short of its goal.
func (t TargetSummary) Failing() bool {
	return t.Current < t.Goal
}

// Row renders the summary as a list line. When the goal for the frame
// differs from the target's default, the default is shown alongside.
func (t TargetSummary) Row(showDefault bool) string {
	row := fmt.Sprintf("%-12s%s / %s", t.Name, Dollars(t.Current), Dollars(t.Goal))
	if showDefault && t.Goal != t.DefaultAmount {
		row += fmt.Sprintf(" (default: %s)", Dollars(t.DefaultAmount))
	}
	return row
}
