package budget

// EntryFilter scopes entry listings: a timeframe plus optional
// category and target-name narrowing. The zero Targets slice matches
// every target.
type EntryFilter struct {
	Frame    TimeFrame
	Category string
	Targets  []string
}
