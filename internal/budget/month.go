// Package budget holds the bookkeeping domain: entries, targets, months
// and amounts. Amounts are integer cents everywhere; dollars only exist
// at the formatting edge.
package budget

import (
	"strings"
	"time"
)

// Month selects a month of the year, or All for a whole-year view.
type Month int

const (
	All Month = iota
	January
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

// String is the name used both for prefix matching and in user-facing
// sentences, so All reads as "all of 2025" in footers.
func (m Month) String() string {
	if m == All {
		return "all"
	}
	return time.Month(m).String()
}

// Months lists every selectable month, All first. Order matters to
// prefix matching: "a" resolves to All, not April or August.
func Months() []Month {
	return []Month{
		All, January, February, March, April, May, June,
		July, August, September, October, November, December,
	}
}

// MatchMonth resolves a token to the first month whose name it prefixes,
// case-insensitively. With includeAll false the All alias is skipped, for
// contexts that need one concrete month.
func MatchMonth(token string, includeAll bool) (Month, bool) {
	token = strings.ToLower(token)
	if token == "" {
		return 0, false
	}
	for _, m := range Months() {
		if m == All && !includeAll {
			continue
		}
		if strings.HasPrefix(strings.ToLower(m.String()), token) {
			return m, true
		}
	}
	return 0, false
}
