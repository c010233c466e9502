// Package storage persists budget data behind a backend-neutral Store
// interface.
package storage

import (
	"errors"

	"tally/internal/budget"
)

// ErrNotFound indicates a row that does not exist. The sqlite backend
// carries its own sentinel; callers that need to distinguish should
// match on either.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations for entries, targets,
// per-month target amounts and command shortcuts.
type Store interface {
	// AddEntry inserts an entry and returns its assigned ID.
	AddEntry(e budget.Entry) (int, error)
	UpdateEntry(e budget.Entry) error
	DeleteEntry(id int) error
	Entries(f budget.EntryFilter) ([]budget.Entry, error)
	// SumEntries totals the amounts filed under a target within a frame.
	SumEntries(targetID int, frame budget.TimeFrame) (int, error)

	// AddTarget inserts a target and returns its assigned ID.
	AddTarget(t budget.Target) (int, error)
	UpdateTarget(t budget.Target) error
	DeleteTarget(id int) error
	Targets() ([]budget.Target, error)
	TargetByName(name string) (budget.Target, error)
	// TargetUsage counts the entries filed under a target, all time.
	TargetUsage(id int) (int, error)

	// SetMonthAmount pins a target's goal for one month, replacing any
	// previous amount for that month.
	SetMonthAmount(targetID, year int, month budget.Month, amount int) error
	MonthAmount(targetID, year int, month budget.Month) (int, bool, error)
	MonthAmounts(targetID, year int) (map[budget.Month]int, error)

	Shortcuts() (map[string]string, error)
	PutShortcut(short, full string) error
	DeleteShortcut(short string) error

	Close() error
}
