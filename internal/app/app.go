// Package app assembles the budget application: it registers the
// entries, targets and graph screens, defines every user command on top
// of the command framework, and carries the filter state the screens
// render from.
package app

import (
	"sort"

	"tally/internal/budget"
	"tally/internal/command"
	"tally/internal/display"
	"tally/internal/logging"
	"tally/internal/storage"
)

// Screen names the app registers. The builtin help and shortcuts
// screens come from the command package.
const (
	ScreenEntries = "entries"
	ScreenTargets = "targets"
	ScreenGraph   = "graph"
)

// App owns the storage handle and the filter state shared between
// commands and screen refreshes.
type App struct {
	store storage.Store
	log   logging.Logger

	entryFilter budget.EntryFilter
	targetFrame budget.TimeFrame
}

// New builds an App filtering on the current month.
func New(store storage.Store, log logging.Logger) *App {
	now := budget.CurrentTimeFrame()
	return &App{
		store:       store,
		log:         log,
		entryFilter: budget.EntryFilter{Frame: now},
		targetFrame: now,
	}
}

// Register adds the app's screens and commands. The entries screen is
// registered first and becomes the active screen.
func (a *App) Register(screens *display.Controller, commands *command.Controller) {
	screens.AddScreen(display.ScreenConfig{
		Name:          ScreenEntries,
		MinBodyHeight: 4,
		Numbered:      true,
		Refresh:       func() { a.pushEntries(screens) },
	})
	screens.AddScreen(display.ScreenConfig{
		Name:     ScreenTargets,
		Numbered: true,
		Truncate: true,
		Refresh:  func() { a.pushTargets(screens) },
	})
	screens.AddScreen(display.ScreenConfig{
		Name:    ScreenGraph,
		Refresh: func() { a.pushGraph(screens) },
	})
	screens.AddScreen(display.ScreenConfig{Name: command.HelpScreen})
	screens.AddScreen(display.ScreenConfig{
		Name:    command.ShortcutsScreen,
		Refresh: func() { a.pushShortcuts(screens) },
	})

	commands.SetShortcuts(a.store)

	commands.MustRegister(a.listDefinition())
	commands.MustRegister(a.listTargetsDefinition())
	commands.MustRegister(a.graphDefinition())
	commands.MustRegister(a.addDefinition())
	commands.MustRegister(a.removeDefinition())
	commands.MustRegister(a.editDefinition())
	commands.MustRegister(a.setDefinition())
	commands.MustRegister(a.renameDefinition())
	commands.MustRegister(a.pageDefinition())
}

// targets returns every target in the order the store yields them.
// Errors surface as an empty list; the cause goes to the log.
func (a *App) targets() []budget.Target {
	targets, err := a.store.Targets()
	if err != nil {
		a.log.Error("list targets", "error", err)
		return nil
	}
	return targets
}

// targetNames returns the lowercase names of every target.
func (a *App) targetNames() []string {
	targets := a.targets()
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

func (a *App) targetsExist() bool {
	return len(a.targets()) > 0
}

// goalFor computes a target's goal within a frame: the month override
// when set, otherwise the default; for a whole-year frame, the sum of
// the twelve months with overrides applied.
func (a *App) goalFor(t budget.Target, frame budget.TimeFrame) int {
	if frame.Month != budget.All {
		amount, ok, err := a.store.MonthAmount(t.ID, frame.Year, frame.Month)
		if err != nil {
			a.log.Error("month amount", "target", t.Name, "error", err)
			return t.DefaultAmount
		}
		if ok {
			return amount
		}
		return t.DefaultAmount
	}
	overrides, err := a.store.MonthAmounts(t.ID, frame.Year)
	if err != nil {
		a.log.Error("month amounts", "target", t.Name, "error", err)
		return 12 * t.DefaultAmount
	}
	sum := 0
	for _, amount := range overrides {
		sum += amount
	}
	return sum + (12-len(overrides))*t.DefaultAmount
}

// summarize computes a target's progress within a frame.
func (a *App) summarize(t budget.Target, frame budget.TimeFrame) budget.TargetSummary {
	current, err := a.store.SumEntries(t.ID, frame)
	if err != nil {
		a.log.Error("sum entries", "target", t.Name, "error", err)
	}
	return budget.TargetSummary{Target: t, Current: current, Goal: a.goalFor(t, frame)}
}

// insertEntry adds an entry and pins the target's goal for the entry's
// month at the current default when no override exists yet, so a later
// default change leaves already-booked months alone.
func (a *App) insertEntry(e budget.Entry) (int, error) {
	if t, ok := a.targetByID(e.TargetID); ok {
		year, month := e.Date.Year(), budget.Month(e.Date.Month())
		if _, exists, err := a.store.MonthAmount(t.ID, year, month); err == nil && !exists {
			if err := a.store.SetMonthAmount(t.ID, year, month, t.DefaultAmount); err != nil {
				a.log.Error("pin month amount", "target", t.Name, "error", err)
			}
		}
	}
	return a.store.AddEntry(e)
}

func (a *App) targetByID(id int) (budget.Target, bool) {
	for _, t := range a.targets() {
		if t.ID == id {
			return t, true
		}
	}
	return budget.Target{}, false
}
