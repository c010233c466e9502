package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tally/internal/budget"
	"tally/internal/display"
)

var failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

// Headers carry three leading spaces to clear the "NN " numbering
// prefix on numbered screens.
func entriesHeader() string {
	return fmt.Sprintf("   %-8s%-12s%-12s%s", "DATE", " AMOUNT", "TARGET", "NOTE")
}

func targetsHeader() string {
	return fmt.Sprintf("   %-12s%s", "NAME", "PROGRESS")
}

// pushEntries rebuilds the entries screen from the current filter: the
// column header, one row per entry, and a footer with progress and a
// summary of what the filter matched.
func (a *App) pushEntries(screens *display.Controller) {
	filter := a.entryFilter
	entries, err := a.store.Entries(filter)
	if err != nil {
		a.log.Error("list entries", "error", err)
	}
	names := make(map[int]string)
	for _, t := range a.targets() {
		names[t.ID] = t.Name
	}
	screens.PushHeader(entriesHeader())
	for _, e := range entries {
		screens.Push(display.Line{Ref: e, Text: e.Row(names[e.TargetID])})
	}
	screens.PushFooter("")
	screens.PushFooter(a.targetProgress(filter.Targets))
	screens.PushFooter(entrySummary(len(entries), filter))
}

// targetProgress sums current totals and goals over the filtered
// targets, or all targets when the filter names none.
func (a *App) targetProgress(names []string) string {
	var targets []budget.Target
	if len(names) == 0 {
		targets = a.targets()
	} else {
		for _, name := range names {
			if t, err := a.store.TargetByName(name); err == nil {
				targets = append(targets, t)
			}
		}
	}
	current, goal := 0, 0
	for _, t := range targets {
		s := a.summarize(t, a.entryFilter.Frame)
		current += s.Current
		goal += s.Goal
	}
	return fmt.Sprintf("Progress: %s / %s (%d)",
		budget.Dollars(current), budget.Dollars(goal), len(targets))
}

// entrySummary phrases the filter results: "3 entries of type expense
// from July of 2025 for target 'food'."
func entrySummary(n int, f budget.EntryFilter) string {
	category := ""
	if f.Category != "" {
		category = fmt.Sprintf(" of type %s", f.Category)
	}
	targets := ""
	if len(f.Targets) > 0 {
		word := "target"
		if len(f.Targets) > 1 {
			word = "targets"
		}
		targets = fmt.Sprintf(" for %s '%s'", word, strings.Join(f.Targets, ", "))
	}
	word := "entries"
	if n == 1 {
		word = "entry"
	}
	return fmt.Sprintf("%d %s%s from %s%s.", n, word, category, f.Frame, targets)
}

// pushTargets rebuilds the targets screen for the target frame. Rows of
// failing targets render red.
func (a *App) pushTargets(screens *display.Controller) {
	frame := a.targetFrame
	screens.PushHeader(targetsHeader())
	for _, t := range a.targets() {
		s := a.summarize(t, frame)
		text := s.Row(frame.Month != budget.All)
		if s.Failing() {
			text = failStyle.Render(text)
		}
		screens.Push(display.Line{Ref: s, Text: text})
	}
	screens.PushFooter(fmt.Sprintf("Showing targets for %s.", frame))
}

// pushGraph rebuilds the graph screen for the targets the entry filter
// names, or all of them.
func (a *App) pushGraph(screens *display.Controller) {
	var sums []budget.TargetSummary
	for _, t := range a.filteredTargets() {
		sums = append(sums, a.summarize(t, a.targetFrame))
	}
	for _, line := range graphRows(screens.Width(), sums) {
		screens.Push(line)
	}
}

func (a *App) filteredTargets() []budget.Target {
	names := a.entryFilter.Targets
	if len(names) == 0 {
		return a.targets()
	}
	out := make([]budget.Target, 0, len(names))
	for _, name := range names {
		if t, err := a.store.TargetByName(name); err == nil {
			out = append(out, t)
		}
	}
	return out
}

// pushShortcuts rebuilds the shortcuts screen. Lines are pushed in
// reverse so the newest-first body reads alphabetically.
func (a *App) pushShortcuts(screens *display.Controller) {
	aliases, err := a.store.Shortcuts()
	if err != nil {
		a.log.Error("list shortcuts", "error", err)
		return
	}
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	for i := len(names) - 1; i >= 0; i-- {
		screens.Push(fmt.Sprintf("%-12s%s", "/"+names[i], aliases[names[i]]))
	}
}
