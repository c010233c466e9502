package app

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/budget"
	"tally/internal/command"
	"tally/internal/display"
	"tally/internal/logging"
	"tally/internal/storage"
)

// harness bundles the wired controllers the way the session builds
// them.
type harness struct {
	app      *App
	screens  *display.Controller
	commands *command.Controller
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store, err := storage.NewCSVStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	log, err := logging.Init(logging.Config{})
	require.NoError(t, err)
	screens := display.NewController(80, 24)
	commands := command.NewController(screens, log)
	a := New(store, log)
	a.Register(screens, commands)
	return &harness{app: a, screens: screens, commands: commands}
}

// run routes and executes one input line, switching screens and feeding
// prompt answers the way the session does.
func (h *harness) run(t *testing.T, line string, answers ...string) error {
	t.Helper()
	inv, err := h.commands.Route(line)
	if err != nil {
		return err
	}
	if inv.Def.Screen != "" {
		require.NoError(t, h.screens.SwitchTo(inv.Def.Screen))
	}
	if p, ok := inv.Cmd.(command.Prompter); ok {
		i := 0
		for _, prompt := range p.Prompts() {
			for {
				require.Less(t, i, len(answers), "prompt %q ran out of answers", prompt.Label)
				err := prompt.Apply(answers[i])
				i++
				if err == nil {
					break
				}
				if errors.Is(err, command.ErrAborted) {
					h.screens.Deselect()
					return err
				}
			}
		}
	}
	return h.commands.Execute(inv)
}

func (h *harness) view() string {
	return ansi.Strip(h.screens.View())
}

func (h *harness) seedTarget(t *testing.T, name string, amount int) budget.Target {
	t.Helper()
	id, err := h.app.store.AddTarget(budget.Target{Name: name, DefaultAmount: amount})
	require.NoError(t, err)
	return budget.Target{ID: id, Name: name, DefaultAmount: amount}
}

func (h *harness) seedEntry(t *testing.T, iso string, amount, targetID int, note string) budget.Entry {
	t.Helper()
	date, err := time.Parse(budget.DateLayout, iso)
	require.NoError(t, err)
	e := budget.Entry{Date: date, Amount: amount, TargetID: targetID, Note: note}
	id, err := h.app.store.AddEntry(e)
	require.NoError(t, err)
	e.ID = id
	return e
}

func (h *harness) entries(t *testing.T, f budget.EntryFilter) []budget.Entry {
	t.Helper()
	entries, err := h.app.store.Entries(f)
	require.NoError(t, err)
	return entries
}

func july2025() budget.EntryFilter {
	return budget.EntryFilter{Frame: budget.TimeFrame{Year: 2025, Month: budget.July}}
}

func TestEntriesScreen(t *testing.T) {
	h := newHarness(t)
	food := h.seedTarget(t, "food", -50000)
	h.seedEntry(t, "2025-07-04", -2000, food.ID, "groceries")
	h.seedEntry(t, "2025-07-09", 5000, food.ID, "refund")

	require.NoError(t, h.run(t, "list july 2025"))
	out := h.view()

	assert.Contains(t, out, "   DATE     AMOUNT     TARGET      NOTE")
	// Newest entry on line 1.
	assert.Contains(t, out, "01 Jul 09  +$50.00     food        refund")
	assert.Contains(t, out, "02 Jul 04  -$20.00     food        groceries")
	assert.Contains(t, out, "Progress: +$30.00 / -$500.00 (1)")
	assert.Contains(t, out, "2 entries from July of 2025.")
}

func TestEntriesScreenFilters(t *testing.T) {
	h := newHarness(t)
	food := h.seedTarget(t, "food", -50000)
	rent := h.seedTarget(t, "rent", -100000)
	h.seedEntry(t, "2025-07-04", -2000, food.ID, "groceries")
	h.seedEntry(t, "2025-07-09", 5000, food.ID, "refund")
	h.seedEntry(t, "2025-03-01", -80000, rent.ID, "march rent")

	require.NoError(t, h.run(t, "list july 2025 expense"))
	out := h.view()
	assert.Contains(t, out, "groceries")
	assert.NotContains(t, out, "refund")
	assert.Contains(t, out, "1 entry of type expense from July of 2025.")

	require.NoError(t, h.run(t, "list all 2025 rent"))
	out = h.view()
	assert.Contains(t, out, "march rent")
	assert.NotContains(t, out, "groceries")
	assert.Contains(t, out, "1 entry from all of 2025 for target 'rent'.")
	assert.Contains(t, out, "Progress: -$800.00 / -$12000.00 (1)")

	require.NoError(t, h.run(t, "list all 2025 rent food"))
	assert.Contains(t, h.view(), "3 entries from all of 2025 for targets 'rent, food'.")
}

func TestEntriesScreenRejectsUnknownTarget(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, "list nosuch")
	require.Error(t, err)
	assert.Equal(t, "Invalid input: nosuch; Try 'help' if you're having trouble.", err.Error())
}

func TestTargetsScreen(t *testing.T) {
	h := newHarness(t)
	food := h.seedTarget(t, "food", -50000)
	require.NoError(t, h.app.store.SetMonthAmount(food.ID, 2025, budget.July, -20000))
	h.seedEntry(t, "2025-07-04", -10000, food.ID, "groceries")

	require.NoError(t, h.run(t, "targets july 2025"))
	out := h.view()
	assert.Contains(t, out, "   NAME        PROGRESS")
	assert.Contains(t, out, "01 food        -$100.00 / -$200.00 (default: -$500.00)")
	assert.Contains(t, out, "Showing targets for July of 2025.")

	// Year view sums the override with eleven defaults and drops the
	// default annotation.
	require.NoError(t, h.run(t, "targets all 2025"))
	out = h.view()
	assert.Contains(t, out, "01 food        -$100.00 / -$5700.00")
	assert.NotContains(t, out, "(default:")
	assert.Contains(t, out, "Showing targets for all of 2025.")
}

func TestShortcutsScreenAndExpansion(t *testing.T) {
	h := newHarness(t)
	h.seedTarget(t, "food", -50000)

	require.NoError(t, h.run(t, "+/ f list food"))
	require.NoError(t, h.run(t, "shortcuts"))
	assert.Contains(t, h.view(), "/f          list food")

	require.NoError(t, h.run(t, "/f"))
	assert.Equal(t, ScreenEntries, h.screens.ActiveName())
	assert.Equal(t, []string{"food"}, h.app.entryFilter.Targets)
}

func TestHelpListsAppCommands(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "help"))
	out := h.view()
	assert.Contains(t, out, "add............Add an entry or target.")
	assert.Contains(t, out, "list...........List entries. Filter by target and time.")
	assert.Contains(t, out, "set............Set the amount for a target; either the default or for a specified month.")

	require.NoError(t, h.run(t, "help add"))
	out = h.view()
	assert.Contains(t, out, "COMMAND NAME(S): add")
	assert.Contains(t, out, "add today -100 insurance 'Car insurance bill'")
}

func TestPageCommand(t *testing.T) {
	h := newHarness(t)
	food := h.seedTarget(t, "food", -50000)
	for day := 1; day <= 20; day++ {
		h.seedEntry(t, time.Date(2025, time.July, day, 0, 0, 0, 0, time.UTC).Format(budget.DateLayout),
			-100, food.ID, "coffee")
	}

	require.NoError(t, h.run(t, "list july 2025"))
	h.view()
	assert.Equal(t, 1, h.screens.CurrentPage())
	assert.Contains(t, h.view(), "20 entries from July of 2025.")

	require.NoError(t, h.run(t, "page 2"))
	h.view()
	assert.Equal(t, 2, h.screens.CurrentPage())

	// Out-of-range pages clamp to the last page.
	require.NoError(t, h.run(t, "page 9"))
	h.view()
	assert.Equal(t, 2, h.screens.CurrentPage())
}
