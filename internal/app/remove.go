package app

import (
	"errors"
	"fmt"

	"tally/internal/budget"
	"tally/internal/command"
)

// removeEntryCmd deletes the entry on a numbered line, after a
// confirmation prompt. Undo books it again under a fresh id.
type removeEntryCmd struct {
	app   *App
	entry budget.Entry
}

func (c *removeEntryCmd) Prompts() []command.Prompt {
	return []command.Prompt{
		confirmPrompt("(Y/n) Are you sure you want to delete this entry? "),
	}
}

func (c *removeEntryCmd) Execute(rt *command.Runtime) error {
	if err := c.app.store.DeleteEntry(c.entry.ID); err != nil {
		return err
	}
	rt.Screens.Deselect()
	return nil
}

func (c *removeEntryCmd) Undo(*command.Runtime) error {
	id, err := c.app.insertEntry(c.entry)
	if err != nil {
		return err
	}
	c.entry.ID = id
	return nil
}

func (c *removeEntryCmd) Redo(*command.Runtime) error {
	return c.app.store.DeleteEntry(c.entry.ID)
}

func (a *App) removeEntryDefinition() *command.Definition {
	return &command.Definition{
		Screen: ScreenEntries,
		Help:   "Remove an entry by its line number.",
		Params: []command.Param{
			{Name: "id", Validator: vID().Required()},
		},
		Build: func(rt *command.Runtime, f command.Fields) (command.Command, error) {
			ref, err := rt.Screens.Select(f.Int("id"))
			if err != nil {
				return nil, err
			}
			entry, ok := ref.(budget.Entry)
			if !ok {
				rt.Screens.Deselect()
				return nil, errors.New("Invalid line selection.")
			}
			return &removeEntryCmd{app: a, entry: entry}, nil
		},
	}
}

// removeTargetCmd deletes the target on a numbered line. Targets still
// referenced by entries refuse to go at build time.
type removeTargetCmd struct {
	app    *App
	target budget.Target
}

func (c *removeTargetCmd) Prompts() []command.Prompt {
	return []command.Prompt{
		confirmPrompt("(Y/n) Are you sure you want to delete this target? "),
	}
}

func (c *removeTargetCmd) Execute(rt *command.Runtime) error {
	if err := c.app.store.DeleteTarget(c.target.ID); err != nil {
		return err
	}
	rt.Screens.Deselect()
	return nil
}

func (c *removeTargetCmd) Undo(*command.Runtime) error {
	id, err := c.app.store.AddTarget(c.target)
	if err != nil {
		return err
	}
	c.target.ID = id
	return nil
}

func (c *removeTargetCmd) Redo(*command.Runtime) error {
	return c.app.store.DeleteTarget(c.target.ID)
}

func (a *App) removeTargetDefinition() *command.Definition {
	return &command.Definition{
		Screen: ScreenTargets,
		Help:   "Remove a target by its line number.",
		Params: []command.Param{
			{Name: "id", Validator: vID().Required()},
		},
		Build: func(rt *command.Runtime, f command.Fields) (command.Command, error) {
			ref, err := rt.Screens.Select(f.Int("id"))
			if err != nil {
				return nil, err
			}
			summary, ok := ref.(budget.TargetSummary)
			if !ok {
				rt.Screens.Deselect()
				return nil, errors.New("Invalid line selection.")
			}
			uses, err := a.store.TargetUsage(summary.ID)
			if err != nil {
				rt.Screens.Deselect()
				return nil, err
			}
			if uses > 0 {
				rt.Screens.Deselect()
				word := "entries"
				if uses == 1 {
					word = "entry"
				}
				return nil, fmt.Errorf("Cannot delete %s; in use by %d %s.", summary.Name, uses, word)
			}
			return &removeTargetCmd{app: a, target: summary.Target}, nil
		},
	}
}

// removeDefinition forks on the active screen, so "delete 3" removes
// whatever kind of line the user is looking at.
func (a *App) removeDefinition() *command.Definition {
	return &command.Definition{
		Names: []string{"del", "delete", "remove"},
		Help:  "Delete an entry or target.",
		Examples: []command.Example{
			{Text: "delete 3", Subtext: "Remove the entry or target on line 3 of the current screen."},
		},
		Fork: &command.Fork{
			Mode: command.ForkByScreen,
			Routes: []command.Route{
				{Token: ScreenEntries, Def: a.removeEntryDefinition()},
				{Token: ScreenTargets, Def: a.removeTargetDefinition()},
			},
		},
	}
}
