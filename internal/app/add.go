package app

import (
	"errors"
	"fmt"
	"strings"

	"tally/internal/budget"
	"tally/internal/command"
	"tally/internal/validate"
)

const noTargetsMsg = "No targets to add entries to. Make a target with 'add target [name] [amount]'."

// addEntryCmd inserts one entry. Built from the bare "add" form it
// collects its fields through prompts; the "add today" form arrives
// fully populated.
type addEntryCmd struct {
	app     *App
	entry   budget.Entry
	collect bool
}

func (c *addEntryCmd) Prompts() []command.Prompt {
	if !c.collect {
		return nil
	}
	return []command.Prompt{
		datePrompt(&c.entry.Date),
		amountPrompt(&c.entry.Amount),
		c.app.targetPrompt(&c.entry.TargetID),
		notePrompt(&c.entry.Note),
	}
}

func (c *addEntryCmd) Execute(rt *command.Runtime) error {
	id, err := c.app.insertEntry(c.entry)
	if err != nil {
		return err
	}
	c.entry.ID = id
	rt.Screens.Message(fmt.Sprintf("Entry added: %s, %s, %s",
		c.entry.Date.Format("Jan 02"), budget.Dollars(c.entry.Amount), c.entry.Note))
	return nil
}

func (c *addEntryCmd) Undo(*command.Runtime) error {
	return c.app.store.DeleteEntry(c.entry.ID)
}

func (c *addEntryCmd) Redo(*command.Runtime) error {
	id, err := c.app.insertEntry(c.entry)
	if err != nil {
		return err
	}
	c.entry.ID = id
	return nil
}

func (a *App) addEntryDefinition() *command.Definition {
	return &command.Definition{
		Screen: ScreenEntries,
		Help:   "Add an entry, entering input through a series of prompts.",
		Build: func(*command.Runtime, command.Fields) (command.Command, error) {
			if !a.targetsExist() {
				return nil, errors.New(noTargetsMsg)
			}
			return &addEntryCmd{app: a, collect: true}, nil
		},
	}
}

func (a *App) addTodayDefinition() *command.Definition {
	return &command.Definition{
		Screen: ScreenEntries,
		Help:   "Add an entry for today with one line.",
		Params: []command.Param{
			{Name: "amount", Validator: vAmount(false).Required()},
			{Name: "target", Validator: a.vTarget().Required()},
			{Name: "note", Validator: validate.Any().Plural()},
		},
		Build: func(_ *command.Runtime, f command.Fields) (command.Command, error) {
			if !a.targetsExist() {
				return nil, errors.New(noTargetsMsg)
			}
			t, err := a.store.TargetByName(f.Str("target"))
			if err != nil {
				return nil, err
			}
			note := strings.Join(f.Strs("note"), " ")
			if note == "" {
				note = "..."
			}
			return &addEntryCmd{app: a, entry: budget.Entry{
				Date:     today(),
				Amount:   f.Int("amount"),
				TargetID: t.ID,
				Note:     note,
			}}, nil
		},
	}
}

// addTargetCmd creates a target. Undo deletes it; redo recreates it
// under a fresh id.
type addTargetCmd struct {
	app    *App
	target budget.Target
}

func (c *addTargetCmd) Execute(*command.Runtime) error {
	id, err := c.app.store.AddTarget(c.target)
	if err != nil {
		return err
	}
	c.target.ID = id
	return nil
}

func (c *addTargetCmd) Undo(*command.Runtime) error {
	return c.app.store.DeleteTarget(c.target.ID)
}

func (c *addTargetCmd) Redo(*command.Runtime) error {
	id, err := c.app.store.AddTarget(c.target)
	if err != nil {
		return err
	}
	c.target.ID = id
	return nil
}

func (a *App) addTargetDefinition() *command.Definition {
	return &command.Definition{
		Screen: ScreenTargets,
		Help:   "Add a new target.",
		Params: []command.Param{
			{Name: "name", Validator: a.vNewTarget().Required()},
			{Name: "amount", Validator: vAmount(false).Required()},
		},
		Build: func(_ *command.Runtime, f command.Fields) (command.Command, error) {
			return &addTargetCmd{app: a, target: budget.Target{
				Name:          f.Str("name"),
				DefaultAmount: f.Int("amount"),
			}}, nil
		},
	}
}

func (a *App) addDefinition() *command.Definition {
	entryDef := a.addEntryDefinition()
	return &command.Definition{
		Names: []string{"add"},
		Help:  "Add an entry or target.",
		Examples: []command.Example{
			{Text: "add [entry]", Subtext: "Add an entry through multiple prompts."},
			{Text: "add today -100 insurance 'Car insurance bill'", Subtext: "Add an entry for today in one line."},
			{Text: "add target groceries -400", Subtext: "Add a new target named 'groceries' with amount -400."},
		},
		Fork: &command.Fork{
			Mode: command.ForkByToken,
			Routes: []command.Route{
				{Token: "entry", Def: entryDef},
				{Token: "today", Def: a.addTodayDefinition()},
				{Token: "target", Def: a.addTargetDefinition()},
			},
			Default: entryDef,
		},
	}
}
