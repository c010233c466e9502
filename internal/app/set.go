package app

import (
	"tally/internal/budget"
	"tally/internal/command"
	"tally/internal/validate"
)

// updateTargetCmd swaps a target row between two versions; set-default
// and rename both reduce to it.
type updateTargetCmd struct {
	app  *App
	old  budget.Target
	next budget.Target
}

func (c *updateTargetCmd) Execute(*command.Runtime) error {
	return c.app.store.UpdateTarget(c.next)
}

func (c *updateTargetCmd) Undo(*command.Runtime) error {
	return c.app.store.UpdateTarget(c.old)
}

func (c *updateTargetCmd) Redo(*command.Runtime) error {
	return c.app.store.UpdateTarget(c.next)
}

func (a *App) setDefaultDefinition() *command.Definition {
	return &command.Definition{
		Screen: ScreenTargets,
		Help:   "Set the default amount for a target.",
		Params: []command.Param{
			{Name: "name", Validator: a.vTarget().Required()},
			{Name: "default", Validator: validate.Lit("default")},
			{Name: "amount", Validator: vAmount(true).Required()},
		},
		Build: func(_ *command.Runtime, f command.Fields) (command.Command, error) {
			t, err := a.store.TargetByName(f.Str("name"))
			if err != nil {
				return nil, err
			}
			next := t
			next.DefaultAmount = f.Int("amount")
			return &updateTargetCmd{app: a, old: t, next: next}, nil
		},
	}
}

// setMonthCmd pins a target's goal for one month. It does not
// participate in undo history.
type setMonthCmd struct {
	app      *App
	targetID int
	frame    budget.TimeFrame
	amount   int
}

func (c setMonthCmd) Execute(*command.Runtime) error {
	return c.app.store.SetMonthAmount(c.targetID, c.frame.Year, c.frame.Month, c.amount)
}

func (a *App) setMonthDefinition() *command.Definition {
	now := budget.CurrentTimeFrame()
	return &command.Definition{
		Screen: ScreenTargets,
		Help:   "Set the amount for a target for a specific month.",
		Params: []command.Param{
			{Name: "name", Validator: a.vTarget().Required()},
			{Name: "amount", Validator: vAmount(true).Required()},
			{Name: "year", Validator: vYear().Default(now.Year)},
			{Name: "month", Validator: vMonth(false).Default(now.Month)},
		},
		Build: func(_ *command.Runtime, f command.Fields) (command.Command, error) {
			t, err := a.store.TargetByName(f.Str("name"))
			if err != nil {
				return nil, err
			}
			return setMonthCmd{
				app:      a,
				targetID: t.ID,
				frame:    budget.TimeFrame{Year: f.Int("year"), Month: f.Value("month").(budget.Month)},
				amount:   f.Int("amount"),
			}, nil
		},
	}
}

// setDefinition probes the arguments: a "default" token anywhere picks
// the default form, anything else sets a month amount.
func (a *App) setDefinition() *command.Definition {
	monthDef := a.setMonthDefinition()
	return &command.Definition{
		Names: []string{"set"},
		Help:  "Set the amount for a target; either the default or for a specified month.",
		Examples: []command.Example{
			{Text: "set insurance default -200", Subtext: "Set the default amount for the 'insurance' target to -200."},
			{Text: "set insurance july 2022 -400", Subtext: "Set the 'insurance' target amount to -400 for July 2022."},
			{Text: "set insurance -400", Subtext: "Set the 'insurance' target amount to -400 for the current month."},
		},
		Fork: &command.Fork{
			Mode: command.ForkByProbe,
			Routes: []command.Route{
				{Probe: validate.Lit("default"), Def: a.setDefaultDefinition()},
				{Probe: validate.Any(), Def: monthDef},
			},
			Default: monthDef,
		},
	}
}

func (a *App) renameDefinition() *command.Definition {
	return &command.Definition{
		Names:  []string{"rename"},
		Screen: ScreenTargets,
		Help:   "Rename a target.",
		Params: []command.Param{
			{Name: "current", Validator: a.vTarget().Required()},
			{Name: "new", Validator: a.vNewTarget().Required()},
		},
		Examples: []command.Example{
			{Text: "rename groceries food", Subtext: "Rename the 'groceries' target to 'food.'"},
		},
		Build: func(_ *command.Runtime, f command.Fields) (command.Command, error) {
			t, err := a.store.TargetByName(f.Str("current"))
			if err != nil {
				return nil, err
			}
			next := t
			next.Name = f.Str("new")
			return &updateTargetCmd{app: a, old: t, next: next}, nil
		},
	}
}
