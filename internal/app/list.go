package app

import (
	"tally/internal/budget"
	"tally/internal/command"
)

// listCmd points the entry filter at a new frame and returns to the
// first page. The target frame follows so both screens agree on the
// timeframe.
type listCmd struct {
	app      *App
	frame    budget.TimeFrame
	category string
	targets  []string
}

func (c listCmd) Execute(rt *command.Runtime) error {
	c.app.entryFilter = budget.EntryFilter{
		Frame:    c.frame,
		Category: c.category,
		Targets:  c.targets,
	}
	c.app.targetFrame = c.frame
	rt.Screens.PageTo(1)
	return nil
}

func (a *App) listDefinition() *command.Definition {
	now := budget.CurrentTimeFrame()
	return &command.Definition{
		Names:  []string{"list", "ls", "entries", "entry"},
		Screen: ScreenEntries,
		Help:   "List entries. Filter by target and time.",
		Params: []command.Param{
			{Name: "year", Validator: vYear().Default(now.Year)},
			{Name: "month", Validator: vMonth(true).Default(now.Month)},
			{Name: "category", Validator: vType().Default("")},
			{Name: "targets", Validator: a.vTarget().Plural()},
		},
		Examples: []command.Example{
			{Text: "list march 2022 other", Subtext: "List the entries for March of 2022 at target 'other.'"},
			{Text: "list all income", Subtext: "List all positive entries from current year."},
		},
		Build: func(_ *command.Runtime, f command.Fields) (command.Command, error) {
			return listCmd{
				app:      a,
				frame:    budget.TimeFrame{Year: f.Int("year"), Month: f.Value("month").(budget.Month)},
				category: f.Str("category"),
				targets:  f.Strs("targets"),
			}, nil
		},
	}
}

// listTargetsCmd retimes the targets screen and returns to page one.
type listTargetsCmd struct {
	app   *App
	frame budget.TimeFrame
}

func (c listTargetsCmd) Execute(rt *command.Runtime) error {
	c.app.targetFrame = c.frame
	rt.Screens.PageTo(1)
	return nil
}

func (a *App) listTargetsDefinition() *command.Definition {
	now := budget.CurrentTimeFrame()
	return &command.Definition{
		Names:  []string{"targets", "target"},
		Screen: ScreenTargets,
		Help:   "List targets and their progress.",
		Params: []command.Param{
			{Name: "year", Validator: vYear().Default(now.Year)},
			{Name: "month", Validator: vMonth(true).Default(now.Month)},
		},
		Examples: []command.Example{
			{Text: "targets all", Subtext: "List all targets for the current year."},
			{Text: "targets March 2021", Subtext: "List targets for March of 2021."},
		},
		Build: func(_ *command.Runtime, f command.Fields) (command.Command, error) {
			return listTargetsCmd{
				app:   a,
				frame: budget.TimeFrame{Year: f.Int("year"), Month: f.Value("month").(budget.Month)},
			}, nil
		},
	}
}

// graphCmd retimes both filters for the graph screen. The page is left
// alone; the graph always fits one page per target.
type graphCmd struct {
	app     *App
	frame   budget.TimeFrame
	targets []string
}

func (c graphCmd) Execute(*command.Runtime) error {
	c.app.entryFilter = budget.EntryFilter{Frame: c.frame, Targets: c.targets}
	c.app.targetFrame = c.frame
	return nil
}

func (a *App) graphDefinition() *command.Definition {
	now := budget.CurrentTimeFrame()
	return &command.Definition{
		Names:  []string{"graph"},
		Screen: ScreenGraph,
		Help:   "Graph expenses and earnings grouped by targets.",
		Params: []command.Param{
			{Name: "year", Validator: vYear().Default(now.Year)},
			{Name: "month", Validator: vMonth(true).Default(now.Month)},
			{Name: "targets", Validator: a.vTarget().Plural()},
		},
		Build: func(_ *command.Runtime, f command.Fields) (command.Command, error) {
			return graphCmd{
				app:     a,
				frame:   budget.TimeFrame{Year: f.Int("year"), Month: f.Value("month").(budget.Month)},
				targets: f.Strs("targets"),
			}, nil
		},
	}
}

// pageCmd requests a page on whatever screen is active.
type pageCmd struct {
	number int
}

func (c pageCmd) Execute(rt *command.Runtime) error {
	rt.Screens.PageTo(c.number)
	return nil
}

func (a *App) pageDefinition() *command.Definition {
	return &command.Definition{
		Names: []string{"page"},
		Help:  "Change to another page of the current screen.",
		Params: []command.Param{
			{Name: "number", Validator: vID().Required()},
		},
		Examples: []command.Example{
			{Text: "page 4", Subtext: "Change to page 4."},
		},
		Build: func(_ *command.Runtime, f command.Fields) (command.Command, error) {
			return pageCmd{number: f.Int("number")}, nil
		},
	}
}
