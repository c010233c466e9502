package app

import (
	"errors"
	"strings"

	"tally/internal/budget"
	"tally/internal/command"
	"tally/internal/validate"
)

// editEntryCmd rewrites one field of the entry on a numbered line,
// prompting for the new value.
type editEntryCmd struct {
	app   *App
	old   budget.Entry
	next  budget.Entry
	field string
}

func (c *editEntryCmd) Prompts() []command.Prompt {
	switch c.field {
	case "date":
		return []command.Prompt{datePrompt(&c.next.Date)}
	case "amount":
		return []command.Prompt{amountPrompt(&c.next.Amount)}
	case "target":
		return []command.Prompt{c.app.targetPrompt(&c.next.TargetID)}
	default:
		return []command.Prompt{notePrompt(&c.next.Note)}
	}
}

func (c *editEntryCmd) Execute(rt *command.Runtime) error {
	if err := c.app.store.UpdateEntry(c.next); err != nil {
		return err
	}
	rt.Screens.Deselect()
	return nil
}

func (c *editEntryCmd) Undo(*command.Runtime) error {
	return c.app.store.UpdateEntry(c.old)
}

func (c *editEntryCmd) Redo(*command.Runtime) error {
	return c.app.store.UpdateEntry(c.next)
}

func (a *App) editDefinition() *command.Definition {
	return &command.Definition{
		Names:  []string{"edit"},
		Screen: ScreenEntries,
		Help:   "Edit an entry; requires a line # and a field.",
		Params: []command.Param{
			{Name: "id", Validator: vID().Required()},
			{Name: "field", Validator: validate.Lit("date", "amount", "target", "note").Required()},
		},
		Examples: []command.Example{
			{Text: "edit 3 amount", Subtext: "Edit the amount of the entry on line 3; a prompt will be given."},
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
			return &editEntryCmd{
				app:   a,
				old:   entry,
				next:  entry,
				field: strings.ToLower(f.Str("field")),
			}, nil
		},
	}
}
