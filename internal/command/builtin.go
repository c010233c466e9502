package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tally/internal/validate"
)

// Screens the builtin commands land on. The session is expected to
// register screens under these names.
const (
	HelpScreen      = "help"
	ShortcutsScreen = "shortcuts"
)

var (
	boldStyle = lipgloss.NewStyle().Bold(true)
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

func builtins(c *Controller) []*Definition {
	return []*Definition{
		undoDefinition(),
		redoDefinition(),
		quitDefinition(),
		helpDefinition(c),
		newShortcutDefinition(),
		deleteShortcutDefinition(),
		viewShortcutsDefinition(),
	}
}

type undoCmd struct{}

func (undoCmd) Execute(rt *Runtime) error {
	return rt.Commands.Undo()
}

func undoDefinition() *Definition {
	return &Definition{
		Names: []string{"undo"},
		Help:  "Undo the last reversible command.",
		Build: func(*Runtime, Fields) (Command, error) {
			return undoCmd{}, nil
		},
	}
}

type redoCmd struct{}

func (redoCmd) Execute(rt *Runtime) error {
	return rt.Commands.Redo()
}

func redoDefinition() *Definition {
	return &Definition{
		Names: []string{"redo"},
		Help:  "Redo the last undone command.",
		Build: func(*Runtime, Fields) (Command, error) {
			return redoCmd{}, nil
		},
	}
}

type quitCmd struct{}

func (quitCmd) Execute(*Runtime) error {
	return ErrQuit
}

func quitDefinition() *Definition {
	return &Definition{
		Names: []string{"q", "quit"},
		Help:  "Quit the program.",
		Build: func(*Runtime, Fields) (Command, error) {
			return quitCmd{}, nil
		},
	}
}

type helpCmd struct {
	name string
}

func (h helpCmd) Execute(rt *Runtime) error {
	if h.name == "" {
		pushReversed(rt, generalHelp(rt.Commands))
		rt.Screens.Message("Enter \"help <command>\" for specific command details.")
		return nil
	}
	def := rt.Commands.Lookup(h.name)
	if def == nil {
		return ErrNotFound
	}
	pushReversed(rt, specificHelp(def))
	return nil
}

// pushReversed pushes lines in reverse so the newest-first body shows
// them in reading order.
func pushReversed(rt *Runtime, lines []string) {
	for i := len(lines) - 1; i >= 0; i-- {
		rt.Screens.Push(lines[i])
	}
}

func generalHelp(c *Controller) []string {
	seen := make(map[*Definition]bool)
	var lines []string
	for _, name := range c.Names() {
		def := c.registry[name]
		if seen[def] {
			continue
		}
		seen[def] = true
		pad := ""
		if n := 15 - len(name); n > 0 {
			pad = strings.Repeat(".", n)
		}
		lines = append(lines, name+pad+def.Help)
	}
	return lines
}

func specificHelp(def *Definition) []string {
	lines := []string{
		boldStyle.Render("COMMAND NAME(S): ") + strings.Join(def.Names, ", "),
		boldStyle.Render("DESCRIPTION: ") + def.Help,
	}
	if len(def.Examples) > 0 {
		lines = append(lines, boldStyle.Render("EXAMPLES:"))
		for _, ex := range def.Examples {
			lines = append(lines, "    "+ex.Text)
			if ex.Subtext != "" {
				lines = append(lines, "        "+dimStyle.Render(ex.Subtext))
			}
		}
	}
	return lines
}

func helpDefinition(c *Controller) *Definition {
	return &Definition{
		Names:  []string{"help"},
		Screen: HelpScreen,
		Help:   "Get help with program usage.",
		Params: []Param{
			{Name: "command", Validator: validate.Pred(func(tok string) bool {
				return c.Lookup(tok) != nil
			})},
		},
		Examples: []Example{
			{Text: "help", Subtext: "List every command."},
			{Text: "help add", Subtext: "Show details for the add command."},
		},
		Build: func(_ *Runtime, f Fields) (Command, error) {
			return helpCmd{name: strings.ToLower(f.Str("command"))}, nil
		},
	}
}

type newShortcutCmd struct {
	short string
	full  string
}

func (s *newShortcutCmd) Execute(rt *Runtime) error {
	return putShortcut(rt, s.short, s.full)
}

func (s *newShortcutCmd) Undo(rt *Runtime) error {
	return deleteShortcut(rt, s.short)
}

func (s *newShortcutCmd) Redo(rt *Runtime) error {
	return putShortcut(rt, s.short, s.full)
}

func putShortcut(rt *Runtime, short, full string) error {
	store := rt.Commands.shortcuts
	if store == nil {
		return errors.New("Shortcuts are unavailable.")
	}
	if err := store.PutShortcut(short, full); err != nil {
		return fmt.Errorf("save shortcut: %w", err)
	}
	return nil
}

func deleteShortcut(rt *Runtime, short string) error {
	store := rt.Commands.shortcuts
	if store == nil {
		return errors.New("Shortcuts are unavailable.")
	}
	if err := store.DeleteShortcut(short); err != nil {
		return fmt.Errorf("delete shortcut: %w", err)
	}
	return nil
}

func noWhitespace(tok string) bool {
	return !strings.ContainsAny(tok, " \t")
}

func newShortcutDefinition() *Definition {
	return &Definition{
		Names: []string{"+/"},
		Help:  "Create a shortcut for a full command.",
		Params: []Param{
			{Name: "shortform", Validator: validate.Pred(noWhitespace).Required()},
			{Name: "command", Validator: validate.Any().Plural().Required()},
		},
		Examples: []Example{
			{Text: "+/ bills list electric", Subtext: "Typing /bills now runs 'list electric'."},
		},
		Build: func(_ *Runtime, f Fields) (Command, error) {
			full := strings.Join(f.Strs("command"), " ")
			if strings.HasPrefix(full, "/") {
				return nil, errors.New("Cannot nest shortcuts.")
			}
			short := strings.TrimPrefix(f.Str("shortform"), "/")
			return &newShortcutCmd{short: short, full: full}, nil
		},
	}
}

type deleteShortcutCmd struct {
	short string
	full  string
}

func (s *deleteShortcutCmd) Execute(rt *Runtime) error {
	return deleteShortcut(rt, s.short)
}

func (s *deleteShortcutCmd) Undo(rt *Runtime) error {
	return putShortcut(rt, s.short, s.full)
}

func (s *deleteShortcutCmd) Redo(rt *Runtime) error {
	return deleteShortcut(rt, s.short)
}

func deleteShortcutDefinition() *Definition {
	return &Definition{
		Names: []string{"-/"},
		Help:  "Delete a shortcut.",
		Params: []Param{
			{Name: "shortform", Validator: validate.Pred(noWhitespace).Required()},
		},
		Examples: []Example{
			{Text: "-/ bills", Subtext: "Remove the /bills shortcut."},
		},
		Build: func(rt *Runtime, f Fields) (Command, error) {
			if rt.Commands.shortcuts == nil {
				return nil, errors.New("Shortcuts are unavailable.")
			}
			short := strings.TrimPrefix(f.Str("shortform"), "/")
			aliases, err := rt.Commands.shortcuts.Shortcuts()
			if err != nil {
				return nil, fmt.Errorf("load shortcuts: %w", err)
			}
			full, ok := aliases[short]
			if !ok {
				return nil, errors.New("That shortcut doesn't exist.")
			}
			return &deleteShortcutCmd{short: short, full: full}, nil
		},
	}
}

type viewShortcutsCmd struct{}

func (viewShortcutsCmd) Execute(*Runtime) error {
	return nil
}

func viewShortcutsDefinition() *Definition {
	return &Definition{
		Names:  []string{"shortcuts"},
		Screen: ShortcutsScreen,
		Help:   "View your shortcuts.",
		Build: func(*Runtime, Fields) (Command, error) {
			return viewShortcutsCmd{}, nil
		},
	}
}
