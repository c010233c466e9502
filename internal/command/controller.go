package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"tally/internal/display"
	"tally/internal/logging"
	"tally/internal/validate"
)

// helpSuffix trails every input validation failure.
const helpSuffix = "; Try 'help' if you're having trouble."

// ShortcutStore persists the user's "/name" command aliases.
type ShortcutStore interface {
	Shortcuts() (map[string]string, error)
	PutShortcut(short, full string) error
	DeleteShortcut(short string) error
}

// Frame is one undo history entry: the reversible command and the input
// line that produced it, kept for the status message.
type Frame struct {
	cmd   Reversible
	input string
}

// Invocation is a routed, validated and built command awaiting prompts
// and execution.
type Invocation struct {
	Def   *Definition
	Cmd   Command
	Input string
}

// Controller owns the command registry and the undo/redo history.
type Controller struct {
	registry  map[string]*Definition
	undoStack []Frame
	redoStack []Frame
	shortcuts ShortcutStore
	rt        *Runtime
}

// NewController builds a controller wired to the given screens and
// registers the builtin commands (undo, redo, quit, help, shortcuts).
func NewController(screens *display.Controller, log logging.Logger) *Controller {
	c := &Controller{registry: make(map[string]*Definition)}
	c.rt = &Runtime{Screens: screens, Commands: c, Log: log}
	for _, def := range builtins(c) {
		c.MustRegister(def)
	}
	return c
}

// SetShortcuts attaches the alias store. Without one, "/name" input and
// the shortcut commands report that shortcuts are unavailable.
func (c *Controller) SetShortcuts(s ShortcutStore) {
	c.shortcuts = s
}

// Register adds a definition under each of its names. Definitions are
// checked structurally: exactly one of Build and Fork, and the same for
// every definition reachable through forks.
func (c *Controller) Register(def *Definition) error {
	if err := checkDefinition(def); err != nil {
		return err
	}
	for _, name := range def.Names {
		key := strings.ToLower(name)
		if _, exists := c.registry[key]; exists {
			return fmt.Errorf("command: duplicate registration of %q", key)
		}
	}
	for _, name := range def.Names {
		c.registry[strings.ToLower(name)] = def
	}
	return nil
}

// MustRegister is Register for startup wiring, where a bad definition is
// a programming error.
func (c *Controller) MustRegister(def *Definition) {
	if err := c.Register(def); err != nil {
		panic(err)
	}
}

func checkDefinition(def *Definition) error {
	name := "(unnamed)"
	if len(def.Names) > 0 {
		name = def.Names[0]
	}
	if (def.Build == nil) == (def.Fork == nil) {
		return fmt.Errorf("command: definition %q needs exactly one of Build or Fork", name)
	}
	if def.Fork != nil {
		for _, r := range def.Fork.Routes {
			if r.Def == nil {
				return fmt.Errorf("command: definition %q has a route without a target", name)
			}
			if err := checkDefinition(r.Def); err != nil {
				return err
			}
		}
		if def.Fork.Default != nil {
			if err := checkDefinition(def.Fork.Default); err != nil {
				return err
			}
		}
	}
	return nil
}

// Lookup returns the definition registered under name, or nil.
func (c *Controller) Lookup(name string) *Definition {
	return c.registry[strings.ToLower(name)]
}

// Names returns all registered triggers, sorted.
func (c *Controller) Names() []string {
	names := make([]string, 0, len(c.registry))
	for name := range c.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Runtime exposes the controller's runtime for session wiring.
func (c *Controller) Runtime() *Runtime {
	return c.rt
}

// Route tokenizes an input line, expands a leading "/name" alias,
// resolves the trigger through any forks, runs the definition's
// validators over the remaining tokens and builds the command.
func (c *Controller) Route(line string) (*Invocation, error) {
	tokens, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("%s%s", err, helpSuffix)
	}
	return c.route(tokens, line, 0)
}

func (c *Controller) route(tokens []string, input string, depth int) (*Invocation, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyInput
	}
	if strings.HasPrefix(tokens[0], "/") {
		if depth > 0 {
			return nil, errors.New("Cannot nest shortcuts.")
		}
		expanded, err := c.expandShortcut(tokens[0])
		if err != nil {
			return nil, err
		}
		next, err := shellquote.Split(expanded)
		if err != nil {
			return nil, fmt.Errorf("%s%s", err, helpSuffix)
		}
		return c.route(next, expanded, depth+1)
	}

	args := validate.NewArgs(tokens[1:])
	def := c.registry[strings.ToLower(tokens[0])]
	if def == nil {
		return nil, ErrNotFound
	}
	for def.Fork != nil {
		var err error
		if def, err = def.Fork.resolve(c.rt, args); err != nil {
			return nil, err
		}
	}

	fields := make(Fields, len(def.Params))
	for _, p := range def.Params {
		val, err := p.Validator.Apply(args)
		if err != nil {
			return nil, fmt.Errorf("%s: %s%s", err, p.Name, helpSuffix)
		}
		fields[p.Name] = val
	}
	if !args.Empty() {
		return nil, fmt.Errorf("Invalid input: %s%s", strings.Join(args.Tokens(), ", "), helpSuffix)
	}

	cmd, err := def.Build(c.rt, fields)
	if err != nil {
		return nil, err
	}
	return &Invocation{Def: def, Cmd: cmd, Input: input}, nil
}

func (c *Controller) expandShortcut(token string) (string, error) {
	name := strings.TrimPrefix(token, "/")
	if c.shortcuts == nil || name == "" {
		return "", errors.New("That shortcut doesn't exist.")
	}
	aliases, err := c.shortcuts.Shortcuts()
	if err != nil {
		return "", fmt.Errorf("load shortcuts: %w", err)
	}
	full, ok := aliases[name]
	if !ok {
		return "", errors.New("That shortcut doesn't exist.")
	}
	return full, nil
}

// Execute runs a built invocation. A successful reversible command is
// pushed onto the undo stack and invalidates the redo stack.
func (c *Controller) Execute(inv *Invocation) error {
	if err := inv.Cmd.Execute(c.rt); err != nil {
		return err
	}
	if rev, ok := inv.Cmd.(Reversible); ok {
		c.undoStack = append(c.undoStack, Frame{cmd: rev, input: inv.Input})
		c.redoStack = nil
	}
	return nil
}

// Undo reverts the most recent reversible command and moves its frame to
// the redo stack.
func (c *Controller) Undo() error {
	if len(c.undoStack) == 0 {
		c.rt.Screens.Message("Nothing to undo")
		return nil
	}
	f := c.undoStack[len(c.undoStack)-1]
	c.undoStack = c.undoStack[:len(c.undoStack)-1]
	c.redoStack = append(c.redoStack, f)
	if err := f.cmd.Undo(c.rt); err != nil {
		return err
	}
	c.rt.Screens.Message(fmt.Sprintf("Undid %q.", f.input))
	return nil
}

// Redo reapplies the most recently undone command and moves its frame
// back to the undo stack.
func (c *Controller) Redo() error {
	if len(c.redoStack) == 0 {
		c.rt.Screens.Message("Nothing to redo")
		return nil
	}
	f := c.redoStack[len(c.redoStack)-1]
	c.redoStack = c.redoStack[:len(c.redoStack)-1]
	c.undoStack = append(c.undoStack, f)
	if err := f.cmd.Redo(c.rt); err != nil {
		return err
	}
	c.rt.Screens.Message(fmt.Sprintf("Redid %q.", f.input))
	return nil
}

// HistoryDepth reports the undo and redo stack sizes.
func (c *Controller) HistoryDepth() (undo, redo int) {
	return len(c.undoStack), len(c.redoStack)
}
