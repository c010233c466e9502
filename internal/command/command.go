// Package command implements the interactive command layer: a registry of
// command definitions, tokenized routing with validator-driven argument
// consumption, polymorphic dispatch through forks, prompt chains for
// commands that collect input interactively, and an undo/redo history of
// reversible commands.
package command

import (
	"tally/internal/display"
	"tally/internal/logging"
	"tally/internal/validate"
)

// Runtime carries the collaborators a command executes against.
type Runtime struct {
	Screens  *display.Controller
	Commands *Controller
	Log      logging.Logger
}

// Command is a routed and validated unit of work.
type Command interface {
	Execute(rt *Runtime) error
}

// Reversible marks a command that participates in the undo history.
// Undo reverts what Execute did; Redo reapplies it after an undo.
type Reversible interface {
	Command
	Undo(rt *Runtime) error
	Redo(rt *Runtime) error
}

// Prompter marks a command that collects part of its input through an
// interactive prompt chain before executing.
type Prompter interface {
	Prompts() []Prompt
}

// Prompt is one step of a prompt chain. Apply validates and stores one
// raw input line; returning an error re-asks the same step.
type Prompt struct {
	Label string
	Hint  string
	Apply func(raw string) error
}

// Param binds a field name to the validator that fills it.
type Param struct {
	Name      string
	Validator validate.Validator
}

// Example is a usage sample shown on the help screen.
type Example struct {
	Text    string
	Subtext string
}

// Definition declares a command: the triggers it answers to, the
// validators that consume its arguments, and how to build the executable
// command from the validated fields. Exactly one of Build and Fork must
// be set; a forked definition delegates to one of several child
// definitions at routing time.
type Definition struct {
	Names    []string
	Params   []Param
	Screen   string
	Help     string
	Examples []Example
	Build    func(rt *Runtime, f Fields) (Command, error)
	Fork     *Fork
}

// Fields holds validated argument values keyed by parameter name.
type Fields map[string]any

// Value returns the raw validated value for key, nil if absent.
func (f Fields) Value(key string) any {
	return f[key]
}

// Has reports whether key holds a non-nil value.
func (f Fields) Has(key string) bool {
	return f[key] != nil
}

// Str returns the value for key if it is a string, else "".
func (f Fields) Str(key string) string {
	s, _ := f[key].(string)
	return s
}

// Int returns the value for key if it is an int, else 0.
func (f Fields) Int(key string) int {
	n, _ := f[key].(int)
	return n
}

// Strs unpacks a plural parameter's matches into a string slice.
func (f Fields) Strs(key string) []string {
	vals, ok := f[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
