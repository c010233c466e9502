package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tally/internal/command"
	"tally/internal/display"
)

// submit consumes one input line: a prompt answer while a chain is
// pending, a command line otherwise. The returned command is non-nil
// only when the session should end.
func (s *Session) submit(line string) tea.Cmd {
	s.screens.ClearMessage()
	if s.pending != nil {
		return s.applyAnswer(line)
	}
	return s.route(line)
}

func (s *Session) route(line string) tea.Cmd {
	inv, err := s.commands.Route(line)
	if err != nil {
		s.log.Debug("route failed", "input", line, "error", err)
		return s.fail(err)
	}
	if inv.Def.Screen != "" {
		if err := s.screens.SwitchTo(inv.Def.Screen); err != nil {
			return s.fail(err)
		}
	}
	if p, ok := inv.Cmd.(command.Prompter); ok {
		if prompts := p.Prompts(); len(prompts) > 0 {
			s.pending = inv
			s.prompts = prompts
			s.step = 0
			s.ask()
			return nil
		}
	}
	return s.execute(inv)
}

// applyAnswer feeds one line to the current prompt. A rejected answer
// re-asks the same step; quitting or answering no to a confirmation
// abandons the whole chain.
func (s *Session) applyAnswer(line string) tea.Cmd {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit":
		return s.abort()
	}
	err := s.prompts[s.step].Apply(line)
	switch {
	case err == nil:
	case errors.Is(err, command.ErrAborted):
		return s.abort()
	default:
		if err.Error() != "" {
			s.screens.Message(err.Error())
		}
		s.ask()
		return nil
	}
	s.step++
	if s.step < len(s.prompts) {
		s.ask()
		return nil
	}
	inv := s.pending
	s.endPrompts()
	return s.execute(inv)
}

// ask points the input line at the current prompt.
func (s *Session) ask() {
	p := s.prompts[s.step]
	s.input.Prompt = p.Label
	s.input.Placeholder = p.Hint
}

func (s *Session) abort() tea.Cmd {
	s.endPrompts()
	s.screens.Deselect()
	s.screens.Message(command.ErrAborted.Error())
	return nil
}

func (s *Session) endPrompts() {
	s.pending = nil
	s.prompts = nil
	s.step = 0
	s.input.Prompt = inputPrompt
	s.input.Placeholder = ""
}

func (s *Session) execute(inv *command.Invocation) tea.Cmd {
	if err := s.commands.Execute(inv); err != nil {
		s.log.Debug("command failed", "input", inv.Input, "error", err)
		return s.fail(err)
	}
	return nil
}

// fail maps an error to its screen effect. Display errors blank the
// screen; everything else lands in the status line.
func (s *Session) fail(err error) tea.Cmd {
	if errors.Is(err, command.ErrQuit) {
		return tea.Quit
	}
	var derr *display.Error
	if errors.As(err, &derr) {
		s.screens.Fail(derr.Msg)
		return nil
	}
	s.screens.Message(err.Error())
	return nil
}
