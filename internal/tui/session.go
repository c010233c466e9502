// Package tui runs the interactive session: a single text input under
// the paginated screen stack, with submitted lines routed through the
// command controller. A command that collects input interactively takes
// over the input line with its prompt chain until it finishes or the
// user backs out.
package tui

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"tally/internal/command"
	"tally/internal/display"
	"tally/internal/logging"
)

// defaultPollInterval is how often the terminal size is re-read.
// Resizes also arrive as window size messages; polling covers terminals
// that do not deliver them.
const defaultPollInterval = 500 * time.Millisecond

const inputPrompt = "> "

// Options adjusts session startup. The zero value opens on the entries
// screen and polls the terminal size every half second.
type Options struct {
	// StartCommand is routed before the first frame is drawn.
	StartCommand string
	// PollInterval is the terminal size polling cadence.
	PollInterval time.Duration
}

// sizePollMsg asks the session to re-read the terminal size.
type sizePollMsg time.Time

// Session is the bubbletea model driving the whole program.
type Session struct {
	screens  *display.Controller
	commands *command.Controller
	log      logging.Logger
	input    textinput.Model

	// A non-nil pending invocation means the input line belongs to its
	// prompt chain.
	pending *command.Invocation
	prompts []command.Prompt
	step    int

	poll   time.Duration
	sizeFn func() (width, height int, ok bool)
}

// New builds a session and routes the opening command so the first
// frame already shows its screen.
func New(screens *display.Controller, commands *command.Controller, log logging.Logger, opts Options) *Session {
	if opts.StartCommand == "" {
		opts.StartCommand = "list"
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	input := textinput.New()
	input.Prompt = inputPrompt
	input.Focus()
	s := &Session{
		screens:  screens,
		commands: commands,
		log:      log,
		input:    input,
		poll:     opts.PollInterval,
		sizeFn:   stdoutSize,
	}
	s.submit(opts.StartCommand)
	return s
}

func stdoutSize() (int, int, bool) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

func (s *Session) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, s.pollSize())
}

func (s *Session) pollSize() tea.Cmd {
	return tea.Tick(s.poll, func(t time.Time) tea.Msg {
		return sizePollMsg(t)
	})
}

// Update handles messages and updates the session state.
func (s *Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		s.screens.SetSize(msg.Width, msg.Height)
		return s, nil
	case sizePollMsg:
		if w, h, ok := s.sizeFn(); ok && (w != s.screens.Width() || h != s.screens.Height()) {
			s.screens.SetSize(w, h)
		}
		return s, s.pollSize()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// handleKeyMsg feeds keys to the input line; enter submits it.
func (s *Session) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return s, tea.Quit
	case tea.KeyEnter:
		line := s.input.Value()
		s.input.Reset()
		return s, s.submit(line)
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View stacks the active screen above the input line.
func (s *Session) View() string {
	return s.screens.View() + "\n" + s.input.View()
}
