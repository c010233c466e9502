package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	numberStyle = lipgloss.NewStyle().Faint(true)
	selectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	barStyle    = lipgloss.NewStyle().Reverse(true)
)

// ScreenConfig describes a screen to register with the controller.
type ScreenConfig struct {
	Name string
	// MinBodyHeight is the smallest body the screen is usable with; a
	// terminal too short for it renders a resize notice instead.
	MinBodyHeight int
	// Numbered prefixes body rows with selection numbers.
	Numbered bool
	// Truncate cuts overlong body rows instead of wrapping them.
	Truncate bool
	// Refresh, when set, is called before each render to rebuild the
	// screen's buffers.
	Refresh func()
}

// Screen is one full-terminal view: header and footer buffers around a
// paginated body.
type Screen struct {
	name          string
	minBodyHeight int
	header        *lineGroup
	footer        *lineGroup
	body          *bodyLines
	refresh       func()
}

func newScreen(cfg ScreenConfig) *Screen {
	minBody := cfg.MinBodyHeight
	if minBody < 1 {
		minBody = 1
	}
	return &Screen{
		name:          cfg.Name,
		minBodyHeight: minBody,
		header:        &lineGroup{truncate: true},
		footer:        &lineGroup{},
		body:          newBodyLines(cfg.Numbered, cfg.Truncate),
		refresh:       cfg.Refresh,
	}
}

func (s *Screen) Name() string {
	return s.name
}

// bodySpace is the number of body rows left once the header, footer, page
// bar, status line and input line have claimed theirs.
func (s *Screen) bodySpace(height int) int {
	return height - 3 - s.header.len() - s.footer.len()
}

func (s *Screen) fitsIn(height int) bool {
	return height > 2+s.header.len()+s.footer.len()+s.minBodyHeight
}

func (s *Screen) push(width int, items ...any) {
	if s.body.numbered {
		width -= 3
	}
	for _, item := range items {
		s.body.append(width, item)
	}
}

func (s *Screen) pushHeader(width int, item any) {
	s.header.append(width, item)
}

func (s *Screen) pushFooter(width int, item any) {
	s.footer.append(width, item)
}

func (s *Screen) clearBuffers() {
	s.header.clear()
	s.body.clear()
	s.footer.clear()
}

// Render draws the screen into height-1 terminal rows; the input line
// below it belongs to the caller. message is the one-shot status line
// printed under the page bar.
func (s *Screen) Render(width, height int, message string) (string, error) {
	if !s.fitsIn(height) {
		return "", errorf("Please increase the height of the terminal window.")
	}
	space := s.bodySpace(height)
	rows := make([]string, 0, height-1)
	for _, ln := range s.header.lines {
		rows = append(rows, headerStyle.Render(ln.Text))
	}
	rows = append(rows, s.bodyRows(space)...)
	for _, ln := range s.footer.lines {
		rows = append(rows, ln.Text)
	}
	rows = append(rows, pageBar(width, s.body.currentPage(space), s.body.pageCount(space)))
	rows = append(rows, message)
	s.header.printed = true
	s.body.printed = true
	s.footer.printed = true
	return strings.Join(rows, "\n"), nil
}

func (s *Screen) bodyRows(space int) []string {
	rows := make([]string, 0, space)
	lines := s.body.visible(space)
	for i := 0; i < space; i++ {
		if i >= len(lines) {
			rows = append(rows, "")
			continue
		}
		ln := lines[i]
		switch {
		case ln.Ref != nil && ln.Ref == s.body.selected:
			rows = append(rows, selectStyle.Render(fmt.Sprintf("%02d %s", i+1, ln.Text)))
		case s.body.numbered:
			rows = append(rows, numberStyle.Render(fmt.Sprintf("%02d ", i+1))+ln.Text)
		default:
			rows = append(rows, ln.Text)
		}
	}
	return rows
}

// pageBar renders the reverse-video pagination strip. The current page is
// boxed; when more pages exist than fit the width, the bar shows one
// window of page numbers with spill markers pointing at the rest.
func pageBar(width, page, pages int) string {
	if width < 1 {
		width = 1
	}
	if pages < 2 {
		return barStyle.Render(strings.Repeat(" ", width))
	}
	maxShown := width / 8
	if maxShown < 1 {
		maxShown = 1
	}
	first, last := 1, pages
	prefix, suffix := "   ", "   "
	if pages > maxShown {
		sets := (pages + maxShown - 1) / maxShown
		set := (page - 1) / maxShown
		first = set*maxShown + 1
		if last = first + maxShown - 1; last > pages {
			last = pages
		}
		if set > 0 {
			prefix = "|<<"
		}
		if set < sets-1 {
			suffix = ">>|"
		}
	}
	var nums strings.Builder
	for n := first; n <= last; n++ {
		if n == page {
			fmt.Fprintf(&nums, "|%d|", n)
		} else {
			fmt.Fprintf(&nums, " %d ", n)
		}
	}
	lead := width/2 - (last - first + 1) - 8
	if lead < 0 {
		lead = 0
	}
	row := strings.Repeat(" ", lead) + prefix + " " + nums.String() + " " + suffix
	if len(row) > width {
		row = row[:width]
	}
	return barStyle.Render(row + strings.Repeat(" ", width-len(row)))
}
