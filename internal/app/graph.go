package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"tally/internal/budget"
	"tally/internal/display"
)

var (
	meetBar  = lipgloss.NewStyle().Background(lipgloss.Color("2"))
	failBar  = lipgloss.NewStyle().Background(lipgloss.Color("1"))
	dimLabel = lipgloss.NewStyle().Faint(true)
)

// graphRows renders one centered bar row per target. Expense bars grow
// leftward from the center line with the name on the right; income
// mirrors that. Bars scale against the largest absolute total, failing
// targets get the red bar, and the amount sits inside the bar when it
// fits.
func graphRows(termWidth int, sums []budget.TargetSummary) []display.Line {
	width := termWidth * 3 / 4
	oddPad := ""
	if width%2 == 1 {
		width--
		oddPad = " "
	}
	margin := sp((termWidth - width) / 2)
	maxBar := width / 2

	extreme := 0
	for _, s := range sums {
		if abs(s.Current) > extreme {
			extreme = abs(s.Current)
		}
	}

	lines := make([]display.Line, 0, len(sums))
	for _, s := range sums {
		total := s.Current
		totalStr := budget.Dollars(total)
		barLen := 0
		if total != 0 {
			barLen = maxBar * abs(total) / extreme
		}
		if barLen == 0 {
			barLen = 1
		}
		style := meetBar
		if s.Failing() {
			style = failBar
		}
		goal := dimLabel.Render("(" + budget.Dollars(s.Goal) + ")")

		var lhalf, rhalf string
		switch {
		case total < 0:
			name := s.Name + " " + goal
			lpad := maxBar - barLen
			var bar string
			switch {
			case len(totalStr) <= barLen:
				bar = style.Render(totalStr + sp(barLen-len(totalStr)))
			case len(totalStr) <= lpad:
				bar = totalStr + style.Render(sp(barLen))
				lpad = maxBar - barLen - len(totalStr)
			default:
				bar = style.Render(sp(barLen))
			}
			lhalf = sp(lpad) + bar
			rhalf = name + sp(maxBar-ansi.StringWidth(name))
		case total > 0:
			name := goal + " " + s.Name
			rpad := maxBar - barLen
			var bar string
			switch {
			case len(totalStr) <= barLen:
				bar = style.Render(sp(barLen-len(totalStr)) + totalStr)
			case len(totalStr) <= rpad:
				bar = style.Render(sp(barLen)) + totalStr
				rpad = maxBar - barLen - len(totalStr)
			default:
				bar = style.Render(sp(barLen))
			}
			lhalf = sp(maxBar-ansi.StringWidth(name)) + name
			rhalf = bar + sp(rpad)
		default:
			name := s.Name + " " + goal
			lhalf = sp(maxBar)
			rhalf = name + sp(maxBar-ansi.StringWidth(name))
		}
		lines = append(lines, display.Line{Ref: s, Text: margin + lhalf + rhalf + oddPad})
	}
	return lines
}

// sp returns n spaces, or none for negative n.
func sp(n int) string {
	if n < 1 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
