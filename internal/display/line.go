// Package display renders paginated terminal screens. A screen owns three
// line buffers (header, body, footer); the body is paged to fit the space
// left over by the other two and supports 1-based line selection. Buffers
// are cleared lazily: the first push after a render drops the previously
// rendered content, so refresh funcs can rebuild a screen every frame
// without clearing it explicitly.
package display

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
)

// wrapIndent prefixes continuation lines of a wrapped body line.
const wrapIndent = "    "

// Line is one renderable row. Ref points back at the object the row was
// built from so a numbered selection can recover it; wrapped continuation
// rows share the Ref of their first row.
type Line struct {
	Ref  any
	Text string
}

// lineGroup is an ordered buffer of lines with lazy clearing.
type lineGroup struct {
	lines    []Line
	numbered bool
	truncate bool
	printed  bool
}

// append adds item to the group, wrapping or truncating its text to width.
// Width accounting is ANSI-aware so styled rows wrap at the same column as
// plain ones. Continuation chunks of a wrapped line are appended newest
// first; the body renders in reverse, which puts them back in read order.
func (g *lineGroup) append(width int, item any) {
	if g.printed {
		g.clear()
	}
	var ref any
	var text string
	switch v := item.(type) {
	case Line:
		ref, text = v.Ref, v.Text
	case *Line:
		ref, text = v.Ref, v.Text
	default:
		ref, text = item, fmt.Sprint(item)
	}
	if width < 1 {
		width = 1
	}
	if g.truncate || ansi.StringWidth(text) <= width {
		g.lines = append(g.lines, Line{Ref: ref, Text: ansi.Truncate(text, width, "")})
		return
	}
	chunks := []string{ansi.Cut(text, 0, width)}
	rest := width
	inner := width - len(wrapIndent)
	if inner < 1 {
		inner = 1
	}
	for rest < ansi.StringWidth(text) {
		chunks = append(chunks, wrapIndent+ansi.Cut(text, rest, rest+inner))
		rest += inner
	}
	for i := len(chunks) - 1; i >= 0; i-- {
		g.lines = append(g.lines, Line{Ref: ref, Text: chunks[i]})
	}
}

func (g *lineGroup) clear() {
	g.lines = nil
	g.printed = false
}

func (g *lineGroup) len() int {
	return len(g.lines)
}

// bodyLines adds pagination and selection on top of a lineGroup. Lines
// render newest first: page 1 holds the most recently pushed lines.
type bodyLines struct {
	lineGroup
	page     int
	selected any
}

func newBodyLines(numbered, truncate bool) *bodyLines {
	return &bodyLines{lineGroup: lineGroup{numbered: numbered, truncate: truncate}, page: 1}
}

// pageCount reports how many pages the buffer spans at the given body
// space. An empty buffer still has one page.
func (b *bodyLines) pageCount(space int) int {
	if space < 1 {
		return 1
	}
	n := (len(b.lines) + space - 1) / space
	if n < 1 {
		n = 1
	}
	return n
}

// currentPage clamps the requested page into [1, pageCount].
func (b *bodyLines) currentPage(space int) int {
	page := b.page
	if page < 1 {
		page = 1
	}
	if last := b.pageCount(space); page > last {
		page = last
	}
	return page
}

// setPage records a page request. Changing page drops the selection; the
// value is clamped lazily so the buffer can grow or shrink in between.
func (b *bodyLines) setPage(page int) {
	if page != b.page {
		b.selected = nil
	}
	b.page = page
}

// visible returns the current page's lines in render order (newest first).
func (b *bodyLines) visible(space int) []Line {
	if space < 1 || len(b.lines) == 0 {
		return nil
	}
	page := b.currentPage(space)
	end := len(b.lines) - (page-1)*space
	start := end - space
	if start < 0 {
		start = 0
	}
	window := b.lines[start:end]
	out := make([]Line, 0, len(window))
	for i := len(window) - 1; i >= 0; i-- {
		out = append(out, window[i])
	}
	return out
}

// selectLine resolves a 1-based line number on the current page to the Ref
// of the line it displays and marks it selected.
func (b *bodyLines) selectLine(number, space int) (any, error) {
	lines := b.visible(space)
	if number < 1 || number > len(lines) {
		return nil, errorf("Invalid line selection.")
	}
	ref := lines[number-1].Ref
	if ref == nil {
		return nil, errorf("Invalid line selection.")
	}
	b.selected = ref
	return ref, nil
}

func (b *bodyLines) deselect() {
	b.selected = nil
}

func (b *bodyLines) clearAll() {
	b.clear()
	b.selected = nil
}
