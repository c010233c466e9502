package display

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testController(width, height int) *Controller {
	return NewController(width, height)
}

func TestWrapAndTruncate(t *testing.T) {
	tests := []struct {
		name     string
		truncate bool
		width    int
		text     string
		want     []string
	}{
		{
			name:  "short line untouched",
			width: 20,
			text:  "hello",
			want:  []string{"hello"},
		},
		{
			name:     "truncate cuts at width",
			truncate: true,
			width:    5,
			text:     "hello world",
			want:     []string{"hello"},
		},
		{
			name:  "wrap indents continuations",
			width: 10,
			text:  "aaaaaaaaaabbbbbbcc",
			want:  []string{"aaaaaaaaaa", "    bbbbbb", "    cc"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &lineGroup{truncate: tt.truncate}
			g.append(tt.width, tt.text)
			require.Len(t, g.lines, len(tt.want))
			// Continuations sit in the buffer newest first; reading the
			// buffer backwards restores display order.
			got := make([]string, 0, len(g.lines))
			for i := len(g.lines) - 1; i >= 0; i-- {
				got = append(got, g.lines[i].Text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrappedLinesShareRef(t *testing.T) {
	g := &lineGroup{}
	g.append(4, Line{Ref: "entry", Text: "aaaabbbbcccc"})
	require.NotEmpty(t, g.lines)
	for _, ln := range g.lines {
		assert.Equal(t, "entry", ln.Ref)
	}
}

func TestPushAfterRenderClearsBuffer(t *testing.T) {
	g := &lineGroup{}
	g.append(20, "first")
	g.printed = true
	g.append(20, "second")
	require.Len(t, g.lines, 1)
	assert.Equal(t, "second", g.lines[0].Text)
}

func TestPagination(t *testing.T) {
	b := newBodyLines(true, true)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		b.append(20, s)
	}

	assert.Equal(t, 3, b.pageCount(2))
	assert.Equal(t, 1, b.pageCount(0), "degenerate space still has one page")

	// Page one shows the newest lines, newest first.
	page1 := b.visible(2)
	require.Len(t, page1, 2)
	assert.Equal(t, "e", page1[0].Text)
	assert.Equal(t, "d", page1[1].Text)

	b.setPage(3)
	page3 := b.visible(2)
	require.Len(t, page3, 1)
	assert.Equal(t, "a", page3[0].Text)
}

func TestPageClamping(t *testing.T) {
	b := newBodyLines(false, true)
	for _, s := range []string{"a", "b", "c"} {
		b.append(20, s)
	}

	b.setPage(99)
	assert.Equal(t, 3, b.currentPage(1))

	b.setPage(0)
	assert.Equal(t, 1, b.currentPage(1))

	b.setPage(-5)
	assert.Equal(t, 1, b.currentPage(1))
}

func TestPageChangeDropsSelection(t *testing.T) {
	b := newBodyLines(true, true)
	b.append(20, "a")
	b.append(20, "b")

	_, err := b.selectLine(1, 1)
	require.NoError(t, err)
	require.NotNil(t, b.selected)

	b.setPage(2)
	assert.Nil(t, b.selected)
}

func TestSelectLine(t *testing.T) {
	refA, refB := &struct{ n int }{1}, &struct{ n int }{2}
	b := newBodyLines(true, true)
	b.append(20, Line{Ref: refA, Text: "a"})
	b.append(20, Line{Ref: refB, Text: "b"})

	tests := []struct {
		name    string
		number  int
		want    any
		wantErr bool
	}{
		{name: "first row is newest push", number: 1, want: refB},
		{name: "second row", number: 2, want: refA},
		{name: "zero is out of range", number: 0, wantErr: true},
		{name: "past the end", number: 3, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.selectLine(tt.number, 5)
			if tt.wantErr {
				var derr *Error
				require.ErrorAs(t, err, &derr)
				assert.Equal(t, "Invalid line selection.", derr.Msg)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestRenderRowBudget(t *testing.T) {
	c := testController(40, 10)
	c.AddScreen(ScreenConfig{Name: "main", Numbered: true})
	c.PushHeader("HEADER")
	c.PushFooter("footer")
	c.Push("one", "two")

	out := c.View()
	rows := strings.Split(out, "\n")
	// Everything except the input line: header, body space, footer,
	// page bar, status line.
	assert.Len(t, rows, 9)
	assert.Equal(t, "HEADER", ansi.Strip(rows[0]))
	assert.Contains(t, ansi.Strip(rows[1]), "two")
	assert.Contains(t, ansi.Strip(rows[2]), "one")
}

func TestRenderTooShort(t *testing.T) {
	c := testController(40, 4)
	c.AddScreen(ScreenConfig{Name: "main", MinBodyHeight: 4})
	c.PushHeader("HEADER")

	assert.Equal(t, "Please increase the height of the terminal window.", c.View())
}

func TestPageBar(t *testing.T) {
	assert.Equal(t, "", strings.TrimSpace(ansi.Strip(pageBar(24, 1, 1))))
	assert.Contains(t, ansi.Strip(pageBar(40, 2, 3)), " 1 |2| 3 ")

	// width 24 shows three pages per window; page 4 sits in the second
	// window with a left spill marker and no right one.
	bar := ansi.Strip(pageBar(24, 4, 5))
	assert.Contains(t, bar, "|<<")
	assert.NotContains(t, bar, ">>|")
	assert.Contains(t, bar, "|4|")
	assert.NotContains(t, bar, " 1 ")

	// Page 1 of the same set spills right.
	bar = ansi.Strip(pageBar(24, 1, 5))
	assert.Contains(t, bar, ">>|")
	assert.NotContains(t, bar, "|<<")
	assert.Contains(t, bar, "|1|")
}

func TestSwitchToClearsDestination(t *testing.T) {
	c := testController(40, 12)
	c.AddScreen(ScreenConfig{Name: "main"})
	c.AddScreen(ScreenConfig{Name: "other"})

	require.NoError(t, c.SwitchTo("other"))
	c.Push("stale")
	require.NoError(t, c.SwitchTo("main"))

	// Switching back clears what "main" held, not "other".
	require.NoError(t, c.SwitchTo("other"))
	other, err := c.Active()
	require.NoError(t, err)
	assert.Equal(t, 0, other.body.len())
}

func TestSwitchToUnknownScreen(t *testing.T) {
	c := testController(40, 12)
	c.AddScreen(ScreenConfig{Name: "main"})

	err := c.SwitchTo("nope")
	var derr *Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "A screen with the name 'nope' does not exist.", derr.Msg)
}

func TestFailClearsActiveScreen(t *testing.T) {
	c := testController(40, 12)
	c.AddScreen(ScreenConfig{Name: "main"})
	c.Push("content")

	c.Fail("Invalid input.")
	active, err := c.Active()
	require.NoError(t, err)
	assert.Equal(t, 0, active.body.len())

	out := c.View()
	assert.Contains(t, out, "Invalid input.")
}

func TestMessagePersistsUntilCleared(t *testing.T) {
	c := testController(40, 12)
	c.AddScreen(ScreenConfig{Name: "main"})

	c.Message("Undid \"add 1\".")
	assert.Contains(t, c.View(), "Undid \"add 1\".")
	assert.Contains(t, c.View(), "Undid \"add 1\".", "message survives re-renders")

	c.ClearMessage()
	assert.NotContains(t, c.View(), "Undid")
}

func TestRefreshRebuildsEachView(t *testing.T) {
	c := testController(40, 12)
	calls := 0
	c.AddScreen(ScreenConfig{Name: "main", Refresh: func() {
		calls++
		c.Push("row")
	}})

	c.View()
	c.View()
	assert.Equal(t, 2, calls)
	active, err := c.Active()
	require.NoError(t, err)
	// Lazy clearing keeps the buffer at one row despite repeated pushes.
	assert.Equal(t, 1, active.body.len())
}
