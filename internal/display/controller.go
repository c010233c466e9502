package display

// Controller owns the screen set and the terminal geometry. All calls
// happen on the session's update loop, so no locking is needed.
type Controller struct {
	screens map[string]*Screen
	active  *Screen
	width   int
	height  int
	message string
}

func NewController(width, height int) *Controller {
	return &Controller{screens: make(map[string]*Screen), width: width, height: height}
}

// AddScreen registers a screen. The first screen added becomes active.
func (c *Controller) AddScreen(cfg ScreenConfig) *Screen {
	s := newScreen(cfg)
	c.screens[cfg.Name] = s
	if c.active == nil {
		c.active = s
	}
	return s
}

func (c *Controller) Screen(name string) (*Screen, error) {
	s, ok := c.screens[name]
	if !ok {
		return nil, errorf("A screen with the name '%s' does not exist.", name)
	}
	return s, nil
}

// SwitchTo activates a screen by name and clears its buffers so the next
// render starts from freshly pushed content. Its page and selection
// persist across the switch.
func (c *Controller) SwitchTo(name string) error {
	s, err := c.Screen(name)
	if err != nil {
		return err
	}
	s.clearBuffers()
	c.active = s
	return nil
}

func (c *Controller) Active() (*Screen, error) {
	if c.active == nil {
		return nil, errorf("No screens have been created.")
	}
	return c.active, nil
}

func (c *Controller) ActiveName() string {
	if c.active == nil {
		return ""
	}
	return c.active.name
}

func (c *Controller) SetSize(width, height int) {
	c.width, c.height = width, height
}

func (c *Controller) Width() int {
	return c.width
}

func (c *Controller) Height() int {
	return c.height
}

// Push appends items to the active screen's body.
func (c *Controller) Push(items ...any) {
	if c.active != nil {
		c.active.push(c.width, items...)
	}
}

func (c *Controller) PushHeader(item any) {
	if c.active != nil {
		c.active.pushHeader(c.width, item)
	}
}

func (c *Controller) PushFooter(item any) {
	if c.active != nil {
		c.active.pushFooter(c.width, item)
	}
}

// Message sets the status line shown under the page bar. It stays up
// until the next command is submitted.
func (c *Controller) Message(text string) {
	c.message = text
}

func (c *Controller) ClearMessage() {
	c.message = ""
}

// Fail clears the active screen's buffers and reports msg in the status
// line.
func (c *Controller) Fail(msg string) {
	if c.active != nil {
		c.active.clearBuffers()
	}
	c.message = msg
}

// Select resolves a 1-based line number on the active screen's current
// page to the object that row displays, and highlights it.
func (c *Controller) Select(number int) (any, error) {
	if c.active == nil {
		return nil, errorf("No screens have been created.")
	}
	return c.active.body.selectLine(number, c.active.bodySpace(c.height))
}

func (c *Controller) Deselect() {
	if c.active != nil {
		c.active.body.deselect()
	}
}

func (c *Controller) Selected() any {
	if c.active == nil {
		return nil
	}
	return c.active.body.selected
}

// PageTo requests a page on the active screen. Out-of-range values clamp
// at render time, so paging past either end sticks to the nearest page.
func (c *Controller) PageTo(page int) {
	if c.active != nil {
		c.active.body.setPage(page)
	}
}

func (c *Controller) CurrentPage() int {
	if c.active == nil {
		return 1
	}
	return c.active.body.currentPage(c.active.bodySpace(c.height))
}

// View refreshes the active screen and renders it.
func (c *Controller) View() string {
	if c.active == nil {
		return ""
	}
	if c.active.refresh != nil {
		c.active.refresh()
	}
	out, err := c.active.Render(c.width, c.height, c.message)
	if err != nil {
		return err.Error()
	}
	return out
}
