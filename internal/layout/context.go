package layout

// Page geometry in points. A4 with 50pt side margins.
const (
	PageWidth    = 595.28
	PageHeight   = 841.89
	MarginLeft   = 50.0
	MarginRight  = 50.0
	ContentWidth = PageWidth - MarginLeft - MarginRight

	// StartY is where the first page begins; ResumeY is where every later page begins.
	StartY  = 30.0
	ResumeY = 50.0
)

// Minimum remaining space checks used by the section renderers.
const (
	headingReserve   = 100.0
	entryReserve     = 150.0
	educationReserve = 80.0
	bulletReserve    = 50.0
)

// Context is the vertical cursor shared by the section renderers of one layout run.
type Context struct {
	y       float64
	page    int
	height  float64
	resumeY float64
}

// NewContext returns a cursor at the top of the first page.
func NewContext() *Context {
	return &Context{y: StartY, height: PageHeight, resumeY: ResumeY}
}

// Y returns the current vertical offset within the current page.
func (c *Context) Y() float64 { return c.y }

// Page returns the zero-based index of the current page.
func (c *Context) Page() int { return c.page }

// Advance moves the cursor down by dy.
func (c *Context) Advance(dy float64) { c.y += dy }

// NeedsPageBreak reports whether the cursor is strictly past H - minRemaining.
func (c *Context) NeedsPageBreak(minRemaining float64) bool {
	return c.y > c.height-minRemaining
}

// NewPage moves the cursor to the top of the next page.
func (c *Context) NewPage() {
	c.page++
	c.y = c.resumeY
}
