// Package shell decides when the navigation sidebar is open based on the
// viewport width and the user's explicit toggles.
package shell

// State is the shell state for one session. UserHasManuallyToggled is a
// one-way latch: once true it stays true.
type State struct {
	ViewportWidth          int
	SidebarOpen            bool
	UserHasManuallyToggled bool
}

type Transition int

const (
	TransitionNone Transition = iota
	// TransitionCourtesyOpen is the one-time open when an unlatched session
	// grows from mobile to a wider viewport.
	TransitionCourtesyOpen
	// TransitionAutoClose closes a latched session that shrinks into mobile.
	TransitionAutoClose
)

func (t Transition) String() string {
	switch t {
	case TransitionCourtesyOpen:
		return "courtesy_open"
	case TransitionAutoClose:
		return "auto_close"
	default:
		return "none"
	}
}

// Initial derives the first state from the first width measurement. Desktop
// widths start open with the intent latched; mobile widths start closed.
func Initial(width int, bp Breakpoints) State {
	bp = bp.Normalize()
	width = bp.Measure(width)
	state := State{ViewportWidth: width}
	if !bp.IsMobile(width) {
		state.SidebarOpen = true
		state.UserHasManuallyToggled = true
	}
	return state
}

// Resize applies a new width reading. The width is always recorded; the open
// flag only changes when the reading crosses the mobile boundary.
func Resize(prev State, width int, bp Breakpoints) (State, Transition) {
	bp = bp.Normalize()
	width = bp.Measure(width)
	next := prev
	next.ViewportWidth = width

	wasMobile := bp.IsMobile(prev.ViewportWidth)
	isMobile := bp.IsMobile(width)
	switch {
	case !prev.UserHasManuallyToggled && wasMobile && !isMobile:
		next.SidebarOpen = true
		next.UserHasManuallyToggled = true
		return next, TransitionCourtesyOpen
	case prev.UserHasManuallyToggled && !wasMobile && isMobile:
		next.SidebarOpen = false
		return next, TransitionAutoClose
	}
	return next, TransitionNone
}

// Toggle is an explicit user toggle: it flips the sidebar and latches intent.
func Toggle(prev State) State {
	next := prev
	next.SidebarOpen = !prev.SidebarOpen
	next.UserHasManuallyToggled = true
	return next
}

// Controller owns a State for one shell instance. It is not safe for
// concurrent use; the UI event loop is its only caller.
type Controller struct {
	bp          Breakpoints
	state       State
	initialized bool
}

func NewController(bp Breakpoints) *Controller {
	return &Controller{bp: bp.Normalize()}
}

func (c *Controller) Breakpoints() Breakpoints {
	return c.bp
}

func (c *Controller) Initialized() bool {
	return c.initialized
}

// Init records the first measurement. Later calls behave like Resize.
func (c *Controller) Init(width int) State {
	if c.initialized {
		c.Resize(width)
		return c.state
	}
	c.state = Initial(width, c.bp)
	c.initialized = true
	return c.state
}

func (c *Controller) Resize(width int) Transition {
	if !c.initialized {
		c.Init(width)
		return TransitionNone
	}
	next, transition := Resize(c.state, width, c.bp)
	c.state = next
	return transition
}

func (c *Controller) Toggle() State {
	if !c.initialized {
		c.Init(0)
	}
	c.state = Toggle(c.state)
	return c.state
}

// Dismiss closes an open sidebar as if the user toggled it. It reports whether
// anything changed.
func (c *Controller) Dismiss() bool {
	if !c.state.SidebarOpen {
		return false
	}
	c.Toggle()
	return true
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Props() Props {
	return PropsFor(c.state, c.bp)
}
