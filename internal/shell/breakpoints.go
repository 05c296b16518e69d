package shell

type Breakpoint int

const (
	BreakpointMobile Breakpoint = iota
	BreakpointTablet
	BreakpointDesktop
)

func (b Breakpoint) String() string {
	switch b {
	case BreakpointMobile:
		return "mobile"
	case BreakpointTablet:
		return "tablet"
	default:
		return "desktop"
	}
}

const (
	DefaultMobileMaxWidth = 640
	DefaultTabletMaxWidth = 1024
	DefaultBurgerMaxWidth = 1024
	DefaultViewportWidth  = 1200
)

// Breakpoints holds the width thresholds, in pixels, used for layout
// classification. Widths at or below MobileMax are mobile, widths at or below
// TabletMax are tablet, anything wider is desktop.
type Breakpoints struct {
	MobileMax int
	TabletMax int
	// BurgerMax is the widest viewport that still shows the menu button while
	// the sidebar is closed.
	BurgerMax int
	// DefaultWidth stands in for the viewport when it cannot be measured.
	DefaultWidth int
}

func DefaultBreakpoints() Breakpoints {
	return Breakpoints{
		MobileMax:    DefaultMobileMaxWidth,
		TabletMax:    DefaultTabletMaxWidth,
		BurgerMax:    DefaultBurgerMaxWidth,
		DefaultWidth: DefaultViewportWidth,
	}
}

// Normalize fills zero or inconsistent thresholds with defaults.
func (b Breakpoints) Normalize() Breakpoints {
	out := b
	if out.MobileMax <= 0 {
		out.MobileMax = DefaultMobileMaxWidth
	}
	if out.TabletMax <= out.MobileMax {
		out.TabletMax = max(DefaultTabletMaxWidth, out.MobileMax+1)
	}
	if out.BurgerMax <= 0 {
		out.BurgerMax = out.TabletMax
	}
	if out.DefaultWidth <= 0 {
		out.DefaultWidth = DefaultViewportWidth
	}
	return out
}

func (b Breakpoints) Classify(width int) Breakpoint {
	switch {
	case width <= b.MobileMax:
		return BreakpointMobile
	case width <= b.TabletMax:
		return BreakpointTablet
	default:
		return BreakpointDesktop
	}
}

func (b Breakpoints) IsMobile(width int) bool {
	return width <= b.MobileMax
}

// Measure resolves a raw width reading; unknown widths fall back to
// DefaultWidth.
func (b Breakpoints) Measure(width int) int {
	if width <= 0 {
		return b.DefaultWidth
	}
	return width
}

// ColumnsToWidth converts a terminal column count to a pixel width using the
// given cell width. Zero columns means the terminal size is unknown.
func ColumnsToWidth(columns, cellWidthPx int) int {
	if columns <= 0 {
		return 0
	}
	if cellWidthPx <= 0 {
		cellWidthPx = 1
	}
	return columns * cellWidthPx
}
