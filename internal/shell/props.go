package shell

// Props is the read-only view of the shell handed to the sidebar, top bar and
// pages. Every field is derived from (ViewportWidth, SidebarOpen).
type Props struct {
	Width      int
	IsOpen     bool
	Breakpoint Breakpoint

	// BurgerVisible shows the menu button in the top bar.
	BurgerVisible bool
	// ChevronVisible shows the close control in the sidebar header.
	ChevronVisible bool
	// Overlay renders the sidebar above the content with a dimmed backdrop.
	Overlay bool
	// SuppressContent blocks interaction with page content.
	SuppressContent bool
}

func PropsFor(state State, bp Breakpoints) Props {
	bp = bp.Normalize()
	breakpoint := bp.Classify(state.ViewportWidth)
	open := state.SidebarOpen
	overlay := open && breakpoint == BreakpointMobile
	return Props{
		Width:           state.ViewportWidth,
		IsOpen:          open,
		Breakpoint:      breakpoint,
		BurgerVisible:   !open && state.ViewportWidth <= bp.BurgerMax,
		ChevronVisible:  open && breakpoint != BreakpointDesktop,
		Overlay:         overlay,
		SuppressContent: overlay,
	}
}

// SidebarVisible reports whether the navigation panel is rendered at all.
func (p Props) SidebarVisible() bool {
	return p.IsOpen
}

// CloseOnNavigate reports whether choosing a navigation entry should also
// close the sidebar.
func (p Props) CloseOnNavigate() bool {
	return p.IsOpen && p.Breakpoint == BreakpointMobile
}
