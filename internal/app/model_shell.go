package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"crmdash/internal/logging"
	"crmdash/internal/shell"
)

// handleWindowSize records the terminal size right away. The first reading
// seeds the shell state; later readings reach the shell only after the
// resize debounce has gone quiet.
func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) tea.Cmd {
	m.width, m.height = msg.Width, msg.Height
	px := shell.ColumnsToWidth(msg.Width, m.cellWidthPx)
	if !m.shell.Initialized() {
		state := m.shell.Init(px)
		m.logger.Info("shell_initialized",
			logging.F("viewport_px", state.ViewportWidth),
			logging.F("sidebar_open", state.SidebarOpen),
			logging.F("breakpoint", m.shell.Props().Breakpoint.String()),
		)
		return nil
	}
	m.resizeSeq++
	if m.resizeDebounce <= 0 {
		m.applyViewportWidth(px)
		return nil
	}
	return settleViewportCmd(m.resizeDebounce, m.resizeSeq, px)
}

func (m *Model) handleViewportSettled(msg viewportSettledMsg) {
	if msg.seq != m.resizeSeq {
		return
	}
	m.applyViewportWidth(msg.width)
}

func (m *Model) applyViewportWidth(px int) {
	transition := m.shell.Resize(px)
	if transition != shell.TransitionNone {
		m.logger.Info("sidebar_transition",
			logging.F("transition", transition.String()),
			logging.F("viewport_px", m.shell.State().ViewportWidth),
		)
	}
	if !m.shell.Props().IsOpen && m.focus == focusSidebar {
		m.focus = focusContent
	}
}

func (m *Model) toggleSidebar() {
	state := m.shell.Toggle()
	if state.SidebarOpen {
		m.focus = focusSidebar
		m.navCursor = m.page
	} else {
		m.focus = focusContent
	}
	m.logger.Debug("sidebar_toggled", logging.F("open", state.SidebarOpen))
}

// navigate switches to a sidebar entry. On mobile the overlay closes behind
// the choice.
func (m *Model) navigate(index int) tea.Cmd {
	index = clamp(index, 0, len(navEntries)-1)
	if m.shell.Props().CloseOnNavigate() {
		m.shell.Toggle()
	}
	m.page = index
	m.navCursor = index
	m.detail = nil
	m.focus = focusContent
	return m.loadPage(index)
}
