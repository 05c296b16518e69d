package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// popoverItemTop is the panel row of the first item: border then header.
	popoverItemTop = 2
	// tableFirstRow is the content row of the first table row: page title,
	// status line, top border, header and header rule.
	tableFirstRow = 5
)

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.shell.Initialized() || msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll(-1)
		return nil
	case tea.MouseButtonWheelDown:
		m.scroll(1)
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	props := m.shell.Props()
	bar := m.topBarLayout(props)
	if m.popover.open {
		m.handlePopoverClick(msg.X, msg.Y)
		return nil
	}
	if msg.Y == 0 {
		switch {
		case bar.hitBurger(msg.X):
			m.toggleSidebar()
		case bar.hitBell(msg.X):
			m.togglePopover()
		}
		return nil
	}
	bodyRow := msg.Y - 1
	if bodyRow < 0 || bodyRow >= m.bodyHeight() {
		return nil
	}
	sidebarWidth := sidebarWidthFor(props.IsOpen, props.Overlay, m.width)
	if sidebarWidth > 0 && msg.X < sidebarWidth {
		if chevronHit(props, sidebarWidth, msg.X, bodyRow) {
			m.toggleSidebar()
			return nil
		}
		if index, ok := navIndexAt(bodyRow); ok {
			return m.navigate(index)
		}
		return nil
	}
	if props.Overlay {
		// The backdrop swallows the click and closes the overlay.
		m.toggleSidebar()
		return nil
	}
	m.focus = focusContent
	m.clickContent(bodyRow)
	return nil
}

// handlePopoverClick selects or marks an item inside the panel. Any click
// outside it closes the panel.
func (m *Model) handlePopoverClick(x, y int) {
	px, py, pw, ph := m.popoverBounds()
	inside := x >= px && x < px+pw && y >= py && y < py+ph
	if !inside {
		m.popover.close()
		return
	}
	items := m.snapshot.Items
	start, end := m.popover.window(len(items))
	rel := y - py - popoverItemTop
	if rel < 0 || len(items) == 0 {
		return
	}
	index := start + rel/2
	if index >= end {
		return
	}
	m.popover.cursor = index
	if x >= px+pw-4 {
		m.markSelectedRead()
	}
}

func (m *Model) clickContent(bodyRow int) {
	entry := m.currentEntry()
	if entry.Resource == "" || m.detail != nil {
		return
	}
	ps := m.pages[entry.Resource]
	if !ps.loaded || len(ps.table.rows) == 0 {
		return
	}
	index := ps.table.offset + bodyRow - tableFirstRow
	if bodyRow < tableFirstRow || index >= len(ps.table.rows) {
		return
	}
	if index == ps.table.cursor {
		m.openDetail(entry.Resource)
		return
	}
	ps.table.cursor = index
}

func (m *Model) scroll(delta int) {
	if m.popover.open {
		m.popover.move(delta, len(m.snapshot.Items))
		return
	}
	if m.focus == focusSidebar {
		m.navCursor = clamp(m.navCursor+delta, 0, len(navEntries)-1)
		return
	}
	entry := m.currentEntry()
	if entry.Resource == "" || m.shell.Props().SuppressContent {
		return
	}
	m.pages[entry.Resource].table.moveCursor(delta)
}
