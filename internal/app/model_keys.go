package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.popover.open {
		return m, m.handlePopoverKey(msg)
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.ToggleSidebar):
		m.toggleSidebar()
		return m, nil
	case key.Matches(msg, m.keys.Notifications):
		m.openPopover()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.back()
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		m.cycleFocus()
		return m, nil
	}
	if m.focus == focusSidebar {
		return m, m.handleSidebarKey(msg)
	}
	if m.shell.Props().SuppressContent {
		return m, nil
	}
	return m, m.handleContentKey(msg)
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.navCursor = clamp(m.navCursor-1, 0, len(navEntries)-1)
	case key.Matches(msg, m.keys.Down):
		m.navCursor = clamp(m.navCursor+1, 0, len(navEntries)-1)
	case key.Matches(msg, m.keys.Open):
		return m.navigate(m.navCursor)
	}
	return nil
}

func (m *Model) handleContentKey(msg tea.KeyMsg) tea.Cmd {
	entry := m.currentEntry()
	if key.Matches(msg, m.keys.Refresh) {
		return m.reloadPage()
	}
	if entry.Resource == "" || m.detail != nil {
		return nil
	}
	ps := m.pages[entry.Resource]
	switch {
	case key.Matches(msg, m.keys.Up):
		ps.table.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		ps.table.moveCursor(1)
	case key.Matches(msg, m.keys.Open):
		m.openDetail(entry.Resource)
	case key.Matches(msg, m.keys.Mark):
		ps.table.toggleMark()
	case key.Matches(msg, m.keys.Delete):
		return m.deleteMarked(entry.Resource)
	case key.Matches(msg, m.keys.Copy):
		m.copySelectedLink(ps)
	}
	return nil
}

func (m *Model) handlePopoverKey(msg tea.KeyMsg) tea.Cmd {
	items := m.snapshot.Items
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Notifications):
		m.popover.close()
	case key.Matches(msg, m.keys.Up):
		m.popover.move(-1, len(items))
	case key.Matches(msg, m.keys.Down):
		m.popover.move(1, len(items))
	case key.Matches(msg, m.keys.MarkRead):
		m.markSelectedRead()
	case key.Matches(msg, m.keys.MarkAllRead):
		m.markAllRead()
	case key.Matches(msg, m.keys.Copy):
		if item, ok := m.popover.selected(items); ok {
			m.copyWithStatus(item.Message, "notification copied")
		}
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	}
	return nil
}

// back unwinds one level: detail view, then the overlay sidebar.
func (m *Model) back() {
	if m.detail != nil {
		m.detail = nil
		return
	}
	if m.shell.Props().Overlay && m.shell.Dismiss() {
		m.focus = focusContent
		m.logger.Debug("sidebar_dismissed")
	}
}

func (m *Model) cycleFocus() {
	if m.focus == focusSidebar {
		m.focus = focusContent
		return
	}
	if m.shell.Props().IsOpen {
		m.focus = focusSidebar
		m.navCursor = m.page
	}
}
