package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit          key.Binding
	ToggleSidebar key.Binding
	Notifications key.Binding
	Focus         key.Binding
	Up            key.Binding
	Down          key.Binding
	Open          key.Binding
	Back          key.Binding
	Mark          key.Binding
	Delete        key.Binding
	Refresh       key.Binding
	Copy          key.Binding
	MarkRead      key.Binding
	MarkAllRead   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ToggleSidebar: key.NewBinding(key.WithKeys("ctrl+b", "m"), key.WithHelp("m", "menu")),
		Notifications: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notifications")),
		Focus:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Mark:          key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Delete:        key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete selected")),
		Refresh:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Copy:          key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		MarkRead:      key.NewBinding(key.WithKeys("enter", "r"), key.WithHelp("enter", "mark read")),
		MarkAllRead:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "mark all read")),
	}
}

// helpBindings lists the bindings that are live for the current focus.
func (m *Model) helpBindings() []key.Binding {
	k := m.keys
	switch {
	case m.popover.open:
		return []key.Binding{k.Up, k.Down, k.MarkRead, k.MarkAllRead, k.Copy, k.Back}
	case m.focus == focusSidebar:
		return []key.Binding{k.Up, k.Down, k.Open, k.ToggleSidebar, k.Focus, k.Notifications, k.Quit}
	case m.detail != nil:
		return []key.Binding{k.Back, k.Notifications, k.Quit}
	case m.currentEntry().Resource == "":
		return []key.Binding{k.ToggleSidebar, k.Focus, k.Notifications, k.Refresh, k.Quit}
	default:
		return []key.Binding{k.Up, k.Down, k.Open, k.Mark, k.Delete, k.Copy, k.Refresh, k.ToggleSidebar, k.Notifications, k.Quit}
	}
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		if !binding.Enabled() {
			continue
		}
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
