package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"crmdash/internal/logging"
	"crmdash/internal/types"
)

const (
	popoverWidth    = 44
	popoverMaxItems = 8
)

type notificationPopover struct {
	open   bool
	cursor int
}

func (p *notificationPopover) close() {
	p.open = false
}

func (p *notificationPopover) move(delta, count int) {
	if count == 0 {
		p.cursor = 0
		return
	}
	p.cursor = clamp(p.cursor+delta, 0, count-1)
}

func (p *notificationPopover) clamp(count int) {
	p.move(0, count)
}

// window is the slice of items that fits in the panel around the cursor.
func (p *notificationPopover) window(count int) (int, int) {
	start := 0
	if p.cursor >= popoverMaxItems {
		start = p.cursor - popoverMaxItems + 1
	}
	return start, min(count, start+popoverMaxItems)
}

func (p *notificationPopover) selected(items []types.NotificationItem) (types.NotificationItem, bool) {
	if p.cursor < 0 || p.cursor >= len(items) {
		return types.NotificationItem{}, false
	}
	return items[p.cursor], true
}

func (m *Model) openPopover() {
	m.popover.open = true
	m.refreshSnapshot()
}

func (m *Model) togglePopover() {
	if m.popover.open {
		m.popover.close()
		return
	}
	m.openPopover()
}

func (m *Model) refreshSnapshot() {
	if m.feed == nil {
		return
	}
	m.snapshot = m.feed.Snapshot()
	m.popover.clamp(len(m.snapshot.Items))
}

func (m *Model) markSelectedRead() {
	item, ok := m.popover.selected(m.snapshot.Items)
	if !ok || m.feed == nil {
		return
	}
	if m.feed.MarkRead(item.ID) {
		m.logger.Debug("notification_marked_read", logging.F("id", item.ID))
	}
	m.refreshSnapshot()
}

func (m *Model) markAllRead() {
	if m.feed == nil {
		return
	}
	if n := m.feed.MarkAllRead(); n > 0 {
		m.showInfoToast(fmt.Sprintf("marked %d %s read", n, pluralize(n, "notification", "notifications")))
	}
	m.refreshSnapshot()
}

func freshNotificationsText(n int) string {
	if n == 1 {
		return "1 new notification"
	}
	return fmt.Sprintf("%d new notifications", n)
}

// popoverWidthFor keeps the panel inside narrow terminals.
func popoverWidthFor(termWidth int) int {
	return clamp(popoverWidth, 16, max(16, termWidth-2))
}

// renderPopover draws the notification panel as a list of lines, border
// included.
func (m *Model) renderPopover() []string {
	width := popoverWidthFor(m.width)
	inner := max(1, width-4)
	lines := []string{headerStyle.Render("Notifications")}
	items := m.snapshot.Items
	switch {
	case len(items) == 0 && m.snapshot.Failed():
		lines = append(lines, errorTextStyle.Render("Failed to fetch notifications"))
	case len(items) == 0 && !m.snapshot.Loaded:
		lines = append(lines, emptyStateStyle.Render(m.loader.View()+" loading"))
	case len(items) == 0:
		lines = append(lines, emptyStateStyle.Render("No notifications"))
	default:
		start, end := m.popover.window(len(items))
		for i := start; i < end; i++ {
			item := items[i]
			prefix := "  "
			style := popoverItemStyle
			if i == m.popover.cursor {
				prefix = "› "
				style = selectedStyle
			}
			text := runewidth.Truncate(prefix+oneLine(item.Message), inner-2, "…")
			lines = append(lines, style.Render(runewidth.FillRight(text, inner-2))+" ✓")
			lines = append(lines, popoverMetaStyle.Render("  "+notificationMeta(item)))
		}
		if len(items) > end-start {
			lines = append(lines, popoverMetaStyle.Render(fmt.Sprintf("  %d more", len(items)-(end-start))))
		}
		if m.snapshot.Failed() {
			lines = append(lines, errorTextStyle.Render("Failed to fetch notifications"))
		}
	}
	box := popoverBorderStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
	return strings.Split(box, "\n")
}

func notificationMeta(item types.NotificationItem) string {
	parts := []string{}
	if item.Category != "" {
		parts = append(parts, string(item.Category))
	}
	if !item.CreatedAt.IsZero() {
		parts = append(parts, item.CreatedAt.Local().Format("Jan 2 15:04"))
	}
	return strings.Join(parts, " · ")
}

func oneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// popoverBounds reports the screen rectangle of the open panel.
func (m *Model) popoverBounds() (x, y, w, h int) {
	lines := m.renderPopover()
	w = lipgloss.Width(strings.Join(lines, "\n"))
	return max(0, m.width-w), 1, w, len(lines)
}
