package app

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"crmdash/internal/shell"
)

const (
	sidebarTitle   = "crmdash"
	chevronLabel   = " « "
	sidebarNavTop  = 2
	sidebarDivider = "│"
)

func (m *Model) renderSidebar(props shell.Props, width, height int) []string {
	lines := make([]string, 0, height)
	title := sidebarTitleStyle.Render(" " + sidebarTitle)
	if props.ChevronVisible {
		pad := max(0, width-xansi.StringWidth(title)-xansi.StringWidth(chevronLabel))
		title += sidebarStyle.Render(strings.Repeat(" ", pad)) + sidebarTitleStyle.Render(chevronLabel)
	}
	lines = append(lines, title, "")
	for i, entry := range navEntries {
		style := navStyle
		prefix := "  "
		if i == m.page {
			style = navActiveStyle
		}
		if m.focus == focusSidebar && i == m.navCursor {
			style = navCursorStyle
			prefix = "› "
		}
		lines = append(lines, style.Render(fitLine(prefix+entry.Label, width)))
	}
	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = sidebarStyle.Render(fitLine(line, width))
	}
	return out
}

// chevronHit reports whether a click on the sidebar header hits the close
// control.
func chevronHit(props shell.Props, width, x, bodyRow int) bool {
	if !props.ChevronVisible || bodyRow != 0 {
		return false
	}
	return x >= width-xansi.StringWidth(chevronLabel) && x < width
}

// navIndexAt maps a body row inside the sidebar to a navigation entry.
func navIndexAt(bodyRow int) (int, bool) {
	index := bodyRow - sidebarNavTop
	if index < 0 || index >= len(navEntries) {
		return 0, false
	}
	return index, true
}

// renderBody lays out the sidebar and page content for every body row.
// The overlay sidebar covers a dimmed copy of the content instead of
// pushing it aside.
func (m *Model) renderBody(props shell.Props, height int) []string {
	sidebarWidth := sidebarWidthFor(props.IsOpen, props.Overlay, m.width)
	if sidebarWidth == 0 {
		return m.renderContent(m.width, height)
	}
	side := m.renderSidebar(props, sidebarWidth, height)
	out := make([]string, height)
	if props.Overlay {
		content := m.renderContent(m.width, height)
		for i := range out {
			out[i] = side[i] + backdropLine(content[i], sidebarWidth, m.width)
		}
		return out
	}
	contentWidth := max(0, m.width-sidebarWidth-1)
	content := m.renderContent(contentWidth, height)
	divider := dividerStyle.Render(sidebarDivider)
	for i := range out {
		out[i] = side[i] + divider + content[i]
	}
	return out
}

// contentOrigin is the first screen column of page content.
func (m *Model) contentOrigin(props shell.Props) int {
	if !props.IsOpen || props.Overlay {
		return 0
	}
	return sidebarWidthFor(true, false, m.width) + 1
}
