package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"crmdash/internal/types"
)

const dashboardCardRows = 4

func (m *Model) renderContent(width, height int) []string {
	if width <= 0 || height <= 0 {
		return make([]string, max(0, height))
	}
	entry := m.currentEntry()
	var text string
	switch {
	case m.detail != nil:
		text = m.renderDetail(entry, width)
	case entry.Resource == "":
		text = m.renderDashboard(width)
	default:
		text = m.renderResourcePage(entry, width, height)
	}
	return fitBlock(text, width, height)
}

func (m *Model) renderDetail(entry navEntry, width int) string {
	lines := []string{headerStyle.Render(" " + entry.Label), ""}
	for _, line := range recordDetail(m.detail) {
		lines = append(lines, " "+truncateToWidth(oneLine(line), width-2))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderDashboard(width int) string {
	lines := []string{headerStyle.Render(fmt.Sprintf(" Welcome %s,", m.userLabel)), ""}
	cards := make([]string, 0, len(dashboardCards))
	cardWidth := width - 2
	twoUp := width >= 2*minCardWidth+3
	if twoUp {
		cardWidth = (width - 3) / 2
	}
	for _, card := range dashboardCards {
		cards = append(cards, m.renderCard(card, cardWidth))
	}
	if !twoUp {
		for _, card := range cards {
			lines = append(lines, indentBlock(card))
			lines = append(lines, "")
		}
		return strings.Join(lines, "\n")
	}
	for i := 0; i < len(cards); i += 2 {
		row := cards[i]
		if i+1 < len(cards) {
			row = lipgloss.JoinHorizontal(lipgloss.Top, cards[i], " ", cards[i+1])
		}
		lines = append(lines, indentBlock(row), "")
	}
	return strings.Join(lines, "\n")
}

const minCardWidth = 30

func (m *Model) renderCard(card dashboardCard, width int) string {
	inner := max(1, width-2)
	lines := []string{cardTitleStyle.Render(card.Title)}
	ps := m.pages[card.Resource]
	switch {
	case ps == nil:
	case ps.loading && !ps.loaded:
		lines = append(lines, emptyStateStyle.Render(m.loader.View()+" loading"))
	case ps.err != nil && !ps.loaded:
		lines = append(lines, errorTextStyle.Render(truncateToWidth("Failed to load "+string(card.Resource), inner)))
	case len(ps.table.rows) == 0:
		lines = append(lines, emptyStateStyle.Render(card.Empty))
	default:
		for i, row := range ps.table.rows {
			if i == dashboardCardRows {
				lines = append(lines, popoverMetaStyle.Render(fmt.Sprintf("%d more", len(ps.table.rows)-i)))
				break
			}
			lines = append(lines, truncateToWidth("• "+cardSummary(card.Resource, row), inner))
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Width(inner).
		Render(strings.Join(lines, "\n"))
}

// cardSummary picks the linked label of a row, falling back to its first
// non-empty cell.
func cardSummary(resource types.Resource, row tableRow) string {
	for _, cell := range row.Cells {
		if link, ok := cell.(LinkText); ok && strings.HasPrefix(link.Href, "/") {
			return link.Label
		}
	}
	for _, cell := range row.Cells {
		if cell != nil && strings.TrimSpace(cell.Text()) != "" {
			return cell.Text()
		}
	}
	return string(resource)
}

func (m *Model) renderResourcePage(entry navEntry, width, height int) string {
	ps := m.pages[entry.Resource]
	title := headerStyle.Render(" " + entry.Label)
	if ps.loaded {
		title += statusStyle.Render(fmt.Sprintf("  %d %s", len(ps.table.rows), pluralize(len(ps.table.rows), "record", "records")))
	}
	if n := len(ps.table.marked); n > 0 {
		title += markedStyle.Render(fmt.Sprintf("  %d selected", n))
	}
	lines := []string{title}
	switch {
	case ps.loading:
		lines = append(lines, statusStyle.Render(" "+m.loader.View()+" loading"))
	case ps.err != nil:
		lines = append(lines, errorTextStyle.Render(" "+truncateToWidth("Failed to load: "+ps.err.Error(), width-2)))
	default:
		lines = append(lines, "")
	}
	if !ps.loaded {
		return strings.Join(lines, "\n")
	}
	if len(ps.table.rows) == 0 {
		lines = append(lines, emptyStateStyle.Render(" No "+strings.ToLower(entry.Label)+" yet"))
		return strings.Join(lines, "\n")
	}
	ps.table.focused = m.focus == focusContent
	lines = append(lines, ps.table.render(width, height-len(lines)))
	return strings.Join(lines, "\n")
}

func indentBlock(block string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = " " + line
	}
	return strings.Join(lines, "\n")
}
