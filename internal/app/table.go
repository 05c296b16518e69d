package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Cell is one table value: either PlainText or LinkText.
type Cell interface {
	Text() string
}

type PlainText string

func (p PlainText) Text() string {
	return string(p)
}

// LinkText is rendered as a link; Href is what gets copied or followed.
type LinkText struct {
	Label string
	Href  string
}

func (l LinkText) Text() string {
	return l.Label
}

type tableRow struct {
	ID    string
	Cells []Cell
}

type tableView struct {
	columns  []string
	rows     []tableRow
	cursor   int
	offset   int
	marked   map[string]bool
	focused  bool
	maxWidth int
}

// visibleRows clamps the scroll window so the cursor stays on screen.
func (t *tableView) visibleRows(height int) (int, int) {
	if height <= 0 || len(t.rows) == 0 {
		return 0, 0
	}
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+height {
		t.offset = t.cursor - height + 1
	}
	t.offset = clamp(t.offset, 0, max(0, len(t.rows)-height))
	return t.offset, min(len(t.rows), t.offset+height)
}

// render draws the table in at most height lines, header and borders included.
func (t *tableView) render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	const chrome = 4
	start, end := t.visibleRows(max(1, height-chrome))
	rows := make([][]string, 0, end-start)
	for _, row := range t.rows[start:end] {
		values := make([]string, len(t.columns))
		for i := range t.columns {
			if i < len(row.Cells) && row.Cells[i] != nil {
				values[i] = sanitizeCell(row.Cells[i].Text())
			}
		}
		if len(values) > 0 && t.marked[row.ID] {
			values[0] = "• " + values[0]
		}
		rows = append(rows, values)
	}
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = strings.ToUpper(col)
	}
	cellWidth := cellBudget(width, len(t.columns))
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dividerStyle).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			style := tableCellStyle
			index := start + row
			if index < 0 || index >= len(t.rows) {
				return style
			}
			source := t.rows[index]
			if col < len(source.Cells) {
				if _, ok := source.Cells[col].(LinkText); ok {
					style = style.Inherit(linkStyle)
				}
			}
			if t.marked[source.ID] {
				style = style.Inherit(markedStyle)
			}
			if t.focused && index == t.cursor {
				style = style.Inherit(selectedStyle)
			}
			return style.MaxWidth(cellWidth)
		})
	return tbl.String()
}

func (t *tableView) moveCursor(delta int) {
	if len(t.rows) == 0 {
		t.cursor = 0
		return
	}
	t.cursor = clamp(t.cursor+delta, 0, len(t.rows)-1)
}

func (t *tableView) selected() (tableRow, bool) {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return tableRow{}, false
	}
	return t.rows[t.cursor], true
}

func (t *tableView) toggleMark() {
	row, ok := t.selected()
	if !ok || row.ID == "" {
		return
	}
	if t.marked == nil {
		t.marked = map[string]bool{}
	}
	if t.marked[row.ID] {
		delete(t.marked, row.ID)
		return
	}
	t.marked[row.ID] = true
}

func (t *tableView) markedIDs() []string {
	ids := make([]string, 0, len(t.marked))
	for _, row := range t.rows {
		if t.marked[row.ID] {
			ids = append(ids, row.ID)
		}
	}
	return ids
}

func (t *tableView) setRows(rows []tableRow) {
	t.rows = rows
	keep := map[string]bool{}
	for _, row := range rows {
		if t.marked[row.ID] {
			keep[row.ID] = true
		}
	}
	t.marked = keep
	t.moveCursor(0)
}

func cellBudget(width, columns int) int {
	if columns <= 0 {
		return width
	}
	return max(4, (width-columns-1)/columns)
}

func sanitizeCell(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(text)
}
