package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"crmdash/internal/logging"
	"crmdash/internal/types"
)

// pageResources lists the collections a page shows. The dashboard pulls one
// per card.
func pageResources(entry navEntry) []types.Resource {
	if entry.Resource != "" {
		return []types.Resource{entry.Resource}
	}
	out := make([]types.Resource, 0, len(dashboardCards))
	for _, card := range dashboardCards {
		out = append(out, card.Resource)
	}
	return out
}

func (m *Model) loadPage(index int) tea.Cmd {
	entry := navEntries[clamp(index, 0, len(navEntries)-1)]
	cmds := []tea.Cmd{}
	for _, resource := range pageResources(entry) {
		ps := m.pages[resource]
		if ps == nil || ps.loaded || ps.loading {
			continue
		}
		cmds = append(cmds, m.startLoad(resource))
	}
	return m.withSpinner(cmds)
}

func (m *Model) reloadPage() tea.Cmd {
	cmds := []tea.Cmd{}
	for _, resource := range pageResources(m.currentEntry()) {
		if ps := m.pages[resource]; ps != nil && !ps.loading {
			cmds = append(cmds, m.startLoad(resource))
		}
	}
	return m.withSpinner(cmds)
}

func (m *Model) withSpinner(cmds []tea.Cmd) tea.Cmd {
	started := false
	for _, cmd := range cmds {
		if cmd != nil {
			started = true
		}
	}
	if !started {
		return nil
	}
	return tea.Batch(append(cmds, m.loader.Tick)...)
}

func (m *Model) startLoad(resource types.Resource) tea.Cmd {
	if m.records == nil {
		return nil
	}
	m.pages[resource].loading = true
	return fetchRecordsCmd(m.records, resource)
}

func (m *Model) handleRecords(msg recordsMsg) {
	ps := m.pages[msg.resource]
	if ps == nil {
		return
	}
	ps.loading = false
	if msg.err != nil {
		ps.err = msg.err
		m.logger.Warn("records_fetch_failed",
			logging.F("resource", string(msg.resource)),
			logging.F("error", msg.err),
		)
		return
	}
	ps.err = nil
	ps.loaded = true
	ps.records = msg.records
	rows, err := resourceTables[msg.resource].rows(msg.records)
	ps.table.setRows(rows)
	if err != nil {
		m.logger.Warn("records_decode_failed",
			logging.F("resource", string(msg.resource)),
			logging.F("error", err),
		)
		m.showWarningToast("some " + string(msg.resource) + " could not be read")
	}
}

func (m *Model) handleRecordsDeleted(msg recordsDeletedMsg) tea.Cmd {
	ps := m.pages[msg.resource]
	if ps == nil {
		return nil
	}
	failed := 0
	var firstErr error
	for _, result := range msg.results {
		if result.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = result.Err
			}
			continue
		}
		delete(ps.table.marked, result.ID)
	}
	if failed > 0 {
		m.logger.Warn("records_delete_failed",
			logging.F("resource", string(msg.resource)),
			logging.F("failed", failed),
			logging.F("error", firstErr),
		)
		m.showErrorToast(fmt.Sprintf("%d of %d deletes failed: %v", failed, len(msg.results), firstErr))
	} else {
		m.showInfoToast(fmt.Sprintf("deleted %d %s", len(msg.results), pluralize(len(msg.results), "record", "records")))
	}
	return m.withSpinner([]tea.Cmd{m.startLoad(msg.resource)})
}

func (m *Model) deleteMarked(resource types.Resource) tea.Cmd {
	ps := m.pages[resource]
	ids := ps.table.markedIDs()
	if len(ids) == 0 {
		m.showWarningToast("select rows with space first")
		return nil
	}
	if m.records == nil {
		return nil
	}
	return deleteRecordsCmd(m.records, resource, ids)
}

func (m *Model) openDetail(resource types.Resource) {
	ps := m.pages[resource]
	row, ok := ps.table.selected()
	if !ok {
		return
	}
	if record := recordByID(ps.records, row.ID); record != nil {
		m.detail = record
	}
}

func (m *Model) copySelectedLink(ps *pageState) {
	row, ok := ps.table.selected()
	if !ok {
		return
	}
	for _, cell := range row.Cells {
		if link, ok := cell.(LinkText); ok && link.Href != "" {
			m.copyWithStatus(link.Href, "link copied")
			return
		}
	}
	m.showWarningToast("row has no link")
}

func recordByID(records []map[string]any, id string) map[string]any {
	if id == "" {
		return nil
	}
	for _, record := range records {
		if raw, _ := record["_id"].(string); raw == id {
			return record
		}
	}
	return nil
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
