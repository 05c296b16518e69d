package app

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"crmdash/internal/types"
)

type navEntry struct {
	Label    string
	Resource types.Resource
}

// navEntries is the sidebar order. The dashboard has no backing collection.
var navEntries = []navEntry{
	{Label: "Dashboard"},
	{Label: "Contacts", Resource: types.ResourceContacts},
	{Label: "Account", Resource: types.ResourceAccounts},
	{Label: "Task", Resource: types.ResourceTasks},
	{Label: "Campaign", Resource: types.ResourceCampaigns},
	{Label: "Meeting", Resource: types.ResourceMeetings},
	{Label: "Leads", Resource: types.ResourceLeads},
	{Label: "Deals", Resource: types.ResourceDeals},
}

type dashboardCard struct {
	Title    string
	Resource types.Resource
	Empty    string
}

var dashboardCards = []dashboardCard{
	{Title: "My Open Tasks", Resource: types.ResourceTasks, Empty: "No open tasks"},
	{Title: "My Meetings", Resource: types.ResourceMeetings, Empty: "No upcoming meetings"},
	{Title: "Today's Leads", Resource: types.ResourceLeads, Empty: "No leads for today"},
	{Title: "My Deals", Resource: types.ResourceDeals, Empty: "No deals closing this month"},
}

type resourceTable struct {
	columns []string
	rows    func(records []map[string]any) ([]tableRow, error)
}

var resourceTables = map[types.Resource]resourceTable{
	types.ResourceAccounts: {
		columns: []string{"Account Name", "Owner", "Number", "Website", "Type", "Revenue"},
		rows: typedRows(func(a types.Account) []Cell {
			return []Cell{
				detailLink(types.ResourceAccounts, a.ID, a.Name),
				PlainText(a.Owner),
				PlainText(a.Number),
				externalLink(a.Website),
				PlainText(a.Type),
				PlainText(a.Revenue.Format()),
			}
		}, func(a types.Account) string { return a.ID }),
	},
	types.ResourceContacts: {
		columns: []string{"Name", "Email", "Phone", "Date of Birth"},
		rows: typedRows(func(c types.Contact) []Cell {
			return []Cell{
				detailLink(types.ResourceContacts, c.ID, c.Name),
				PlainText(c.Email),
				PlainText(c.Phone),
				PlainText(formatDate(c.DOB)),
			}
		}, func(c types.Contact) string { return c.ID }),
	},
	types.ResourceTasks: {
		columns: []string{"Owner", "Subject", "Status", "Due Date", "Priority"},
		rows: typedRows(func(t types.Task) []Cell {
			return []Cell{
				PlainText(t.Owner),
				detailLink(types.ResourceTasks, t.ID, t.Subject),
				PlainText(t.Status),
				PlainText(formatDate(t.Due)),
				PlainText(t.Priority),
			}
		}, func(t types.Task) string { return t.ID }),
	},
	types.ResourceCampaigns: {
		columns: []string{"Campaign Name", "Type", "Status", "Budget", "Expected Revenue", "Start Date", "End Date"},
		rows: typedRows(func(c types.Campaign) []Cell {
			return []Cell{
				detailLink(types.ResourceCampaigns, c.ID, c.Name),
				PlainText(c.Type),
				PlainText(c.Status),
				PlainText(c.Budget.Format()),
				PlainText(c.ExpectedRevenue.Format()),
				PlainText(formatDate(c.StartDate)),
				PlainText(formatDate(c.EndDate)),
			}
		}, func(c types.Campaign) string { return c.ID }),
	},
	types.ResourceMeetings: {
		columns: []string{"Title", "From", "To", "Venue", "Host"},
		rows: typedRows(func(m types.Meeting) []Cell {
			return []Cell{
				detailLink(types.ResourceMeetings, m.ID, m.Name),
				PlainText(formatDateTime(m.From)),
				PlainText(formatDateTime(m.To)),
				PlainText(m.Venue),
				PlainText(m.Host),
			}
		}, func(m types.Meeting) string { return m.ID }),
	},
	types.ResourceLeads: {
		columns: []string{"Lead Owner", "First name", "Last name", "Phone", "Email", "Company"},
		rows: typedRows(func(l types.Lead) []Cell {
			return []Cell{
				PlainText(l.LeadOwner),
				detailLink(types.ResourceLeads, l.ID, l.FirstName),
				PlainText(l.LastName),
				PlainText(l.Phone),
				PlainText(l.Email),
				PlainText(l.Company),
			}
		}, func(l types.Lead) string { return l.ID }),
	},
	types.ResourceDeals: {
		columns: []string{"Deal Name", "Company Name", "Stage", "Close Date", "Deal Value"},
		rows: typedRows(func(d types.Deal) []Cell {
			value := ""
			if !d.DealValue.IsZero() {
				value = d.DealValue.Format()
			}
			return []Cell{
				detailLink(types.ResourceDeals, d.ID, d.Name),
				PlainText(d.Company),
				PlainText(d.Stage),
				PlainText(formatDate(d.CloseDate)),
				PlainText(value),
			}
		}, func(d types.Deal) string { return d.ID }),
	},
}

// typedRows decodes raw documents into T before building cells, so money
// and identity handling stays in the types package. A document that does not
// fit T still gets a row so it can be inspected or deleted.
func typedRows[T any](cells func(T) []Cell, id func(T) string) func([]map[string]any) ([]tableRow, error) {
	return func(records []map[string]any) ([]tableRow, error) {
		rows := make([]tableRow, 0, len(records))
		var firstErr error
		for _, record := range records {
			data, err := json.Marshal(record)
			if err != nil {
				return nil, err
			}
			var item T
			if err := json.Unmarshal(data, &item); err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("decode record: %w", err)
				}
				rawID, _ := record["_id"].(string)
				rows = append(rows, tableRow{ID: rawID, Cells: []Cell{PlainText("(unreadable record)")}})
				continue
			}
			rows = append(rows, tableRow{ID: id(item), Cells: cells(item)})
		}
		return rows, firstErr
	}
}

func detailLink(resource types.Resource, id, label string) Cell {
	label = strings.TrimSpace(label)
	if id == "" {
		return PlainText(label)
	}
	singular := strings.TrimSuffix(string(resource), "s")
	return LinkText{Label: label, Href: "/" + singular + "/" + id}
}

func externalLink(url string) Cell {
	url = strings.TrimSpace(url)
	if url == "" {
		return PlainText("")
	}
	return LinkText{Label: url, Href: url}
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatDate(raw string) string {
	if t, ok := parseDate(raw); ok {
		return t.Format("2006-01-02")
	}
	return strings.TrimSpace(raw)
}

func formatDateTime(raw string) string {
	if t, ok := parseDate(raw); ok {
		return t.Format("2006-01-02 15:04")
	}
	return strings.TrimSpace(raw)
}

// recordDetail lists every field of a raw document as "key: value" lines,
// identity first.
func recordDetail(record map[string]any) []string {
	keys := make([]string, 0, len(record))
	for key := range record {
		if key == "_id" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys)+1)
	if id, ok := record["_id"]; ok {
		lines = append(lines, fmt.Sprintf("id: %v", id))
	}
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", key, record[key]))
	}
	return lines
}
