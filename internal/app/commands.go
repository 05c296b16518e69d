package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"crmdash/internal/types"
)

const (
	tickInterval        = 250 * time.Millisecond
	recordsFetchTimeout = 8 * time.Second
)

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func settleViewportCmd(delay time.Duration, seq, width int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return viewportSettledMsg{seq: seq, width: width}
	})
}

// waitForFeedCmd blocks until the synchronizer signals a change. A closed
// channel ends the subscription.
func waitForFeedCmd(updates <-chan struct{}) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return nil
		}
		return feedUpdatedMsg{}
	}
}

func fetchRecordsCmd(api RecordsAPI, resource types.Resource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recordsFetchTimeout)
		defer cancel()
		records, err := api.Records(ctx, resource)
		return recordsMsg{resource: resource, records: records, err: err}
	}
}

func deleteRecordsCmd(api RecordsAPI, resource types.Resource, ids []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recordsFetchTimeout)
		defer cancel()
		return recordsDeletedMsg{resource: resource, results: api.DeleteRecords(ctx, resource, ids)}
	}
}
