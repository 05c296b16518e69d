package app

import (
	"context"

	"crmdash/internal/client"
	"crmdash/internal/notifications"
	"crmdash/internal/types"
)

// NotificationFeed is the slice of the synchronizer the dashboard drives.
type NotificationFeed interface {
	Updates() <-chan struct{}
	Snapshot() notifications.Snapshot
	TakeFresh() []types.NotificationItem
	MarkRead(id string) bool
	MarkAllRead() int
}

type RecordsAPI interface {
	Records(ctx context.Context, name types.Resource) ([]map[string]any, error)
	DeleteRecords(ctx context.Context, name types.Resource, ids []string) []client.DeleteResult
}

var (
	_ NotificationFeed = (*notifications.Synchronizer)(nil)
	_ RecordsAPI       = (*client.Client)(nil)
)
