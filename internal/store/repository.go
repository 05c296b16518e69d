package store

import (
	"context"
	"errors"

	"crmdash/internal/types"
)

const RepositoryBackendBbolt = "bbolt"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrAlreadyRead          = errors.New("notification already read")
	ErrRecordNotFound       = errors.New("record not found")
	ErrUnknownResource      = errors.New("unknown resource")
)

type Repository interface {
	Notifications() NotificationStore
	Records(resource types.Resource) (RecordStore, error)
	Backend() string
	Close() error
}

type NotificationFilter struct {
	UserID     string
	UnreadOnly bool
}

type NotificationStore interface {
	List(ctx context.Context, filter NotificationFilter) ([]*types.NotificationItem, error)
	Get(ctx context.Context, id string) (*types.NotificationItem, bool, error)
	Create(ctx context.Context, req types.CreateNotificationRequest) (*types.NotificationItem, error)
	MarkRead(ctx context.Context, id string) (*types.NotificationItem, error)
	Delete(ctx context.Context, id string) error
}

// Record is an opaque CRM document. The "_id" key is owned by the store.
type Record map[string]any

const RecordIDKey = "_id"

func (r Record) ID() string {
	id, _ := r[RecordIDKey].(string)
	return id
}

type RecordStore interface {
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id string) (Record, bool, error)
	Create(ctx context.Context, record Record) (Record, error)
	Update(ctx context.Context, id string, patch Record) (Record, error)
	Delete(ctx context.Context, id string) error
}

func cloneNotification(item *types.NotificationItem) *types.NotificationItem {
	if item == nil {
		return nil
	}
	out := *item
	return &out
}

func cloneRecord(record Record) Record {
	out := make(Record, len(record))
	for k, v := range record {
		out[k] = v
	}
	return out
}
