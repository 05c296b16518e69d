package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"crmdash/internal/types"
)

type bboltNotificationStore struct {
	db  *bolt.DB
	mu  sync.Mutex
	now func() time.Time
}

func (s *bboltNotificationStore) List(ctx context.Context, filter NotificationFilter) ([]*types.NotificationItem, error) {
	userID := strings.TrimSpace(filter.UserID)
	out := make([]*types.NotificationItem, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotifications)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var item types.NotificationItem
			if err := json.Unmarshal(v, &item); err != nil {
				return err
			}
			if userID != "" && item.UserID != userID {
				return nil
			}
			if filter.UnreadOnly && item.Read {
				return nil
			}
			out = append(out, cloneNotification(&item))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *bboltNotificationStore) Get(ctx context.Context, id string) (*types.NotificationItem, bool, error) {
	var (
		item *types.NotificationItem
		ok   bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		item, ok, err = getNotification(tx, id)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return item, ok, nil
}

func (s *bboltNotificationStore) Create(ctx context.Context, req types.CreateNotificationRequest) (*types.NotificationItem, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, errors.New("message is required")
	}
	category, ok := types.NormalizeNotificationCategory(string(req.Type))
	if !ok {
		return nil, errors.New("type must be one of account, campaign, meeting, lead, deal")
	}
	item := &types.NotificationItem{
		ID:        uuid.NewString(),
		UserID:    strings.TrimSpace(req.UserID),
		Message:   message,
		Category:  category,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.db.Update(func(tx *bolt.Tx) error {
		return putNotification(tx, item)
	})
	if err != nil {
		return nil, err
	}
	return cloneNotification(item), nil
}

// MarkRead flips the read flag once. A second call reports ErrAlreadyRead.
func (s *bboltNotificationStore) MarkRead(ctx context.Context, id string) (*types.NotificationItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out *types.NotificationItem
	err := s.db.Update(func(tx *bolt.Tx) error {
		item, ok, err := getNotification(tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotificationNotFound
		}
		if item.Read {
			return ErrAlreadyRead
		}
		item.Read = true
		if err := putNotification(tx, item); err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *bboltNotificationStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotifications)
		if b == nil {
			return ErrNotificationNotFound
		}
		key := []byte(strings.TrimSpace(id))
		if b.Get(key) == nil {
			return ErrNotificationNotFound
		}
		return b.Delete(key)
	})
}

func getNotification(tx *bolt.Tx, id string) (*types.NotificationItem, bool, error) {
	id = strings.TrimSpace(id)
	b := tx.Bucket(bucketNotifications)
	if b == nil || id == "" {
		return nil, false, nil
	}
	raw := b.Get([]byte(id))
	if len(raw) == 0 {
		return nil, false, nil
	}
	var item types.NotificationItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, false, err
	}
	return &item, true, nil
}

func putNotification(tx *bolt.Tx, item *types.NotificationItem) error {
	b := tx.Bucket(bucketNotifications)
	if b == nil {
		return errors.New("notifications bucket missing")
	}
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return b.Put([]byte(item.ID), data)
}
