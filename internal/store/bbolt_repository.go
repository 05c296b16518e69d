package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"crmdash/internal/types"
)

var bucketNotifications = []byte("notifications")

type bboltRepository struct {
	db            *bolt.DB
	notifications NotificationStore
	records       map[types.Resource]RecordStore
}

func NewBboltRepository(path string) (Repository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("repository db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initBboltSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo := &bboltRepository{
		db:            db,
		notifications: &bboltNotificationStore{db: db, now: time.Now},
		records:       map[types.Resource]RecordStore{},
	}
	for _, resource := range types.Resources() {
		repo.records[resource] = &bboltRecordStore{db: db, bucket: []byte(resource), now: time.Now}
	}
	return repo, nil
}

func (r *bboltRepository) Notifications() NotificationStore {
	return r.notifications
}

func (r *bboltRepository) Records(resource types.Resource) (RecordStore, error) {
	store, ok := r.records[resource]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}
	return store, nil
}

func (r *bboltRepository) Backend() string {
	return RepositoryBackendBbolt
}

func (r *bboltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func initBboltSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketNotifications); err != nil {
			return err
		}
		for _, resource := range types.Resources() {
			if _, err := tx.CreateBucketIfNotExists([]byte(resource)); err != nil {
				return err
			}
		}
		return nil
	})
}
