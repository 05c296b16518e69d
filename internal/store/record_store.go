package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

const (
	recordCreatedAtKey = "createdAt"
	recordUpdatedAtKey = "updatedAt"
)

type bboltRecordStore struct {
	db     *bolt.DB
	bucket []byte
	mu     sync.Mutex
	now    func() time.Time
}

// List returns records in creation order.
func (s *bboltRecordStore) List(ctx context.Context) ([]Record, error) {
	out := make([]Record, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var record Record
			if err := json.Unmarshal(v, &record); err != nil {
				return err
			}
			out = append(out, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		left, _ := out[i][recordCreatedAtKey].(string)
		right, _ := out[j][recordCreatedAtKey].(string)
		if left == right {
			return out[i].ID() < out[j].ID()
		}
		return left < right
	})
	return out, nil
}

func (s *bboltRecordStore) Get(ctx context.Context, id string) (Record, bool, error) {
	var (
		record Record
		ok     bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		record, ok, err = s.get(tx, id)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return record, ok, nil
}

func (s *bboltRecordStore) Create(ctx context.Context, record Record) (Record, error) {
	if record == nil {
		return nil, errors.New("record is required")
	}
	stamp := s.now().UTC().Format(time.RFC3339Nano)
	out := cloneRecord(record)
	out[RecordIDKey] = uuid.NewString()
	out[recordCreatedAtKey] = stamp
	out[recordUpdatedAtKey] = stamp

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return s.put(tx, out)
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// Update merges patch into the stored record. Identity and creation time are
// never taken from the patch.
func (s *bboltRecordStore) Update(ctx context.Context, id string, patch Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out Record
	err := s.db.Update(func(tx *bolt.Tx) error {
		existing, ok, err := s.get(tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrRecordNotFound
		}
		for k, v := range patch {
			if k == RecordIDKey || k == recordCreatedAtKey {
				continue
			}
			existing[k] = v
		}
		existing[recordUpdatedAtKey] = s.now().UTC().Format(time.RFC3339Nano)
		if err := s.put(tx, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *bboltRecordStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		key := []byte(strings.TrimSpace(id))
		if b == nil || b.Get(key) == nil {
			return ErrRecordNotFound
		}
		return b.Delete(key)
	})
}

func (s *bboltRecordStore) get(tx *bolt.Tx, id string) (Record, bool, error) {
	id = strings.TrimSpace(id)
	b := tx.Bucket(s.bucket)
	if b == nil || id == "" {
		return nil, false, nil
	}
	raw := b.Get([]byte(id))
	if len(raw) == 0 {
		return nil, false, nil
	}
	var record Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, false, err
	}
	return record, true, nil
}

func (s *bboltRecordStore) put(tx *bolt.Tx, record Record) error {
	b := tx.Bucket(s.bucket)
	if b == nil {
		return fmt.Errorf("bucket %s missing", s.bucket)
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return b.Put([]byte(record.ID()), data)
}
