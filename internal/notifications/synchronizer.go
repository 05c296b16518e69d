// Package notifications keeps a local unread view of the backend
// notification feed in sync by polling, and applies mark-as-read actions
// optimistically.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"crmdash/internal/logging"
	"crmdash/internal/poll"
	"crmdash/internal/types"
)

const (
	DefaultPollInterval       = poll.DefaultInterval
	DefaultMarkAllConcurrency = 4
)

var (
	// ErrFetch wraps transient failures of a feed fetch. The previous unread
	// view is kept and the next poll retries.
	ErrFetch = errors.New("failed to fetch notifications")
	// ErrMarkRead wraps a rejected or failed read confirmation. The next
	// fetch reconciles the view.
	ErrMarkRead = errors.New("failed to mark notification read")
	// ErrFetchInFlight is returned when a fetch is requested while another
	// one has not resolved yet.
	ErrFetchInFlight = errors.New("notification fetch already in flight")
	ErrStopped       = errors.New("notification feed stopped")
)

// API is the backend surface the synchronizer consumes.
type API interface {
	ListNotifications(ctx context.Context) ([]types.NotificationItem, error)
	MarkNotificationRead(ctx context.Context, id string) (*types.NotificationItem, error)
}

type Options struct {
	Interval           time.Duration
	MarkAllConcurrency int
	Logger             logging.Logger
	Now                func() time.Time
	// TickSource overrides the wall-clock poll ticker.
	TickSource poll.TickSource
}

// Snapshot is an immutable copy of the unread view.
type Snapshot struct {
	Items     []types.NotificationItem
	Loaded    bool
	Fetching  bool
	Err       error
	FetchedAt time.Time
}

// Unread is derived from the collection and never tracked separately.
func (s Snapshot) Unread() int {
	return len(s.Items)
}

func (s Snapshot) Failed() bool {
	return s.Err != nil
}

// readTombstone hides a marked item from fetch results. Once the
// confirmation resolves it records the latest fetch sequence started so far;
// only a fetch started after that one may drop it.
type readTombstone struct {
	resolved bool
	seq      uint64
}

type Synchronizer struct {
	api                API
	interval           time.Duration
	markAllConcurrency int
	logger             logging.Logger
	now                func() time.Time
	ticks              poll.TickSource

	mu          sync.Mutex
	items       map[string]types.NotificationItem
	pendingRead map[string]readTombstone
	fetchSeq    uint64
	announced   map[string]struct{}
	fresh       []types.NotificationItem
	baseline    bool
	loaded      bool
	fetching    bool
	fetchErr    error
	fetchedAt   time.Time
	started     bool
	stopped     bool
	confirmCtx  context.Context
	handle      *poll.Handle

	confirms sync.WaitGroup
	updates  chan struct{}
}

func New(api API, opts Options) *Synchronizer {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	concurrency := opts.MarkAllConcurrency
	if concurrency <= 0 {
		concurrency = DefaultMarkAllConcurrency
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Synchronizer{
		api:                api,
		interval:           interval,
		markAllConcurrency: concurrency,
		logger:             logger.With(logging.F("component", "notifications")),
		now:                now,
		ticks:              opts.TickSource,
		items:              map[string]types.NotificationItem{},
		pendingRead:        map[string]readTombstone{},
		announced:          map[string]struct{}{},
		confirmCtx:         context.Background(),
		updates:            make(chan struct{}, 1),
	}
}

// Start fetches immediately and then on every interval until Stop or ctx is
// cancelled. Calling Start twice has no effect.
func (s *Synchronizer) Start(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.confirmCtx = context.WithoutCancel(ctx)
	opts := []poll.Option{}
	if s.ticks != nil {
		opts = append(opts, poll.WithTickSource(s.ticks))
	}
	s.mu.Unlock()

	handle := poll.Start(ctx, s.interval, func(callCtx context.Context) {
		err := s.FetchUnread(callCtx)
		if err != nil && !errors.Is(err, ErrFetchInFlight) && !errors.Is(err, ErrStopped) {
			s.logger.Warn("notification poll failed", logging.F("error", err))
		}
	}, opts...)

	s.mu.Lock()
	s.handle = handle
	stopped := s.stopped
	s.mu.Unlock()
	if stopped {
		handle.Stop()
	}
}

// Stop cancels polling. Requests already in flight still complete, but their
// results no longer touch the view.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.updates)
	handle := s.handle
	s.mu.Unlock()
	handle.Stop()
}

// Wait blocks until polling and every outstanding read confirmation returned.
func (s *Synchronizer) Wait() {
	s.mu.Lock()
	handle := s.handle
	s.mu.Unlock()
	handle.Wait()
	s.confirms.Wait()
}

// Updates signals after every change to the view. Signals coalesce. The
// channel is closed by Stop.
func (s *Synchronizer) Updates() <-chan struct{} {
	return s.updates
}

// FetchUnread replaces the unread view with the backend's current unread set.
// On failure the previous view is kept and the error is retained for display.
func (s *Synchronizer) FetchUnread(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return ErrStopped
	}
	if s.fetching {
		s.mu.Unlock()
		return ErrFetchInFlight
	}
	s.fetching = true
	s.fetchSeq++
	seq := s.fetchSeq
	s.mu.Unlock()
	s.notify()

	items, err := s.api.ListNotifications(ctx)

	s.mu.Lock()
	s.fetching = false
	if s.stopped {
		s.mu.Unlock()
		return ErrStopped
	}
	if err != nil {
		s.fetchErr = fmt.Errorf("%w: %w", ErrFetch, err)
		fetchErr := s.fetchErr
		s.mu.Unlock()
		s.notify()
		return fetchErr
	}
	s.reconcileLocked(items, seq)
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Synchronizer) reconcileLocked(items []types.NotificationItem, seq uint64) {
	for id, tomb := range s.pendingRead {
		if tomb.resolved && seq > tomb.seq {
			delete(s.pendingRead, id)
		}
	}
	next := make(map[string]types.NotificationItem, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" || item.Read {
			continue
		}
		if _, pending := s.pendingRead[id]; pending {
			continue
		}
		if _, dup := next[id]; dup {
			continue
		}
		item.ID = id
		next[id] = item
	}
	if s.baseline {
		for id, item := range next {
			if _, seen := s.announced[id]; !seen {
				s.fresh = append(s.fresh, item)
			}
		}
	}
	for id := range next {
		s.announced[id] = struct{}{}
	}
	s.baseline = true
	s.items = next
	s.loaded = true
	s.fetchErr = nil
	s.fetchedAt = s.now()
}

// MarkRead removes id from the unread view immediately and confirms with the
// backend in the background. A failed confirmation is not rolled back; the
// next fetch restores the item if the backend still reports it unread. It
// reports whether id was held locally.
func (s *Synchronizer) MarkRead(id string) bool {
	id = strings.TrimSpace(id)
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return false
	}
	if _, ok := s.items[id]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.items, id)
	s.pendingRead[id] = readTombstone{}
	ctx := s.confirmCtx
	s.confirms.Add(1)
	s.mu.Unlock()
	s.notify()

	go func() {
		defer s.confirms.Done()
		s.confirm(ctx, id)
	}()
	return true
}

// MarkAllRead clears every held item at once and confirms each one
// independently. It returns how many items were cleared.
func (s *Synchronizer) MarkAllRead() int {
	s.mu.Lock()
	if s.stopped || len(s.items) == 0 {
		s.mu.Unlock()
		return 0
	}
	ids := make([]string, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
		s.pendingRead[id] = readTombstone{}
	}
	sort.Strings(ids)
	s.items = map[string]types.NotificationItem{}
	ctx := s.confirmCtx
	s.confirms.Add(1)
	s.mu.Unlock()
	s.notify()

	go func() {
		defer s.confirms.Done()
		var group errgroup.Group
		group.SetLimit(s.markAllConcurrency)
		for _, id := range ids {
			group.Go(func() error {
				s.confirm(ctx, id)
				return nil
			})
		}
		_ = group.Wait()
	}()
	return len(ids)
}

func (s *Synchronizer) confirm(ctx context.Context, id string) {
	_, err := s.api.MarkNotificationRead(ctx, id)

	s.mu.Lock()
	s.pendingRead[id] = readTombstone{resolved: true, seq: s.fetchSeq}
	stopped := s.stopped
	s.mu.Unlock()
	if stopped {
		return
	}
	if err != nil {
		s.logger.Warn("notification read not confirmed",
			logging.F("id", id),
			logging.F("error", fmt.Errorf("%w: %w", ErrMarkRead, err)),
		)
		return
	}
	s.logger.Debug("notification marked read", logging.F("id", id))
}

// Snapshot returns the unread items, newest first.
func (s *Synchronizer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]types.NotificationItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sortNewestFirst(items)
	return Snapshot{
		Items:     items,
		Loaded:    s.loaded,
		Fetching:  s.fetching,
		Err:       s.fetchErr,
		FetchedAt: s.fetchedAt,
	}
}

// TakeFresh drains the items first seen since the last call. The initial
// fetch only establishes a baseline and yields nothing; an id is yielded at
// most once per synchronizer.
func (s *Synchronizer) TakeFresh() []types.NotificationItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.fresh) == 0 {
		return nil
	}
	out := make([]types.NotificationItem, 0, len(s.fresh))
	for _, item := range s.fresh {
		if _, held := s.items[item.ID]; held {
			out = append(out, item)
		}
	}
	s.fresh = nil
	sortNewestFirst(out)
	return out
}

func (s *Synchronizer) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

func sortNewestFirst(items []types.NotificationItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
