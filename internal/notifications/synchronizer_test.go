package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"crmdash/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeAPI struct {
	mu         sync.Mutex
	items      []types.NotificationItem
	listErr    error
	listGate   chan struct{}
	listCalls  int
	markGate   chan struct{}
	markErr    map[string]error
	markCalls  []string
	listSignal chan struct{}
}

func newFakeAPI(items ...types.NotificationItem) *fakeAPI {
	return &fakeAPI{items: items, markErr: map[string]error{}}
}

func (f *fakeAPI) ListNotifications(ctx context.Context) ([]types.NotificationItem, error) {
	f.mu.Lock()
	f.listCalls++
	gate := f.listGate
	signal := f.listSignal
	f.mu.Unlock()
	if signal != nil {
		signal <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]types.NotificationItem{}, f.items...), nil
}

func (f *fakeAPI) MarkNotificationRead(ctx context.Context, id string) (*types.NotificationItem, error) {
	f.mu.Lock()
	gate := f.markGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markCalls = append(f.markCalls, id)
	if err := f.markErr[id]; err != nil {
		return nil, err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeAPI) set(items ...types.NotificationItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
}

func note(id string, minute int) types.NotificationItem {
	return types.NotificationItem{
		ID:        id,
		Message:   "revenue changed in Account table",
		Category:  types.NotificationCategoryAccount,
		CreatedAt: time.Date(2025, 5, 1, 10, minute, 0, 0, time.UTC),
	}
}

func ids(snapshot Snapshot) []string {
	out := make([]string, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		out = append(out, item.ID)
	}
	return out
}

func TestFetchUnreadFiltersReadAndSortsNewestFirst(t *testing.T) {
	read := note("n2", 5)
	read.Read = true
	api := newFakeAPI(note("n1", 1), read, note("n3", 9))
	s := New(api, Options{})

	require.NoError(t, s.FetchUnread(context.Background()))
	snap := s.Snapshot()
	require.Equal(t, []string{"n3", "n1"}, ids(snap))
	require.Equal(t, 2, snap.Unread())
	require.True(t, snap.Loaded)
	require.False(t, snap.Failed())
}

func TestFetchUnreadIsIdempotent(t *testing.T) {
	api := newFakeAPI(note("n1", 1), note("n2", 2))
	s := New(api, Options{Now: func() time.Time { return time.Unix(100, 0) }})

	require.NoError(t, s.FetchUnread(context.Background()))
	first := s.Snapshot()
	require.NoError(t, s.FetchUnread(context.Background()))
	second := s.Snapshot()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("snapshot changed between identical fetches (-first +second):\n%s", diff)
	}
}

func TestFetchUnreadDeduplicatesByID(t *testing.T) {
	api := newFakeAPI(note("n1", 1), note("n1", 1), note(" n1 ", 1), note("n2", 2), note("", 3))
	s := New(api, Options{})
	require.NoError(t, s.FetchUnread(context.Background()))
	require.Equal(t, []string{"n2", "n1"}, ids(s.Snapshot()))
}

func TestFetchUnreadReplacesWholesale(t *testing.T) {
	api := newFakeAPI(note("n1", 1), note("n2", 2))
	s := New(api, Options{})
	require.NoError(t, s.FetchUnread(context.Background()))

	api.set(note("n3", 3))
	require.NoError(t, s.FetchUnread(context.Background()))
	require.Equal(t, []string{"n3"}, ids(s.Snapshot()))
}

func TestFetchFailureKeepsPreviousView(t *testing.T) {
	api := newFakeAPI(note("n1", 1))
	s := New(api, Options{})
	require.NoError(t, s.FetchUnread(context.Background()))

	api.mu.Lock()
	api.listErr = errors.New("connection refused")
	api.mu.Unlock()
	err := s.FetchUnread(context.Background())
	require.ErrorIs(t, err, ErrFetch)

	snap := s.Snapshot()
	require.Equal(t, []string{"n1"}, ids(snap))
	require.True(t, snap.Failed())

	api.mu.Lock()
	api.listErr = nil
	api.mu.Unlock()
	require.NoError(t, s.FetchUnread(context.Background()))
	require.False(t, s.Snapshot().Failed())
}

func TestConcurrentFetchIsRejected(t *testing.T) {
	api := newFakeAPI(note("n1", 1))
	api.listGate = make(chan struct{})
	api.listSignal = make(chan struct{}, 1)
	s := New(api, Options{})

	done := make(chan error, 1)
	go func() { done <- s.FetchUnread(context.Background()) }()
	<-api.listSignal
	require.True(t, s.Snapshot().Fetching)

	require.ErrorIs(t, s.FetchUnread(context.Background()), ErrFetchInFlight)
	close(api.listGate)
	require.NoError(t, <-done)
	require.Equal(t, 1, api.listCalls)
}

func TestMarkReadRemovesBeforeConfirmation(t *testing.T) {
	api := newFakeAPI(note("n1", 1), note("n2", 2))
	s := New(api, Options{})
	require.NoError(t, s.FetchUnread(context.Background()))

	api.markGate = make(chan struct{})
	require.True(t, s.MarkRead("n1"))
	require.Equal(t, []string{"n2"}, ids(s.Snapshot()))

	close(api.markGate)
	s.Wait()
	require.Equal(t, []string{"n1"}, api.markCalls)
}

func TestMarkReadUnknownID(t *testing.T) {
	s := New(newFakeAPI(), Options{})
	require.False(t, s.MarkRead("missing"))
}

func TestInFlightFetchDoesNotResurrectMarkedItem(t *testing.T) {
	api := newFakeAPI(note("n1", 1), note("n2", 2))
	s := New(api, Options{})
	require.NoError(t, s.FetchUnread(context.Background()))

	api.listGate = make(chan struct{})
	api.listSignal = make(chan struct{}, 1)
	api.markGate = make(chan struct{})

	done := make(chan error, 1)
	go func() { done <- s.FetchUnread(context.Background()) }()
	<-api.listSignal
	require.True(t, s.MarkRead("n1"))
	close(api.listGate)
	require.NoError(t, <-done)
	require.Equal(t, []string{"n2"}, ids(s.Snapshot()))

	close(api.markGate)
	s.Wait()
}

func TestFetchStartedBeforeConfirmationCannotResurrect(t *testing.T) {
	api := newFakeAPI(note("n1", 1), note("n2", 2))
	s := New(api, Options{})
	require.NoError(t, s.FetchUnread(context.Background()))

	api.mu.Lock()
	api.listGate = make(chan struct{})
	api.listSignal = make(chan struct{}, 1)
	api.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- s.FetchUnread(context.Background()) }()
	<-api.listSignal
	require.True(t, s.MarkRead("n1"))
	s.Wait()
	require.Equal(t, []string{"n1"}, api.markCalls)

	// The gated response was built before the read landed.
	api.set(note("n1", 1), note("n2", 2))
	close(api.listGate)
	require.NoError(t, <-done)
	require.Equal(t, []string{"n2"}, ids(s.Snapshot()))

	api.mu.Lock()
	api.listGate = nil
	api.listSignal = nil
	api.mu.Unlock()
	read := note("n1", 1)
	read.Read = true
	api.set(read, note("n2", 2))
	require.NoError(t, s.FetchUnread(context.Background()))
	require.Equal(t, []string{"n2"}, ids(s.Snapshot()))

	api.set(note("n1", 1), note("n2", 2))
	require.NoError(t, s.FetchUnread(context.Background()))
	require.Equal(t, []string{"n2", "n1"}, ids(s.Snapshot()))
}

func TestStopClosesUpdates(t *testing.T) {
	s := New(newFakeAPI(note("n1", 1)), Options{})
	require.NoError(t, s.FetchUnread(context.Background()))
	s.Stop()
	s.Stop()

	for range s.Updates() {
	}
	require.ErrorIs(t, s.FetchUnread(context.Background()), ErrStopped)
}

func TestFailedMarkReadIsReconciledByNextFetch(t *testing.T) {
	api := newFakeAPI(note("n1", 1))
	api.markErr["n1"] = errors.New("conflict")
	s := New(api, Options{})
	require.NoError(t, s.FetchUnread(context.Background()))

	require.True(t, s.MarkRead("n1"))
	s.Wait()
	require.Empty(t, s.Snapshot().Items)

	require.NoError(t, s.FetchUnread(context.Background()))
	require.Equal(t, []string{"n1"}, ids(s.Snapshot()))
}

func TestMarkAllReadClearsRegardlessOfOutcome(t *testing.T) {
	api := newFakeAPI(note("n1", 1), note("n2", 2), note("n3", 3))
	api.markErr["n2"] = errors.New("boom")
	s := New(api, Options{MarkAllConcurrency: 2})
	require.NoError(t, s.FetchUnread(context.Background()))

	api.markGate = make(chan struct{})
	require.Equal(t, 3, s.MarkAllRead())
	require.Equal(t, 0, s.Snapshot().Unread())

	close(api.markGate)
	s.Wait()
	require.ElementsMatch(t, []string{"n1", "n2", "n3"}, api.markCalls)
	require.Equal(t, 0, s.MarkAllRead())
}

func TestFreshItemsAnnouncedOnce(t *testing.T) {
	api := newFakeAPI(note("n1", 1))
	s := New(api, Options{})
	require.NoError(t, s.FetchUnread(context.Background()))
	require.Empty(t, s.TakeFresh())

	api.set(note("n1", 1), note("n2", 2), note("n3", 3))
	require.NoError(t, s.FetchUnread(context.Background()))
	fresh := s.TakeFresh()
	require.Len(t, fresh, 2)
	require.Equal(t, "n3", fresh[0].ID)

	require.NoError(t, s.FetchUnread(context.Background()))
	require.Empty(t, s.TakeFresh())
}

func TestStartFetchesImmediatelyAndStopDiscardsResults(t *testing.T) {
	api := newFakeAPI(note("n1", 1))
	ticks := make(chan time.Time)
	s := New(api, Options{
		Interval: time.Hour,
		TickSource: func(time.Duration) (<-chan time.Time, func()) {
			return ticks, func() {}
		},
	})
	s.Start(context.Background())

	select {
	case <-s.Updates():
	case <-time.After(time.Second):
		t.Fatalf("expected update from immediate fetch")
	}
	require.Eventually(t, func() bool { return s.Snapshot().Loaded }, time.Second, 5*time.Millisecond)

	api.set(note("n1", 1), note("n2", 2))
	ticks <- time.Now()
	require.Eventually(t, func() bool { return s.Snapshot().Unread() == 2 }, time.Second, 5*time.Millisecond)

	api.mu.Lock()
	api.listGate = make(chan struct{})
	api.listSignal = make(chan struct{}, 1)
	api.mu.Unlock()
	ticks <- time.Now()
	<-api.listSignal
	s.Stop()
	api.set()
	close(api.listGate)
	s.Wait()

	require.Equal(t, 2, s.Snapshot().Unread())
	require.False(t, s.MarkRead("n1"))
	require.ErrorIs(t, s.FetchUnread(context.Background()), ErrStopped)
}
