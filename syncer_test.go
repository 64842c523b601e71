package todoist_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	todoist "github.com/nicolagi/todoist-launcher"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingFetcher returns its canned result once release is closed.
type blockingFetcher struct {
	mu       sync.Mutex
	calls    int
	started  chan struct{}
	release  chan struct{}
	snapshot *todoist.Snapshot
	err      error
	panics   bool
}

func newBlockingFetcher(snapshot *todoist.Snapshot, err error) *blockingFetcher {
	return &blockingFetcher{
		started:  make(chan struct{}, 10),
		release:  make(chan struct{}),
		snapshot: snapshot,
		err:      err,
	}
}

func (f *blockingFetcher) Sync(ctx context.Context) (*todoist.Snapshot, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	f.started <- struct{}{}
	<-f.release
	if f.panics {
		panic("boom")
	}
	return f.snapshot, f.err
}

func (f *blockingFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(title, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, title+": "+message)
	return nil
}

func (n *recordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

func waitStarted(t *testing.T, f *blockingFetcher) {
	t.Helper()
	select {
	case <-f.started:
	case <-time.After(5 * time.Second):
		t.Fatal("sync did not start")
	}
}

func TestSyncerReplacesStore(t *testing.T) {
	store := todoist.NewStore()
	fresh := testSnapshot()
	fetcher := newBlockingFetcher(fresh, nil)
	notifier := &recordingNotifier{}
	var hooked *todoist.Snapshot
	logger, _ := test.NewNullLogger()
	syncer := todoist.NewSyncer(fetcher, store,
		todoist.WithLogger(logger),
		todoist.WithNotifier(notifier),
		todoist.WithSyncedHook(func(s *todoist.Snapshot) { hooked = s }),
	)

	require.True(t, syncer.RequestSync(true))
	waitStarted(t, fetcher)
	assert.True(t, syncer.Syncing())
	close(fetcher.release)
	syncer.Wait()

	assert.False(t, syncer.Syncing())
	assert.Same(t, fresh, store.Read())
	assert.Same(t, fresh, hooked)
	assert.Equal(t, []string{"Todoist: Synced 5 tasks"}, notifier.Messages())
}

func TestSyncerWithoutNotify(t *testing.T) {
	fetcher := newBlockingFetcher(testSnapshot(), nil)
	close(fetcher.release)
	notifier := &recordingNotifier{}
	logger, _ := test.NewNullLogger()
	syncer := todoist.NewSyncer(fetcher, todoist.NewStore(), todoist.WithLogger(logger), todoist.WithNotifier(notifier))

	require.True(t, syncer.RequestSync(false))
	syncer.Wait()
	assert.Empty(t, notifier.Messages())
}

func TestSyncerSingleFlight(t *testing.T) {
	store := todoist.NewStore()
	fetcher := newBlockingFetcher(testSnapshot(), nil)
	logger, hook := test.NewNullLogger()
	syncer := todoist.NewSyncer(fetcher, store, todoist.WithLogger(logger))

	require.True(t, syncer.RequestSync(false))
	waitStarted(t, fetcher)
	before := store.Read()
	for i := 0; i < 5; i++ {
		assert.False(t, syncer.RequestSync(true))
	}
	assert.Same(t, before, store.Read())

	close(fetcher.release)
	syncer.Wait()
	assert.Equal(t, 1, fetcher.Calls())

	var dropped int
	for _, e := range hook.AllEntries() {
		if e.Message == "Sync already in progress" {
			dropped++
		}
	}
	assert.Equal(t, 5, dropped)

	// Once idle, requests are accepted again.
	fetcher.started = make(chan struct{}, 10)
	require.True(t, syncer.RequestSync(false))
	syncer.Wait()
	assert.Equal(t, 2, fetcher.Calls())
}

func TestSyncerFailureKeepsSnapshot(t *testing.T) {
	testCases := []struct {
		err   error
		level log.Level
	}{
		{err: &todoist.StatusError{Op: "sync", Code: 500}, level: log.WarnLevel},
		{err: &todoist.TransportError{Op: "sync", Err: errors.New("timeout")}, level: log.ErrorLevel},
	}
	for _, tc := range testCases {
		t.Run("", func(t *testing.T) {
			store := todoist.NewStore()
			stale := testSnapshot()
			store.Replace(stale)
			fetcher := newBlockingFetcher(nil, tc.err)
			close(fetcher.release)
			notifier := &recordingNotifier{}
			logger, hook := test.NewNullLogger()
			syncer := todoist.NewSyncer(fetcher, store, todoist.WithLogger(logger), todoist.WithNotifier(notifier))

			require.True(t, syncer.RequestSync(true))
			syncer.Wait()

			assert.Same(t, stale, store.Read())
			assert.False(t, syncer.Syncing())
			assert.Empty(t, notifier.Messages())
			require.NotNil(t, hook.LastEntry())
			assert.Equal(t, tc.level, hook.LastEntry().Level)
		})
	}
}

func TestSyncerPanicResetsFlag(t *testing.T) {
	store := todoist.NewStore()
	fetcher := newBlockingFetcher(nil, nil)
	fetcher.panics = true
	close(fetcher.release)
	logger, _ := test.NewNullLogger()
	syncer := todoist.NewSyncer(fetcher, store, todoist.WithLogger(logger))

	require.True(t, syncer.RequestSync(false))
	syncer.Wait()
	assert.False(t, syncer.Syncing())
	assert.True(t, store.Read().Empty())
}

type instantFetcher struct {
	calls int32
}

func (f *instantFetcher) Sync(ctx context.Context) (*todoist.Snapshot, error) {
	atomic.AddInt32(&f.calls, 1)
	return testSnapshot(), nil
}

func TestSyncerConcurrentRequestAndWait(t *testing.T) {
	fetcher := &instantFetcher{}
	store := todoist.NewStore()
	logger, _ := test.NewNullLogger()
	syncer := todoist.NewSyncer(fetcher, store, todoist.WithLogger(logger))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				syncer.RequestSync(false)
				syncer.Wait()
			}
		}()
	}
	wg.Wait()
	syncer.Wait()

	assert.False(t, syncer.Syncing())
	assert.False(t, store.Read().Empty())
	assert.True(t, atomic.LoadInt32(&fetcher.calls) > 0)
}

func TestSyncerWaitBeforeAnySync(t *testing.T) {
	logger, _ := test.NewNullLogger()
	syncer := todoist.NewSyncer(&instantFetcher{}, todoist.NewStore(), todoist.WithLogger(logger))
	syncer.Wait()
	assert.False(t, syncer.Syncing())
}

func TestSyncerWaitersReleasedTogether(t *testing.T) {
	fetcher := newBlockingFetcher(testSnapshot(), nil)
	logger, _ := test.NewNullLogger()
	syncer := todoist.NewSyncer(fetcher, todoist.NewStore(), todoist.WithLogger(logger))

	require.True(t, syncer.RequestSync(false))
	waitStarted(t, fetcher)
	var released int32
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			syncer.Wait()
			atomic.AddInt32(&released, 1)
		}()
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&released))
	close(fetcher.release)
	wg.Wait()
	assert.Equal(t, int32(4), atomic.LoadInt32(&released))
}
