package todoist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Fetcher downloads a complete snapshot. *Client implements it.
type Fetcher interface {
	Sync(ctx context.Context) (*Snapshot, error)
}

// Notifier shows a short message to the user, e.g., a desktop notification.
type Notifier interface {
	Notify(title, message string) error
}

type syncerOption func(*Syncer)

// WithLogger sets the logger the syncer reports to. The default is the logrus standard logger.
func WithLogger(logger log.FieldLogger) syncerOption {
	return func(s *Syncer) {
		s.log = logger
	}
}

// WithNotifier sets where notified syncs report their outcome. Without one, notify requests are ignored.
func WithNotifier(n Notifier) syncerOption {
	return func(s *Syncer) {
		s.notifier = n
	}
}

// WithSyncedHook registers a function called with every snapshot published by the syncer, after it has been
// stored.
func WithSyncedHook(f func(*Snapshot)) syncerOption {
	return func(s *Syncer) {
		s.onSynced = f
	}
}

// Syncer refreshes a Store in the background. At most one sync runs at a time: requests arriving while one is in
// flight are dropped, not queued.
type Syncer struct {
	fetcher  Fetcher
	store    *Store
	notifier Notifier
	onSynced func(*Snapshot)
	log      log.FieldLogger

	mu      sync.Mutex
	syncing bool
	// Closed when the latest accepted sync is over; nil before the first one.
	done chan struct{}
}

// NewSyncer creates a syncer that fills store with snapshots obtained from fetcher.
func NewSyncer(fetcher Fetcher, store *Store, opts ...syncerOption) *Syncer {
	s := &Syncer{
		fetcher: fetcher,
		store:   store,
		log:     log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestSync starts a sync in a new goroutine and returns immediately. It returns false, without doing anything,
// if a sync is already in progress. On success the store is replaced and, if notify is set, the user is told how
// many tasks were synced. On failure the store keeps the last good snapshot and nobody is notified.
func (s *Syncer) RequestSync(notify bool) bool {
	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		s.log.Info("Sync already in progress")
		return false
	}
	s.syncing = true
	done := make(chan struct{})
	s.done = done
	s.mu.Unlock()
	go s.run(notify, done)
	return true
}

// Syncing reports whether a sync is in flight.
func (s *Syncer) Syncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncing
}

// Wait blocks until the sync in flight, if any, is over. It may be called from any number of goroutines, also
// while other syncs are being requested.
func (s *Syncer) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (s *Syncer) run(notify bool, done chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("cause", r).Error("Sync panicked")
		}
		s.mu.Lock()
		s.syncing = false
		close(done)
		s.mu.Unlock()
	}()
	s.log.Info("Syncing with Todoist...")
	snapshot, err := s.fetcher.Sync(context.Background())
	if err != nil {
		LogError(s.log, "sync", err)
		return
	}
	s.store.Replace(snapshot)
	if s.onSynced != nil {
		s.onSynced(snapshot)
	}
	s.log.WithFields(log.Fields{
		"projects": len(snapshot.Projects),
		"tasks":    len(snapshot.Tasks),
	}).Info("Synced")
	if notify && s.notifier != nil {
		if err := s.notifier.Notify("Todoist", fmt.Sprintf("Synced %d tasks", len(snapshot.Tasks))); err != nil {
			s.log.WithField("cause", err).Warning("Could not send notification")
		}
	}
}

// LogError logs a failed remote call: rejections at warning level with the status and whatever body Todoist sent,
// everything else at error level.
func LogError(logger log.FieldLogger, op string, err error) {
	var se *StatusError
	if errors.As(err, &se) {
		fields := log.Fields{
			"op":   op,
			"code": se.Code,
		}
		if se.Body != nil {
			fields["body"] = se.Body
		}
		logger.WithFields(fields).Warning("Request rejected")
		return
	}
	logger.WithFields(log.Fields{
		"op":    op,
		"cause": err,
	}).Error("Request failed")
}
