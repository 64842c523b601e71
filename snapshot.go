package todoist

import (
	"strings"
	"sync/atomic"
	"time"
)

// Snapshot is the result of one sync: projects, tasks and the user, as one unit. The slices keep the order in
// which Todoist returned the entities. A Snapshot must not be modified once it has been passed to Store.Replace.
type Snapshot struct {
	Projects []*Project
	Tasks    []*Task
	User     *User

	SyncToken string
	SyncedAt  time.Time
}

func newSnapshot(projects []*Project, tasks []*Task, user *User, token string, at time.Time) *Snapshot {
	if projects == nil {
		projects = []*Project{}
	}
	if tasks == nil {
		tasks = []*Task{}
	}
	if user == nil {
		user = &User{}
	}
	return &Snapshot{
		Projects:  projects,
		Tasks:     tasks,
		User:      user,
		SyncToken: token,
		SyncedAt:  at,
	}
}

// NewSnapshot builds a snapshot from already decoded entities. Nil arguments become empty values.
func NewSnapshot(projects []*Project, tasks []*Task, user *User) *Snapshot {
	return newSnapshot(projects, tasks, user, "", time.Now())
}

// Empty reports whether the snapshot has never been populated by a sync.
func (s *Snapshot) Empty() bool {
	return s.SyncedAt.IsZero()
}

// ProjectByID looks up the project by id (no remote call is made).
func (s *Snapshot) ProjectByID(id string) (*Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// ProjectByName is analogous to ProjectByID, comparing names case-insensitively.
func (s *Snapshot) ProjectByName(name string) (*Project, bool) {
	for _, p := range s.Projects {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return nil, false
}

// TaskByID is analogous to ProjectByID.
func (s *Snapshot) TaskByID(id string) (*Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Store holds the current Snapshot. Readers never block, not even while a sync is running; they get the last
// snapshot that was fully replaced.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns a store holding an empty snapshot.
func NewStore() *Store {
	s := new(Store)
	s.current.Store(&Snapshot{
		Projects: []*Project{},
		Tasks:    []*Task{},
		User:     &User{},
	})
	return s
}

// Read returns the current snapshot. It is never nil.
func (s *Store) Read() *Snapshot {
	return s.current.Load()
}

// Replace atomically publishes a new snapshot. Nil is ignored.
func (s *Store) Replace(snapshot *Snapshot) {
	if snapshot == nil {
		return
	}
	s.current.Store(snapshot)
}
