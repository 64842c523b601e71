package launcher_test

import (
	"context"
	"sync"

	todoist "github.com/nicolagi/todoist-launcher"
)

// fakeHost keeps config in a map and records what the plugin asked of it.
type fakeHost struct {
	mu            sync.Mutex
	config        map[string]interface{}
	opened        []string
	notifications []string
}

func newFakeHost(config map[string]interface{}) *fakeHost {
	if config == nil {
		config = make(map[string]interface{})
	}
	return &fakeHost{config: config}
}

func (h *fakeHost) read(key string) (interface{}, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.config[key]
	return v, ok
}

func (h *fakeHost) ReadString(key string) (string, bool) {
	v, _ := h.read(key)
	s, ok := v.(string)
	return s, ok
}

func (h *fakeHost) ReadInt(key string) (int, bool) {
	v, _ := h.read(key)
	n, ok := v.(int)
	return n, ok
}

func (h *fakeHost) ReadBool(key string) (bool, bool) {
	v, _ := h.read(key)
	b, ok := v.(bool)
	return b, ok
}

func (h *fakeHost) WriteConfig(key string, value interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.config[key] = value
	return nil
}

func (h *fakeHost) OpenURL(url string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.opened = append(h.opened, url)
	return nil
}

func (h *fakeHost) Notify(title, message string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notifications = append(h.notifications, title+": "+message)
	return nil
}

func (h *fakeHost) Opened() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.opened...)
}

func (h *fakeHost) Notifications() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.notifications...)
}

// fakeRemote serves a canned snapshot and records commands.
type fakeRemote struct {
	mu        sync.Mutex
	snapshot  *todoist.Snapshot
	syncErr   error
	syncs     int
	added     []string
	completed []string
	tokens    []string
}

func (r *fakeRemote) Sync(ctx context.Context) (*todoist.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.syncs++
	return r.snapshot, r.syncErr
}

func (r *fakeRemote) AddTask(ctx context.Context, text string) (*todoist.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added = append(r.added, text)
	return &todoist.Task{ID: "new", Content: text}, nil
}

func (r *fakeRemote) CompleteTask(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, id)
	return nil
}

func (r *fakeRemote) SetToken(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = append(r.tokens, token)
}

func (r *fakeRemote) Syncs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.syncs
}
