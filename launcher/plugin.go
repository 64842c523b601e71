package launcher

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	todoist "github.com/nicolagi/todoist-launcher"
	log "github.com/sirupsen/logrus"
)

// Metadata reported to the host.
const (
	ID             = "todoist"
	Name           = "Todoist"
	Description    = "Manage Todoist tasks"
	DefaultTrigger = "td "
	Synopsis       = "td <query> - Search and manage Todoist tasks"
)

const (
	settingsURL  = "albert://settings"
	todayURL     = "https://todoist.com/app/today"
	taskURL      = "https://app.todoist.com/app/task/%s"
	projectURL   = "https://app.todoist.com/app/project/%s"
	tokenHelpURL = "https://app.todoist.com/app/settings/integrations/developer"
)

// Option configures a Plugin built with New.
type Option func(*Plugin)

// WithLogger sets the logging sink. The default is the logrus standard logger.
func WithLogger(logger log.FieldLogger) Option {
	return func(p *Plugin) {
		p.log = logger
	}
}

// WithRemote replaces the Todoist client, e.g., with one pointing at a test server.
func WithRemote(r Remote) Option {
	return func(p *Plugin) {
		p.remote = r
	}
}

// WithClock replaces time.Now for deciding which tasks are due today.
func WithClock(now func() time.Time) Option {
	return func(p *Plugin) {
		p.now = now
	}
}

// WithSettingsURL sets the URL opened by the no-token item.
func WithSettingsURL(url string) Option {
	return func(p *Plugin) {
		p.settingsURL = url
	}
}

// Plugin is the Todoist launcher plugin. HandleQuery, Settings and SetFuzzyMatching are the callbacks a host
// registers; all other methods are for hosts that drive the plugin directly.
type Plugin struct {
	host        Host
	remote      Remote
	store       *todoist.Store
	syncer      *todoist.Syncer
	log         log.FieldLogger
	now         func() time.Time
	settingsURL string

	fuzzy atomic.Bool
}

// New creates a plugin running in host. No sync is started; call Refresh for that.
func New(host Host, opts ...Option) (*Plugin, error) {
	p := &Plugin{
		host:        host,
		log:         log.StandardLogger(),
		now:         time.Now,
		settingsURL: settingsURL,
		store:       todoist.NewStore(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.remote == nil {
		c, err := todoist.NewClient(p.apiToken())
		if err != nil {
			return nil, fmt.Errorf("new plugin: %w", err)
		}
		p.remote = c
	}
	p.syncer = todoist.NewSyncer(p.remote, p.store,
		todoist.WithLogger(p.log),
		todoist.WithNotifier(host),
		todoist.WithSyncedHook(p.saveSyncToken),
	)
	if p.apiToken() == "" {
		p.log.Info("No Todoist API token configured")
	}
	return p, nil
}

// SetFuzzyMatching switches between fuzzy and case-insensitive substring matching.
func (p *Plugin) SetFuzzyMatching(enabled bool) {
	p.fuzzy.Store(enabled)
}

// FuzzyMatching reports the current matching mode.
func (p *Plugin) FuzzyMatching() bool {
	return p.fuzzy.Load()
}

// Snapshot returns the data queries currently run against.
func (p *Plugin) Snapshot() *todoist.Snapshot {
	return p.store.Read()
}

// Refresh requests a background sync. It returns false if there is no token or a sync is already running.
func (p *Plugin) Refresh(notify bool) bool {
	token := p.apiToken()
	if token == "" {
		p.log.Warning("No API token configured")
		return false
	}
	p.remote.SetToken(token)
	return p.syncer.RequestSync(notify)
}

// Wait blocks until the sync in flight, if any, is over.
func (p *Plugin) Wait() {
	p.syncer.Wait()
}

// AddTask sends text to Todoist's quick-add, then syncs. Failures are logged, not returned: the launcher has
// nowhere to show them.
func (p *Plugin) AddTask(text string) {
	token := p.apiToken()
	if token == "" {
		return
	}
	p.remote.SetToken(token)
	task, err := p.remote.AddTask(context.Background(), text)
	if err != nil {
		todoist.LogError(p.log, "add", err)
		return
	}
	content := task.Content
	if content == "" {
		content = text
	}
	p.log.WithField("content", content).Info("Task added")
	if err := p.host.Notify("Todoist", "Task added: "+content); err != nil {
		p.log.WithField("cause", err).Warning("Could not send notification")
	}
	p.Refresh(true)
}

// CompleteTask closes the task, then syncs without notifying.
func (p *Plugin) CompleteTask(id string) {
	token := p.apiToken()
	if token == "" {
		return
	}
	p.remote.SetToken(token)
	if err := p.remote.CompleteTask(context.Background(), id); err != nil {
		todoist.LogError(p.log, "complete", err)
		return
	}
	p.log.WithField("id", id).Info("Task completed")
	p.Refresh(false)
}

func (p *Plugin) openURL(url string) {
	if err := p.host.OpenURL(url); err != nil {
		p.log.WithFields(log.Fields{
			"url":   url,
			"cause": err,
		}).Warning("Could not open URL")
	}
}

func (p *Plugin) saveSyncToken(snapshot *todoist.Snapshot) {
	if snapshot.SyncToken == "" {
		return
	}
	if err := p.host.WriteConfig(KeySyncToken, snapshot.SyncToken); err != nil {
		p.log.WithField("cause", err).Debug("Could not save sync token")
	}
}
