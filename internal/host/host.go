// Package host implements the launcher's side of the plugin contract for the programs in cmd/: configuration in a
// YAML file managed with viper, the API token in the OS keyring, desktop notifications and URL opening.
package host

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/nicolagi/todoist-launcher/internal/notify"
	"github.com/nicolagi/todoist-launcher/launcher"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name the API token is stored under in the OS keyring.
	KeyringService = "todoist-launcher"

	// TokenEnv is consulted when neither the config file nor the keyring hold a token.
	TokenEnv = "TODOIST_API_TOKEN"

	// KeyFuzzy is a host setting: whether the launcher matches fuzzily.
	KeyFuzzy = "fuzzy"
)

// ErrNoToken is returned by Token when no token is configured anywhere.
var ErrNoToken = errors.New("no API token configured")

// Keyring stores secrets. The default implementation is the OS keyring.
type Keyring interface {
	Get(service, user string) (string, error)
	Set(service, user, secret string) error
}

type systemKeyring struct{}

func (systemKeyring) Get(service, user string) (string, error) {
	return keyring.Get(service, user)
}

func (systemKeyring) Set(service, user, secret string) error {
	return keyring.Set(service, user, secret)
}

// Desktop shows notifications and opens URLs.
type Desktop interface {
	Notify(title, message string) error
	OpenURL(url string) error
}

// Option configures a Host built with New.
type Option func(*Host)

// WithKeyring replaces the OS keyring, e.g., with an in-memory one in tests.
func WithKeyring(k Keyring) Option {
	return func(h *Host) {
		h.keyring = k
	}
}

// WithDesktop replaces the notification and URL handlers.
func WithDesktop(d Desktop) Option {
	return func(h *Host) {
		h.desktop = d
	}
}

// WithLogger sets the logger used for host-side diagnostics.
func WithLogger(logger log.FieldLogger) Option {
	return func(h *Host) {
		h.log = logger
	}
}

// WithGetenv replaces os.Getenv.
func WithGetenv(getenv func(string) string) Option {
	return func(h *Host) {
		h.getenv = getenv
	}
}

// Host implements launcher.Host. Its methods are safe for concurrent use.
type Host struct {
	path    string
	keyring Keyring
	desktop Desktop
	log     log.FieldLogger
	getenv  func(string) string

	mu sync.RWMutex
	v  *viper.Viper

	watcher *fsnotify.Watcher
}

var _ launcher.Host = (*Host)(nil)

// DefaultConfigPath returns $XDG_CONFIG_HOME/todoist-launcher/config.yaml, or its equivalent on other systems.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "todoist-launcher", "config.yaml"), nil
}

// New loads the configuration file at path. A missing file is not an error; it will be created on the first
// write.
func New(path string, opts ...Option) (*Host, error) {
	h := &Host{
		path:    path,
		keyring: systemKeyring{},
		desktop: notify.New(),
		log:     log.StandardLogger(),
		getenv:  os.Getenv,
	}
	for _, opt := range opts {
		opt(h)
	}
	v, err := h.load()
	if err != nil {
		return nil, err
	}
	h.v = v
	return h, nil
}

func (h *Host) load() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(h.path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config %q: %w", h.path, err)
		}
		h.log.WithField("path", h.path).Debug("No config file yet")
	}
	return v, nil
}

// Path returns the configuration file's path.
func (h *Host) Path() string {
	return h.path
}

func (h *Host) get(key string) (interface{}, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.v.IsSet(key) {
		return nil, false
	}
	return h.v.Get(key), true
}

// ReadString implements launcher.Host. The API token falls back to the keyring, then to the environment.
func (h *Host) ReadString(key string) (string, bool) {
	if key == launcher.KeyAPIToken {
		token, err := h.Token()
		return token, err == nil
	}
	v, ok := h.get(key)
	if !ok {
		return "", false
	}
	s, err := cast.ToStringE(v)
	return s, err == nil
}

// ReadInt implements launcher.Host.
func (h *Host) ReadInt(key string) (int, bool) {
	v, ok := h.get(key)
	if !ok {
		return 0, false
	}
	n, err := cast.ToIntE(v)
	return n, err == nil
}

// ReadBool implements launcher.Host.
func (h *Host) ReadBool(key string) (bool, bool) {
	v, ok := h.get(key)
	if !ok {
		return false, false
	}
	b, err := cast.ToBoolE(v)
	return b, err == nil
}

// WriteConfig implements launcher.Host by setting the key and rewriting the whole file.
func (h *Host) WriteConfig(key string, value interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.v.Set(key, value)
	if err := os.MkdirAll(filepath.Dir(h.path), 0700); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := h.v.WriteConfigAs(h.path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Token returns the API token from, in order of preference, the config file, the keyring, the environment.
func (h *Host) Token() (string, error) {
	if v, ok := h.get(launcher.KeyAPIToken); ok {
		if token := cast.ToString(v); token != "" {
			return token, nil
		}
	}
	token, err := h.keyring.Get(KeyringService, launcher.KeyAPIToken)
	if err == nil && token != "" {
		return token, nil
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		h.log.WithField("cause", err).Debug("Could not read keyring")
	}
	if token := h.getenv(TokenEnv); token != "" {
		return token, nil
	}
	return "", ErrNoToken
}

// StoreToken saves the API token in the keyring, keeping it out of the config file.
func (h *Host) StoreToken(token string) error {
	if err := h.keyring.Set(KeyringService, launcher.KeyAPIToken, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// OpenURL implements launcher.Host.
func (h *Host) OpenURL(url string) error {
	return h.desktop.OpenURL(url)
}

// Notify implements launcher.Host.
func (h *Host) Notify(title, message string) error {
	return h.desktop.Notify(title, message)
}
