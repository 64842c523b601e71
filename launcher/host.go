package launcher

import (
	"context"

	todoist "github.com/nicolagi/todoist-launcher"
)

// Host is what the plugin needs from the launcher it runs in. Config reads return false if the key is unset or
// holds a value of another type.
type Host interface {
	ReadString(key string) (string, bool)
	ReadInt(key string) (int, bool)
	ReadBool(key string) (bool, bool)
	WriteConfig(key string, value interface{}) error

	OpenURL(url string) error
	Notify(title, message string) error
}

// Remote is the subset of *todoist.Client used by the plugin.
type Remote interface {
	todoist.Fetcher
	AddTask(ctx context.Context, text string) (*todoist.Task, error)
	CompleteTask(ctx context.Context, id string) error
	SetToken(token string)
}
