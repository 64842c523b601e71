package notify_test

import (
	"strings"
	"testing"

	"github.com/nicolagi/todoist-launcher/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	cmd  string
	args []string
}

func recorder(calls *[]call) notify.ExecutorFunc {
	return func(cmd string, args ...string) error {
		*calls = append(*calls, call{cmd: cmd, args: args})
		return nil
	}
}

func TestNotifyLinux(t *testing.T) {
	var calls []call
	n := notify.New(notify.WithPlatform("linux"), notify.WithExecutor(recorder(&calls)))
	require.Nil(t, n.Notify("Todoist", "Synced 3 tasks"))
	require.Len(t, calls, 1)
	assert.Equal(t, "notify-send", calls[0].cmd)
	assert.Equal(t, []string{"--app-name=Todoist", "Todoist", "Synced 3 tasks"}, calls[0].args)
}

func TestNotifyDarwinEscapes(t *testing.T) {
	var calls []call
	n := notify.New(notify.WithPlatform("darwin"), notify.WithExecutor(recorder(&calls)))
	require.Nil(t, n.Notify("Todoist", `Task added: say "hi"`))
	require.Len(t, calls, 1)
	assert.Equal(t, "osascript", calls[0].cmd)
	assert.True(t, strings.Contains(calls[0].args[1], `say \"hi\"`))
}

func TestNotifyWindowsUnsupported(t *testing.T) {
	var calls []call
	n := notify.New(notify.WithPlatform("windows"), notify.WithExecutor(recorder(&calls)))
	assert.NotNil(t, n.Notify("a", "b"))
	assert.Empty(t, calls)
}

func TestOpenURL(t *testing.T) {
	testCases := []struct {
		platform string
		cmd      string
	}{
		{platform: "linux", cmd: "xdg-open"},
		{platform: "freebsd", cmd: "xdg-open"},
		{platform: "darwin", cmd: "open"},
		{platform: "windows", cmd: "rundll32"},
	}
	for _, tc := range testCases {
		t.Run(tc.platform, func(t *testing.T) {
			var calls []call
			n := notify.New(notify.WithPlatform(tc.platform), notify.WithExecutor(recorder(&calls)))
			require.Nil(t, n.OpenURL("https://todoist.com"))
			require.Len(t, calls, 1)
			assert.Equal(t, tc.cmd, calls[0].cmd)
			assert.Equal(t, "https://todoist.com", calls[0].args[len(calls[0].args)-1])
		})
	}
}
