// Package notify sends desktop notifications by shelling out to the platform's notification tool.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// CommandExecutor runs a system command. Tests replace it to capture what would have been run.
type CommandExecutor interface {
	Execute(cmd string, args ...string) error
}

// ExecutorFunc adapts a function to CommandExecutor.
type ExecutorFunc func(cmd string, args ...string) error

// Execute implements CommandExecutor.
func (f ExecutorFunc) Execute(cmd string, args ...string) error {
	return f(cmd, args...)
}

type execExecutor struct{}

func (execExecutor) Execute(cmd string, args ...string) error {
	return exec.Command(cmd, args...).Run()
}

type option func(*Notifier)

// WithExecutor replaces the command executor.
func WithExecutor(e CommandExecutor) option {
	return func(n *Notifier) {
		n.executor = e
	}
}

// WithPlatform overrides runtime.GOOS.
func WithPlatform(platform string) option {
	return func(n *Notifier) {
		n.platform = platform
	}
}

// Notifier sends notifications via notify-send on Linux and osascript on macOS.
type Notifier struct {
	executor CommandExecutor
	platform string
}

// New creates a notifier for the current platform.
func New(opts ...option) *Notifier {
	n := &Notifier{
		executor: execExecutor{},
		platform: runtime.GOOS,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify shows a notification with the given title and message.
func (n *Notifier) Notify(title, message string) error {
	switch n.platform {
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(message), escapeAppleScript(title))
		return n.executor.Execute("osascript", "-e", script)
	case "windows":
		return fmt.Errorf("notify: unsupported platform: %s", n.platform)
	default:
		return n.executor.Execute("notify-send", "--app-name=Todoist", title, message)
	}
}

// OpenURL opens url with the desktop's default handler.
func (n *Notifier) OpenURL(url string) error {
	switch n.platform {
	case "darwin":
		return n.executor.Execute("open", url)
	case "windows":
		return n.executor.Execute("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return n.executor.Execute("xdg-open", url)
	}
}

// escapeAppleScript escapes backslashes and double quotes for AppleScript string literals.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
