package tui_test

import (
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicolagi/todoist-launcher/internal/tui"
	"github.com/nicolagi/todoist-launcher/launcher"
)

// fakeLauncher returns one item per query, echoing it, with two recording actions.
type fakeLauncher struct {
	mu        sync.Mutex
	queries   []string
	ran       []string
	refreshes []bool
}

func (l *fakeLauncher) HandleQuery(query string) []launcher.Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queries = append(l.queries, query)
	record := func(id string) func() {
		return func() {
			l.mu.Lock()
			l.ran = append(l.ran, id)
			l.mu.Unlock()
		}
	}
	return []launcher.Item{
		{ID: "1", Text: "first " + query, Subtext: "Inbox", Actions: []launcher.Action{
			{ID: "open", Text: "Open Task", Run: record("1/open")},
			{ID: "done", Text: "Mark as done", Run: record("1/done")},
		}},
		{ID: "2", Text: "second " + query, Actions: []launcher.Action{
			{ID: "open", Text: "Open Task", Run: record("2/open")},
		}},
	}
}

func (l *fakeLauncher) Refresh(notify bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refreshes = append(l.refreshes, notify)
	return true
}

func (l *fakeLauncher) Wait() {}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// exec runs a command to completion, as the bubbletea runtime would, and feeds its message back.
func exec(t *testing.T, m *tui.Model, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	m.Update(cmd())
}

func TestInitialView(t *testing.T) {
	l := &fakeLauncher{}
	m := tui.New(l)
	assert.Equal(t, []string{""}, l.queries)
	view := m.View()
	assert.Contains(t, view, "first ")
	assert.Contains(t, view, "Inbox")
}

func TestTypingRequeries(t *testing.T) {
	l := &fakeLauncher{}
	m := tui.New(l)
	m.Update(key("m"))
	m.Update(key("i"))
	assert.Equal(t, []string{"", "m", "mi"}, l.queries)
	assert.Equal(t, "first mi", m.Items()[0].Text)
}

func TestCursorMovement(t *testing.T) {
	m := tui.New(&fakeLauncher{})
	m.Update(key("down"))
	item, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "2", item.ID)
	m.Update(key("down"))
	item, _ = m.Selected()
	assert.Equal(t, "2", item.ID, "cursor stays on the last item")
	m.Update(key("up"))
	m.Update(key("up"))
	item, _ = m.Selected()
	assert.Equal(t, "1", item.ID)
}

func TestEnterRunsFirstAction(t *testing.T) {
	l := &fakeLauncher{}
	m := tui.New(l)
	_, cmd := m.Update(key("enter"))
	exec(t, m, cmd)
	assert.Equal(t, []string{"1/open"}, l.ran)
	assert.Contains(t, m.View(), "Open Task: first ")
}

func TestCtrlDRunsSecondAction(t *testing.T) {
	l := &fakeLauncher{}
	m := tui.New(l)
	_, cmd := m.Update(key("ctrl+d"))
	exec(t, m, cmd)
	assert.Equal(t, []string{"1/done"}, l.ran)

	m.Update(key("down"))
	_, cmd = m.Update(key("ctrl+d"))
	assert.Nil(t, cmd, "the second item has a single action")
}

func TestSync(t *testing.T) {
	l := &fakeLauncher{}
	m := tui.New(l)
	_, cmd := m.Update(key("ctrl+r"))
	exec(t, m, cmd)
	assert.Equal(t, []bool{true}, l.refreshes)
	assert.Contains(t, m.View(), "Synced")
}

func TestQuit(t *testing.T) {
	m := tui.New(&fakeLauncher{})
	_, cmd := m.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
