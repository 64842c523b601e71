// Package tui is a terminal launcher over the Todoist plugin: a query line and the items it yields.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nicolagi/todoist-launcher/launcher"
)

// Launcher is the subset of *launcher.Plugin the interface drives.
type Launcher interface {
	HandleQuery(query string) []launcher.Item
	Refresh(notify bool) bool
	Wait()
}

// Model represents the TUI state
type Model struct {
	launcher Launcher

	input  textinput.Model
	query  string
	items  []launcher.Item
	cursor int
	status string
	busy   bool

	width  int
	height int

	promptStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	itemStyle     lipgloss.Style
	subtextStyle  lipgloss.Style
	helpStyle     lipgloss.Style
	statusStyle   lipgloss.Style
}

type syncedMsg struct {
	started bool
}

type actionDoneMsg struct {
	item   string
	action string
}

// New creates a new TUI model. Nothing is fetched until Init runs.
func New(l Launcher) *Model {
	ti := textinput.New()
	ti.Prompt = strings.TrimSpace(launcher.DefaultTrigger) + " "
	ti.Placeholder = "today, add <task>, project <name>, or search..."
	ti.CharLimit = 512
	ti.Focus()

	m := &Model{
		launcher: l,
		input:    ti,
		promptStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
		selectedStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		itemStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		subtextStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			PaddingLeft(2),
		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		statusStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
	}
	m.requery()
	return m
}

// Init starts a background sync so the first results are fresh.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.sync(false))
}

func (m *Model) sync(notify bool) tea.Cmd {
	m.busy = true
	return func() tea.Msg {
		started := m.launcher.Refresh(notify)
		m.launcher.Wait()
		return syncedMsg{started: started}
	}
}

func (m *Model) run(item launcher.Item, n int) tea.Cmd {
	if n >= len(item.Actions) {
		return nil
	}
	action := item.Actions[n]
	m.busy = true
	m.status = action.Text + "..."
	return func() tea.Msg {
		action.Run()
		m.launcher.Wait()
		return actionDoneMsg{item: item.Text, action: action.Text}
	}
}

func (m *Model) requery() {
	m.items = m.launcher.HandleQuery(m.query)
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the item under the cursor.
func (m *Model) Selected() (launcher.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return launcher.Item{}, false
	}
	return m.items[m.cursor], true
}

// Items returns the items currently shown.
func (m *Model) Items() []launcher.Item {
	return m.items
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 8
		return m, nil

	case syncedMsg:
		m.busy = false
		if msg.started {
			m.status = "Synced"
		}
		m.requery()
		return m, nil

	case actionDoneMsg:
		m.busy = false
		m.status = fmt.Sprintf("%s: %s", msg.action, msg.item)
		m.requery()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if item, ok := m.Selected(); ok {
				return m, m.run(item, 0)
			}
			return m, nil
		case "ctrl+d":
			if item, ok := m.Selected(); ok {
				return m, m.run(item, 1)
			}
			return m, nil
		case "ctrl+r":
			m.status = "Syncing..."
			return m, m.sync(true)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != m.query {
		m.query = q
		m.cursor = 0
		m.requery()
	}
	return m, cmd
}

// View renders the TUI
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.promptStyle.Render(m.input.View()))
	b.WriteString("\n")
	for i, item := range m.items {
		style := m.itemStyle
		marker := "  "
		if i == m.cursor {
			style = m.selectedStyle
			marker = "> "
		}
		b.WriteString(style.Render(marker + item.Text))
		b.WriteString("\n")
		if item.Subtext != "" {
			b.WriteString(m.subtextStyle.Render(item.Subtext))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.helpStyle.Render("enter: first action  ctrl+d: second action  ctrl+r: sync  esc: quit"))
	b.WriteString("\n")
	status := m.status
	if m.busy && status == "" {
		status = "Working..."
	}
	if status != "" {
		b.WriteString(m.statusStyle.Render(status))
	}
	return b.String()
}

// Run starts the interface on the terminal and blocks until the user quits.
func Run(l Launcher) error {
	_, err := tea.NewProgram(New(l), tea.WithAltScreen()).Run()
	return err
}
