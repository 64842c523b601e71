package launcher

// Config keys.
const (
	KeyAPIToken             = "api_token"
	KeyMaxTasks             = "max_tasks"
	KeyProject              = "project"
	KeyShowTodayOnly        = "show_today_only"
	KeyFilterTodayByProject = "filter_today_by_project"
	KeySyncToken            = "sync_token"
)

const (
	defaultMaxTasks = 10
	minMaxTasks     = 1
	maxMaxTasks     = 50
	defaultProject  = "inbox"
)

func (p *Plugin) apiToken() string {
	token, _ := p.host.ReadString(KeyAPIToken)
	return token
}

// maxTasks is clamped to the range offered by the settings widget.
func (p *Plugin) maxTasks() int {
	n, ok := p.host.ReadInt(KeyMaxTasks)
	switch {
	case !ok || n == 0:
		return defaultMaxTasks
	case n < minMaxTasks:
		return minMaxTasks
	case n > maxMaxTasks:
		return maxMaxTasks
	}
	return n
}

func (p *Plugin) project() string {
	name, ok := p.host.ReadString(KeyProject)
	if !ok || name == "" {
		return defaultProject
	}
	return name
}

func (p *Plugin) showTodayOnly() bool {
	v, ok := p.host.ReadBool(KeyShowTodayOnly)
	if !ok {
		return true
	}
	return v
}

// filterTodayByProject restricts the today view to the configured project. Off by default: the today view
// shows tasks from all projects.
func (p *Plugin) filterTodayByProject() bool {
	v, _ := p.host.ReadBool(KeyFilterTodayByProject)
	return v
}

// Widget describes one entry of the plugin's settings page.
type Widget struct {
	Type       string                 `yaml:"type" json:"type"`
	Property   string                 `yaml:"property,omitempty" json:"property,omitempty"`
	Label      string                 `yaml:"label,omitempty" json:"label,omitempty"`
	Text       string                 `yaml:"text,omitempty" json:"text,omitempty"`
	Default    interface{}            `yaml:"default,omitempty" json:"default,omitempty"`
	Properties map[string]interface{} `yaml:"widget_properties,omitempty" json:"widget_properties,omitempty"`
}

// Settings returns the settings schema for the host to render.
func (p *Plugin) Settings() []Widget {
	return []Widget{
		{Type: "label", Text: "<b>Todoist Configuration</b>"},
		{
			Type:     "lineedit",
			Property: KeyAPIToken,
			Label:    "API Token",
			Properties: map[string]interface{}{
				"echoMode":        2,
				"placeholderText": "Enter your Todoist API token",
			},
		},
		{
			Type:     "spinbox",
			Property: KeyMaxTasks,
			Label:    "Max tasks to show",
			Default:  defaultMaxTasks,
			Properties: map[string]interface{}{
				"minimum": minMaxTasks,
				"maximum": maxMaxTasks,
			},
		},
		{
			Type:     "lineedit",
			Property: KeyProject,
			Label:    `Project (name or "inbox")`,
			Default:  defaultProject,
			Properties: map[string]interface{}{
				"placeholderText": "Inbox or project name",
			},
		},
		{Type: "checkbox", Property: KeyShowTodayOnly, Label: "Show today only", Default: true},
		{Type: "checkbox", Property: KeyFilterTodayByProject, Label: "Only show today's tasks from the project above", Default: false},
		{Type: "label", Text: `Get your API token from <a href="` + tokenHelpURL + `">Todoist Settings → Integrations → API token</a>`},
	}
}
