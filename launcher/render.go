package launcher

import (
	"fmt"
	"strings"

	todoist "github.com/nicolagi/todoist-launcher"
)

// Item is one result shown by the launcher.
type Item struct {
	ID      string
	Text    string
	Subtext string
	Actions []Action
}

// Action is something the user can do with an item. Run never returns errors; failures are logged.
type Action struct {
	ID   string
	Text string
	Run  func()
}

// Action looks up one of the item's actions by id.
func (item Item) Action(id string) (Action, bool) {
	for _, a := range item.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// Ids of the informational items.
const (
	NoTokenID   = "no-token"
	NoTasksID   = "no-tasks"
	NoProjectID = "no-project"
)

func (p *Plugin) noTokenItem() Item {
	return Item{
		ID:      NoTokenID,
		Text:    "No API token configured",
		Subtext: "Go to plugin settings to configure your Todoist API token",
		Actions: []Action{
			{ID: "config", Text: "Open settings", Run: func() { p.openURL(p.settingsURL) }},
		},
	}
}

func noTasksItem() Item {
	return Item{ID: NoTasksID, Text: "No matching tasks", Subtext: "No tasks matched the filters"}
}

func noProjectItem() Item {
	return Item{ID: NoProjectID, Text: "No matching projects", Subtext: "Try a different name"}
}

// defaultItems are the fixed entries shown before today's tasks on an empty query.
func (p *Plugin) defaultItems() []Item {
	return []Item{
		{
			ID:      "add-task",
			Text:    "Add new task",
			Subtext: strings.TrimSpace(DefaultTrigger) + " add <task content>",
			Actions: []Action{
				{ID: "add", Text: "Open Todoist", Run: func() { p.openURL(todayURL) }},
			},
		},
		{
			ID:      "refresh",
			Text:    "Refresh tasks",
			Subtext: "Sync with Todoist",
			Actions: []Action{
				{ID: "refresh", Text: "Refresh", Run: func() { p.Refresh(true) }},
			},
		},
	}
}

func (p *Plugin) addItem(text string) Item {
	return Item{
		ID:      "add-task-action",
		Text:    "Add task: " + text,
		Subtext: "Press Enter to add this task to Todoist",
		Actions: []Action{
			{ID: "add", Text: "Add task", Run: func() { p.AddTask(text) }},
		},
	}
}

// taskItem renders a task. Outside a project listing, the subtext names the task's project.
func (p *Plugin) taskItem(snapshot *todoist.Snapshot, task *todoist.Task, showProject bool) Item {
	var parts []string
	if showProject {
		if project, ok := snapshot.ProjectByID(task.ProjectID); ok {
			parts = append(parts, project.Name)
		}
	}
	if due := task.Due.Display(); due != "" {
		parts = append(parts, "Due: "+due)
	}
	id := task.ID
	return Item{
		ID:      id,
		Text:    task.Content,
		Subtext: strings.Join(parts, " · "),
		Actions: []Action{
			{ID: "open", Text: "Open Task", Run: func() { p.openURL(fmt.Sprintf(taskURL, id)) }},
			{ID: "done", Text: "Mark as done", Run: func() { p.CompleteTask(id) }},
		},
	}
}

func (p *Plugin) projectItem(project *todoist.Project) Item {
	id := project.ID
	return Item{
		ID:      id,
		Text:    project.Name,
		Subtext: "Project id: " + id,
		Actions: []Action{
			{ID: "open", Text: "Open Project", Run: func() { p.openURL(fmt.Sprintf(projectURL, id)) }},
		},
	}
}

func (p *Plugin) taskItems(snapshot *todoist.Snapshot, tasks []*todoist.Task, showProject bool) []Item {
	if len(tasks) == 0 {
		return []Item{noTasksItem()}
	}
	items := make([]Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, p.taskItem(snapshot, t, showProject))
	}
	return items
}
