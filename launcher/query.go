package launcher

import (
	"sort"
	"strings"

	todoist "github.com/nicolagi/todoist-launcher"
)

const (
	todayQuery    = "today"
	addPrefix     = "add "
	projectPrefix = "project "
)

// HandleQuery returns the items to show for what the user typed after the trigger. It only reads the current
// snapshot, so it is fast and never blocks on the network.
func (p *Plugin) HandleQuery(query string) []Item {
	if p.apiToken() == "" {
		return []Item{p.noTokenItem()}
	}
	snapshot := p.store.Read()
	query = strings.TrimSpace(query)
	switch {
	case query == "":
		return append(p.defaultItems(), p.today(snapshot, p.showTodayOnly())...)
	case query == todayQuery:
		return p.today(snapshot, true)
	case strings.HasPrefix(query, addPrefix):
		return p.add(query[len(addPrefix):])
	case query == strings.TrimSpace(projectPrefix):
		return p.projectQuery(snapshot, "")
	case strings.HasPrefix(query, projectPrefix):
		return p.projectQuery(snapshot, query[len(projectPrefix):])
	default:
		return p.search(snapshot, query)
	}
}

// today lists open tasks by day order, at most max_tasks of them. With dueToday set, only tasks due on the
// current local date are kept.
func (p *Plugin) today(snapshot *todoist.Snapshot, dueToday bool) []Item {
	scan := snapshot.SearchTasks().Open()
	if dueToday {
		scan.DueOn(p.now())
	}
	if p.filterTodayByProject() {
		scan.WithProjectID(p.resolveProject(snapshot, p.project()))
	}
	tasks := scan.Results()
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DayOrder < tasks[j].DayOrder
	})
	if limit := p.maxTasks(); len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return p.taskItems(snapshot, tasks, true)
}

// resolveProject maps the configured project to a project id: "inbox" means the user's inbox, anything else
// is looked up by name and, failing that, taken to be an id.
func (p *Plugin) resolveProject(snapshot *todoist.Snapshot, name string) string {
	switch strings.ToLower(name) {
	case "inbox", "inbox_project":
		return snapshot.User.InboxProjectID
	}
	if project, ok := snapshot.ProjectByName(name); ok {
		return project.ID
	}
	return name
}

// add proposes adding the text verbatim. Todoist parses it when the action runs.
func (p *Plugin) add(text string) []Item {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return []Item{p.addItem(text)}
}

func (p *Plugin) projectQuery(snapshot *todoist.Snapshot, name string) []Item {
	name = strings.TrimSpace(name)
	if name == "" {
		projects := snapshot.SearchProjects().Active().Results()
		if len(projects) == 0 {
			return []Item{noProjectItem()}
		}
		items := make([]Item, 0, len(projects))
		for _, project := range projects {
			items = append(items, p.projectItem(project))
		}
		return items
	}
	project, ok := snapshot.SearchProjects().Active().WithName(newMatcher(name, p.FuzzyMatching())).First()
	if !ok {
		return []Item{noProjectItem()}
	}
	tasks := snapshot.SearchTasks().Open().WithProjectID(project.ID).Results()
	return p.taskItems(snapshot, tasks, false)
}

func (p *Plugin) search(snapshot *todoist.Snapshot, text string) []Item {
	tasks := snapshot.SearchTasks().Open().WithContent(newMatcher(text, p.FuzzyMatching())).Results()
	return p.taskItems(snapshot, tasks, true)
}
