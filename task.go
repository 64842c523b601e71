package todoist

// Task partially describes a Todoist task, which the sync API calls an item. It only includes the fields the
// launcher needs. Tasks are decoded from sync responses and replaced wholesale on every sync; treat as read-only.
type Task struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Content   string `json:"content"`
	Due       *Due   `json:"due"`
	Checked   bool   `json:"checked"`
	IsDeleted bool   `json:"is_deleted"`

	// Position of the task within the day it is due. Missing or null values decode to zero and thus sort first.
	DayOrder int `json:"day_order"`
}

// Open reports whether the task is neither completed nor deleted.
func (t *Task) Open() bool {
	return !t.Checked && !t.IsDeleted
}
