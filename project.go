package todoist

// Project partially describes a project. It only includes a subset of the fields available in Todoist and must
// only be used to parse API responses.
type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ChildOrder   int    `json:"child_order"`
	IsDeleted    bool   `json:"is_deleted"`
	IsArchived   bool   `json:"is_archived"`
	InboxProject bool   `json:"inbox_project"`
}

// User is the subset of the user resource we use, mostly to resolve "inbox" to a project id.
type User struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	InboxProjectID string `json:"inbox_project_id"`
}
