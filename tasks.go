package todoist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type quickAddRequest struct {
	Text         string `json:"text"`
	AutoReminder bool   `json:"auto_reminder"`
}

// AddTask hands the text to the quick-add endpoint, which parses due dates, #project, @label, priority and
// description markers out of it. The returned task carries the content as normalized by Todoist. Nothing is
// changed locally; sync to see the task in a Snapshot.
func (c *Client) AddTask(ctx context.Context, text string) (*Task, error) {
	const op = "add"
	req, err := c.newJSONRequest(http.MethodPost, "/tasks/quick", &quickAddRequest{
		Text:         text,
		AutoReminder: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	code, b, err := c.do(ctx, op, req, commandTimeout)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, newStatusError(op, code, b)
	}
	var task Task
	if err := json.Unmarshal(b, &task); err != nil {
		return nil, fmt.Errorf("%s, unmarshal: %w", op, err)
	}
	return &task, nil
}

// CompleteTask closes the task with the given id. Like AddTask, it does not touch any Snapshot.
func (c *Client) CompleteTask(ctx context.Context, id string) error {
	const op = "complete"
	req, err := c.newJSONRequest(http.MethodPost, "/tasks/"+url.PathEscape(id)+"/close", nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	code, b, err := c.do(ctx, op, req, commandTimeout)
	if err != nil {
		return err
	}
	switch code {
	case http.StatusOK, http.StatusNoContent:
		return nil
	default:
		return newStatusError(op, code, b)
	}
}
