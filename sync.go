package todoist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// syncResponse partially represents the JSON response from the sync endpoint. I've only added what I actually
// need, the actual response is far richer.
type syncResponse struct {
	SyncToken string     `json:"sync_token"`
	FullSync  bool       `json:"full_sync"`
	Projects  []*Project `json:"projects"`
	Items     []*Task    `json:"items"`
	User      *User      `json:"user"`
}

// Sync downloads all projects, tasks and the user object. The sync token sent is always "*", so every call is a
// full sync and the result replaces, rather than updates, whatever the caller had before. There are no retries.
func (c *Client) Sync(ctx context.Context) (*Snapshot, error) {
	const op = "sync"
	data := make(url.Values)
	data.Set("sync_token", "*")
	data.Set("resource_types", `["items","projects","user"]`)
	c.wireLog("request", []byte(data.Encode()))
	req, err := http.NewRequest(http.MethodPost, c.endpoint+"/sync", strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	code, b, err := c.do(ctx, op, req, syncTimeout)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, newStatusError(op, code, b)
	}
	var sr syncResponse
	if err := json.Unmarshal(b, &sr); err != nil {
		return nil, fmt.Errorf("%s, unmarshal: %w", op, err)
	}
	return newSnapshot(sr.Projects, sr.Items, sr.User, sr.SyncToken, time.Now()), nil
}
