package main

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	todoist "github.com/nicolagi/todoist-launcher"
	"github.com/nicolagi/todoist-launcher/launcher"
)

func printHeader(w io.Writer, query string, snapshot *todoist.Snapshot, fuzzy bool) {
	matching := "substring"
	if fuzzy {
		matching = "fuzzy"
	}
	synced := "never synced"
	if !snapshot.Empty() {
		synced = "synced " + relativeDurationFormat(time.Since(snapshot.SyncedAt)) + " ago"
	}
	_, _ = fmt.Fprintf(w, "%s%s\t%s, %s matching\n\n", launcher.DefaultTrigger, query, synced, matching)
}

func relativeDurationFormat(d time.Duration) string {
	var buf bytes.Buffer
	t := d / (24 * time.Hour)
	if t != 0 {
		fmt.Fprintf(&buf, "%dd", t)
	}
	d -= t * 24 * time.Hour
	t = d / time.Hour
	if t != 0 {
		fmt.Fprintf(&buf, "%dh", t)
	}
	d -= t * time.Hour
	if buf.Len() == 0 {
		t = d / time.Minute
		fmt.Fprintf(&buf, "%dm", t)
	}
	return buf.String()
}

// printItems writes one line per item: id, text, subtext, action ids.
func printItems(w io.Writer, items []launcher.Item, alphabetically bool) {
	if alphabetically {
		items = append([]launcher.Item(nil), items...)
		sort.Stable(itemsByText(items))
	}
	for _, item := range items {
		ids := make([]string, 0, len(item.Actions))
		for _, a := range item.Actions {
			ids = append(ids, a.ID)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ID, item.Text, item.Subtext, strings.Join(ids, " "))
	}
}
