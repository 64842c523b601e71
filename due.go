package todoist

import (
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// DateLayout is the layout of plain due dates, e.g., 2026-10-15.
const DateLayout = "2006-01-02"

// Due describes when a task is due.
type Due struct {
	// Either a plain date (2026-10-15), a floating date-time (2026-10-15T12:00:00) or a fixed date-time
	// (2026-10-15T12:00:00Z). For recurring tasks, the date of the current iteration.
	Date string `json:"date"`

	// Some API versions report the date-time separately from the date.
	Datetime string `json:"datetime"`

	// Human-readable representation of the due date, in the user's language.
	String string `json:"string"`

	Timezone    string `json:"timezone"`
	IsRecurring bool   `json:"is_recurring"`
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// Day returns the calendar date the task is due on, in the form 2026-10-15. Date-times keep the date as written
// in their own offset, without converting to local time. Malformed dates yield false.
func (due *Due) Day() (string, bool) {
	if due == nil {
		return "", false
	}
	value := due.Date
	if value == "" {
		value = due.Datetime
	}
	if value == "" {
		return "", false
	}
	if !strings.Contains(value, "T") {
		if _, err := time.Parse(DateLayout, value); err != nil {
			log.WithFields(log.Fields{
				"cause": err,
				"date":  value,
			}).Debug("Could not parse due date")
			return "", false
		}
		return value, true
	}
	if strings.HasSuffix(value, "Z") {
		value = strings.TrimSuffix(value, "Z") + "+00:00"
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(DateLayout), true
		}
	}
	log.WithField("date", value).Debug("Could not parse due date-time")
	return "", false
}

// On reports whether the task is due on the given calendar date.
func (due *Due) On(day time.Time) bool {
	d, ok := due.Day()
	return ok && d == day.Format(DateLayout)
}

// Display returns the date to show next to a task, preferring the plain date over the date-time.
func (due *Due) Display() string {
	if due == nil {
		return ""
	}
	if due.Date != "" {
		return due.Date
	}
	return due.Datetime
}
