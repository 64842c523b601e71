package todoist_test

import (
	"testing"
	"time"

	todoist "github.com/nicolagi/todoist-launcher"
	"github.com/stretchr/testify/assert"
)

func TestDueOn(t *testing.T) {
	today := time.Date(2026, time.October, 15, 9, 30, 0, 0, time.Local)
	testCases := []struct {
		due  *todoist.Due
		want bool
	}{
		{due: nil, want: false},
		{due: &todoist.Due{}, want: false},
		{due: &todoist.Due{Date: "2026-10-15"}, want: true},
		{due: &todoist.Due{Date: "2026-10-16"}, want: false},
		{due: &todoist.Due{Date: "2026-10-15T08:00:00Z"}, want: true},
		{due: &todoist.Due{Date: "2026-10-15T23:59:59.000000Z"}, want: true},
		{due: &todoist.Due{Date: "2026-10-15T12:00:00"}, want: true},
		{due: &todoist.Due{Date: "2026-10-15T12:00:00+09:00"}, want: true},
		{due: &todoist.Due{Datetime: "2026-10-15T12:00:00Z"}, want: true},
		{due: &todoist.Due{Date: "2026-10-14T23:00:00Z"}, want: false},
		{due: &todoist.Due{Date: "not a date"}, want: false},
		{due: &todoist.Due{Date: "2026-13-45"}, want: false},
		{due: &todoist.Due{Date: "2026-10-15Tgarbage"}, want: false},
	}
	for _, tc := range testCases {
		t.Run("", func(t *testing.T) {
			assert.Equal(t, tc.want, tc.due.On(today))
		})
	}
}

func TestDueDisplay(t *testing.T) {
	var none *todoist.Due
	assert.Equal(t, "", none.Display())
	assert.Equal(t, "2026-10-15", (&todoist.Due{Date: "2026-10-15", Datetime: "2026-10-15T10:00:00Z"}).Display())
	assert.Equal(t, "2026-10-15T10:00:00Z", (&todoist.Due{Datetime: "2026-10-15T10:00:00Z"}).Display())
}
