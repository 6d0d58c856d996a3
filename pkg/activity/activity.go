package activity

import "time"

// Entry is one line of the recent-activity feed on the dashboard.
type Entry struct {
	Message    string
	OccurredAt time.Time
}
