package event

import "time"

// DefaultDuration is applied when a creation request does not carry an
// explicit end time.
const DefaultDuration = time.Hour

type Event struct {
	UID         string
	Title       string
	StartTime   time.Time
	EndTime     time.Time
	AllDay      bool
	CompanyId   int
	CompanyName string
	CreatedAt   time.Time
}
