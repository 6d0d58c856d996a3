package event_bus

import "time"

const (
	TypeEventCreated   EventType = "calendar.event.created"
	TypeEventDeleted   EventType = "calendar.event.deleted"
	TypeCompanyCreated EventType = "company.created"
)

type CalendarEventCreated struct {
	UID         string
	Title       string
	StartTime   time.Time
	EndTime     time.Time
	CompanyId   int
	CompanyName string
}

type CalendarEventDeleted struct {
	UID string
}

type CompanyCreated struct {
	Id   int
	Name string
}
