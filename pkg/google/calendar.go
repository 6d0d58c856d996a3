package google

import (
	"context"
	"fmt"
	"time"

	"github.com/prospectcrm/prospect/pkg/event"
	log "github.com/sirupsen/logrus"
	gcal "google.golang.org/api/calendar/v3"
)

var ErrUnauthenticated = fmt.Errorf("user is unauthenticated, authentication is required")

// Calendar wraps a single Google calendar of an authenticated user and
// translates CRM events into Google Calendar entries.
type Calendar struct {
	service    *gcal.Service
	userId     int
	calendarId string
}

func newGoogleCalendar(service *gcal.Service, userId int, calendarId string) *Calendar {
	return &Calendar{
		service:    service,
		userId:     userId,
		calendarId: calendarId,
	}
}

// AddEvent inserts a CRM event into the calendar and returns the Google
// event id.
func (c *Calendar) AddEvent(ctx context.Context, e event.Event) (string, error) {
	log.Debugf("Adding event %s to Google calendar %s", e.UID, c.calendarId)

	description := ""
	if e.CompanyName != "" {
		description = "Company: " + e.CompanyName
	}

	googleEvent := &gcal.Event{
		Summary:     e.Title,
		Description: description,
	}
	if e.AllDay {
		googleEvent.Start = &gcal.EventDateTime{Date: e.StartTime.Format(time.DateOnly)}
		googleEvent.End = &gcal.EventDateTime{Date: e.EndTime.Format(time.DateOnly)}
	} else {
		googleEvent.Start = &gcal.EventDateTime{DateTime: e.StartTime.Format(time.RFC3339)}
		googleEvent.End = &gcal.EventDateTime{DateTime: e.EndTime.Format(time.RFC3339)}
	}

	result, err := c.service.Events.Insert(c.calendarId, googleEvent).Do()
	if err != nil {
		err := fmt.Errorf("unable to insert event in Google Calendar: %v", err)
		log.Error(err)
		return "", err
	}
	return result.Id, nil
}
