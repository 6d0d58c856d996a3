package google

import (
	"context"
	"fmt"
	"time"

	"github.com/prospectcrm/prospect/pkg/event"
	"github.com/prospectcrm/prospect/pkg/user"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type CalendarItem struct {
	ID      string
	Summary string
}

// EventsProviderFunc supplies the CRM events to export for a time range.
type EventsProviderFunc func(ctx context.Context, from, to time.Time) ([]event.Event, error)

type Service interface {
	ListCalendars(ctx context.Context) ([]CalendarItem, error)
	ExportEvents(ctx context.Context, calendarId string, from, to time.Time) (int, error)
}

type ServiceImpl struct {
	auth           *GoogleAuth
	eventsProvider EventsProviderFunc
}

func NewService(auth *GoogleAuth, eventsProvider EventsProviderFunc) *ServiceImpl {
	return &ServiceImpl{
		auth:           auth,
		eventsProvider: eventsProvider,
	}
}

func (s *ServiceImpl) ListCalendars(ctx context.Context) ([]CalendarItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	googleService, err := s.prepareGoogleService(ctx, userId)
	if err != nil {
		return nil, err
	}
	calendars, err := googleService.CalendarList.List().Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve calendars from Google Calendar: %v", err)
		log.Error(err)
		return nil, err
	}
	var googleCalendars []CalendarItem
	for _, cal := range calendars.Items {
		googleCalendars = append(googleCalendars, CalendarItem{
			ID:      cal.Id,
			Summary: cal.Summary,
		})
	}
	return googleCalendars, nil
}

// ExportEvents copies the current user's CRM events in the given range into
// the chosen Google calendar and returns how many were exported.
func (s *ServiceImpl) ExportEvents(ctx context.Context, calendarId string, from, to time.Time) (int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}

	googleService, err := s.prepareGoogleService(ctx, userId)
	if err != nil {
		return 0, err
	}
	cal := newGoogleCalendar(googleService, userId, calendarId)

	events, err := s.eventsProvider(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to load events for export: %w", err)
	}

	exported := 0
	for _, e := range events {
		if _, err := cal.AddEvent(ctx, e); err != nil {
			return exported, fmt.Errorf("failed to export event %s: %w", e.UID, err)
		}
		exported++
	}
	log.Infof("Exported %d events to Google calendar %s", exported, calendarId)
	return exported, nil
}

func (s *ServiceImpl) prepareGoogleService(ctx context.Context, userId int) (*calendar.Service, error) {

	client, err := s.auth.getClient(ctx, userId)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %v", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("user is unauthenticated, authentication is required")
		return nil, ErrUnauthenticated
	}
	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to retrieve Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}

	return service, nil
}
