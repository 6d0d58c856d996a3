package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prospectcrm/prospect/internal/event_bus"
	"github.com/prospectcrm/prospect/internal/utils"
	"github.com/prospectcrm/prospect/pkg/company"
	"github.com/prospectcrm/prospect/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrTitleRequired = errors.New("event title is required")

type Service struct {
	repo            Repository
	companyProvider company.ProviderFunc
	bus             *event_bus.EventBus
	clock           utils.Clock
}

func NewService(repo Repository, companyProvider company.ProviderFunc, bus *event_bus.EventBus, clock utils.Clock) *Service {
	return &Service{
		repo:            repo,
		companyProvider: companyProvider,
		bus:             bus,
		clock:           clock,
	}
}

// AddEvent stores a new calendar event for the current user. An event without
// an explicit end time ends DefaultDuration after it starts. The company name
// is denormalized onto the event; when the caller did not supply it, it is
// resolved through the company provider.
func (s *Service) AddEvent(ctx context.Context, event Event) (*Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	if event.Title == "" {
		return nil, ErrTitleRequired
	}
	if event.EndTime.IsZero() {
		event.EndTime = event.StartTime.Add(DefaultDuration)
	}
	if event.CompanyId != 0 && event.CompanyName == "" {
		c, err := s.companyProvider(ctx, event.CompanyId)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve company %d: %w", event.CompanyId, err)
		}
		event.CompanyName = c.Name
	}
	event.CreatedAt = s.clock.Now()

	uid, err := s.repo.StoreEvent(ctx, userId, event)
	if err != nil {
		return nil, fmt.Errorf("failed to store event: %w", err)
	}
	event.UID = uid

	_ = s.bus.Publish(event_bus.NewEvent(ctx, event_bus.TypeEventCreated, event_bus.CalendarEventCreated{
		UID:         event.UID,
		Title:       event.Title,
		StartTime:   event.StartTime,
		EndTime:     event.EndTime,
		CompanyId:   event.CompanyId,
		CompanyName: event.CompanyName,
	}))

	return &event, nil
}

func (s *Service) GetEvents(ctx context.Context, from time.Time, to time.Time) ([]Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetEvents(ctx, userId, from, to)
}

func (s *Service) ModifyEvent(ctx context.Context, event Event) (*Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if event.Title == "" {
		return nil, ErrTitleRequired
	}
	if err := s.repo.UpdateEvent(ctx, userId, event); err != nil {
		return nil, err
	}
	updated, err := s.repo.GetEvent(ctx, userId, event.UID)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEvent removes an event. Deleting an event that no longer exists is
// treated as success so that near-simultaneous deletes of the same event
// stay idempotent for the caller.
func (s *Service) DeleteEvent(ctx context.Context, uid string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	err = s.repo.DeleteEvent(ctx, userId, uid)
	if errors.Is(err, ErrEventNotFound) {
		log.Debugf("delete of missing event %s treated as success", uid)
		return nil
	}
	if err != nil {
		return err
	}

	_ = s.bus.Publish(event_bus.NewEvent(ctx, event_bus.TypeEventDeleted, event_bus.CalendarEventDeleted{
		UID: uid,
	}))
	return nil
}
