package event

import (
	"context"
	"testing"
	"time"

	"github.com/prospectcrm/prospect/internal/event_bus"
	"github.com/prospectcrm/prospect/internal/utils"
	"github.com/prospectcrm/prospect/pkg/company"
	"github.com/prospectcrm/prospect/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownCompanies = map[int]company.Company{
	7: {Id: 7, Name: "Acme Minerals"},
}

func companyProvider(ctx context.Context, id int) (company.Company, error) {
	c, ok := knownCompanies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func setupServiceTest(t *testing.T) (*Service, *event_bus.EventBus, context.Context) {
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	service := NewService(NewRepositoryStub(), companyProvider, bus, clock)
	ctx := user.WithUser(context.Background(), user.User{Id: 1})
	return service, bus, ctx
}

func TestService_AddEvent_DefaultEndTime(t *testing.T) {
	service, _, ctx := setupServiceTest(t)

	start := time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC)
	created, err := service.AddEvent(ctx, Event{Title: "Site visit", StartTime: start})
	require.NoError(t, err)
	assert.NotEmpty(t, created.UID)
	assert.Equal(t, start.Add(time.Hour), created.EndTime, "missing end time defaults to one hour after start")
}

func TestService_AddEvent_ExplicitEndTimeKept(t *testing.T) {
	service, _, ctx := setupServiceTest(t)

	start := time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 5, 17, 30, 0, 0, time.UTC)
	created, err := service.AddEvent(ctx, Event{Title: "Drilling review", StartTime: start, EndTime: end})
	require.NoError(t, err)
	assert.Equal(t, end, created.EndTime)
}

func TestService_AddEvent_ResolvesCompanyName(t *testing.T) {
	service, _, ctx := setupServiceTest(t)

	created, err := service.AddEvent(ctx, Event{
		Title:     "Kickoff",
		StartTime: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
		CompanyId: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Minerals", created.CompanyName)
}

func TestService_AddEvent_UnknownCompany(t *testing.T) {
	service, _, ctx := setupServiceTest(t)

	_, err := service.AddEvent(ctx, Event{
		Title:     "Kickoff",
		StartTime: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
		CompanyId: 99,
	})
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestService_AddEvent_TitleRequired(t *testing.T) {
	service, _, ctx := setupServiceTest(t)

	_, err := service.AddEvent(ctx, Event{StartTime: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestService_AddEvent_PublishesCreated(t *testing.T) {
	service, bus, ctx := setupServiceTest(t)

	var published []event_bus.CalendarEventCreated
	event_bus.SubscribeTyped[event_bus.CalendarEventCreated](bus, event_bus.TypeEventCreated,
		func(e event_bus.EventT[event_bus.CalendarEventCreated]) error {
			published = append(published, e.Data)
			return nil
		})

	created, err := service.AddEvent(ctx, Event{
		Title:     "Assay results call",
		StartTime: time.Date(2026, 3, 6, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, created.UID, published[0].UID)
	assert.Equal(t, "Assay results call", published[0].Title)
}

func TestService_GetEvents_RangeOverlap(t *testing.T) {
	service, _, ctx := setupServiceTest(t)

	_, err := service.AddEvent(ctx, Event{
		Title:     "Inside",
		StartTime: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = service.AddEvent(ctx, Event{
		Title:     "Outside",
		StartTime: time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	events, err := service.GetEvents(ctx,
		time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Inside", events[0].Title)
}

func TestService_ModifyEvent(t *testing.T) {
	service, _, ctx := setupServiceTest(t)

	created, err := service.AddEvent(ctx, Event{
		Title:     "Before",
		StartTime: time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	created.Title = "After"
	updated, err := service.ModifyEvent(ctx, *created)
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
}

func TestService_DeleteEvent(t *testing.T) {
	service, bus, ctx := setupServiceTest(t)

	var deleted []event_bus.CalendarEventDeleted
	event_bus.SubscribeTyped[event_bus.CalendarEventDeleted](bus, event_bus.TypeEventDeleted,
		func(e event_bus.EventT[event_bus.CalendarEventDeleted]) error {
			deleted = append(deleted, e.Data)
			return nil
		})

	created, err := service.AddEvent(ctx, Event{
		Title:     "To remove",
		StartTime: time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteEvent(ctx, created.UID))
	require.Len(t, deleted, 1)
	assert.Equal(t, created.UID, deleted[0].UID)

	events, err := service.GetEvents(ctx,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestService_DeleteEvent_MissingIsSuccess(t *testing.T) {
	service, bus, ctx := setupServiceTest(t)

	var deleted []event_bus.CalendarEventDeleted
	event_bus.SubscribeTyped[event_bus.CalendarEventDeleted](bus, event_bus.TypeEventDeleted,
		func(e event_bus.EventT[event_bus.CalendarEventDeleted]) error {
			deleted = append(deleted, e.Data)
			return nil
		})

	err := service.DeleteEvent(ctx, "nonexistent-uid")
	assert.NoError(t, err, "deleting a missing event is not an error")
	assert.Empty(t, deleted, "no deletion event is published for a missing event")
}

func TestService_NoUser(t *testing.T) {
	service, _, _ := setupServiceTest(t)

	_, err := service.AddEvent(context.Background(), Event{
		Title:     "Orphan",
		StartTime: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, user.ErrNoUser)
}
