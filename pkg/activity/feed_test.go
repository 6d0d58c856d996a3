package activity

import (
	"context"
	"fmt"
	"testing"

	"github.com/prospectcrm/prospect/internal/event_bus"
	"github.com/prospectcrm/prospect/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFeedTest(t *testing.T) (*Feed, *event_bus.EventBus, context.Context) {
	bus := event_bus.NewEventBus()
	feed := NewFeed()
	feed.Register(bus)
	ctx := user.WithUser(context.Background(), user.User{Id: 1})
	return feed, bus, ctx
}

func TestFeed_RecordsCompanyAndEventActivity(t *testing.T) {
	feed, bus, ctx := setupFeedTest(t)

	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.TypeCompanyCreated,
		event_bus.CompanyCreated{Id: 1, Name: "Acme Minerals"})))
	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.TypeEventCreated,
		event_bus.CalendarEventCreated{UID: "e1", Title: "Site visit", CompanyName: "Acme Minerals"})))

	entries, err := feed.RecentEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first.
	assert.Equal(t, `Event "Site visit" was scheduled for Acme Minerals`, entries[0].Message)
	assert.Equal(t, `Company "Acme Minerals" was added`, entries[1].Message)
}

func TestFeed_UserIsolation(t *testing.T) {
	feed, bus, ctx := setupFeedTest(t)

	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.TypeCompanyCreated,
		event_bus.CompanyCreated{Id: 1, Name: "Mine"})))

	otherCtx := user.WithUser(context.Background(), user.User{Id: 2})
	entries, err := feed.RecentEntries(otherCtx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFeed_SkipsEventsWithoutUser(t *testing.T) {
	feed, bus, ctx := setupFeedTest(t)

	err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.TypeCompanyCreated,
		event_bus.CompanyCreated{Id: 1, Name: "Nobody's"}))
	require.NoError(t, err, "an event without a user is dropped, not an error")

	entries, err := feed.RecentEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFeed_BoundedPerUser(t *testing.T) {
	feed, bus, ctx := setupFeedTest(t)

	for i := 0; i < maxEntriesPerUser+10; i++ {
		require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.TypeCompanyCreated,
			event_bus.CompanyCreated{Id: i, Name: fmt.Sprintf("Company %d", i)})))
	}

	entries, err := feed.RecentEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, maxEntriesPerUser)
	assert.Equal(t, `Company "Company 59" was added`, entries[0].Message)
}
