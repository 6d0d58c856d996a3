package activity

import (
	"context"
	"fmt"
	"sync"

	"github.com/prospectcrm/prospect/internal/event_bus"
	"github.com/prospectcrm/prospect/pkg/user"
	log "github.com/sirupsen/logrus"
)

// maxEntriesPerUser bounds the in-memory feed; older entries are dropped.
const maxEntriesPerUser = 50

// Feed collects recent activity per user by listening on the event bus. The
// feed is in memory only and starts empty after a restart.
type Feed struct {
	mu      sync.RWMutex
	entries map[int][]Entry
}

func NewFeed() *Feed {
	return &Feed{entries: make(map[int][]Entry)}
}

// Register subscribes the feed to all activity-producing events.
func (f *Feed) Register(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped[event_bus.CompanyCreated](bus, event_bus.TypeCompanyCreated,
		func(e event_bus.EventT[event_bus.CompanyCreated]) error {
			return f.record(e.Context(), Entry{
				Message:    fmt.Sprintf("Company %q was added", e.Data.Name),
				OccurredAt: e.Timestamp,
			})
		})
	event_bus.SubscribeTyped[event_bus.CalendarEventCreated](bus, event_bus.TypeEventCreated,
		func(e event_bus.EventT[event_bus.CalendarEventCreated]) error {
			message := fmt.Sprintf("Event %q was scheduled", e.Data.Title)
			if e.Data.CompanyName != "" {
				message = fmt.Sprintf("Event %q was scheduled for %s", e.Data.Title, e.Data.CompanyName)
			}
			return f.record(e.Context(), Entry{
				Message:    message,
				OccurredAt: e.Timestamp,
			})
		})
	event_bus.SubscribeTyped[event_bus.CalendarEventDeleted](bus, event_bus.TypeEventDeleted,
		func(e event_bus.EventT[event_bus.CalendarEventDeleted]) error {
			return f.record(e.Context(), Entry{
				Message:    "An event was removed from the calendar",
				OccurredAt: e.Timestamp,
			})
		})
}

// RecentEntries returns the current user's feed, newest first.
func (f *Feed) RecentEntries(ctx context.Context) ([]Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	entries := f.entries[userId]
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out, nil
}

func (f *Feed) record(ctx context.Context, entry Entry) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		// Events published outside a user session carry no feed owner.
		log.Debugf("skipping activity entry without a user: %s", entry.Message)
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	entries := append(f.entries[userId], entry)
	if len(entries) > maxEntriesPerUser {
		entries = entries[len(entries)-maxEntriesPerUser:]
	}
	f.entries[userId] = entries
	return nil
}
