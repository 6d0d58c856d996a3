package event

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type RepositoryStub struct {
	mu      sync.RWMutex
	items   map[string]Event
	userIds map[string]int // event uid -> userId
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items:   make(map[string]Event),
		userIds: make(map[string]int),
	}
}

func (r *RepositoryStub) StoreEvent(ctx context.Context, userId int, event Event) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	uid := uuid.New().String()
	event.UID = uid
	r.items[uid] = event
	r.userIds[uid] = userId
	return uid, nil
}

func (r *RepositoryStub) GetEvent(ctx context.Context, userId int, uid string) (Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[uid]
	if !ok || r.userIds[uid] != userId {
		return Event{}, ErrEventNotFound
	}
	return e, nil
}

func (r *RepositoryStub) GetEvents(ctx context.Context, userId int, from, to time.Time) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Event, 0, len(r.items))
	for uid, e := range r.items {
		if r.userIds[uid] != userId {
			continue
		}
		if e.StartTime.After(to) || e.EndTime.Before(from) {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (r *RepositoryStub) UpdateEvent(ctx context.Context, userId int, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[event.UID]
	if !ok || r.userIds[event.UID] != userId {
		return ErrEventNotFound
	}
	event.CompanyId = existing.CompanyId
	event.CompanyName = existing.CompanyName
	event.CreatedAt = existing.CreatedAt
	r.items[event.UID] = event
	return nil
}

func (r *RepositoryStub) DeleteEvent(ctx context.Context, userId int, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[uid]
	if !ok || r.userIds[uid] != userId {
		return ErrEventNotFound
	}
	delete(r.items, uid)
	delete(r.userIds, uid)
	return nil
}
