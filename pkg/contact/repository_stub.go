package contact

import (
	"context"
	"sort"
	"sync"
)

type RepositoryStub struct {
	mu      sync.RWMutex
	items   map[int]Contact
	userIds map[int]int // contact id -> userId
	nextId  int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items:   make(map[int]Contact),
		userIds: make(map[int]int),
		nextId:  1,
	}
}

func (r *RepositoryStub) StoreContact(ctx context.Context, userId int, contact Contact) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contact.Id = r.nextId
	r.items[contact.Id] = contact
	r.userIds[contact.Id] = userId
	r.nextId++
	return contact.Id, nil
}

func (r *RepositoryStub) GetContact(ctx context.Context, userId int, id int) (Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok || r.userIds[id] != userId {
		return Contact{}, ErrContactNotFound
	}
	return c, nil
}

func (r *RepositoryStub) GetContactsByCompany(ctx context.Context, userId int, companyId int) ([]Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Contact, 0)
	for id, c := range r.items {
		if r.userIds[id] == userId && c.CompanyId == companyId {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LastName != result[j].LastName {
			return result[i].LastName < result[j].LastName
		}
		return result[i].FirstName < result[j].FirstName
	})
	return result, nil
}

func (r *RepositoryStub) CountContacts(ctx context.Context, userId int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for id := range r.items {
		if r.userIds[id] == userId {
			count++
		}
	}
	return count, nil
}

func (r *RepositoryStub) UpdateContact(ctx context.Context, userId int, contact Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[contact.Id]
	if !ok || r.userIds[contact.Id] != userId {
		return ErrContactNotFound
	}
	contact.CompanyId = existing.CompanyId
	r.items[contact.Id] = contact
	return nil
}

func (r *RepositoryStub) DeleteContact(ctx context.Context, userId int, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]
	if !ok || r.userIds[id] != userId {
		return ErrContactNotFound
	}
	delete(r.items, id)
	delete(r.userIds, id)
	return nil
}
