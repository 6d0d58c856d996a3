package company

import (
	"context"
	"sort"
	"sync"
)

type RepositoryStub struct {
	mu      sync.RWMutex
	items   map[int]Company
	userIds map[int]int // company id -> userId
	nextId  int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items:   make(map[int]Company),
		userIds: make(map[int]int),
		nextId:  1,
	}
}

func (r *RepositoryStub) StoreCompany(ctx context.Context, userId int, company Company) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	company.Id = r.nextId
	r.items[company.Id] = company
	r.userIds[company.Id] = userId
	r.nextId++
	return company.Id, nil
}

func (r *RepositoryStub) GetCompany(ctx context.Context, userId int, id int) (Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok || r.userIds[id] != userId {
		return Company{}, ErrCompanyNotFound
	}
	return c, nil
}

func (r *RepositoryStub) GetCompanies(ctx context.Context, userId int) ([]Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Company, 0, len(r.items))
	for id, c := range r.items {
		if r.userIds[id] == userId {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *RepositoryStub) UpdateCompany(ctx context.Context, userId int, company Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[company.Id]
	if !ok || r.userIds[company.Id] != userId {
		return ErrCompanyNotFound
	}
	existing := r.items[company.Id]
	company.CreatedAt = existing.CreatedAt
	r.items[company.Id] = company
	return nil
}

func (r *RepositoryStub) DeleteCompany(ctx context.Context, userId int, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]
	if !ok || r.userIds[id] != userId {
		return ErrCompanyNotFound
	}
	delete(r.items, id)
	delete(r.userIds, id)
	return nil
}
