package layout

import (
	"context"
	"sync"
)

type RepositoryStub struct {
	mu       sync.RWMutex
	payloads map[int][]byte
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{payloads: make(map[int][]byte)}
}

func (r *RepositoryStub) GetArrangement(ctx context.Context, userId int) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payload, ok := r.payloads[userId]
	if !ok {
		return nil, ErrArrangementNotFound
	}
	return payload, nil
}

func (r *RepositoryStub) StoreArrangement(ctx context.Context, userId int, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.payloads[userId] = payload
	return nil
}

func (r *RepositoryStub) DeleteArrangement(ctx context.Context, userId int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payloads[userId]; !ok {
		return ErrArrangementNotFound
	}
	delete(r.payloads, userId)
	return nil
}
