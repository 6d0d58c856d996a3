package layout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/prospectcrm/prospect/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrDraggingDisabled = errors.New("dragging is disabled")
	ErrUnknownSlot      = errors.New("unknown slot")
)

// Engine owns the dashboard arrangement lifecycle for all users: restoring
// the persisted arrangement, applying swaps while drag mode is on, and
// reverting to the default layout. One engine instance is created at startup
// and injected where needed.
type Engine struct {
	catalog *Catalog
	repo    Repository

	mu        sync.Mutex
	draggable map[int]bool // userId -> drag mode; never persisted
}

func NewEngine(catalog *Catalog, repo Repository) *Engine {
	return &Engine{
		catalog:   catalog,
		repo:      repo,
		draggable: make(map[int]bool),
	}
}

// Restore returns the current user's arrangement: the persisted placements
// replayed over the default arrangement, or the default when nothing is
// persisted. A payload that fails to decode is treated as absent; the user
// cannot act on it, so it is logged and the default is returned instead.
func (e *Engine) Restore(ctx context.Context) (Arrangement, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	payload, err := e.repo.GetArrangement(ctx, userId)
	if errors.Is(err, ErrArrangementNotFound) {
		return e.catalog.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read arrangement: %w", err)
	}

	var stored Arrangement
	if err := json.Unmarshal(payload, &stored); err != nil {
		log.Warnf("malformed arrangement payload for user %d, falling back to default: %v", userId, err)
		return e.catalog.Default(), nil
	}
	return e.catalog.Apply(stored), nil
}

// Swap exchanges the items held by two slots and persists the result.
// Requires drag mode to be enabled for the current user.
func (e *Engine) Swap(ctx context.Context, a, b Slot) (Arrangement, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if !e.isDraggable(userId) {
		return nil, ErrDraggingDisabled
	}
	if !e.catalog.HasSlot(a) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSlot, a)
	}
	if !e.catalog.HasSlot(b) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSlot, b)
	}

	current, err := e.Restore(ctx)
	if err != nil {
		return nil, err
	}
	ai, bi := -1, -1
	for i, p := range current {
		if p.Slot == a {
			ai = i
		}
		if p.Slot == b {
			bi = i
		}
	}
	current[ai].Item, current[bi].Item = current[bi].Item, current[ai].Item
	return e.persist(ctx, userId, current)
}

// Save replaces the user's arrangement with the given placements. The input
// is normalized by replaying it over the default arrangement, so unknown
// names are dropped and the stored result is always a complete bijection.
func (e *Engine) Save(ctx context.Context, placements Arrangement) (Arrangement, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if !e.isDraggable(userId) {
		return nil, ErrDraggingDisabled
	}
	normalized := e.catalog.Apply(placements)
	return e.persist(ctx, userId, normalized)
}

// SetDraggable toggles drag mode for the current user. The flag lives in
// memory only and resets to disabled on restart.
func (e *Engine) SetDraggable(ctx context.Context, enabled bool) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if enabled {
		e.draggable[userId] = true
	} else {
		delete(e.draggable, userId)
	}
	return nil
}

func (e *Engine) Draggable(ctx context.Context) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return e.isDraggable(userId), nil
}

// Revert deletes the persisted arrangement and returns the default one.
// Reverting when nothing is persisted is a no-op.
func (e *Engine) Revert(ctx context.Context) (Arrangement, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	err = e.repo.DeleteArrangement(ctx, userId)
	if err != nil && !errors.Is(err, ErrArrangementNotFound) {
		return nil, fmt.Errorf("failed to delete arrangement: %w", err)
	}
	return e.catalog.Default(), nil
}

func (e *Engine) isDraggable(userId int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draggable[userId]
}

func (e *Engine) persist(ctx context.Context, userId int, arrangement Arrangement) (Arrangement, error) {
	payload, err := json.Marshal(arrangement)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize arrangement: %w", err)
	}
	if err := e.repo.StoreArrangement(ctx, userId, payload); err != nil {
		return nil, fmt.Errorf("failed to store arrangement: %w", err)
	}
	log.Tracef("stored arrangement for user %d", userId)
	return arrangement, nil
}
