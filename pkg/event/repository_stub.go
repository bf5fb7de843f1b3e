package event

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RepositoryStub is an in-memory Repository preserving insertion order, used
// by tests in place of MongoDB.
type RepositoryStub struct {
	mu    sync.RWMutex
	items map[string]Event
	order []string
	err   error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items: make(map[string]Event),
	}
}

func (r *RepositoryStub) FindAll(ctx context.Context) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.err != nil {
		return nil, r.err
	}
	result := make([]Event, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.items[id])
	}
	return result, nil
}

func (r *RepositoryStub) FindByID(ctx context.Context, id string) (*Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.err != nil {
		return nil, r.err
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("malformed event id %q: %w", id, err)
	}
	event, exists := r.items[id]
	if !exists {
		return nil, nil
	}
	return &event, nil
}

func (r *RepositoryStub) Store(ctx context.Context, event Event) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return Event{}, r.err
	}
	event.ID = primitive.NewObjectID()
	id := event.ID.Hex()
	r.items[id] = event
	r.order = append(r.order, id)
	return event, nil
}

func (r *RepositoryStub) Update(ctx context.Context, id string, event Event) (*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("malformed event id %q: %w", id, err)
	}
	if _, exists := r.items[id]; !exists {
		return nil, nil
	}
	event.ID = oid
	r.items[id] = event
	return &event, nil
}

func (r *RepositoryStub) Delete(ctx context.Context, id string) (*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("malformed event id %q: %w", id, err)
	}
	event, exists := r.items[id]
	if !exists {
		return nil, nil
	}
	delete(r.items, id)
	for i, orderedId := range r.order {
		if orderedId == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &event, nil
}

// SetError makes every subsequent call fail with err (for 500-path tests).
func (r *RepositoryStub) SetError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Count returns the number of stored events (useful for test assertions).
func (r *RepositoryStub) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Reset clears the stub (useful between tests).
func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[string]Event)
	r.order = nil
	r.err = nil
}
