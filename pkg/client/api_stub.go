package client

import (
	"context"
	"sync"

	"github.com/schedly/schedly/pkg/event"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// APIStub is an in-memory API for tests. It records the payloads it receives
// and serves events seeded via Seed.
type APIStub struct {
	mu      sync.Mutex
	items   map[string]event.Event
	Created []event.Input
	Updated map[string]event.Input
	Err     error
}

func NewAPIStub() *APIStub {
	return &APIStub{
		items:   map[string]event.Event{},
		Updated: map[string]event.Input{},
	}
}

// Seed stores an event for subsequent Fetch/FetchAll calls.
func (s *APIStub) Seed(e event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[e.ID.Hex()] = e
}

// SetError makes every subsequent call fail with err.
func (s *APIStub) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Err = err
}

func (s *APIStub) FetchAll(ctx context.Context) ([]event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	events := make([]event.Event, 0, len(s.items))
	for _, e := range s.items {
		events = append(events, e)
	}
	return events, nil
}

func (s *APIStub) Fetch(ctx context.Context, id string) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return event.Event{}, s.Err
	}
	stored, ok := s.items[id]
	if !ok {
		return event.Event{}, &APIError{StatusCode: 400, Message: "Event Does Not Exist"}
	}
	return stored, nil
}

func (s *APIStub) Create(ctx context.Context, payload event.Input) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return event.Event{}, s.Err
	}
	s.Created = append(s.Created, payload)
	created := event.Event{ID: primitive.NewObjectID(), Name: payload.Name}
	s.items[created.ID.Hex()] = created
	return created, nil
}

func (s *APIStub) Update(ctx context.Context, id string, payload event.Input) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return event.Event{}, s.Err
	}
	stored, ok := s.items[id]
	if !ok {
		return event.Event{}, &APIError{StatusCode: 400, Message: "Event Does Not Exist"}
	}
	s.Updated[id] = payload
	stored.Name = payload.Name
	s.items[id] = stored
	return stored, nil
}

func (s *APIStub) Delete(ctx context.Context, id string) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return event.Event{}, s.Err
	}
	stored, ok := s.items[id]
	if !ok {
		return event.Event{}, &APIError{StatusCode: 400, Message: "Event Does Not Exist"}
	}
	delete(s.items, id)
	return stored, nil
}

func (s *APIStub) Check(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Err
}
