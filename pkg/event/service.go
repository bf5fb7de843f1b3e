package event

import (
	"context"
	"fmt"

	"github.com/schedly/schedly/internal/errdef"
	"github.com/schedly/schedly/internal/event_bus"
)

// Service exposes the five store gateway operations over validated events.
type Service interface {
	ListEvents(ctx context.Context) ([]Event, error)
	GetEvent(ctx context.Context, id string) (Event, error)
	CreateEvent(ctx context.Context, event Event) (Event, error)
	UpdateEvent(ctx context.Context, id string, event Event) (Event, error)
	DeleteEvent(ctx context.Context, id string) (Event, error)
}

type ServiceImpl struct {
	repo Repository
	bus  *event_bus.Bus
}

func NewService(repo Repository, bus *event_bus.Bus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus}
}

func (s *ServiceImpl) ListEvents(ctx context.Context) ([]Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *ServiceImpl) GetEvent(ctx context.Context, id string) (Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return Event{}, errdef.NewNotFound("event %s does not exist", id)
	}
	return *event, nil
}

func (s *ServiceImpl) CreateEvent(ctx context.Context, event Event) (Event, error) {
	stored, err := s.repo.Store(ctx, event)
	if err != nil {
		return Event{}, fmt.Errorf("failed to store event: %w", err)
	}
	s.publish(ctx, event_bus.EventCreated, stored)
	return stored, nil
}

// UpdateEvent replaces the stored fields of the event. An unknown id is a
// not-found error; the original contract answered it with a null-bodied
// success, which was judged a bug and normalized here.
func (s *ServiceImpl) UpdateEvent(ctx context.Context, id string, event Event) (Event, error) {
	updated, err := s.repo.Update(ctx, id, event)
	if err != nil {
		return Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	if updated == nil {
		return Event{}, errdef.NewNotFound("event %s does not exist", id)
	}
	s.publish(ctx, event_bus.EventUpdated, *updated)
	return *updated, nil
}

// DeleteEvent removes the event and returns its prior content.
func (s *ServiceImpl) DeleteEvent(ctx context.Context, id string) (Event, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return Event{}, fmt.Errorf("failed to delete event: %w", err)
	}
	if deleted == nil {
		return Event{}, errdef.NewNotFound("event %s does not exist", id)
	}
	s.publish(ctx, event_bus.EventDeleted, *deleted)
	return *deleted, nil
}

func (s *ServiceImpl) publish(ctx context.Context, notificationType event_bus.NotificationType, event Event) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(event_bus.NewNotification(ctx, notificationType, event_bus.EventChange{
		ID:   event.ID.Hex(),
		Name: event.Name,
	}))
}
