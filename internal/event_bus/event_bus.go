package event_bus

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// NotificationType is an identifier for lifecycle notifications.
type NotificationType string

// Notification is the envelope delivered to subscribers.
type Notification struct {
	ctx       context.Context
	Type      NotificationType
	Timestamp time.Time
	Data      any
}

// NewNotification creates a Notification with the timestamp set to now.
func NewNotification(ctx context.Context, notificationType NotificationType, data any) Notification {
	return Notification{
		ctx:       ctx,
		Type:      notificationType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Context returns the context the notification was published with.
func (n Notification) Context() context.Context {
	if n.ctx == nil {
		return context.Background()
	}
	return n.ctx
}

type handler func(Notification)

// Bus is a concurrency-safe synchronous dispatcher. Handlers run sequentially
// during Publish; a slow or failing handler never fails the publishing request.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[NotificationType][]handler
}

func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[NotificationType][]handler),
	}
}

// Subscribe registers a handler for the given notification type.
func (b *Bus) Subscribe(notificationType NotificationType, h func(Notification)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[notificationType] = append(b.subscribers[notificationType], h)
}

// Publish delivers the notification to all handlers registered for its type.
// Panics in handlers are recovered and logged.
func (b *Bus) Publish(n Notification) {
	b.mu.RLock()
	handlers := make([]handler, len(b.subscribers[n.Type]))
	copy(handlers, b.subscribers[n.Type])
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Errorf("notification handler panic for %s: %v", n.Type, r)
				}
			}()
			h(n)
		}()
	}
}
