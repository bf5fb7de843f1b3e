package app

import (
	"github.com/schedly/schedly/internal/event_bus"
	"github.com/schedly/schedly/pkg/event"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus *event_bus.Bus

	EventRepo    event.Repository
	EventService event.Service
	EventHandler *event.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *mongo.Database) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewBus()
	subscribeAuditLog(deps.Bus)

	deps.EventRepo = event.NewRepository(db)
	deps.EventService = event.NewService(deps.EventRepo, deps.Bus)
	deps.EventHandler = event.NewHandler(deps.EventService)

	return deps
}

// subscribeAuditLog logs every event lifecycle notification.
func subscribeAuditLog(bus *event_bus.Bus) {
	logChange := func(action string) func(event_bus.Notification) {
		return func(n event_bus.Notification) {
			change, ok := n.Data.(event_bus.EventChange)
			if !ok {
				return
			}
			log.Infof("Event %s %s (%q)", change.ID, action, change.Name)
		}
	}
	bus.Subscribe(event_bus.EventCreated, logChange("created"))
	bus.Subscribe(event_bus.EventUpdated, logChange("updated"))
	bus.Subscribe(event_bus.EventDeleted, logChange("deleted"))
}
