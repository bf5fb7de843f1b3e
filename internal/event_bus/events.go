package event_bus

const (
	EventCreated NotificationType = "event.created"
	EventUpdated NotificationType = "event.updated"
	EventDeleted NotificationType = "event.deleted"
)

// EventChange describes the record an operation touched.
type EventChange struct {
	ID   string
	Name string
}
