package services

import "home-service-server/models"

// Event names a lifecycle transition for downstream fan-out
type Event string

const (
	EventCreated     Event = "created"
	EventAccepted    Event = "accepted"
	EventStarted     Event = "started"
	EventCompleted   Event = "completed"
	EventCancelled   Event = "cancelled"
	EventInvoiceSent Event = "invoice_sent"
	EventPaid        Event = "paid"
	EventRated       Event = "rated"
	EventMessage     Event = "message"
)

// Notifier receives every successful lifecycle transition. Delivery is
// best-effort; implementations must not block the caller.
type Notifier interface {
	RequestUpdated(req *models.ServiceRequest, event Event)
}

// NopNotifier discards all events
type NopNotifier struct{}

// RequestUpdated implements Notifier
func (NopNotifier) RequestUpdated(req *models.ServiceRequest, event Event) {}
