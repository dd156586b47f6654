package websocket

import (
	"log"
	"time"

	"home-service-server/models"
	"home-service-server/services"
)

// RequestBroadcaster fans lifecycle transitions out over WebSocket. It is the
// hub-backed implementation of the lifecycle notifier.
type RequestBroadcaster struct {
	hub *Hub
}

// NewRequestBroadcaster creates a broadcaster on top of the hub
func NewRequestBroadcaster(hub *Hub) *RequestBroadcaster {
	return &RequestBroadcaster{hub: hub}
}

// RequestUpdated pushes the updated request to the parties involved. New
// pending requests additionally go to every connected technician so open work
// shows up without polling.
func (b *RequestBroadcaster) RequestUpdated(req *models.ServiceRequest, event services.Event) {
	if b.hub == nil {
		log.Printf("⚠️ WebSocket hub not available for request broadcast")
		return
	}

	message := &Message{
		Type:      "request_update",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"event":   string(event),
			"request": req,
		},
	}

	b.hub.SendToUser(req.UserID, message)
	if req.AssignedTechnicianID != nil && *req.AssignedTechnicianID != req.UserID {
		b.hub.SendToUser(*req.AssignedTechnicianID, message)
	}

	if event == services.EventCreated || (event == services.EventCancelled && req.AssignedTechnicianID == nil) {
		b.hub.SendToRole(string(models.RoleTechnician), message)
	}

	log.Printf("📡 Request %s %s broadcasted via WebSocket", req.ID, event)
}
