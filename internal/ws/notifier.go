package ws

import (
	"context"
	"encoding/json"
	"time"

	"ats/internal/usecase"
)

const EventApplicationStatusChanged = "application_status_changed"

type StatusChangedEvent struct {
	Type          string `json:"type"`
	ApplicationID string `json:"applicationId"`
	ApplicantID   string `json:"applicantId"`
	OldStatus     string `json:"oldStatus"`
	NewStatus     string `json:"newStatus"`
	Action        string `json:"action"`
	ByRole        string `json:"byRole"`
	Timestamp     string `json:"timestamp"`
}

// Notifier publishes committed status changes to every connected client.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyStatusChanged(_ context.Context, change usecase.StatusChange) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(newStatusChangedEvent(change))
	if err != nil {
		n.hub.logger.Printf("WS encode error | error=%v", err)
		return
	}
	n.hub.Broadcast(b)
}

func newStatusChangedEvent(change usecase.StatusChange) StatusChangedEvent {
	return StatusChangedEvent{
		Type:          EventApplicationStatusChanged,
		ApplicationID: change.ApplicationID.String(),
		ApplicantID:   change.ApplicantID.String(),
		OldStatus:     change.OldStatus.String(),
		NewStatus:     change.NewStatus.String(),
		Action:        change.Action,
		ByRole:        change.ByRole.String(),
		Timestamp:     change.Timestamp.UTC().Format(time.RFC3339),
	}
}
