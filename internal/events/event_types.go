package events

import (
	"time"

	"github.com/evaluaasi/support-gateway/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketNoteAdded     EventType = "ticket_note_added"
	EventCampusCreated       EventType = "campus_created"
	EventSupportEmailSent    EventType = "support_email_sent"
)

// Actor is the support agent behind a mutation.
type Actor struct {
	UserID   string      `json:"user_id,omitempty"`
	Username string      `json:"username,omitempty"`
	Role     domain.Role `json:"role,omitempty"`
}

// Event represents a mutation performed through the gateway.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID  int64               `json:"ticket_id"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketNoteAddedPayload payload.
type TicketNoteAddedPayload struct {
	TicketID    int64  `json:"ticket_id"`
	BodyPreview string `json:"body_preview"`
}

// CampusCreatedPayload payload.
type CampusCreatedPayload struct {
	PartnerID int64  `json:"partner_id"`
	Name      string `json:"name"`
	Endpoint  string `json:"endpoint"`
}

// SupportEmailSentPayload payload.
type SupportEmailSentPayload struct {
	Target   string               `json:"target"`
	Template domain.EmailTemplate `json:"template"`
}
