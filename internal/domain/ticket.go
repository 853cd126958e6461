package domain

import (
	"strings"
	"time"
)

// TicketStatus enumerates lifecycle states for support tickets.
type TicketStatus string

const (
	TicketStatusOpen    TicketStatus = "open"
	TicketStatusPending TicketStatus = "pending"
	TicketStatusSolved  TicketStatus = "solved"
)

// ParseTicketStatus accepts the canonical values plus "closed", which some
// dashboards use for solved tickets.
func ParseTicketStatus(raw string) (TicketStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "open":
		return TicketStatusOpen, true
	case "pending":
		return TicketStatusPending, true
	case "solved", "closed":
		return TicketStatusSolved, true
	default:
		return "", false
	}
}

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// ParseTicketPriority validates a priority value.
func ParseTicketPriority(raw string) (TicketPriority, bool) {
	p := TicketPriority(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return p, true
	}
	return "", false
}

// TicketChannel is where the request came from.
type TicketChannel string

const (
	TicketChannelWeb       TicketChannel = "web"
	TicketChannelEmail     TicketChannel = "email"
	TicketChannelWhatsApp  TicketChannel = "whatsapp"
	TicketChannelInstagram TicketChannel = "instagram"
)

// ParseTicketChannel validates a channel value.
func ParseTicketChannel(raw string) (TicketChannel, bool) {
	c := TicketChannel(strings.ToLower(strings.TrimSpace(raw)))
	switch c {
	case TicketChannelWeb, TicketChannelEmail, TicketChannelWhatsApp, TicketChannelInstagram:
		return c, true
	}
	return "", false
}

// TicketAttachment is file metadata attached to a ticket.
type TicketAttachment struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	MimeType  string `json:"mime_type,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

// SupportTicket is a support request as shown on the dashboards.
type SupportTicket struct {
	ID             int64              `json:"id"`
	Folio          string             `json:"folio"`
	Subject        string             `json:"subject"`
	Message        string             `json:"message"`
	RequesterName  string             `json:"requester_name"`
	RequesterEmail string             `json:"requester_email"`
	CompanyID      *int64             `json:"company_id"`
	CompanyName    string             `json:"company_name"`
	Status         TicketStatus       `json:"status"`
	Priority       TicketPriority     `json:"priority"`
	Channel        TicketChannel      `json:"channel"`
	CreatedAt      *time.Time         `json:"created_at"`
	UpdatedAt      *time.Time         `json:"updated_at"`
	Tags           []string           `json:"tags"`
	Attachments    []TicketAttachment `json:"attachments"`
}

// TicketFilter holds every optional ticket filter dimension. Zero values match everything.
type TicketFilter struct {
	Status    TicketStatus
	Priority  TicketPriority
	CompanyID *int64
	Channel   TicketChannel
	Search    string
	// DateFrom and DateTo are inclusive calendar dates in YYYY-MM-DD form.
	DateFrom string
	DateTo   string
}

// TicketListing is the response of the ticket listing accessor.
type TicketListing struct {
	Tickets []SupportTicket `json:"tickets"`
	Total   int             `json:"total"`
}

// TicketNote is an internal note added by support staff.
type TicketNote struct {
	ID        int64      `json:"id"`
	TicketID  int64      `json:"ticket_id"`
	Body      string     `json:"body"`
	Author    string     `json:"author,omitempty"`
	CreatedAt *time.Time `json:"created_at"`
}
