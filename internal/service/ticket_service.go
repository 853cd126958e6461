package service

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/evaluaasi/support-gateway/internal/domain"
	"github.com/evaluaasi/support-gateway/internal/events"
	apperrors "github.com/evaluaasi/support-gateway/pkg/util/errorutil"
)

type ticketListResponse struct {
	Tickets []domain.SupportTicket `json:"tickets"`
	Total   *int                   `json:"total"`
}

type ticketResponse struct {
	Ticket domain.SupportTicket `json:"ticket"`
}

type ticketNoteResponse struct {
	Note domain.TicketNote `json:"note"`
}

// ListTickets returns tickets matching the filter. Preview data is filtered
// here; live filtering is left entirely to the backend.
func (s *SupportService) ListTickets(ctx context.Context, filter domain.TicketFilter) (*domain.TicketListing, error) {
	if s.opts.Preview {
		tickets := FilterTickets(s.fixtures.Tickets, filter, s.opts.Location)
		s.recordSource("tickets", sourcePreview)
		return &domain.TicketListing{Tickets: tickets, Total: len(tickets)}, nil
	}

	var resp ticketListResponse
	if err := s.api.Get(ctx, "/support/tickets", ticketQuery(filter), &resp); err != nil {
		return nil, err
	}
	tickets := resp.Tickets
	if tickets == nil {
		tickets = []domain.SupportTicket{}
	}
	for i := range tickets {
		canonicalStatus(&tickets[i])
	}
	total := len(tickets)
	if resp.Total != nil {
		total = *resp.Total
	}
	s.recordSource("tickets", sourceSupport)
	return &domain.TicketListing{Tickets: tickets, Total: total}, nil
}

func ticketQuery(f domain.TicketFilter) url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			q.Set(k, v)
		}
	}
	set("status", string(f.Status))
	set("priority", string(f.Priority))
	set("channel", string(f.Channel))
	set("search", f.Search)
	set("date_from", f.DateFrom)
	set("date_to", f.DateTo)
	if f.CompanyID != nil {
		q.Set("company_id", strconv.FormatInt(*f.CompanyID, 10))
	}
	return q
}

// canonicalStatus folds status spellings such as "closed" into the canonical set.
func canonicalStatus(t *domain.SupportTicket) {
	if status, ok := domain.ParseTicketStatus(string(t.Status)); ok {
		t.Status = status
	}
}

// GetTicket returns one ticket.
func (s *SupportService) GetTicket(ctx context.Context, id int64) (*domain.SupportTicket, error) {
	if s.opts.Preview {
		for _, t := range s.fixtures.Tickets {
			if t.ID == id {
				ticket := t
				return &ticket, nil
			}
		}
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}

	var resp ticketResponse
	if err := s.api.Get(ctx, ticketPath(id), nil, &resp); err != nil {
		return nil, err
	}
	canonicalStatus(&resp.Ticket)
	return &resp.Ticket, nil
}

// UpdateTicketStatus changes a ticket's status on the backend.
func (s *SupportService) UpdateTicketStatus(ctx context.Context, actor *domain.Principal, id int64, status domain.TicketStatus) (*domain.SupportTicket, error) {
	canonical, ok := domain.ParseTicketStatus(string(status))
	if !ok {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": status})
	}
	if s.opts.Preview {
		return nil, apperrors.NewPreviewReadOnly("update_ticket")
	}

	var resp ticketResponse
	body := map[string]any{"status": canonical}
	if err := s.api.Patch(ctx, ticketPath(id), body, &resp); err != nil {
		return nil, err
	}
	canonicalStatus(&resp.Ticket)
	if resp.Ticket.ID == 0 {
		resp.Ticket.ID = id
		resp.Ticket.Status = canonical
	}
	s.publish(ctx, actor, events.EventTicketStatusChanged, strconv.FormatInt(id, 10), events.TicketStatusChangedPayload{
		TicketID:  id,
		NewStatus: canonical,
	})
	return &resp.Ticket, nil
}

// AddTicketNote appends an internal note to a ticket.
func (s *SupportService) AddTicketNote(ctx context.Context, actor *domain.Principal, id int64, body string) (*domain.TicketNote, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}
	if s.opts.Preview {
		return nil, apperrors.NewPreviewReadOnly("add_ticket_note")
	}

	var resp ticketNoteResponse
	if err := s.api.Post(ctx, ticketPath(id)+"/notes", map[string]any{"body": body}, &resp); err != nil {
		return nil, err
	}
	if resp.Note.TicketID == 0 {
		resp.Note.TicketID = id
	}
	if resp.Note.Body == "" {
		resp.Note.Body = body
	}
	s.publish(ctx, actor, events.EventTicketNoteAdded, strconv.FormatInt(id, 10), events.TicketNoteAddedPayload{
		TicketID:    id,
		BodyPreview: truncate(body, 80),
	})
	return &resp.Note, nil
}

func ticketPath(id int64) string {
	return "/support/tickets/" + strconv.FormatInt(id, 10)
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "…"
}
