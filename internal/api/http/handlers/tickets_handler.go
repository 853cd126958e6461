package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/evaluaasi/support-gateway/internal/api/dto"
	"github.com/evaluaasi/support-gateway/internal/domain"
	apperrors "github.com/evaluaasi/support-gateway/pkg/util/errorutil"
)

// ListTickets GET /tickets.
func (h *SupportHandler) ListTickets(c *fiber.Ctx) error {
	filter, err := parseTicketQuery(c)
	if err != nil {
		return err
	}
	ctx, _ := requestContext(c)
	listing, err := h.queries.Tickets(ctx, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": listing})
}

// GetTicket GET /tickets/:id.
func (h *SupportHandler) GetTicket(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, _ := requestContext(c)
	ticket, err := h.queries.Ticket(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// UpdateTicketStatus PATCH /tickets/:id.
func (h *SupportHandler) UpdateTicketStatus(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ctx, principal := requestContext(c)
	ticket, err := h.queries.UpdateTicketStatus(ctx, principal, id, domain.TicketStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// AddNote POST /tickets/:id/notes.
func (h *SupportHandler) AddNote(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ctx, principal := requestContext(c)
	note, err := h.queries.AddTicketNote(ctx, principal, id, req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": note})
}

func parseTicketQuery(c *fiber.Ctx) (domain.TicketFilter, error) {
	filter := domain.TicketFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		DateFrom: strings.TrimSpace(c.Query("date_from")),
		DateTo:   strings.TrimSpace(c.Query("date_to")),
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := domain.ParseTicketStatus(raw)
		if !ok {
			return filter, apperrors.NewValidationError("invalid status", map[string]any{"status": raw})
		}
		filter.Status = status
	}
	if raw := c.Query("priority"); raw != "" {
		priority, ok := domain.ParseTicketPriority(raw)
		if !ok {
			return filter, apperrors.NewValidationError("invalid priority", map[string]any{"priority": raw})
		}
		filter.Priority = priority
	}
	if raw := c.Query("channel"); raw != "" {
		channel, ok := domain.ParseTicketChannel(raw)
		if !ok {
			return filter, apperrors.NewValidationError("invalid channel", map[string]any{"channel": raw})
		}
		filter.Channel = channel
	}
	companyID, err := optionalID(c, "company_id")
	if err != nil {
		return filter, err
	}
	filter.CompanyID = companyID
	return filter, nil
}
