package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/evaluaasi/support-gateway/internal/auth"
	"github.com/evaluaasi/support-gateway/internal/backend"
	"github.com/evaluaasi/support-gateway/internal/domain"
	"github.com/evaluaasi/support-gateway/internal/observability"
	"github.com/evaluaasi/support-gateway/internal/query"
	apperrors "github.com/evaluaasi/support-gateway/pkg/util/errorutil"
)

// SupportQueries is the cached accessor surface the handlers serve.
type SupportQueries interface {
	Campuses(ctx context.Context, filter domain.CampusFilter) (*domain.CampusListing, error)
	Partners(ctx context.Context) ([]domain.PartnerOption, error)
	Tickets(ctx context.Context, filter domain.TicketFilter) (*domain.TicketListing, error)
	Ticket(ctx context.Context, id int64) (*domain.SupportTicket, error)
	Calendar(ctx context.Context, q domain.CalendarQuery) (*domain.CalendarView, error)
	Users(ctx context.Context, search domain.UserSearch) (*domain.UserPage, error)
	CreateCampus(ctx context.Context, actor *domain.Principal, input domain.CampusCreateInput) (*domain.Campus, error)
	UpdateTicketStatus(ctx context.Context, actor *domain.Principal, id int64, status domain.TicketStatus) (*domain.SupportTicket, error)
	AddTicketNote(ctx context.Context, actor *domain.Principal, id int64, body string) (*domain.TicketNote, error)
	SendEmail(ctx context.Context, actor *domain.Principal, req domain.SendEmailRequest) (*domain.SendEmailResult, error)
}

// SupportHandler serves the support dashboard endpoints.
type SupportHandler struct {
	queries SupportQueries
}

// NewSupportHandler constructs handler.
func NewSupportHandler(queries SupportQueries) *SupportHandler {
	return &SupportHandler{queries: queries}
}

// requestContext carries the caller's token and the request id to the backend.
func requestContext(c *fiber.Ctx) (context.Context, *domain.Principal) {
	ctx := c.UserContext()
	principal, _ := auth.PrincipalFromContext(c)
	if principal != nil {
		ctx = query.WithRole(ctx, principal.Role)
		if principal.Token != "" {
			ctx = backend.WithToken(ctx, principal.Token)
		}
	}
	if id, ok := c.Locals(observability.RequestIDLocal).(string); ok && id != "" {
		ctx = backend.WithRequestID(ctx, id)
	}
	return ctx, principal
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

// optionalID parses an optional positive integer query parameter.
func optionalID(c *fiber.Ctx, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperrors.NewValidationError("invalid "+name, map[string]any{name: raw})
	}
	return &id, nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
