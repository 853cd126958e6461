package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/evaluaasi/support-gateway/internal/domain"
)

// ListCalendarSessions GET /calendar/sessions. Month defaults to the current one.
func (h *SupportHandler) ListCalendarSessions(c *fiber.Ctx) error {
	month := strings.TrimSpace(c.Query("month"))
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	partnerID, err := optionalID(c, "partner_id")
	if err != nil {
		return err
	}
	campusID, err := optionalID(c, "campus_id")
	if err != nil {
		return err
	}

	ctx, _ := requestContext(c)
	view, err := h.queries.Calendar(ctx, domain.CalendarQuery{
		Month:     month,
		PartnerID: partnerID,
		CampusID:  campusID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}
