package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/evaluaasi/support-gateway/internal/api/dto"
	"github.com/evaluaasi/support-gateway/internal/domain"
	apperrors "github.com/evaluaasi/support-gateway/pkg/util/errorutil"
)

// SearchUsers GET /users.
func (h *SupportHandler) SearchUsers(c *fiber.Ctx) error {
	search := domain.UserSearch{
		Search:  strings.TrimSpace(c.Query("search")),
		Role:    strings.TrimSpace(c.Query("role")),
		Page:    parseInt(c.Query("page"), domain.DefaultUserPage),
		PerPage: parseInt(c.Query("per_page"), domain.DefaultUserPerPage),
	}
	ctx, _ := requestContext(c)
	page, err := h.queries.Users(ctx, search)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": page})
}

// SendEmail POST /users/send-email.
func (h *SupportHandler) SendEmail(c *fiber.Ctx) error {
	var req dto.SendEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ctx, principal := requestContext(c)
	result, err := h.queries.SendEmail(ctx, principal, domain.SendEmailRequest{
		Target:   req.Target,
		Template: domain.EmailTemplate(req.Template),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}
