package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/evaluaasi/support-gateway/internal/api/dto"
	"github.com/evaluaasi/support-gateway/internal/domain"
	apperrors "github.com/evaluaasi/support-gateway/pkg/util/errorutil"
)

// ListCampuses GET /campuses.
func (h *SupportHandler) ListCampuses(c *fiber.Ctx) error {
	active, ok := domain.ParseActiveFilter(c.Query("active_only"))
	if !ok {
		return apperrors.NewValidationError("active_only must be all, true or false", map[string]any{"active_only": c.Query("active_only")})
	}
	filter := domain.CampusFilter{
		State:  strings.TrimSpace(c.Query("state")),
		Active: active,
	}

	ctx, _ := requestContext(c)
	listing, err := h.queries.Campuses(ctx, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": listing})
}

// CreateCampus POST /campuses.
func (h *SupportHandler) CreateCampus(c *fiber.Ctx) error {
	var req dto.CreateCampusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ctx, principal := requestContext(c)
	campus, err := h.queries.CreateCampus(ctx, principal, req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": campus})
}

// ListPartners GET /partners.
func (h *SupportHandler) ListPartners(c *fiber.Ctx) error {
	ctx, _ := requestContext(c)
	partners, err := h.queries.Partners(ctx)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPartnerListResponse(partners)})
}
