package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evaluaasi/support-gateway/internal/domain"
	apperrors "github.com/evaluaasi/support-gateway/pkg/util/errorutil"
)

// RequireRole ensures the principal has one of the allowed roles.
// With no roles given any authenticated caller passes.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// Roles converts configured role names.
func Roles(names []string) []domain.Role {
	out := make([]domain.Role, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Role(n))
	}
	return out
}
