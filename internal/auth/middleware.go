package auth

import (
	"strings"

	"payroll-backend/internal/audit"
	"payroll-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const ctxClaimsKey = "auth_claims"

// Capability sets granted by the route table.
var (
	AdminOnly = []models.Role{models.RoleAdmin}
	AnyRole   = models.Roles
)

// RequireAuth verifies the bearer token and stores its claims on the request.
// A missing token is 401, a token that fails verification is 403.
func RequireAuth(tokens *TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := bearerToken(c.Get(fiber.HeaderAuthorization))
		if tokenStr == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "No token provided")
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Invalid token")
		}

		c.Locals(ctxClaimsKey, claims)
		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func RequireRole(allowed ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
		}

		for _, r := range allowed {
			if r == claims.Role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Access denied. Insufficient permissions.")
	}
}

func ClaimsFrom(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(ctxClaimsKey).(*Claims)
	return claims, ok && claims != nil
}

// ActorFrom names the authenticated caller for the audit trail.
func ActorFrom(c *fiber.Ctx) audit.Actor {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return audit.Actor{}
	}
	return audit.Actor{UserID: claims.ID, Username: claims.Username}
}
