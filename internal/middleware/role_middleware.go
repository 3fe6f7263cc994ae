package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/adrianhmontero/ecommerce-shop-backend/internal/models"
	"github.com/adrianhmontero/ecommerce-shop-backend/internal/services"
	"github.com/adrianhmontero/ecommerce-shop-backend/pkg/apperrors"
)

// RequireRoles gates a route behind the role authorization check. The
// required roles are fixed per route at registration time; the decision
// itself lives in services.AuthorizeRoles.
func RequireRoles(requiredRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, _ := c.Locals(UserLocalKey).(*models.User)
		if err := services.AuthorizeRoles(user, requiredRoles); err != nil {
			log.Printf("Authorization denied on %s %s: %v", c.Method(), c.Path(), err)
			return c.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{
				"message": apperrors.Message(err),
			})
		}
		return c.Next()
	}
}
