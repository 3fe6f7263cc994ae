package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/adrianhmontero/ecommerce-shop-backend/internal/middleware"
	"github.com/adrianhmontero/ecommerce-shop-backend/internal/services"
	"github.com/adrianhmontero/ecommerce-shop-backend/pkg/apperrors"
)

// SeedHandler exposes the administrative catalog reset.
type SeedHandler struct {
	service *services.SeedService
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(service *services.SeedService) *SeedHandler {
	return &SeedHandler{
		service: service,
	}
}

// RegisterRoutes registers the seed route. The reset deletes every product,
// so it sits behind the admin role gate.
func (h *SeedHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Get("/seed", authRequired, middleware.RequireRoles("admin"), h.HandleRunSeed)
}

// HandleRunSeed resets the catalog and inserts the seed data set.
func (h *SeedHandler) HandleRunSeed(c *fiber.Ctx) error {
	result, err := h.service.RunSeed()
	if err != nil {
		log.Printf("Error running seed: %v", err)
		return c.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{
			"message": apperrors.Message(err),
		})
	}
	return c.JSON(fiber.Map{
		"message": result,
	})
}
