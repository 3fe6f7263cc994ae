package handlers

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/adrianhmontero/ecommerce-shop-backend/internal/middleware"
	"github.com/adrianhmontero/ecommerce-shop-backend/internal/models"
	"github.com/adrianhmontero/ecommerce-shop-backend/internal/services"
	"github.com/adrianhmontero/ecommerce-shop-backend/pkg/apperrors"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes. Reads are public; mutations
// require an authenticated caller holding the admin role. The required roles
// are fixed here, per route, so the gate needs no runtime metadata lookup.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:term", h.HandleGetProduct)
	productRoutes.Post("/", authRequired, middleware.RequireRoles("admin"), h.HandleCreateProduct)
	productRoutes.Patch("/:id", authRequired, middleware.RequireRoles("admin"), h.HandleUpdateProduct)
	productRoutes.Delete("/:id", authRequired, middleware.RequireRoles("admin"), h.HandleDeleteProduct)
}

// HandleGetProducts lists products with pagination.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)

	products, err := h.service.GetProducts(limit, offset)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{
			"message": apperrors.Message(err),
		})
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product by id, title or slug.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	term := c.Params("term")

	product, err := h.service.GetProductPlain(term)
	if err != nil {
		log.Printf("Error getting product by term %s: %v", term, err)
		return c.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{
			"message": apperrors.Message(err),
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product owned by the caller.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input services.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	user := c.Locals(middleware.UserLocalKey).(*models.User)
	product, err := h.service.CreateProduct(input, user)
	if err != nil {
		log.Printf("Error creating product %q: %v", input.Title, err)
		return c.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{
			"message": apperrors.Message(err),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial patch to a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var input services.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing update product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	user := c.Locals(middleware.UserLocalKey).(*models.User)
	product, err := h.service.UpdateProduct(id, input, user)
	if err != nil {
		log.Printf("Error updating product %s: %v", id, err)
		return c.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{
			"message": apperrors.Message(err),
		})
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product and its images.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.service.DeleteProduct(id); err != nil {
		log.Printf("Error deleting product %s: %v", id, err)
		return c.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{
			"message": apperrors.Message(err),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// validationErrorResponse renders validator failures as a field→reason map.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
