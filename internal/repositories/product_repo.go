package repositories

import (
	"github.com/adrianhmontero/ecommerce-shop-backend/internal/models"
)

// ProductRepository defines data access for the product aggregate. Images are
// part of the aggregate: every read returns them eagerly, Create persists
// them with the product, and UpdateWithImages replaces the whole set
// atomically.
type ProductRepository interface {
	// Create persists a new product together with its images in one write.
	Create(product *models.Product) error
	// FindAll returns products with their images, skipping offset rows and
	// taking at most limit.
	FindAll(limit, offset int) ([]models.Product, error)
	// FindByID returns the product with the given id, images included.
	FindByID(id string) (*models.Product, error)
	// FindByTerm resolves a lookup term: a UUID-shaped term is matched
	// against the id, anything else against the title (case-insensitive)
	// or the slug (exact).
	FindByTerm(term string) (*models.Product, error)
	// Update persists the product row without touching its image set.
	Update(product *models.Product) error
	// UpdateWithImages persists the product row and replaces its entire
	// image set with one image per URL, inside a single transaction. A
	// concurrent reader sees either the old set or the new one, never an
	// intermediate state.
	UpdateWithImages(product *models.Product, imageURLs []string) error
	// Delete removes the product and, in cascade, its images.
	Delete(id string) error
	// DeleteAll removes every product and image, returning the number of
	// products removed.
	DeleteAll() (int64, error)
}
