package repositories

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/adrianhmontero/ecommerce-shop-backend/internal/models"
	"github.com/adrianhmontero/ecommerce-shop-backend/pkg/apperrors"
	"github.com/adrianhmontero/ecommerce-shop-backend/pkg/slug"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It enforces the same title/slug uniqueness and cascade semantics as the
// GORM implementation so it can stand in for it in tests and local runs.
type MockProductRepository struct {
	products    map[string]models.Product
	nextImageID uint
	mu          sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// normalize applies the BeforeSave invariants the GORM layer gets from the
// model hook.
func normalize(product *models.Product) {
	if product.Slug == "" {
		product.Slug = product.Title
	}
	product.Slug = slug.Normalize(product.Slug)
}

// checkUnique reports a Conflict if another product holds the same title or
// slug.
func (r *MockProductRepository) checkUnique(product *models.Product) error {
	for id, p := range r.products {
		if id == product.ID {
			continue
		}
		if strings.EqualFold(p.Title, product.Title) {
			return apperrors.Conflict(fmt.Sprintf("Key (title)=(%s) already exists", product.Title))
		}
		if p.Slug == product.Slug {
			return apperrors.Conflict(fmt.Sprintf("Key (slug)=(%s) already exists", product.Slug))
		}
	}
	return nil
}

// Create adds a product and its images.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	normalize(product)
	if err := r.checkUnique(product); err != nil {
		return err
	}
	for i := range product.Images {
		r.nextImageID++
		product.Images[i].ID = r.nextImageID
		product.Images[i].ProductID = product.ID
	}
	r.products[product.ID] = *product
	return nil
}

// FindAll returns at most limit products, skipping offset.
func (r *MockProductRepository) FindAll(limit, offset int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, p)
	}
	if offset >= len(all) {
		return []models.Product{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// FindByID returns a product by its id.
func (r *MockProductRepository) FindByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	return &product, nil
}

// FindByTerm resolves a term the same way the GORM repository does: by id
// for UUID-shaped terms, otherwise by case-insensitive title or exact slug.
func (r *MockProductRepository) FindByTerm(term string) (*models.Product, error) {
	if _, err := uuid.Parse(term); err == nil {
		return r.FindByID(term)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if strings.EqualFold(p.Title, term) || p.Slug == term {
			product := p
			return &product, nil
		}
	}
	return nil, apperrors.NotFound("product", term)
}

// Update replaces the stored product row, preserving its image set.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return apperrors.NotFound("product", product.ID)
	}
	normalize(product)
	if err := r.checkUnique(product); err != nil {
		return err
	}
	product.Images = existing.Images
	r.products[product.ID] = *product
	return nil
}

// UpdateWithImages replaces the stored product row and its whole image set.
func (r *MockProductRepository) UpdateWithImages(product *models.Product, imageURLs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return apperrors.NotFound("product", product.ID)
	}
	normalize(product)
	if err := r.checkUnique(product); err != nil {
		return err
	}
	images := make([]models.ProductImage, 0, len(imageURLs))
	for _, url := range imageURLs {
		r.nextImageID++
		images = append(images, models.ProductImage{ID: r.nextImageID, URL: url, ProductID: product.ID})
	}
	product.Images = images
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product and, with it, its images.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return apperrors.NotFound("product", id)
	}
	delete(r.products, id)
	return nil
}

// DeleteAll removes every product.
func (r *MockProductRepository) DeleteAll() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := int64(len(r.products))
	r.products = make(map[string]models.Product)
	return count, nil
}
