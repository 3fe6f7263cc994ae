package services

import (
	"log"

	"github.com/adrianhmontero/ecommerce-shop-backend/internal/models"
	"github.com/adrianhmontero/ecommerce-shop-backend/internal/repositories"
	"github.com/adrianhmontero/ecommerce-shop-backend/pkg/rabbitmq"
)

// Pagination defaults applied when the caller supplies no bounds.
const (
	DefaultLimit  = 10
	DefaultOffset = 0
)

// CreateProductInput carries the fields for a new product. Images are plain
// URLs; the service turns them into owned image records.
type CreateProductInput struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Price       float64  `json:"price" validate:"gte=0"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Slug        string   `json:"slug"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Sizes       []string `json:"sizes" validate:"required"`
	Gender      string   `json:"gender" validate:"required,oneof=men women kid unisex"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

// UpdateProductInput is a partial patch: nil fields are left unchanged. A nil
// Images slice leaves the image set untouched; a non-nil slice (empty
// included) replaces it atomically.
type UpdateProductInput struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Slug        *string  `json:"slug"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Sizes       []string `json:"sizes"`
	Gender      *string  `json:"gender" validate:"omitempty,oneof=men women kid unisex"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

// ProductResponse is the caller-facing read shape: the image collection
// flattened to URL strings.
type ProductResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes"`
	Gender      string   `json:"gender"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	UserID      string   `json:"user_id"`
}

// ProductService owns the business operations over the product aggregate.
type ProductService struct {
	repo repositories.ProductRepository
	mq   *rabbitmq.Client
}

// NewProductService creates a new ProductService. The RabbitMQ client may be
// nil, in which case lifecycle events are not published.
func NewProductService(repo repositories.ProductRepository, mq *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo: repo,
		mq:   mq,
	}
}

// flatten converts a product into its read shape.
func flatten(p *models.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Price:       p.Price,
		Description: p.Description,
		Stock:       p.Stock,
		Sizes:       p.Sizes,
		Gender:      p.Gender,
		Tags:        p.Tags,
		Images:      p.ImageURLs(),
		UserID:      p.UserID,
	}
}

// CreateProduct builds a product from the input plus one image record per
// URL, assigns the owner, and persists the whole aggregate in one write.
func (s *ProductService) CreateProduct(input CreateProductInput, user *models.User) (*ProductResponse, error) {
	images := make([]models.ProductImage, 0, len(input.Images))
	for _, url := range input.Images {
		images = append(images, models.ProductImage{URL: url})
	}

	product := &models.Product{
		Title:       input.Title,
		Price:       input.Price,
		Description: input.Description,
		Slug:        input.Slug,
		Stock:       input.Stock,
		Sizes:       input.Sizes,
		Gender:      input.Gender,
		Tags:        input.Tags,
		Images:      images,
		UserID:      user.ID,
	}

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	s.publishEvent("product.created", product)
	return flatten(product), nil
}

// GetProducts lists products in store order with their images flattened.
// Non-positive bounds fall back to the defaults (limit 10, offset 0).
func (s *ProductService) GetProducts(limit, offset int) ([]ProductResponse, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset <= 0 {
		offset = DefaultOffset
	}

	products, err := s.repo.FindAll(limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *flatten(&products[i]))
	}
	return responses, nil
}

// GetProduct resolves a term (id, title or slug) to the full product record.
func (s *ProductService) GetProduct(term string) (*models.Product, error) {
	return s.repo.FindByTerm(term)
}

// GetProductPlain resolves a term to the flattened read shape.
func (s *ProductService) GetProductPlain(term string) (*ProductResponse, error) {
	product, err := s.repo.FindByTerm(term)
	if err != nil {
		return nil, err
	}
	return flatten(product), nil
}

// UpdateProduct loads the product by id, overlays only the fields present in
// the patch, reassigns the owner, and persists. When the patch carries an
// image list the replacement runs in a single transaction; otherwise the
// existing image set is left untouched.
func (s *ProductService) UpdateProduct(id string, input UpdateProductInput, user *models.User) (*ProductResponse, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Slug != nil {
		product.Slug = *input.Slug
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Sizes != nil {
		product.Sizes = input.Sizes
	}
	if input.Gender != nil {
		product.Gender = *input.Gender
	}
	if input.Tags != nil {
		product.Tags = input.Tags
	}
	product.UserID = user.ID

	if input.Images != nil {
		err = s.repo.UpdateWithImages(product, input.Images)
	} else {
		err = s.repo.Update(product)
	}
	if err != nil {
		return nil, err
	}

	s.publishEvent("product.updated", product)
	return s.GetProductPlain(product.ID)
}

// DeleteProduct removes a product by id; its images go with it.
func (s *ProductService) DeleteProduct(id string) error {
	product, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(product.ID); err != nil {
		return err
	}
	s.publishEvent("product.deleted", product)
	return nil
}

// DeleteAllProducts unconditionally removes every product. Administrative
// reset only; the role gate in front of the seed route keeps it there.
func (s *ProductService) DeleteAllProducts() (int64, error) {
	return s.repo.DeleteAll()
}

// publishEvent emits a product lifecycle event. Publishing is best effort:
// a broker failure is logged and never fails the store operation.
func (s *ProductService) publishEvent(action string, product *models.Product) {
	if s.mq == nil {
		return
	}
	event := map[string]interface{}{
		"action": action,
		"id":     product.ID,
		"title":  product.Title,
		"slug":   product.Slug,
	}
	if err := s.mq.PublishProductEvent(event); err != nil {
		log.Printf("Failed to publish %s event for product %s: %v", action, product.ID, err)
	}
}
