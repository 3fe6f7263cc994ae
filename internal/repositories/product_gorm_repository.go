package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adrianhmontero/ecommerce-shop-backend/internal/models"
	"github.com/adrianhmontero/ecommerce-shop-backend/pkg/apperrors"
)

// pgUniqueViolation is the postgres error code for a unique-constraint
// violation.
const pgUniqueViolation = "23505"

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create persists a new product and its images in one atomic write.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return translateError(err, product.ID)
	}
	return nil
}

// FindAll retrieves products with their images, bounded by limit and offset.
func (r *GORMProductRepository) FindAll(limit, offset int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Images").Limit(limit).Offset(offset).Find(&products).Error
	if err != nil {
		return nil, translateError(fmt.Errorf("failed to list products: %w", err), "")
	}
	return products, nil
}

// FindByID retrieves a single product by its id, images included.
func (r *GORMProductRepository) FindByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Images").First(&product, "id = ?", id).Error; err != nil {
		return nil, translateError(err, id)
	}
	return &product, nil
}

// FindByTerm resolves a lookup term to a product. A term that parses as a
// UUID is matched against the id; anything else against UPPER(title) or the
// slug. Products with zero images come back with an empty image set.
func (r *GORMProductRepository) FindByTerm(term string) (*models.Product, error) {
	if _, err := uuid.Parse(term); err == nil {
		return r.FindByID(term)
	}

	var product models.Product
	err := r.db.Preload("Images").
		Where("UPPER(title) = ? OR slug = ?", strings.ToUpper(term), term).
		First(&product).Error
	if err != nil {
		return nil, translateError(err, term)
	}
	return &product, nil
}

// Update persists the product row. The image association is omitted so an
// update that does not replace images leaves the existing rows untouched.
func (r *GORMProductRepository) Update(product *models.Product) error {
	if err := r.db.Omit(clause.Associations).Save(product).Error; err != nil {
		return translateError(err, product.ID)
	}
	return nil
}

// UpdateWithImages replaces the product's entire image set and persists the
// merged product row inside one explicit transaction: delete the old image
// rows, save the product, insert the new rows, commit. On any failure the
// transaction is rolled back in full, so a reader never observes a partial
// replacement.
func (r *GORMProductRepository) UpdateWithImages(product *models.Product, imageURLs []string) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return translateError(fmt.Errorf("failed to begin transaction: %w", tx.Error), product.ID)
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			panic(rec)
		}
	}()

	if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
		tx.Rollback()
		return translateError(fmt.Errorf("failed to delete product images: %w", err), product.ID)
	}

	product.Images = nil
	if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
		tx.Rollback()
		return translateError(err, product.ID)
	}

	images := make([]models.ProductImage, 0, len(imageURLs))
	for _, url := range imageURLs {
		images = append(images, models.ProductImage{URL: url, ProductID: product.ID})
	}
	if len(images) > 0 {
		if err := tx.Create(&images).Error; err != nil {
			tx.Rollback()
			return translateError(err, product.ID)
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return translateError(fmt.Errorf("failed to commit image replacement: %w", err), product.ID)
	}

	product.Images = images
	return nil
}

// Delete removes a product and its images.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Select(clause.Associations).Delete(&models.Product{ID: id})
	if res.Error != nil {
		return translateError(fmt.Errorf("failed to delete product: %w", res.Error), id)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product", id)
	}
	return nil
}

// DeleteAll removes every product and every image. Used only by the seed
// reset flow.
func (r *GORMProductRepository) DeleteAll() (int64, error) {
	session := r.db.Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := session.Delete(&models.ProductImage{}).Error; err != nil {
		return 0, translateError(fmt.Errorf("failed to delete product images: %w", err), "")
	}
	res := session.Delete(&models.Product{})
	if res.Error != nil {
		return 0, translateError(fmt.Errorf("failed to delete products: %w", res.Error), "")
	}
	return res.RowsAffected, nil
}

// translateError maps a persistence error onto the catalog error taxonomy:
// a recognizable unique violation becomes Conflict with the constraint
// detail, a missing row becomes NotFound, and everything else is wrapped as
// InternalFailure so its detail reaches the logs but never the caller.
func translateError(err error, term string) error {
	if err == nil {
		return nil
	}
	if detail, ok := uniqueViolation(err); ok {
		return apperrors.Conflict(detail)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("product", term)
	}
	return apperrors.Internal(err)
}

// uniqueViolation reports whether err is a unique-constraint violation and
// extracts the most specific detail available. Postgres surfaces code 23505
// with a detail line naming the colliding key; for other drivers GORM's
// translated ErrDuplicatedKey is used.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if pgErr.Detail != "" {
			return pgErr.Detail, true
		}
		return pgErr.Message, true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return err.Error(), true
	}
	return "", false
}
