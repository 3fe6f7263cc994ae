package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/adrianhmontero/ecommerce-shop-backend/pkg/slug"
)

// Product is the aggregate root of the catalog. A product owns its images:
// they are created with it, replaced with it, and removed with it.
type Product struct {
	ID          string                      `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string                      `json:"title" gorm:"uniqueIndex;type:varchar(200);not null" validate:"required,min=1,max=200"`
	Slug        string                      `json:"slug" gorm:"uniqueIndex;type:varchar(200);not null"`
	Price       float64                     `json:"price" gorm:"default:0" validate:"gte=0"`
	Description string                      `json:"description" gorm:"type:text"`
	Stock       int                         `json:"stock" gorm:"default:0" validate:"gte=0"`
	Sizes       datatypes.JSONSlice[string] `json:"sizes"`
	Gender      string                      `json:"gender" gorm:"type:varchar(20)"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Images      []ProductImage              `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	UserID      string                      `json:"user_id" gorm:"type:varchar(36);index"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// BeforeSave keeps the slug invariant on both insert and update: always
// present (falling back to the title) and always in normalized form.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = p.Title
	}
	p.Slug = slug.Normalize(p.Slug)
	return nil
}

// ImageURLs flattens the owned image records to plain URL strings, the
// caller-facing read shape. A product without images yields an empty slice,
// never nil.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}

// ProductImage is owned by exactly one product. Rows are removed in cascade
// with their product; they never outlive it.
type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	URL       string `json:"url" gorm:"type:text;not null"`
	ProductID string `json:"-" gorm:"type:varchar(36);index;not null"`
}
