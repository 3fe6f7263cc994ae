package repositories

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adrianhmontero/ecommerce-shop-backend/internal/models"
	"github.com/adrianhmontero/ecommerce-shop-backend/pkg/apperrors"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		if detail, ok := uniqueViolation(err); ok {
			return apperrors.Conflict(detail)
		}
		return apperrors.Internal(err)
	}
	return nil
}

// GetByEmail retrieves a user by their e-mail address.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	email = strings.TrimSpace(strings.ToLower(email))
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user", email)
		}
		return nil, apperrors.Internal(err)
	}
	return &user, nil
}

// GetByID retrieves a user by their id.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user", id)
		}
		return nil, apperrors.Internal(err)
	}
	return &user, nil
}
