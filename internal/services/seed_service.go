package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/adrianhmontero/ecommerce-shop-backend/internal/models"
	"github.com/adrianhmontero/ecommerce-shop-backend/internal/repositories"
	"github.com/adrianhmontero/ecommerce-shop-backend/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// seedAdminEmail identifies the user that owns the seeded catalog.
const seedAdminEmail = "admin@ecommerce-shop.com"

// SeedService rebuilds the catalog from scratch: it deletes every product
// and inserts a small known data set owned by the seed admin user.
type SeedService struct {
	products *ProductService
	users    repositories.UserRepository
}

// NewSeedService creates a new SeedService.
func NewSeedService(products *ProductService, users repositories.UserRepository) *SeedService {
	return &SeedService{
		products: products,
		users:    users,
	}
}

// RunSeed resets the product table and inserts the seed catalog.
func (s *SeedService) RunSeed() (string, error) {
	deleted, err := s.products.DeleteAllProducts()
	if err != nil {
		return "", fmt.Errorf("failed to reset products: %w", err)
	}
	log.Printf("Seed reset removed %d products", deleted)

	admin, err := s.ensureAdminUser()
	if err != nil {
		return "", err
	}

	for _, input := range seedCatalog() {
		if _, err := s.products.CreateProduct(input, admin); err != nil {
			return "", fmt.Errorf("failed to seed product %q: %w", input.Title, err)
		}
	}

	return "SEED EXECUTED", nil
}

// ensureAdminUser returns the seed admin, creating it on first run.
func (s *SeedService) ensureAdminUser() (*models.User, error) {
	admin, err := s.users.GetByEmail(seedAdminEmail)
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up seed admin: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("Admin123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed admin password: %w", err)
	}
	admin = &models.User{
		Email:    seedAdminEmail,
		Password: string(hashed),
		FullName: "Seed Admin",
		IsActive: true,
		Roles:    []string{"admin", "user"},
	}
	if err := s.users.Create(admin); err != nil {
		return nil, fmt.Errorf("failed to create seed admin: %w", err)
	}
	return admin, nil
}

// seedCatalog is the fixed data set inserted by RunSeed.
func seedCatalog() []CreateProductInput {
	return []CreateProductInput{
		{
			Title:       "Men's Chill Crew Neck Sweatshirt",
			Price:       75,
			Description: "Introducing the softest crew neck in the lineup, made from a sustainable bamboo and cotton blend.",
			Stock:       7,
			Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
			Gender:      "men",
			Tags:        []string{"sweatshirt"},
			Images:      []string{"1740176-00-A_0_2000.jpg", "1740176-00-A_1.jpg"},
		},
		{
			Title:       "Women's Cropped Puffer Jacket",
			Price:       225,
			Description: "A stylish and functional cropped puffer with an insulated shell and adjustable hem toggles.",
			Stock:       85,
			Sizes:       []string{"XS", "S", "M"},
			Gender:      "women",
			Tags:        []string{"jacket"},
			Images:      []string{"1740535-00-A_0_2000.jpg", "1740535-00-A_1.jpg"},
		},
		{
			Title:       "Kids Racing Stripe Tee",
			Price:       30,
			Description: "A classic racing stripe tee made from 100% peruvian cotton.",
			Stock:       10,
			Sizes:       []string{"XS", "S", "M"},
			Gender:      "kid",
			Tags:        []string{"shirt"},
			Images:      []string{"8529342-00-A_0_2000.jpg", "8529342-00-A_1.jpg"},
		},
	}
}
