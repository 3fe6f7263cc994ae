package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adrianhmontero/ecommerce-shop-backend/internal/handlers"
	"github.com/adrianhmontero/ecommerce-shop-backend/internal/middleware"
	"github.com/adrianhmontero/ecommerce-shop-backend/internal/models"
	"github.com/adrianhmontero/ecommerce-shop-backend/internal/repositories"
	"github.com/adrianhmontero/ecommerce-shop-backend/internal/services"
)

const testJWTSecret = "test_jwt_secret"

// setupApp wires a full Fiber app over a fresh in-memory SQLite database and
// returns it together with ready-to-use admin and regular-user tokens.
func setupApp(t *testing.T) (*fiber.App, string, string) {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.ProductImage{}))

	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	productService := services.NewProductService(productRepo, nil)
	authService := services.NewAuthService(userRepo, testJWTSecret)
	seedService := services.NewSeedService(productService, userRepo)

	productHandler := handlers.NewProductHandler(productService)
	authHandler := handlers.NewAuthHandler(authService)
	seedHandler := handlers.NewSeedHandler(seedService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	authRequired := middleware.AuthRequired(authService)

	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1, authRequired)
	seedHandler.RegisterRoutes(apiV1, authRequired)

	adminToken := createUserAndLogin(t, userRepo, authService, "admin@example.com", []string{"admin", "user"})
	userToken := createUserAndLogin(t, userRepo, authService, "user@example.com", []string{"user"})

	return app, adminToken, userToken
}

// createUserAndLogin inserts a user with the given roles directly into the
// store (registration never hands out admin) and returns a login token.
func createUserAndLogin(t *testing.T, userRepo repositories.UserRepository, authService *services.AuthService, email string, roles []string) string {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(&models.User{
		Email:    email,
		Password: string(hashed),
		FullName: "Integration " + email,
		IsActive: true,
		Roles:    roles,
	}))

	token, err := authService.LoginUser(email, "password123")
	require.NoError(t, err)
	return token
}

// jsonRequest performs a request with an optional bearer token and JSON body.
func jsonRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestRegisterAndLogin(t *testing.T) {
	app, _, _ := setupApp(t)

	registration := map[string]string{
		"email":     "new@example.com",
		"password":  "password123",
		"full_name": "New User",
	}
	resp := jsonRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", registration)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Registering the same e-mail again collides.
	resp = jsonRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", registration)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = jsonRequest(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "new@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]interface{}
	decodeBody(t, resp, &loginResp)
	assert.NotEmpty(t, loginResp["token"])

	resp = jsonRequest(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "new@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestMutationsRequireAdminRole(t *testing.T) {
	app, _, userToken := setupApp(t)

	body := map[string]interface{}{
		"title":  "Red Shirt",
		"sizes":  []string{"S"},
		"gender": "men",
	}

	// No token at all: the auth middleware rejects before the gate runs.
	resp := jsonRequest(t, app, http.MethodPost, "/api/v1/products", "", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Authenticated but without the admin role: the gate denies, naming
	// the acceptable role set.
	resp = jsonRequest(t, app, http.MethodPost, "/api/v1/products", userToken, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	var denied map[string]interface{}
	decodeBody(t, resp, &denied)
	assert.Contains(t, denied["message"], "admin")

	// Reads stay public.
	resp = jsonRequest(t, app, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestProductLifecycle(t *testing.T) {
	app, adminToken, _ := setupApp(t)

	// Create: slug is derived from the title, images come back flattened.
	resp := jsonRequest(t, app, http.MethodPost, "/api/v1/products", adminToken, map[string]interface{}{
		"title":  "Red Shirt",
		"price":  19.99,
		"sizes":  []string{"S", "M"},
		"gender": "men",
		"images": []string{"http://a/1.png"},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created services.ProductResponse
	decodeBody(t, resp, &created)
	assert.Equal(t, "red_shirt", created.Slug)
	assert.Equal(t, []string{"http://a/1.png"}, created.Images)
	assert.NotEmpty(t, created.UserID)

	// A second create with the same title is a conflict.
	resp = jsonRequest(t, app, http.MethodPost, "/api/v1/products", adminToken, map[string]interface{}{
		"title":  "Red Shirt",
		"sizes":  []string{"S"},
		"gender": "men",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Lookup works by slug, by title in any case, and by id.
	for _, term := range []string{"red_shirt", "RED SHIRT", created.ID} {
		resp = jsonRequest(t, app, http.MethodGet, "/api/v1/products/"+url.PathEscape(term), "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "lookup by %q", term)
		var fetched services.ProductResponse
		decodeBody(t, resp, &fetched)
		assert.Equal(t, created.ID, fetched.ID)
	}

	// Patch with an image list atomically replaces the set.
	resp = jsonRequest(t, app, http.MethodPatch, "/api/v1/products/"+created.ID, adminToken, map[string]interface{}{
		"images": []string{"http://a/2.png"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated services.ProductResponse
	decodeBody(t, resp, &updated)
	assert.Equal(t, []string{"http://a/2.png"}, updated.Images)

	// Patch without images merges scalars and leaves the set untouched.
	resp = jsonRequest(t, app, http.MethodPatch, "/api/v1/products/"+created.ID, adminToken, map[string]interface{}{
		"price": 25,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &updated)
	assert.Equal(t, 25.0, updated.Price)
	assert.Equal(t, "Red Shirt", updated.Title)
	assert.Equal(t, []string{"http://a/2.png"}, updated.Images)

	// Patching a well-formed id that matches nothing is NotFound.
	resp = jsonRequest(t, app, http.MethodPatch, "/api/v1/products/3fa85f64-5717-4562-b3fc-2c963f66afa6", adminToken, map[string]interface{}{
		"price": 1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Delete removes the product; a later lookup is NotFound.
	resp = jsonRequest(t, app, http.MethodDelete, "/api/v1/products/"+created.ID, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = jsonRequest(t, app, http.MethodGet, "/api/v1/products/red_shirt", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateProductValidation(t *testing.T) {
	app, adminToken, _ := setupApp(t)

	// Missing title, sizes and gender fail validation up front.
	resp := jsonRequest(t, app, http.MethodPost, "/api/v1/products", adminToken, map[string]interface{}{
		"price": 10,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Validation failed", body["message"])
}

func TestSeedRoute(t *testing.T) {
	app, adminToken, userToken := setupApp(t)

	// Seeding is an administrative reset: the gate keeps regular users out.
	resp := jsonRequest(t, app, http.MethodGet, "/api/v1/seed", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = jsonRequest(t, app, http.MethodGet, "/api/v1/seed", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var seedResp map[string]interface{}
	decodeBody(t, resp, &seedResp)
	assert.Equal(t, "SEED EXECUTED", seedResp["message"])

	resp = jsonRequest(t, app, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []services.ProductResponse
	decodeBody(t, resp, &products)
	assert.Len(t, products, 3)
}
