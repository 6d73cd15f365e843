package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/runmacros/backend/internal/middleware"
	"github.com/runmacros/backend/internal/models"
	"github.com/runmacros/backend/internal/service"
)

// TestDB holds the in-memory database and services handler tests run on.
type TestDB struct {
	DB          *gorm.DB
	AuthService *service.AuthService
}

// SetupTestDB creates an in-memory database with the full schema.
func SetupTestDB(t *testing.T) *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
		&models.Goal{},
		&models.DayRecord{},
		&models.Recipe{},
		&models.RecipeComment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &TestDB{
		DB:          db,
		AuthService: service.NewAuthService(db, "test-secret", time.Hour),
	}
}

// CreateTestUserAndToken registers a user and returns their id and a valid
// JWT token.
func CreateTestUserAndToken(t *testing.T, testDB *TestDB) (uuid.UUID, string) {
	email := fmt.Sprintf("testuser+%s@example.com", uuid.New().String())
	token, err := testDB.AuthService.Register("Test User", email, "testpassword123")
	if err != nil {
		t.Fatalf("failed to register test user: %v", err)
	}

	claims, err := testDB.AuthService.ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate test token: %v", err)
	}
	return claims.UserID, token
}

// fakeChat answers every prompt with a canned reply, or fails.
type fakeChat struct {
	reply string
	err   error
}

func (f *fakeChat) Chat(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// fakeFoodSearch returns fixed results, or fails.
type fakeFoodSearch struct {
	results []service.FoodResult
	err     error
}

func (f *fakeFoodSearch) Search(ctx context.Context, query string) ([]service.FoodResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

// fakeUploader records the last upload, returns a fixed URL and signs
// download links with a recognizable host.
type fakeUploader struct {
	lastData []byte
	lastKey  string
	url      string
}

func (f *fakeUploader) UploadRecipeImage(ctx context.Context, imageData []byte, contentType string) (string, string, error) {
	f.lastData = imageData
	f.lastKey = "recipe-images/test-key"
	return f.url, f.lastKey, nil
}

func (f *fakeUploader) RecipeImageURL(ctx context.Context, key string) (string, error) {
	return "https://signed.example.com/" + key, nil
}

// testRouter wires all handlers over the test database, with fakes for the
// outbound services.
type testRouter struct {
	*gin.Engine
	DB     *TestDB
	Chat   *fakeChat
	Search *fakeFoodSearch
	Upload *fakeUploader
}

func setupTestRouter(t *testing.T) *testRouter {
	gin.SetMode(gin.TestMode)
	testDB := SetupTestDB(t)

	chat := &fakeChat{reply: "test reply"}
	search := &fakeFoodSearch{}
	upload := &fakeUploader{url: "https://images.example.com/test.png"}

	goalService := service.NewGoalService(testDB.DB)
	mealService := service.NewMealService(testDB.DB, goalService)
	recipeService := service.NewRecipeService(testDB.DB)

	authHandler := NewAuthHandler(testDB.AuthService)
	mealHandler := NewMealHandler(mealService)
	goalHandler := NewGoalHandler(goalService)
	recipeHandler := NewRecipeHandler(recipeService, upload)
	foodHandler := NewFoodHandler(search)
	aiHandler := NewAIHandler(chat)

	router := gin.New()
	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	foodHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(testDB.AuthService))
	authHandler.RegisterProtectedRoutes(protected)
	mealHandler.RegisterRoutes(protected)
	goalHandler.RegisterRoutes(protected)
	recipeHandler.RegisterRoutes(protected)
	aiHandler.RegisterRoutes(protected)

	return &testRouter{
		Engine: router,
		DB:     testDB,
		Chat:   chat,
		Search: search,
		Upload: upload,
	}
}

// performRequest makes a JSON request, optionally authenticated.
func performRequest(router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	router.ServeHTTP(w, req)
	return w
}
