package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nutrilog/backend/internal/database"
	"github.com/nutrilog/backend/internal/middleware"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/service"
)

// TestDB holds the test database and the services handlers depend on
type TestDB struct {
	DB          *gorm.DB
	AuthService *service.AuthService
	Entries     *service.FoodEntryService
	Goals       *service.GoalService
}

// SetupTestDB creates an in-memory database with the full schema
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	// Named in-memory database so each test gets an isolated schema while
	// pooled connections still share it.
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &TestDB{
		DB:          db,
		AuthService: service.NewAuthService(db, "test-secret"),
		Entries:     service.NewFoodEntryService(db),
		Goals:       service.NewGoalService(db),
	}
}

// CreateTestUserAndToken creates a user and returns their ID with a valid JWT
func CreateTestUserAndToken(t *testing.T, db *TestDB) (uuid.UUID, string) {
	t.Helper()

	userID := uuid.New()
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("testpassword123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		ID:                 userID,
		Name:               "Test User",
		Email:              fmt.Sprintf("testuser+%s@example.com", userID.String()),
		PasswordHash:       string(hashedPassword),
		SubscriptionStatus: models.SubscriptionTrial,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	_, token, err := db.AuthService.Login(context.Background(), user.Email, "testpassword123")
	if err != nil {
		t.Fatalf("failed to log in test user: %v", err)
	}

	return userID, token
}

// SetupTestRouter assembles a router over the test database with the given
// AI mock and draft store.
func SetupTestRouter(t *testing.T, db *TestDB, llm service.LLMServiceInterface, drafts service.DraftStore, photos service.PhotoStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	suggestionService := service.NewSuggestionService(db.DB, llm, db.Entries, db.Goals)
	mealPlanService := service.NewMealPlanService(db.DB, llm, db.Goals)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")
	NewHealthHandler(db.DB).RegisterRoutes(v1)
	NewAuthHandler(db.AuthService).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(db.AuthService))
	NewPreferencesHandler(db.DB).RegisterRoutes(protected)
	NewDailyHandler(db.Entries, db.Goals).RegisterRoutes(protected)
	NewFoodEntryHandler(db.Entries, drafts).RegisterRoutes(protected)
	NewGoalHandler(db.Goals).RegisterRoutes(protected)
	NewSuggestionHandler(suggestionService).RegisterRoutes(protected)
	NewMealPlanHandler(mealPlanService).RegisterRoutes(protected)
	NewAnalyzeHandler(llm, db.Entries, drafts, photos).RegisterRoutes(protected)

	return router
}

// PerformRequest makes a JSON request against the router
func PerformRequest(router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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
