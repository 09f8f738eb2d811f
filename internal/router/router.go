package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/nutrilog/backend/internal/api"
	"github.com/nutrilog/backend/internal/middleware"
	"github.com/nutrilog/backend/internal/service"
)

// Handlers bundles the API handlers wired into the router
type Handlers struct {
	Health      *api.HealthHandler
	Auth        *api.AuthHandler
	Preferences *api.PreferencesHandler
	Daily       *api.DailyHandler
	Entries     *api.FoodEntryHandler
	Goals       *api.GoalHandler
	Suggestions *api.SuggestionHandler
	MealPlans   *api.MealPlanHandler
	Analyze     *api.AnalyzeHandler
}

// SetupRouter configures the application routes. The Redis client is used for
// rate limiting the AI endpoints; when nil (tests) the limiters are skipped.
func SetupRouter(h Handlers, authService service.IAuthService, redisClient *redis.Client) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	// Health and auth routes are the only public surface
	h.Health.RegisterRoutes(v1)
	h.Auth.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		h.Preferences.RegisterRoutes(protected)
		h.Daily.RegisterRoutes(protected)
		h.Entries.RegisterRoutes(protected)
		h.Goals.RegisterRoutes(protected)

		suggestionRoutes := protected.Group("")
		if redisClient != nil {
			limiter := middleware.NewSuggestionRateLimiter(redisClient)
			suggestionRoutes.Use(limiter.RateLimitMiddleware())
		}
		h.Suggestions.RegisterRoutes(suggestionRoutes)
		h.MealPlans.RegisterRoutes(suggestionRoutes)

		analyzeRoutes := protected.Group("")
		if redisClient != nil {
			limiter := middleware.NewAnalysisRateLimiter(redisClient)
			analyzeRoutes.Use(limiter.RateLimitMiddleware())
		}
		h.Analyze.RegisterRoutes(analyzeRoutes)
	}

	return router
}
