package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nutrilog/backend/config"
	"github.com/nutrilog/backend/internal/api"
	"github.com/nutrilog/backend/internal/database"
	"github.com/nutrilog/backend/internal/router"
	"github.com/nutrilog/backend/internal/server"
	"github.com/nutrilog/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// AI features are unavailable without an API key outside production;
	// the rest of the app still serves.
	var llmService service.LLMServiceInterface
	if cfg.AIAPIKey != "" {
		llm, err := service.NewLLMService(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize AI service: %v", err)
		}
		llmService = llm
	} else {
		log.Printf("AI API key not set, AI features disabled")
	}

	// Photo storage is optional as well; entries are saved without URLs when
	// S3 is not configured.
	var photoStore service.PhotoStore
	if cfg.S3Bucket != "" {
		s3Config, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Printf("Failed to initialize S3, photo storage disabled: %v", err)
		} else {
			photoStore = service.NewS3PhotoStore(s3Config)
		}
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	entryService := service.NewFoodEntryService(db)
	goalService := service.NewGoalService(db)
	suggestionService := service.NewSuggestionService(db, llmService, entryService, goalService)
	mealPlanService := service.NewMealPlanService(db, llmService, goalService)
	draftStore := service.NewRedisDraftStore(redisClient)

	handlers := router.Handlers{
		Health:      api.NewHealthHandler(db),
		Auth:        api.NewAuthHandler(authService),
		Preferences: api.NewPreferencesHandler(db),
		Daily:       api.NewDailyHandler(entryService, goalService),
		Entries:     api.NewFoodEntryHandler(entryService, draftStore),
		Goals:       api.NewGoalHandler(goalService),
		Suggestions: api.NewSuggestionHandler(suggestionService),
		MealPlans:   api.NewMealPlanHandler(mealPlanService),
		Analyze:     api.NewAnalyzeHandler(llmService, entryService, draftStore, photoStore),
	}

	r := router.SetupRouter(handlers, authService, redisClient)
	srv := server.New(r, cfg.ServerHost, cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
