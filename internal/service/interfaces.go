package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/nutrition"
	"github.com/nutrilog/backend/internal/types"
)

// ErrAIUnavailable is returned when an AI-backed operation is requested but no
// AI provider is configured. Services carrying a nil LLMServiceInterface must
// return it instead of calling through the nil interface.
var ErrAIUnavailable = errors.New("AI provider is not configured")

// LLMServiceInterface defines the AI collaborator operations
type LLMServiceInterface interface {
	AnalyzeFood(ctx context.Context, base64Image string) (*FoodAnalysis, error)
	AnalyzeVoiceInput(ctx context.Context, transcript string) (*VoiceAnalysis, error)
	GenerateMealSuggestion(ctx context.Context, req nutrition.MealSuggestionRequest) (string, error)
	GenerateExerciseSuggestion(ctx context.Context, req nutrition.ExerciseSuggestionRequest) (string, error)
	GenerateDailyMealPlans(ctx context.Context, goal models.CalorieGoal, dietaryRestrictions []string) ([]MealPlanData, error)
}

// DraftStore holds pending low-confidence analysis results until the user
// confirms or abandons them
type DraftStore interface {
	Save(ctx context.Context, draft *EntryDraft) error
	Get(ctx context.Context, id string) (*EntryDraft, error)
	Delete(ctx context.Context, id string) error
}

// PhotoStore persists uploaded food photos
type PhotoStore interface {
	Upload(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}
