package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/nutrition"
)

// ErrNotEligible is returned when the daily state does not warrant the
// requested suggestion type.
var ErrNotEligible = errors.New("daily state does not warrant a suggestion")

// SuggestionService handles AI suggestion requests and their history
type SuggestionService struct {
	db      *gorm.DB
	llm     LLMServiceInterface
	entries *FoodEntryService
	goals   *GoalService
}

// NewSuggestionService creates a new SuggestionService
func NewSuggestionService(db *gorm.DB, llm LLMServiceInterface, entries *FoodEntryService, goals *GoalService) *SuggestionService {
	return &SuggestionService{db: db, llm: llm, entries: entries, goals: goals}
}

// ListForDate returns the suggestion history for one user-day, newest first.
func (s *SuggestionService) ListForDate(ctx context.Context, userID uuid.UUID, date string) ([]models.AiSuggestion, error) {
	var suggestions []models.AiSuggestion
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at desc").
		Find(&suggestions).Error; err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return suggestions, nil
}

// dailyState loads the entries and goal for the date and computes the state.
func (s *SuggestionService) dailyState(ctx context.Context, userID uuid.UUID, date string) (nutrition.DailyState, []models.FoodEntry, error) {
	entries, err := s.entries.ListForDate(ctx, userID, date)
	if err != nil {
		return nutrition.DailyState{}, nil, err
	}
	goal, err := s.goals.GetForDate(ctx, userID, date)
	if err != nil {
		return nutrition.DailyState{}, nil, err
	}
	return nutrition.ComputeDailyState(entries, *goal), entries, nil
}

// RequestMealSuggestion generates and records a meal suggestion if enough
// calories remain for the day. Suggestions are append-only; asking twice with
// the same state produces two rows.
func (s *SuggestionService) RequestMealSuggestion(ctx context.Context, userID uuid.UUID, date string) (*models.AiSuggestion, error) {
	if s.llm == nil {
		return nil, ErrAIUnavailable
	}
	state, entries, err := s.dailyState(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if !nutrition.MealSuggestionEligible(state) {
		return nil, ErrNotEligible
	}

	now := time.Now()
	req := nutrition.BuildMealSuggestionRequest(state, now, entries)
	content, err := s.llm.GenerateMealSuggestion(ctx, req)
	if err != nil {
		return nil, err
	}

	return s.record(ctx, userID, date, models.SuggestionMeal, content, nutrition.TimeOfDay(now))
}

// RequestExerciseSuggestion generates and records an exercise suggestion if
// the goal has been exceeded by enough.
func (s *SuggestionService) RequestExerciseSuggestion(ctx context.Context, userID uuid.UUID, date string) (*models.AiSuggestion, error) {
	if s.llm == nil {
		return nil, ErrAIUnavailable
	}
	state, _, err := s.dailyState(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if !nutrition.ExerciseSuggestionEligible(state) {
		return nil, ErrNotEligible
	}

	req := nutrition.BuildExerciseSuggestionRequest(state)
	content, err := s.llm.GenerateExerciseSuggestion(ctx, req)
	if err != nil {
		return nil, err
	}

	return s.record(ctx, userID, date, models.SuggestionExercise, content, nutrition.TimeOfDay(time.Now()))
}

func (s *SuggestionService) record(ctx context.Context, userID uuid.UUID, date, suggestionType, content, timeOfDay string) (*models.AiSuggestion, error) {
	suggestion := &models.AiSuggestion{
		ID:             uuid.New(),
		UserID:         userID,
		Date:           date,
		SuggestionType: suggestionType,
		Content:        content,
		TimeOfDay:      timeOfDay,
	}
	if err := s.db.WithContext(ctx).Create(suggestion).Error; err != nil {
		return nil, fmt.Errorf("failed to record suggestion: %w", err)
	}
	return suggestion, nil
}
