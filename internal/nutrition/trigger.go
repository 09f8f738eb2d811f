package nutrition

import (
	"time"

	"github.com/nutrilog/backend/internal/models"
)

// Suggestion eligibility thresholds, in calories remaining for the day.
const (
	mealSuggestionFloor   = 100
	exerciseSuggestionCap = -50
)

// MealSuggestionEligible reports whether enough calories remain to warrant
// asking the AI collaborator for a meal suggestion.
func MealSuggestionEligible(s DailyState) bool {
	return s.Remaining > mealSuggestionFloor
}

// ExerciseSuggestionEligible reports whether the goal has been exceeded by
// enough to warrant an exercise suggestion.
func ExerciseSuggestionEligible(s DailyState) bool {
	return s.Remaining < exerciseSuggestionCap
}

// MealSummary is the per-meal context forwarded to the AI collaborator.
type MealSummary struct {
	MealType    string `json:"meal_type"`
	Description string `json:"description"`
	Calories    int    `json:"calories"`
}

// MealSuggestionRequest is the shaped input for a meal-suggestion prompt.
type MealSuggestionRequest struct {
	RemainingCalories int           `json:"remaining_calories"`
	CurrentTime       string        `json:"current_time"` // HH:MM
	TodaysMeals       []MealSummary `json:"todays_meals"`
}

// ExerciseSuggestionRequest carries only the excess magnitude.
type ExerciseSuggestionRequest struct {
	ExcessCalories int `json:"excess_calories"`
}

// BuildMealSuggestionRequest shapes the request for the AI collaborator from
// the current state and today's logged entries. Issuing the call is the
// caller's responsibility; triggering stays user-initiated.
func BuildMealSuggestionRequest(s DailyState, now time.Time, entries []models.FoodEntry) MealSuggestionRequest {
	meals := make([]MealSummary, 0, len(entries))
	for _, e := range entries {
		meals = append(meals, MealSummary{
			MealType:    e.MealType,
			Description: e.Description,
			Calories:    e.Calories,
		})
	}
	return MealSuggestionRequest{
		RemainingCalories: s.Remaining,
		CurrentTime:       now.Format("15:04"),
		TodaysMeals:       meals,
	}
}

// BuildExerciseSuggestionRequest shapes the excess-calorie request.
func BuildExerciseSuggestionRequest(s DailyState) ExerciseSuggestionRequest {
	return ExerciseSuggestionRequest{ExcessCalories: -s.Remaining}
}

// TimeOfDay buckets a clock time into the coarse label stored on suggestion
// records.
func TimeOfDay(now time.Time) string {
	switch h := now.Hour(); {
	case h < 5:
		return "night"
	case h < 12:
		return "morning"
	case h < 17:
		return "afternoon"
	case h < 21:
		return "evening"
	default:
		return "night"
	}
}
