package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SuggestionMeal     = "meal"
	SuggestionExercise = "exercise"
	SuggestionGeneral  = "general"
)

// AiSuggestion is an append-only advice record. Rows are never mutated and
// identical suggestions are not deduplicated.
type AiSuggestion struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID         uuid.UUID `gorm:"type:varchar(36);not null;index:idx_ai_suggestions_user_date" json:"user_id"`
	Date           string    `gorm:"size:10;not null;index:idx_ai_suggestions_user_date" json:"date"`
	SuggestionType string    `gorm:"size:20;not null" json:"suggestion_type"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	TimeOfDay      string    `gorm:"size:20" json:"time_of_day,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// DailyMealPlan is one AI-proposed meal for a user-day, generated in a batch
// of one per meal type. IsSelected is the only field that changes after
// creation.
type DailyMealPlan struct {
	ID                uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID            uuid.UUID        `gorm:"type:varchar(36);not null;index:idx_daily_meal_plans_user_date" json:"user_id"`
	Date              string           `gorm:"size:10;not null;index:idx_daily_meal_plans_user_date" json:"date"`
	MealType          string           `gorm:"size:20;not null" json:"meal_type"`
	Title             string           `gorm:"size:255;not null" json:"title"`
	Description       string           `gorm:"type:text;not null" json:"description"`
	EstimatedCalories int              `gorm:"not null" json:"estimated_calories"`
	EstimatedProtein  float64          `gorm:"type:decimal(8,2);not null" json:"estimated_protein"`
	EstimatedCarbs    float64          `gorm:"type:decimal(8,2);not null" json:"estimated_carbs"`
	EstimatedFat      float64          `gorm:"type:decimal(8,2);not null" json:"estimated_fat"`
	Ingredients       JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions      string           `gorm:"type:text" json:"instructions,omitempty"`
	IsSelected        bool             `gorm:"not null;default:false" json:"is_selected"`
	CreatedAt         time.Time        `json:"created_at"`
}
