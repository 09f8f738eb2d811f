package models

import (
	"time"

	"github.com/google/uuid"
)

// Meal types bucket an entry or plan into a coarse time of day.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// FoodEntry is a single logged meal for a user-day. Entries are immutable
// once created except for deletion. Macro grams are stored as decimal columns
// and parsed into float64 exactly once at this boundary; totals are always a
// fresh fold over the stored rows.
type FoodEntry struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uuid.UUID `gorm:"type:varchar(36);not null;index:idx_food_entries_user_date" json:"user_id"`
	Date        string    `gorm:"size:10;not null;index:idx_food_entries_user_date" json:"date"`
	MealType    string    `gorm:"size:20;not null" json:"meal_type"`
	Description string    `gorm:"type:text;not null" json:"description"`
	ImageURL    string    `gorm:"size:255" json:"image_url,omitempty"`
	Calories    int       `gorm:"not null" json:"calories"`
	Protein     float64   `gorm:"type:decimal(8,2);not null" json:"protein"`
	Carbs       float64   `gorm:"type:decimal(8,2);not null" json:"carbs"`
	Fat         float64   `gorm:"type:decimal(8,2);not null" json:"fat"`
	Fiber       *float64  `gorm:"type:decimal(8,2)" json:"fiber,omitempty"`
	Sugar       *float64  `gorm:"type:decimal(8,2)" json:"sugar,omitempty"`
	Sodium      *float64  `gorm:"type:decimal(8,2)" json:"sodium,omitempty"`
	Timestamp   time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

// CalorieGoal is the nutrition target for one user-day. At most one row per
// (user, date); writes are upserts. When no row exists, reads fall back to
// defaults instead of returning nothing.
type CalorieGoal struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID   uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_calorie_goals_user_date" json:"user_id"`
	Date     string    `gorm:"size:10;not null;uniqueIndex:idx_calorie_goals_user_date" json:"date"`
	Calories int       `gorm:"not null" json:"calories"`
	Protein  int       `gorm:"not null" json:"protein"`
	Carbs    int       `gorm:"not null" json:"carbs"`
	Fat      int       `gorm:"not null" json:"fat"`
}
