package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription statuses carried on the user record. Billing itself is handled
// by an external processor; the status only gates UI prompts.
const (
	SubscriptionTrial    = "trial"
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionExpired  = "expired"
)

type User struct {
	ID                 uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	Name               string         `gorm:"not null" json:"name"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	SubscriptionStatus string         `gorm:"size:20;not null;default:'trial'" json:"subscription_status"`
	TrialEndsAt        time.Time      `json:"trial_ends_at"`
}

// UserPreferences holds the profile data used to seed daily goal defaults and
// to steer meal-plan generation. One row per user.
type UserPreferences struct {
	ID                  uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID              uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Age                 *int             `json:"age,omitempty"`
	Gender              string           `gorm:"size:20" json:"gender,omitempty"`
	HeightCm            *int             `json:"height_cm,omitempty"`
	WeightKg            *float64         `gorm:"type:decimal(5,2)" json:"weight_kg,omitempty"`
	ActivityLevel       string           `gorm:"size:30" json:"activity_level,omitempty"`
	Goal                string           `gorm:"size:30" json:"goal,omitempty"`
	DietaryRestrictions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_restrictions"`
	Allergies           JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergies"`
	CuisinePreferences  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"cuisine_preferences"`
	DailyCalorieGoal    *int             `json:"daily_calorie_goal,omitempty"`
	DailyProteinGoal    *int             `json:"daily_protein_goal,omitempty"`
	DailyCarbGoal       *int             `json:"daily_carb_goal,omitempty"`
	DailyFatGoal        *int             `json:"daily_fat_goal,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}
