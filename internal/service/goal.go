package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/types"
)

// Default daily targets used when neither a stored goal nor preference-derived
// targets exist for the date.
const (
	DefaultCalorieGoal = 2000
	DefaultProteinGoal = 150
	DefaultCarbGoal    = 200
	DefaultFatGoal     = 70
)

// GoalService handles per-day calorie goals
type GoalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalService
func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

// GetForDate returns the goal for one user-day. When no row exists the user's
// preference goals (if set) or the fixed defaults are returned with a zero ID;
// nothing is written on the read path.
func (s *GoalService) GetForDate(ctx context.Context, userID uuid.UUID, date string) (*models.CalorieGoal, error) {
	var goal models.CalorieGoal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&goal).Error
	if err == nil {
		return &goal, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get calorie goal: %w", err)
	}

	goal = models.CalorieGoal{
		UserID:   userID,
		Date:     date,
		Calories: DefaultCalorieGoal,
		Protein:  DefaultProteinGoal,
		Carbs:    DefaultCarbGoal,
		Fat:      DefaultFatGoal,
	}

	var prefs models.UserPreferences
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error; err == nil {
		if prefs.DailyCalorieGoal != nil {
			goal.Calories = *prefs.DailyCalorieGoal
		}
		if prefs.DailyProteinGoal != nil {
			goal.Protein = *prefs.DailyProteinGoal
		}
		if prefs.DailyCarbGoal != nil {
			goal.Carbs = *prefs.DailyCarbGoal
		}
		if prefs.DailyFatGoal != nil {
			goal.Fat = *prefs.DailyFatGoal
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get user preferences: %w", err)
	}

	return &goal, nil
}

// Upsert writes the goal for one user-day, replacing any existing row.
func (s *GoalService) Upsert(ctx context.Context, userID uuid.UUID, req *types.SetGoalRequest) (*models.CalorieGoal, error) {
	goal := &models.CalorieGoal{
		ID:       uuid.New(),
		UserID:   userID,
		Date:     req.Date,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"calories", "protein", "carbs", "fat"}),
	}).Create(goal).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert calorie goal: %w", err)
	}

	// Re-read so the caller sees the surviving row's ID after a conflict.
	var saved models.CalorieGoal
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, req.Date).
		First(&saved).Error; err != nil {
		return nil, fmt.Errorf("failed to read back calorie goal: %w", err)
	}

	return &saved, nil
}
