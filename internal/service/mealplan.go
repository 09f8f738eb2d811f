package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/models"
)

// MealPlanService handles AI-generated daily meal plans
type MealPlanService struct {
	db    *gorm.DB
	llm   LLMServiceInterface
	goals *GoalService
}

// NewMealPlanService creates a new MealPlanService
func NewMealPlanService(db *gorm.DB, llm LLMServiceInterface, goals *GoalService) *MealPlanService {
	return &MealPlanService{db: db, llm: llm, goals: goals}
}

// mealTypeOrder keeps plan lists in day order regardless of insert order.
const mealTypeOrder = "CASE meal_type WHEN 'breakfast' THEN 1 WHEN 'lunch' THEN 2 WHEN 'dinner' THEN 3 ELSE 4 END"

// ListForDate returns the meal plans for one user-day in day order.
func (s *MealPlanService) ListForDate(ctx context.Context, userID uuid.UUID, date string) ([]models.DailyMealPlan, error) {
	var plans []models.DailyMealPlan
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order(mealTypeOrder).
		Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	return plans, nil
}

// Generate produces the daily meal-plan batch for one user-day. If plans
// already exist for the date the existing batch is returned untouched, so
// repeated calls never duplicate or regenerate.
func (s *MealPlanService) Generate(ctx context.Context, userID uuid.UUID, date string) ([]models.DailyMealPlan, error) {
	existing, err := s.ListForDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}
	if s.llm == nil {
		return nil, ErrAIUnavailable
	}

	goal, err := s.goals.GetForDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	var restrictions []string
	var prefs models.UserPreferences
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error; err == nil {
		restrictions = prefs.DietaryRestrictions
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get user preferences: %w", err)
	}

	meals, err := s.llm.GenerateDailyMealPlans(ctx, *goal, restrictions)
	if err != nil {
		return nil, err
	}

	plans := make([]models.DailyMealPlan, 0, len(meals))
	for _, m := range meals {
		plans = append(plans, models.DailyMealPlan{
			ID:                uuid.New(),
			UserID:            userID,
			Date:              date,
			MealType:          m.MealType,
			Title:             m.Title,
			Description:       m.Description,
			EstimatedCalories: int(math.Round(m.EstimatedCalories)),
			EstimatedProtein:  m.EstimatedProtein,
			EstimatedCarbs:    m.EstimatedCarbs,
			EstimatedFat:      m.EstimatedFat,
			Ingredients:       m.Ingredients,
			Instructions:      m.Instructions,
		})
	}

	if len(plans) > 0 {
		if err := s.db.WithContext(ctx).Create(&plans).Error; err != nil {
			return nil, fmt.Errorf("failed to save meal plans: %w", err)
		}
	}

	return s.ListForDate(ctx, userID, date)
}

// ToggleSelection sets a plan's selected flag, enforcing ownership.
func (s *MealPlanService) ToggleSelection(ctx context.Context, userID, planID uuid.UUID, isSelected bool) (*models.DailyMealPlan, error) {
	var plan models.DailyMealPlan
	if err := s.db.WithContext(ctx).First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}
	if plan.UserID != userID {
		return nil, ErrForbidden
	}

	if err := s.db.WithContext(ctx).Model(&plan).Update("is_selected", isSelected).Error; err != nil {
		return nil, fmt.Errorf("failed to update meal plan selection: %w", err)
	}
	plan.IsSelected = isSelected

	return &plan, nil
}
