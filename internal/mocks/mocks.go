package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/nutrition"
	"github.com/nutrilog/backend/internal/service"
)

// MockLLMService returns canned AI responses. Individual fields can be
// overridden per test; zero value gives sensible defaults.
type MockLLMService struct {
	FoodResult     *service.FoodAnalysis
	VoiceResult    *service.VoiceAnalysis
	MealSuggestion string
	ExerciseAdvice string
	MealPlans      []service.MealPlanData
	Err            error
}

func (m *MockLLMService) AnalyzeFood(ctx context.Context, base64Image string) (*service.FoodAnalysis, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.FoodResult != nil {
		return m.FoodResult, nil
	}
	return &service.FoodAnalysis{
		Description: "Grilled chicken salad",
		Calories:    420,
		Protein:     35,
		Carbs:       18,
		Fat:         22,
		Confidence:  0.9,
	}, nil
}

func (m *MockLLMService) AnalyzeVoiceInput(ctx context.Context, transcript string) (*service.VoiceAnalysis, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.VoiceResult != nil {
		return m.VoiceResult, nil
	}
	return &service.VoiceAnalysis{
		IsRelevant:  true,
		Description: "Bowl of oatmeal with banana",
		Calories:    350,
		Protein:     12,
		Carbs:       60,
		Fat:         8,
		MealType:    models.MealBreakfast,
		Confidence:  0.85,
		Message:     "Logged your oatmeal with banana.",
	}, nil
}

func (m *MockLLMService) GenerateMealSuggestion(ctx context.Context, req nutrition.MealSuggestionRequest) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.MealSuggestion != "" {
		return m.MealSuggestion, nil
	}
	return fmt.Sprintf("You have %d calories left. Try a turkey wrap with veggies.", req.RemainingCalories), nil
}

func (m *MockLLMService) GenerateExerciseSuggestion(ctx context.Context, req nutrition.ExerciseSuggestionRequest) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.ExerciseAdvice != "" {
		return m.ExerciseAdvice, nil
	}
	return fmt.Sprintf("A %d minute brisk walk would offset about %d calories.", 30, req.ExcessCalories), nil
}

func (m *MockLLMService) GenerateDailyMealPlans(ctx context.Context, goal models.CalorieGoal, dietaryRestrictions []string) ([]service.MealPlanData, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.MealPlans != nil {
		return m.MealPlans, nil
	}
	return []service.MealPlanData{
		{MealType: models.MealBreakfast, Title: "Greek Yogurt Parfait", Description: "Yogurt with berries and granola", EstimatedCalories: 380, EstimatedProtein: 22, EstimatedCarbs: 48, EstimatedFat: 10, Ingredients: []string{"greek yogurt", "berries", "granola"}},
		{MealType: models.MealLunch, Title: "Chicken Quinoa Bowl", Description: "Grilled chicken over quinoa", EstimatedCalories: 560, EstimatedProtein: 42, EstimatedCarbs: 55, EstimatedFat: 16, Ingredients: []string{"chicken breast", "quinoa", "spinach"}},
		{MealType: models.MealDinner, Title: "Baked Salmon", Description: "Salmon with roasted vegetables", EstimatedCalories: 620, EstimatedProtein: 40, EstimatedCarbs: 35, EstimatedFat: 32, Ingredients: []string{"salmon", "broccoli", "olive oil"}},
		{MealType: models.MealSnack, Title: "Apple with Almond Butter", Description: "Sliced apple and almond butter", EstimatedCalories: 250, EstimatedProtein: 6, EstimatedCarbs: 30, EstimatedFat: 13, Ingredients: []string{"apple", "almond butter"}},
	}, nil
}

// MemDraftStore is an in-memory DraftStore for tests.
type MemDraftStore struct {
	mu     sync.Mutex
	drafts map[string]*service.EntryDraft
}

func NewMemDraftStore() *MemDraftStore {
	return &MemDraftStore{drafts: make(map[string]*service.EntryDraft)}
}

func (s *MemDraftStore) Save(ctx context.Context, draft *service.EntryDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft.ID = uuid.New().String()
	copied := *draft
	s.drafts[draft.ID] = &copied
	return nil
}

func (s *MemDraftStore) Get(ctx context.Context, id string) (*service.EntryDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[id]
	if !ok {
		return nil, service.ErrDraftNotFound
	}
	copied := *draft
	return &copied, nil
}

func (s *MemDraftStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}
