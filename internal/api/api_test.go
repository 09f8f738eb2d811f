package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilog/backend/internal/mocks"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/nutrition"
	"github.com/nutrilog/backend/internal/types"
)

func setupRouterWithUser(t *testing.T) (*TestDB, http.Handler, string) {
	db := SetupTestDB(t)
	router := SetupTestRouter(t, db, &mocks.MockLLMService{}, mocks.NewMemDraftStore(), nil)
	_, token := CreateTestUserAndToken(t, db)
	return db, router, token
}

func TestHealthEndpointIsPublic(t *testing.T) {
	db := SetupTestDB(t)
	router := SetupTestRouter(t, db, &mocks.MockLLMService{}, mocks.NewMemDraftStore(), nil)

	w := PerformRequest(router, http.MethodGet, "/api/v1/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestAIRoutesAnswer503WhenNoProviderConfigured(t *testing.T) {
	// Mirrors the production wiring without an API key: the services carry a
	// nil AI collaborator but the routes stay registered.
	db := SetupTestDB(t)
	router := SetupTestRouter(t, db, nil, mocks.NewMemDraftStore(), nil)
	_, token := CreateTestUserAndToken(t, db)

	// Full default goal remaining, so the meal trigger itself is satisfied
	w := PerformRequest(router, http.MethodPost, "/api/v1/suggestions/meal", token, types.RequestSuggestionRequest{
		Date: "2025-03-10",
	})
	require.Equal(t, http.StatusServiceUnavailable, w.Code, w.Body.String())

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "unavailable")

	w = PerformRequest(router, http.MethodPost, "/api/v1/meal-plans/generate", token, types.GenerateMealPlansRequest{
		Date: "2025-03-10",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = PerformRequest(router, http.MethodPost, "/api/v1/analyze/voice", token, types.AnalyzeVoiceRequest{
		Transcript: "I had a sandwich",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// Non-AI surfaces keep working
	w = PerformRequest(router, http.MethodGet, "/api/v1/days/2025-03-10", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	db := SetupTestDB(t)
	router := SetupTestRouter(t, db, &mocks.MockLLMService{}, mocks.NewMemDraftStore(), nil)

	for _, path := range []string{
		"/api/v1/days/2025-03-10",
		"/api/v1/food-entries?date=2025-03-10",
		"/api/v1/goals/2025-03-10",
		"/api/v1/suggestions?date=2025-03-10",
		"/api/v1/meal-plans?date=2025-03-10",
	} {
		w := PerformRequest(router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestDayViewAggregatesEntriesAgainstGoal(t *testing.T) {
	_, router, token := setupRouterWithUser(t)

	w := PerformRequest(router, http.MethodPut, "/api/v1/goals", token, types.SetGoalRequest{
		Date: "2025-03-10", Calories: 2000, Protein: 150, Carbs: 200, Fat: 70,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(router, http.MethodPost, "/api/v1/food-entries", token, types.CreateFoodEntryRequest{
		Date: "2025-03-10", MealType: models.MealBreakfast, Description: "Oatmeal",
		Calories: 300, Protein: 10, Carbs: 55, Fat: 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = PerformRequest(router, http.MethodPost, "/api/v1/food-entries", token, types.CreateFoodEntryRequest{
		Date: "2025-03-10", MealType: models.MealLunch, Description: "Salad",
		Calories: 1000, Protein: 30, Carbs: 60, Fat: 50,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = PerformRequest(router, http.MethodGet, "/api/v1/days/2025-03-10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Date    string               `json:"date"`
		Entries []models.FoodEntry   `json:"entries"`
		Summary nutrition.DailyState `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Len(t, resp.Entries, 2)
	assert.Equal(t, 1300, resp.Summary.Consumed.Calories)
	assert.Equal(t, 700, resp.Summary.Remaining)
	assert.Equal(t, nutrition.StatusUnder, resp.Summary.Status)
}

func TestDayViewEmptyDayUsesDefaults(t *testing.T) {
	_, router, token := setupRouterWithUser(t)

	w := PerformRequest(router, http.MethodGet, "/api/v1/days/2025-03-10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Summary nutrition.DailyState `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 2000, resp.Summary.Goal.Calories)
	assert.Zero(t, resp.Summary.Consumed.Calories)
	assert.Equal(t, nutrition.StatusUnder, resp.Summary.Status)
}

func TestDayViewRejectsBadDate(t *testing.T) {
	_, router, token := setupRouterWithUser(t)

	w := PerformRequest(router, http.MethodGet, "/api/v1/days/03-10-2025", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestionEndpointReturns412WhenNotEligible(t *testing.T) {
	_, router, token := setupRouterWithUser(t)

	w := PerformRequest(router, http.MethodPut, "/api/v1/goals", token, types.SetGoalRequest{
		Date: "2025-03-10", Calories: 2000, Protein: 150, Carbs: 200, Fat: 70,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// No excess: exercise suggestion is not warranted
	w = PerformRequest(router, http.MethodPost, "/api/v1/suggestions/exercise", token, types.RequestSuggestionRequest{
		Date: "2025-03-10",
	})
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)

	// Full goal remaining: meal suggestion is warranted
	w = PerformRequest(router, http.MethodPost, "/api/v1/suggestions/meal", token, types.RequestSuggestionRequest{
		Date: "2025-03-10",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var suggestion models.AiSuggestion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &suggestion))
	assert.Equal(t, models.SuggestionMeal, suggestion.SuggestionType)
	assert.NotEmpty(t, suggestion.Content)
}

func TestEntryDeletionIsScopedToOwner(t *testing.T) {
	db := SetupTestDB(t)
	router := SetupTestRouter(t, db, &mocks.MockLLMService{}, mocks.NewMemDraftStore(), nil)
	_, ownerToken := CreateTestUserAndToken(t, db)
	_, intruderToken := CreateTestUserAndToken(t, db)

	w := PerformRequest(router, http.MethodPost, "/api/v1/food-entries", ownerToken, types.CreateFoodEntryRequest{
		Date: "2025-03-10", MealType: models.MealSnack, Description: "Apple",
		Calories: 95, Protein: 0, Carbs: 25, Fat: 0,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var entry models.FoodEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))

	w = PerformRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/food-entries/%s", entry.ID), intruderToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = PerformRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/food-entries/%s", entry.ID), ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/food-entries/%s", entry.ID), ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMealPlanFlowOverHTTP(t *testing.T) {
	_, router, token := setupRouterWithUser(t)

	w := PerformRequest(router, http.MethodPost, "/api/v1/meal-plans/generate", token, types.GenerateMealPlansRequest{
		Date: "2025-03-10",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var genResp struct {
		MealPlans        []models.DailyMealPlan `json:"meal_plans"`
		SelectedCalories int                    `json:"selected_calories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &genResp))
	require.Len(t, genResp.MealPlans, 4)
	assert.Zero(t, genResp.SelectedCalories)

	planID := genResp.MealPlans[0].ID
	w = PerformRequest(router, http.MethodPatch, fmt.Sprintf("/api/v1/meal-plans/%s/selection", planID), token, types.ToggleSelectionRequest{
		IsSelected: true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(router, http.MethodGet, "/api/v1/meal-plans?date=2025-03-10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &genResp))
	assert.Equal(t, genResp.MealPlans[0].EstimatedCalories, genResp.SelectedCalories)
}

func TestPreferencesRoundTrip(t *testing.T) {
	_, router, token := setupRouterWithUser(t)

	age := 34
	calorieGoal := 1900
	w := PerformRequest(router, http.MethodPut, "/api/v1/preferences", token, UpdatePreferencesRequest{
		Age:                 &age,
		ActivityLevel:       "moderate",
		DietaryRestrictions: []string{"vegetarian"},
		DailyCalorieGoal:    &calorieGoal,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = PerformRequest(router, http.MethodGet, "/api/v1/preferences", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Preferences models.UserPreferences `json:"preferences"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Preferences.Age)
	assert.Equal(t, 34, *resp.Preferences.Age)
	assert.Equal(t, models.JSONBStringArray{"vegetarian"}, resp.Preferences.DietaryRestrictions)

	// Preference calorie goal now seeds the day view default
	w = PerformRequest(router, http.MethodGet, "/api/v1/days/2025-03-10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var dayResp struct {
		Summary nutrition.DailyState `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dayResp))
	assert.Equal(t, 1900, dayResp.Summary.Goal.Calories)
}
