package nutrition

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nutrilog/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func entry(calories int, protein, carbs, fat float64) models.FoodEntry {
	return models.FoodEntry{
		ID:       uuid.New(),
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
	}
}

func goal(calories int) models.CalorieGoal {
	return models.CalorieGoal{Date: "2025-06-01", Calories: calories, Protein: 150, Carbs: 200, Fat: 70}
}

func TestSumAdditivity(t *testing.T) {
	entries := []models.FoodEntry{
		entry(500, 20, 60, 10),
		entry(800, 35, 90, 25),
	}

	totals := Sum(entries)
	assert.Equal(t, 1300, totals.Calories)
	assert.InDelta(t, 55.0, totals.Protein, 0.001)
	assert.InDelta(t, 150.0, totals.Carbs, 0.001)
	assert.InDelta(t, 35.0, totals.Fat, 0.001)

	// Adding one entry changes the total by exactly its contribution.
	extra := entry(320, 12.5, 58.0, 6.2)
	withExtra := Sum(append(entries, extra))
	assert.Equal(t, totals.Calories+320, withExtra.Calories)
	assert.InDelta(t, totals.Protein+12.5, withExtra.Protein, 0.001)

	// Removing it restores the previous total.
	assert.Equal(t, totals, Sum(entries))
}

func TestSumEmpty(t *testing.T) {
	assert.Equal(t, Totals{}, Sum(nil))
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		consumed int
		goal     int
		want     Status
	}{
		{"well under", 1300, 2000, StatusUnder},
		{"just under 80 percent", 1599, 2000, StatusUnder},
		{"exactly 80 percent is on-track", 1600, 2000, StatusOnTrack},
		{"95 percent", 1900, 2000, StatusOnTrack},
		{"exactly 110 percent is on-track", 2200, 2000, StatusOnTrack},
		{"just over 110 percent", 2201, 2000, StatusOver},
		{"well over", 2500, 2000, StatusOver},
		{"zero goal short-circuits", 500, 0, StatusOnTrack},
		{"negative goal short-circuits", 500, -100, StatusOnTrack},
		{"nothing eaten", 0, 2000, StatusUnder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.consumed, tt.goal))
		})
	}
}

func TestComputeDailyStateUnder(t *testing.T) {
	entries := []models.FoodEntry{entry(500, 20, 60, 10), entry(800, 35, 90, 25)}

	state := ComputeDailyState(entries, goal(2000))

	assert.Equal(t, 1300, state.Consumed.Calories)
	assert.Equal(t, 700, state.Remaining)
	assert.Equal(t, StatusUnder, state.Status) // 1300/2000 = 0.65
	assert.Equal(t, 2000, state.Goal.Calories)
	assert.Equal(t, "2025-06-01", state.Date)
}

func TestComputeDailyStateOnTrack(t *testing.T) {
	state := ComputeDailyState([]models.FoodEntry{entry(1900, 80, 200, 60)}, goal(2000))

	assert.Equal(t, 1900, state.Consumed.Calories)
	assert.Equal(t, 100, state.Remaining)
	assert.Equal(t, StatusOnTrack, state.Status) // 0.95
}

func TestComputeDailyStateOver(t *testing.T) {
	state := ComputeDailyState([]models.FoodEntry{entry(2500, 100, 250, 90)}, goal(2000))

	assert.Equal(t, -500, state.Remaining)
	assert.Equal(t, StatusOver, state.Status)
}

func TestSelectedPlanCalories(t *testing.T) {
	plans := []models.DailyMealPlan{
		{MealType: models.MealBreakfast, EstimatedCalories: 400, IsSelected: true},
		{MealType: models.MealLunch, EstimatedCalories: 600, IsSelected: false},
		{MealType: models.MealDinner, EstimatedCalories: 700, IsSelected: true},
		{MealType: models.MealSnack, EstimatedCalories: 200, IsSelected: false},
	}

	assert.Equal(t, 1100, SelectedPlanCalories(plans))
	assert.Equal(t, 0, SelectedPlanCalories(nil))
}
