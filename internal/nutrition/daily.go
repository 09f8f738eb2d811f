// Package nutrition holds the derived, non-persisted projections the rest of
// the app depends on: consumed totals vs. goal for one user-day, and the
// predicates that decide when that state warrants an AI suggestion. Everything
// here is a pure function over already-loaded records; nothing reads or writes
// storage.
package nutrition

import (
	"github.com/nutrilog/backend/internal/models"
)

// Status classifies consumption against the daily calorie goal.
type Status string

const (
	StatusUnder   Status = "under"
	StatusOnTrack Status = "on-track"
	StatusOver    Status = "over"
)

// Classification thresholds: below 80% of goal is under, above 110% is over.
// Fixed policy, not configurable.
const (
	underRatio = 0.8
	overRatio  = 1.1
)

// Totals are elementwise sums over the food entries of one user-day.
type Totals struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Targets mirrors the calorie goal for the day.
type Targets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// DailyState is the consumed/goal/remaining view for one user-day. It is
// recomputed on every read and never cached.
type DailyState struct {
	Date      string  `json:"date"`
	Consumed  Totals  `json:"consumed"`
	Goal      Targets `json:"goal"`
	Remaining int     `json:"remaining"`
	Status    Status  `json:"status"`
}

// Sum folds the macro fields of the given entries.
func Sum(entries []models.FoodEntry) Totals {
	var t Totals
	for _, e := range entries {
		t.Calories += e.Calories
		t.Protein += e.Protein
		t.Carbs += e.Carbs
		t.Fat += e.Fat
	}
	return t
}

// Classify maps consumed calories against the goal. A goal of zero (or less)
// short-circuits to on-track so the ratio is never computed against zero.
func Classify(consumed, goal int) Status {
	if goal <= 0 {
		return StatusOnTrack
	}
	ratio := float64(consumed) / float64(goal)
	switch {
	case ratio < underRatio:
		return StatusUnder
	case ratio > overRatio:
		return StatusOver
	default:
		return StatusOnTrack
	}
}

// ComputeDailyState produces the daily view for the given entries and goal.
func ComputeDailyState(entries []models.FoodEntry, goal models.CalorieGoal) DailyState {
	consumed := Sum(entries)
	return DailyState{
		Date:     goal.Date,
		Consumed: consumed,
		Goal: Targets{
			Calories: goal.Calories,
			Protein:  goal.Protein,
			Carbs:    goal.Carbs,
			Fat:      goal.Fat,
		},
		Remaining: goal.Calories - consumed.Calories,
		Status:    Classify(consumed.Calories, goal.Calories),
	}
}

// SelectedPlanCalories sums the estimated calories of the selected meal plans.
// This aggregate is independent of the food-entry totals; the two views are
// intentionally never reconciled (plans are aspirational, entries are actual).
func SelectedPlanCalories(plans []models.DailyMealPlan) int {
	total := 0
	for _, p := range plans {
		if p.IsSelected {
			total += p.EstimatedCalories
		}
	}
	return total
}
