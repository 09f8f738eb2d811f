package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilog/backend/internal/nutrition"
	"github.com/nutrilog/backend/internal/service"
)

// DailyHandler serves the aggregated day view: entries, goal, consumed totals
// and the under/on-track/over status.
type DailyHandler struct {
	entries *service.FoodEntryService
	goals   *service.GoalService
}

func NewDailyHandler(entries *service.FoodEntryService, goals *service.GoalService) *DailyHandler {
	return &DailyHandler{entries: entries, goals: goals}
}

func (h *DailyHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/days/:date", h.GetDay)
}

func (h *DailyHandler) GetDay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	date := c.Param("date")
	if !requireDate(c, date) {
		return
	}

	entries, err := h.entries.ListForDate(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch food entries"})
		return
	}

	goal, err := h.goals.GetForDate(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch calorie goal"})
		return
	}

	// Date comes from the URL, not the goal row, so default goals (which carry
	// no stored row) still report the requested day.
	goal.Date = date
	state := nutrition.ComputeDailyState(entries, *goal)

	c.JSON(http.StatusOK, gin.H{
		"date":    date,
		"entries": entries,
		"goal":    goal,
		"summary": state,
	})
}
