package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/types"
)

// GoalHandler handles per-day calorie goal reads and upserts
type GoalHandler struct {
	goals *service.GoalService
}

func NewGoalHandler(goals *service.GoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.GET("/:date", h.Get)
		goals.PUT("", h.Set)
	}
}

func (h *GoalHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	date := c.Param("date")
	if !requireDate(c, date) {
		return
	}

	goal, err := h.goals.GetForDate(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch calorie goal"})
		return
	}
	goal.Date = date

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Set(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.SetGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !requireDate(c, req.Date) {
		return
	}

	goal, err := h.goals.Upsert(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save calorie goal"})
		return
	}

	c.JSON(http.StatusOK, goal)
}
