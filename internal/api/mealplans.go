package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutrilog/backend/internal/nutrition"
	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/types"
)

// MealPlanHandler handles AI meal-plan generation, listing and selection
type MealPlanHandler struct {
	plans *service.MealPlanService
}

func NewMealPlanHandler(plans *service.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{plans: plans}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/meal-plans")
	{
		plans.GET("", h.List)
		plans.POST("/generate", h.Generate)
		plans.PATCH("/:id/selection", h.ToggleSelection)
	}
}

func (h *MealPlanHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if !requireDate(c, date) {
		return
	}

	plans, err := h.plans.ListForDate(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meal_plans":        plans,
		"selected_calories": nutrition.SelectedPlanCalories(plans),
	})
}

func (h *MealPlanHandler) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.GenerateMealPlansRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !requireDate(c, req.Date) {
		return
	}

	plans, err := h.plans.Generate(c.Request.Context(), userID, req.Date)
	if err != nil {
		if errors.Is(err, service.ErrAIUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI features are currently unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate meal plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meal_plans":        plans,
		"selected_calories": nutrition.SelectedPlanCalories(plans),
	})
}

func (h *MealPlanHandler) ToggleSelection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal plan ID"})
		return
	}

	var req types.ToggleSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.plans.ToggleSelection(c.Request.Context(), userID, planID, req.IsSelected)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Meal plan belongs to another user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meal plan"})
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}
