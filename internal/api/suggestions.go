package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/types"
)

// SuggestionHandler handles user-initiated AI suggestion requests and their
// history. Eligibility is enforced server-side; an ineligible request gets a
// 412 rather than a suggestion.
type SuggestionHandler struct {
	suggestions *service.SuggestionService
}

func NewSuggestionHandler(suggestions *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestions: suggestions}
}

func (h *SuggestionHandler) RegisterRoutes(router *gin.RouterGroup) {
	suggestions := router.Group("/suggestions")
	{
		suggestions.GET("", h.List)
		suggestions.POST("/meal", h.RequestMeal)
		suggestions.POST("/exercise", h.RequestExercise)
	}
}

func (h *SuggestionHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if !requireDate(c, date) {
		return
	}

	suggestions, err := h.suggestions.ListForDate(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suggestions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *SuggestionHandler) RequestMeal(c *gin.Context) {
	h.request(c, models.SuggestionMeal)
}

func (h *SuggestionHandler) RequestExercise(c *gin.Context) {
	h.request(c, models.SuggestionExercise)
}

func (h *SuggestionHandler) request(c *gin.Context, suggestionType string) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.RequestSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !requireDate(c, req.Date) {
		return
	}

	var suggestion *models.AiSuggestion
	var err error
	if suggestionType == models.SuggestionMeal {
		suggestion, err = h.suggestions.RequestMealSuggestion(c.Request.Context(), userID, req.Date)
	} else {
		suggestion, err = h.suggestions.RequestExerciseSuggestion(c.Request.Context(), userID, req.Date)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotEligible):
			c.JSON(http.StatusPreconditionFailed, gin.H{"error": "Daily state does not warrant this suggestion"})
		case errors.Is(err, service.ErrAIUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI features are currently unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate suggestion"})
		}
		return
	}

	c.JSON(http.StatusCreated, suggestion)
}
