package api

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/types"
)

// FoodEntryHandler handles the food entry CRUD surface plus draft
// confirmation for low-confidence AI analyses.
type FoodEntryHandler struct {
	entries *service.FoodEntryService
	drafts  service.DraftStore
}

func NewFoodEntryHandler(entries *service.FoodEntryService, drafts service.DraftStore) *FoodEntryHandler {
	return &FoodEntryHandler{entries: entries, drafts: drafts}
}

func (h *FoodEntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/food-entries")
	{
		entries.GET("", h.List)
		entries.POST("", h.Create)
		entries.GET("/:id", h.Get)
		entries.DELETE("/:id", h.Delete)
		entries.POST("/confirm", h.ConfirmDraft)
	}
}

func (h *FoodEntryHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if !requireDate(c, date) {
		return
	}

	entries, err := h.entries.ListForDate(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch food entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *FoodEntryHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateFoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !requireDate(c, req.Date) {
		return
	}

	entry, err := h.entries.Create(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create food entry"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *FoodEntryHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry ID"})
		return
	}

	entry, err := h.entries.Get(c.Request.Context(), userID, entryID)
	if err != nil {
		respondEntryError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *FoodEntryHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry ID"})
		return
	}

	if err := h.entries.Delete(c.Request.Context(), userID, entryID); err != nil {
		respondEntryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Food entry deleted"})
}

// ConfirmDraft turns a pending low-confidence analysis into a real food
// entry, applying any user overrides, then discards the draft.
func (h *FoodEntryHandler) ConfirmDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.ConfirmDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.drafts.Get(c.Request.Context(), req.DraftID)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found or expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load draft"})
		return
	}
	if draft.UserID != userID.String() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Draft belongs to another user"})
		return
	}

	entry := models.FoodEntry{
		UserID:      userID,
		Date:        draft.Date,
		MealType:    draft.MealType,
		Description: draft.Description,
		ImageURL:    draft.ImageURL,
		Calories:    int(math.Round(draft.Calories)),
		Protein:     draft.Protein,
		Carbs:       draft.Carbs,
		Fat:         draft.Fat,
		Fiber:       draft.Fiber,
		Sugar:       draft.Sugar,
		Sodium:      draft.Sodium,
	}
	if req.Description != "" {
		entry.Description = req.Description
	}
	if req.MealType != "" {
		entry.MealType = req.MealType
	}
	if req.Calories != nil {
		entry.Calories = *req.Calories
	}
	if req.Protein != nil {
		entry.Protein = *req.Protein
	}
	if req.Carbs != nil {
		entry.Carbs = *req.Carbs
	}
	if req.Fat != nil {
		entry.Fat = *req.Fat
	}

	if err := h.entries.Save(c.Request.Context(), &entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save food entry"})
		return
	}

	// Draft cleanup is best-effort; the TTL covers a failed delete.
	_ = h.drafts.Delete(c.Request.Context(), draft.ID)

	c.JSON(http.StatusCreated, gin.H{
		"status": types.AnalysisSaved,
		"entry":  entry,
	})
}

func respondEntryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Food entry not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Food entry belongs to another user"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process food entry"})
	}
}
