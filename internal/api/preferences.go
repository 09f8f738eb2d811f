package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/models"
)

// UpdatePreferencesRequest carries the full preference profile; the PUT
// replaces whatever was stored before.
type UpdatePreferencesRequest struct {
	Age                 *int     `json:"age,omitempty"`
	Gender              string   `json:"gender,omitempty"`
	HeightCm            *int     `json:"height_cm,omitempty"`
	WeightKg            *float64 `json:"weight_kg,omitempty"`
	ActivityLevel       string   `json:"activity_level,omitempty"`
	Goal                string   `json:"goal,omitempty"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Allergies           []string `json:"allergies"`
	CuisinePreferences  []string `json:"cuisine_preferences"`
	DailyCalorieGoal    *int     `json:"daily_calorie_goal,omitempty"`
	DailyProteinGoal    *int     `json:"daily_protein_goal,omitempty"`
	DailyCarbGoal       *int     `json:"daily_carb_goal,omitempty"`
	DailyFatGoal        *int     `json:"daily_fat_goal,omitempty"`
}

// PreferencesHandler handles the user preference profile
type PreferencesHandler struct {
	db *gorm.DB
}

func NewPreferencesHandler(db *gorm.DB) *PreferencesHandler {
	return &PreferencesHandler{db: db}
}

func (h *PreferencesHandler) RegisterRoutes(router *gin.RouterGroup) {
	prefs := router.Group("/preferences")
	{
		prefs.GET("", h.Get)
		prefs.PUT("", h.Update)
	}
}

func (h *PreferencesHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var prefs models.UserPreferences
	err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).First(&prefs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"preferences": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

func (h *PreferencesHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var prefs models.UserPreferences
	err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).First(&prefs).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch preferences"})
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prefs = models.UserPreferences{
			ID:     uuid.New(),
			UserID: userID,
		}
	}

	prefs.Age = req.Age
	prefs.Gender = req.Gender
	prefs.HeightCm = req.HeightCm
	prefs.WeightKg = req.WeightKg
	prefs.ActivityLevel = req.ActivityLevel
	prefs.Goal = req.Goal
	prefs.DietaryRestrictions = emptyIfNil(req.DietaryRestrictions)
	prefs.Allergies = emptyIfNil(req.Allergies)
	prefs.CuisinePreferences = emptyIfNil(req.CuisinePreferences)
	prefs.DailyCalorieGoal = req.DailyCalorieGoal
	prefs.DailyProteinGoal = req.DailyProteinGoal
	prefs.DailyCarbGoal = req.DailyCarbGoal
	prefs.DailyFatGoal = req.DailyFatGoal

	if err := h.db.WithContext(c.Request.Context()).Save(&prefs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

func emptyIfNil(s []string) models.JSONBStringArray {
	if s == nil {
		return models.JSONBStringArray{}
	}
	return models.JSONBStringArray(s)
}
