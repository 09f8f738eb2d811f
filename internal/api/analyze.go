package api

import (
	"encoding/base64"
	"io"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/types"
)

// Confidence thresholds below which an analysis is held as a draft instead of
// being saved directly. Photo estimates need more confidence than transcript
// estimates because portion sizing from images is noisier.
const (
	photoConfidenceThreshold = 0.7
	voiceConfidenceThreshold = 0.6
)

// maxPhotoSize bounds uploaded photo payloads.
const maxPhotoSize = 10 << 20 // 10 MB

// AnalyzeHandler handles AI-backed photo and voice food analysis. High
// confidence results are saved as entries immediately; low confidence results
// become drafts the user must confirm.
type AnalyzeHandler struct {
	llm     service.LLMServiceInterface // nil when no AI provider is configured
	entries *service.FoodEntryService
	drafts  service.DraftStore
	photos  service.PhotoStore // nil when S3 is not configured
}

func NewAnalyzeHandler(llm service.LLMServiceInterface, entries *service.FoodEntryService, drafts service.DraftStore, photos service.PhotoStore) *AnalyzeHandler {
	return &AnalyzeHandler{llm: llm, entries: entries, drafts: drafts, photos: photos}
}

func (h *AnalyzeHandler) RegisterRoutes(router *gin.RouterGroup) {
	analyze := router.Group("/analyze")
	{
		analyze.POST("/food", h.AnalyzeFood)
		analyze.POST("/voice", h.AnalyzeVoice)
	}
}

// AnalyzeFood accepts a multipart photo upload, runs the AI analysis and
// either saves an entry or parks a draft depending on confidence.
func (h *AnalyzeHandler) AnalyzeFood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if h.llm == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI features are currently unavailable"})
		return
	}

	date := c.PostForm("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if !requireDate(c, date) {
		return
	}
	mealType := c.PostForm("meal_type")
	if mealType == "" {
		mealType = defaultMealType(time.Now())
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image exceeds the 10MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}

	analysis, err := h.llm.AnalyzeFood(c.Request.Context(), base64.StdEncoding.EncodeToString(imageData))
	if err != nil {
		log.Printf("Food analysis failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to analyze food image. Please try again."})
		return
	}

	// Photo storage is best-effort; the entry survives without a URL.
	imageURL := ""
	if h.photos != nil {
		contentType := fileHeader.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}
		if url, err := h.photos.Upload(c.Request.Context(), userID, imageData, contentType); err == nil {
			imageURL = url
		} else {
			log.Printf("Food photo upload failed: %v", err)
		}
	}

	if analysis.Confidence < photoConfidenceThreshold {
		draft := &service.EntryDraft{
			UserID:      userID.String(),
			Date:        date,
			MealType:    mealType,
			Source:      "photo",
			Description: analysis.Description,
			Calories:    analysis.Calories,
			Protein:     analysis.Protein,
			Carbs:       analysis.Carbs,
			Fat:         analysis.Fat,
			Fiber:       analysis.Fiber,
			Sugar:       analysis.Sugar,
			Sodium:      analysis.Sodium,
			ImageURL:    imageURL,
			Confidence:  analysis.Confidence,
			Advice:      analysis.Advice,
		}
		if err := h.drafts.Save(c.Request.Context(), draft); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save analysis draft"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   types.AnalysisNeedsConfirmation,
			"draft":    draft,
			"analysis": analysis,
		})
		return
	}

	entry := models.FoodEntry{
		UserID:      userID,
		Date:        date,
		MealType:    mealType,
		Description: analysis.Description,
		ImageURL:    imageURL,
		Calories:    int(math.Round(analysis.Calories)),
		Protein:     analysis.Protein,
		Carbs:       analysis.Carbs,
		Fat:         analysis.Fat,
		Fiber:       analysis.Fiber,
		Sugar:       analysis.Sugar,
		Sodium:      analysis.Sodium,
	}
	if err := h.entries.Save(c.Request.Context(), &entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save food entry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   types.AnalysisSaved,
		"entry":    entry,
		"analysis": analysis,
	})
}

// AnalyzeVoice runs the AI analysis over a meal transcript. Irrelevant
// transcripts are rejected with a helpful message, low confidence results
// become drafts.
func (h *AnalyzeHandler) AnalyzeVoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if h.llm == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI features are currently unavailable"})
		return
	}

	var req types.AnalyzeVoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if !requireDate(c, date) {
		return
	}

	analysis, err := h.llm.AnalyzeVoiceInput(c.Request.Context(), req.Transcript)
	if err != nil {
		log.Printf("Voice analysis failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to analyze voice input. Please try again."})
		return
	}

	if !analysis.IsRelevant {
		c.JSON(http.StatusOK, gin.H{
			"status":  types.AnalysisNotFood,
			"message": analysis.Message,
		})
		return
	}

	mealType := analysis.MealType
	if mealType == "" {
		mealType = defaultMealType(time.Now())
	}

	if analysis.Confidence < voiceConfidenceThreshold {
		draft := &service.EntryDraft{
			UserID:      userID.String(),
			Date:        date,
			MealType:    mealType,
			Source:      "voice",
			Description: analysis.Description,
			Calories:    analysis.Calories,
			Protein:     analysis.Protein,
			Carbs:       analysis.Carbs,
			Fat:         analysis.Fat,
			Fiber:       analysis.Fiber,
			Sugar:       analysis.Sugar,
			Sodium:      analysis.Sodium,
			Confidence:  analysis.Confidence,
			Advice:      analysis.Message,
		}
		if err := h.drafts.Save(c.Request.Context(), draft); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save analysis draft"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   types.AnalysisNeedsConfirmation,
			"draft":    draft,
			"analysis": analysis,
			"message":  analysis.Message,
		})
		return
	}

	entry := models.FoodEntry{
		UserID:      userID,
		Date:        date,
		MealType:    mealType,
		Description: analysis.Description,
		Calories:    int(math.Round(analysis.Calories)),
		Protein:     analysis.Protein,
		Carbs:       analysis.Carbs,
		Fat:         analysis.Fat,
		Fiber:       analysis.Fiber,
		Sugar:       analysis.Sugar,
		Sodium:      analysis.Sodium,
	}
	if err := h.entries.Save(c.Request.Context(), &entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save food entry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   types.AnalysisSaved,
		"entry":    entry,
		"message":  analysis.Message,
		"analysis": analysis,
	})
}

// defaultMealType guesses a meal type from the clock when the client did not
// send one and the model had no opinion.
func defaultMealType(now time.Time) string {
	switch h := now.Hour(); {
	case h < 11:
		return models.MealBreakfast
	case h < 15:
		return models.MealLunch
	case h < 21:
		return models.MealDinner
	default:
		return models.MealSnack
	}
}
