package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilog/backend/internal/mocks"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/types"
)

func performPhotoUpload(t *testing.T, router http.Handler, token, date string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("date", date))
	part, err := writer.CreateFormFile("image", "meal.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/food", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyzeFoodHighConfidenceSavesEntry(t *testing.T) {
	db := SetupTestDB(t)
	llm := &mocks.MockLLMService{FoodResult: &service.FoodAnalysis{
		Description: "Grilled salmon with rice",
		Calories:    520, Protein: 38, Carbs: 45, Fat: 20,
		Confidence: 0.92,
	}}
	router := SetupTestRouter(t, db, llm, mocks.NewMemDraftStore(), nil)
	userID, token := CreateTestUserAndToken(t, db)

	w := performPhotoUpload(t, router, token, "2025-03-10")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Status string           `json:"status"`
		Entry  models.FoodEntry `json:"entry"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.AnalysisSaved, resp.Status)
	assert.Equal(t, 520, resp.Entry.Calories)

	var count int64
	db.DB.Model(&models.FoodEntry{}).Where("user_id = ?", userID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAnalyzeFoodLowConfidenceParksDraft(t *testing.T) {
	db := SetupTestDB(t)
	llm := &mocks.MockLLMService{FoodResult: &service.FoodAnalysis{
		Description: "Possibly a casserole",
		Calories:    400, Protein: 20, Carbs: 35, Fat: 18,
		Confidence: 0.55,
		Advice:     "Take the photo from directly above with better lighting.",
	}}
	drafts := mocks.NewMemDraftStore()
	router := SetupTestRouter(t, db, llm, drafts, nil)
	userID, token := CreateTestUserAndToken(t, db)

	w := performPhotoUpload(t, router, token, "2025-03-10")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Status string             `json:"status"`
		Draft  service.EntryDraft `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.AnalysisNeedsConfirmation, resp.Status)
	assert.NotEmpty(t, resp.Draft.ID)
	assert.Equal(t, "photo", resp.Draft.Source)

	// Nothing persisted until the user confirms
	var count int64
	db.DB.Model(&models.FoodEntry{}).Where("user_id = ?", userID).Count(&count)
	assert.Zero(t, count)
}

func TestConfirmDraftPersistsEntryWithOverrides(t *testing.T) {
	db := SetupTestDB(t)
	llm := &mocks.MockLLMService{FoodResult: &service.FoodAnalysis{
		Description: "Possibly a casserole",
		Calories:    400, Protein: 20, Carbs: 35, Fat: 18,
		Confidence: 0.5,
	}}
	drafts := mocks.NewMemDraftStore()
	router := SetupTestRouter(t, db, llm, drafts, nil)
	userID, token := CreateTestUserAndToken(t, db)

	w := performPhotoUpload(t, router, token, "2025-03-10")
	require.Equal(t, http.StatusOK, w.Code)

	var uploadResp struct {
		Draft service.EntryDraft `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uploadResp))

	calories := 450
	w = PerformRequest(router, http.MethodPost, "/api/v1/food-entries/confirm", token, types.ConfirmDraftRequest{
		DraftID:     uploadResp.Draft.ID,
		Description: "Tuna casserole",
		Calories:    &calories,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var entries []models.FoodEntry
	require.NoError(t, db.DB.Where("user_id = ?", userID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, "Tuna casserole", entries[0].Description)
	assert.Equal(t, 450, entries[0].Calories)
	assert.Equal(t, float64(20), entries[0].Protein, "unoverridden values come from the draft")

	// Confirming twice must fail: the draft is gone
	w = PerformRequest(router, http.MethodPost, "/api/v1/food-entries/confirm", token, types.ConfirmDraftRequest{
		DraftID: uploadResp.Draft.ID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirmDraftRejectsNegativeOverrides(t *testing.T) {
	db := SetupTestDB(t)
	llm := &mocks.MockLLMService{FoodResult: &service.FoodAnalysis{
		Description: "Possibly a casserole",
		Calories:    400, Protein: 20, Carbs: 35, Fat: 18,
		Confidence: 0.5,
	}}
	drafts := mocks.NewMemDraftStore()
	router := SetupTestRouter(t, db, llm, drafts, nil)
	userID, token := CreateTestUserAndToken(t, db)

	w := performPhotoUpload(t, router, token, "2025-03-10")
	require.Equal(t, http.StatusOK, w.Code)

	var uploadResp struct {
		Draft service.EntryDraft `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uploadResp))

	calories := -500
	w = PerformRequest(router, http.MethodPost, "/api/v1/food-entries/confirm", token, types.ConfirmDraftRequest{
		DraftID:  uploadResp.Draft.ID,
		Calories: &calories,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	protein := -5.0
	w = PerformRequest(router, http.MethodPost, "/api/v1/food-entries/confirm", token, types.ConfirmDraftRequest{
		DraftID: uploadResp.Draft.ID,
		Protein: &protein,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.DB.Model(&models.FoodEntry{}).Where("user_id = ?", userID).Count(&count)
	assert.Zero(t, count)

	// The rejected requests must not consume the draft
	w = PerformRequest(router, http.MethodPost, "/api/v1/food-entries/confirm", token, types.ConfirmDraftRequest{
		DraftID: uploadResp.Draft.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestAnalyzeVoiceNotFoodIsRejected(t *testing.T) {
	db := SetupTestDB(t)
	llm := &mocks.MockLLMService{VoiceResult: &service.VoiceAnalysis{
		IsRelevant: false,
		Confidence: 0.9,
		Message:    "That doesn't sound like a meal. Tell me what you ate.",
	}}
	router := SetupTestRouter(t, db, llm, mocks.NewMemDraftStore(), nil)
	userID, token := CreateTestUserAndToken(t, db)

	w := PerformRequest(router, http.MethodPost, "/api/v1/analyze/voice", token, types.AnalyzeVoiceRequest{
		Date:       "2025-03-10",
		Transcript: "The weather is nice today",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.AnalysisNotFood, resp.Status)
	assert.NotEmpty(t, resp.Message)

	var count int64
	db.DB.Model(&models.FoodEntry{}).Where("user_id = ?", userID).Count(&count)
	assert.Zero(t, count)
}

func TestAnalyzeVoiceThresholdIsLowerThanPhoto(t *testing.T) {
	// 0.65 confidence: below the photo threshold but above the voice one,
	// so a transcript at this confidence saves directly.
	db := SetupTestDB(t)
	llm := &mocks.MockLLMService{VoiceResult: &service.VoiceAnalysis{
		IsRelevant:  true,
		Description: "Chicken sandwich",
		Calories:    480, Protein: 28, Carbs: 42, Fat: 20,
		MealType:   models.MealLunch,
		Confidence: 0.65,
		Message:    "Logged your chicken sandwich.",
	}}
	router := SetupTestRouter(t, db, llm, mocks.NewMemDraftStore(), nil)
	userID, token := CreateTestUserAndToken(t, db)

	w := PerformRequest(router, http.MethodPost, "/api/v1/analyze/voice", token, types.AnalyzeVoiceRequest{
		Date:       "2025-03-10",
		Transcript: "I had a chicken sandwich for lunch",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var count int64
	db.DB.Model(&models.FoodEntry{}).Where("user_id = ?", userID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAnalyzeVoiceLowConfidenceParksDraft(t *testing.T) {
	db := SetupTestDB(t)
	llm := &mocks.MockLLMService{VoiceResult: &service.VoiceAnalysis{
		IsRelevant:  true,
		Description: "Some kind of stew",
		Calories:    300, Protein: 15, Carbs: 25, Fat: 12,
		Confidence: 0.4,
		Message:    "How big was the portion?",
	}}
	router := SetupTestRouter(t, db, llm, mocks.NewMemDraftStore(), nil)
	userID, token := CreateTestUserAndToken(t, db)

	w := PerformRequest(router, http.MethodPost, "/api/v1/analyze/voice", token, types.AnalyzeVoiceRequest{
		Transcript: "I had some stew",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.AnalysisNeedsConfirmation, resp.Status)

	var count int64
	db.DB.Model(&models.FoodEntry{}).Where("user_id = ?", userID).Count(&count)
	assert.Zero(t, count)
}
