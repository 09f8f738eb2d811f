package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/nutrilog/backend/config"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/nutrition"
)

// FoodAnalysis is the parsed result of a food photo analysis.
type FoodAnalysis struct {
	Description string   `json:"description"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Fiber       *float64 `json:"fiber,omitempty"`
	Sugar       *float64 `json:"sugar,omitempty"`
	Sodium      *float64 `json:"sodium,omitempty"`
	Confidence  float64  `json:"confidence"`
	Advice      string   `json:"advice,omitempty"`
}

// VoiceAnalysis is the parsed result of a meal-transcript analysis. IsRelevant
// is false when the transcript does not describe food consumption at all.
type VoiceAnalysis struct {
	IsRelevant  bool     `json:"is_relevant"`
	Description string   `json:"description,omitempty"`
	Calories    float64  `json:"calories,omitempty"`
	Protein     float64  `json:"protein,omitempty"`
	Carbs       float64  `json:"carbs,omitempty"`
	Fat         float64  `json:"fat,omitempty"`
	Fiber       *float64 `json:"fiber,omitempty"`
	Sugar       *float64 `json:"sugar,omitempty"`
	Sodium      *float64 `json:"sodium,omitempty"`
	MealType    string   `json:"meal_type,omitempty"`
	Confidence  float64  `json:"confidence"`
	Message     string   `json:"message"`
}

// MealPlanData is one proposed meal as returned by the model.
type MealPlanData struct {
	MealType          string   `json:"meal_type"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	EstimatedCalories float64  `json:"estimated_calories"`
	EstimatedProtein  float64  `json:"estimated_protein"`
	EstimatedCarbs    float64  `json:"estimated_carbs"`
	EstimatedFat      float64  `json:"estimated_fat"`
	Ingredients       []string `json:"ingredients"`
	Instructions      string   `json:"instructions,omitempty"`
}

// LLMService handles interactions with the chat-completions API
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg *config.Config) (*LLMService, error) {
	if cfg.AIAPIKey == "" {
		return nil, fmt.Errorf("AI API key must be set")
	}

	apiURL := cfg.AIAPIURL
	if apiURL == "" {
		apiURL = "https://api.openai.com/v1/chat/completions"
	}
	model := cfg.AIModel
	if model == "" {
		model = "gpt-4.1"
	}

	return &LLMService{
		apiKey: cfg.AIAPIKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Message represents a message in the chat. Content is a plain string for
// text-only turns, or a part list when an image is attached.
type Message struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// Request represents a chat-completions request
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
}

// complete sends one chat-completions request and returns the first choice's
// message content.
func (s *LLMService) complete(ctx context.Context, reqBody Request) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("AI API request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("AI API request failed with status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Choices[0].Message.Content, nil
}

const foodAnalysisSystemPrompt = `You are a nutrition expert AI. Analyze food images and provide detailed nutritional information.
Respond with JSON in this exact format:
{
  "description": "Clear description of the food item(s)",
  "calories": number,
  "protein": number (in grams),
  "carbs": number (in grams),
  "fat": number (in grams),
  "fiber": number (in grams, optional),
  "sugar": number (in grams, optional),
  "sodium": number (in mg, optional),
  "confidence": number (0-1, how confident you are in the analysis),
  "advice": "string (optional advice if image quality is poor or unclear)"
}

If the image is unclear or doesn't show food clearly, set confidence low and provide helpful advice in the advice field of what photo to make.
Make reasonable estimates based on visible portion sizes. Be as accurate as possible with nutritional values.`

// AnalyzeFood estimates the nutrition of a photographed meal. The model's
// numbers are clamped to be non-negative and the confidence to [0,1] before
// anyone downstream sees them.
func (s *LLMService) AnalyzeFood(ctx context.Context, base64Image string) (*FoodAnalysis, error) {
	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: foodAnalysisSystemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: "Please analyze this food image and provide detailed nutritional information."},
				{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + base64Image}},
			}},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		MaxTokens:      500,
	}

	content, err := s.complete(ctx, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze food image: %w", err)
	}

	var raw struct {
		Description string   `json:"description"`
		Calories    float64  `json:"calories"`
		Protein     float64  `json:"protein"`
		Carbs       float64  `json:"carbs"`
		Fat         float64  `json:"fat"`
		Fiber       *float64 `json:"fiber"`
		Sugar       *float64 `json:"sugar"`
		Sodium      *float64 `json:"sodium"`
		Confidence  *float64 `json:"confidence"`
		Advice      string   `json:"advice"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse food analysis: %w", err)
	}

	confidence := 0.5
	if raw.Confidence != nil {
		confidence = clamp01(*raw.Confidence)
	}

	analysis := &FoodAnalysis{
		Description: raw.Description,
		Calories:    nonNegative(raw.Calories),
		Protein:     nonNegative(raw.Protein),
		Carbs:       nonNegative(raw.Carbs),
		Fat:         nonNegative(raw.Fat),
		Fiber:       raw.Fiber,
		Sugar:       raw.Sugar,
		Sodium:      raw.Sodium,
		Confidence:  confidence,
		Advice:      raw.Advice,
	}
	if analysis.Description == "" {
		analysis.Description = "Unknown food item"
	}

	return analysis, nil
}

const voiceAnalysisSystemPrompt = `You are a nutrition expert AI that analyzes voice transcriptions about food consumption.
Determine if the user is describing food they ate and provide nutritional estimates.

Respond with JSON in this exact format:
{
  "is_relevant": boolean (true if describing food consumption, false otherwise),
  "description": "string (clear description of the food if relevant)",
  "calories": number (estimated calories if relevant),
  "protein": number (grams if relevant),
  "carbs": number (grams if relevant),
  "fat": number (grams if relevant),
  "fiber": number (grams, optional),
  "sugar": number (grams, optional),
  "sodium": number (mg, optional),
  "meal_type": "breakfast|lunch|dinner|snack" (best guess based on context),
  "confidence": number (0-1, confidence in nutritional estimates),
  "message": "string (helpful response to user)"
}

If not food-related, set is_relevant to false and provide a helpful message asking them to describe food they ate.
If food-related but unclear, set low confidence and ask for clarification in the message.
Make reasonable estimates based on typical portion sizes when amounts aren't specified.`

// AnalyzeVoiceInput estimates nutrition from a spoken meal description.
func (s *LLMService) AnalyzeVoiceInput(ctx context.Context, transcript string) (*VoiceAnalysis, error) {
	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: voiceAnalysisSystemPrompt},
			{Role: "user", Content: transcript},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		MaxTokens:      500,
	}

	content, err := s.complete(ctx, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze voice input: %w", err)
	}

	var analysis VoiceAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse voice analysis: %w", err)
	}

	analysis.Calories = nonNegative(analysis.Calories)
	analysis.Protein = nonNegative(analysis.Protein)
	analysis.Carbs = nonNegative(analysis.Carbs)
	analysis.Fat = nonNegative(analysis.Fat)
	analysis.Confidence = clamp01(analysis.Confidence)

	return &analysis, nil
}

// GenerateMealSuggestion asks the model what to eat next given remaining
// calories, the clock time and today's logged meals.
func (s *LLMService) GenerateMealSuggestion(ctx context.Context, req nutrition.MealSuggestionRequest) (string, error) {
	mealLines := make([]string, 0, len(req.TodaysMeals))
	for _, m := range req.TodaysMeals {
		mealLines = append(mealLines, fmt.Sprintf("%s: %s (%d cal)", m.MealType, m.Description, m.Calories))
	}
	mealsContext := strings.Join(mealLines, ", ")
	if mealsContext == "" {
		mealsContext = "None yet"
	}

	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{
				Role:    "system",
				Content: "You are a nutrition AI assistant. Provide personalized meal suggestions based on remaining calories, time of day, and what the user has already eaten. Keep suggestions practical, healthy, and specific. Respond in a friendly, conversational tone. Can contain description about the preparation too. The response always be in HTML formatted text, and can contain emojis to make it more engaging.",
			},
			{
				Role: "user",
				Content: fmt.Sprintf("Current time: %s\nRemaining calories for today: %d\nToday's meals so far: %s\n\nPlease suggest what I should eat next, considering the time of day and my remaining calorie budget. Be specific with food suggestions.",
					req.CurrentTime, req.RemainingCalories, mealsContext),
			},
		},
		MaxTokens: 300,
	}

	content, err := s.complete(ctx, reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to generate meal suggestion: %w", err)
	}
	if content == "" {
		content = "Consider having a balanced meal that fits your remaining calorie budget."
	}
	return content, nil
}

// GenerateExerciseSuggestion asks the model for activities to offset the
// excess calories.
func (s *LLMService) GenerateExerciseSuggestion(ctx context.Context, req nutrition.ExerciseSuggestionRequest) (string, error) {
	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{
				Role:    "system",
				Content: "You are a fitness AI assistant. Provide practical exercise suggestions to burn excess calories. Give specific activities with approximate durations and calorie burn estimates. Keep suggestions realistic and achievable.",
			},
			{
				Role: "user",
				Content: fmt.Sprintf("I've exceeded my daily calorie goal by %d calories. What exercises can I do to help balance this out? Please provide specific activities with estimated durations and calorie burn.",
					req.ExcessCalories),
			},
		},
		MaxTokens: 200,
	}

	content, err := s.complete(ctx, reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to generate exercise suggestion: %w", err)
	}
	if content == "" {
		content = "Consider some light physical activity like a 30-minute walk to help balance your calorie intake."
	}
	return content, nil
}

const mealPlanSystemPrompt = `You are a nutrition AI assistant. Generate a complete daily meal plan with breakfast, lunch, dinner, and one healthy snack. Each meal should have realistic nutrition estimates and detailed preparation instructions. Respond with JSON in this exact format:
{
  "meals": [
    {
      "meal_type": "breakfast",
      "title": "Meal name",
      "description": "Brief appetizing description",
      "estimated_calories": number,
      "estimated_protein": number,
      "estimated_carbs": number,
      "estimated_fat": number,
      "ingredients": ["ingredient1", "ingredient2"],
      "instructions": "Detailed preparation steps"
    }
  ]
}`

// GenerateDailyMealPlans asks the model for a four-meal plan that hits the
// day's nutrition targets.
func (s *LLMService) GenerateDailyMealPlans(ctx context.Context, goal models.CalorieGoal, dietaryRestrictions []string) ([]MealPlanData, error) {
	prompt := fmt.Sprintf("Generate a daily meal plan for someone with these nutrition goals:\n- Calories: %d\n- Protein: %dg\n- Carbs: %dg\n- Fat: %dg\n",
		goal.Calories, goal.Protein, goal.Carbs, goal.Fat)
	if len(dietaryRestrictions) > 0 {
		prompt += "- Dietary restrictions: " + strings.Join(dietaryRestrictions, ", ") + "\n"
	}
	prompt += "\nCreate balanced, tasty meals that hit these targets. Include breakfast, lunch, dinner, and one healthy snack."

	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: mealPlanSystemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		MaxTokens:      1500,
	}

	content, err := s.complete(ctx, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to generate meal plans: %w", err)
	}

	var wrapper struct {
		Meals []MealPlanData `json:"meals"`
	}
	if err := json.Unmarshal([]byte(content), &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse meal plans: %w", err)
	}

	return wrapper.Meals, nil
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
