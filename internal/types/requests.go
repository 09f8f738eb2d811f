package types

// CreateFoodEntryRequest is the manual-entry payload.
type CreateFoodEntryRequest struct {
	Date        string   `json:"date" binding:"required"`
	MealType    string   `json:"meal_type" binding:"required,oneof=breakfast lunch dinner snack"`
	Description string   `json:"description" binding:"required"`
	Calories    int      `json:"calories" binding:"min=0"`
	Protein     float64  `json:"protein" binding:"min=0"`
	Carbs       float64  `json:"carbs" binding:"min=0"`
	Fat         float64  `json:"fat" binding:"min=0"`
	Fiber       *float64 `json:"fiber,omitempty"`
	Sugar       *float64 `json:"sugar,omitempty"`
	Sodium      *float64 `json:"sodium,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// SetGoalRequest upserts the calorie goal for one date.
type SetGoalRequest struct {
	Date     string `json:"date" binding:"required"`
	Calories int    `json:"calories" binding:"required,min=0"`
	Protein  int    `json:"protein" binding:"min=0"`
	Carbs    int    `json:"carbs" binding:"min=0"`
	Fat      int    `json:"fat" binding:"min=0"`
}

// RequestSuggestionRequest asks for a new AI suggestion for one date.
type RequestSuggestionRequest struct {
	Date string `json:"date" binding:"required"`
}

// GenerateMealPlansRequest asks for the AI daily meal-plan batch.
type GenerateMealPlansRequest struct {
	Date string `json:"date" binding:"required"`
}

// ToggleSelectionRequest flips a meal plan's selected flag.
type ToggleSelectionRequest struct {
	IsSelected bool `json:"is_selected"`
}

// AnalyzeVoiceRequest carries a speech transcript for nutrition analysis.
type AnalyzeVoiceRequest struct {
	Date       string `json:"date"`
	Transcript string `json:"transcript" binding:"required"`
}

// ConfirmDraftRequest persists a pending low-confidence analysis draft as a
// food entry, optionally overriding the estimated values.
type ConfirmDraftRequest struct {
	DraftID     string   `json:"draft_id" binding:"required"`
	Description string   `json:"description,omitempty"`
	MealType    string   `json:"meal_type,omitempty" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	Calories    *int     `json:"calories,omitempty" binding:"omitempty,min=0"`
	Protein     *float64 `json:"protein,omitempty" binding:"omitempty,gte=0"`
	Carbs       *float64 `json:"carbs,omitempty" binding:"omitempty,gte=0"`
	Fat         *float64 `json:"fat,omitempty" binding:"omitempty,gte=0"`
}

// Analysis outcome tags. Every AI analysis response carries exactly one of
// these so callers handle each variant explicitly instead of sniffing
// optional fields.
const (
	AnalysisSaved             = "saved"
	AnalysisNeedsConfirmation = "needs_confirmation"
	AnalysisNotFood           = "not_food"
)
