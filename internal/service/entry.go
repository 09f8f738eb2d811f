package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/types"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrForbidden is returned when a record belongs to another user.
	ErrForbidden = errors.New("forbidden")
)

// FoodEntryService handles food entry persistence
type FoodEntryService struct {
	db *gorm.DB
}

// NewFoodEntryService creates a new FoodEntryService
func NewFoodEntryService(db *gorm.DB) *FoodEntryService {
	return &FoodEntryService{db: db}
}

// ListForDate returns the user's entries for one date, oldest first.
func (s *FoodEntryService) ListForDate(ctx context.Context, userID uuid.UUID, date string) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("timestamp asc").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list food entries: %w", err)
	}
	return entries, nil
}

// Create persists a manual food entry.
func (s *FoodEntryService) Create(ctx context.Context, userID uuid.UUID, req *types.CreateFoodEntryRequest) (*models.FoodEntry, error) {
	entry := &models.FoodEntry{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        req.Date,
		MealType:    req.MealType,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		Fiber:       req.Fiber,
		Sugar:       req.Sugar,
		Sodium:      req.Sodium,
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create food entry: %w", err)
	}
	return entry, nil
}

// Save persists an already-shaped entry, assigning its ID. Used by the AI
// analysis path where values come from the model rather than the request body.
func (s *FoodEntryService) Save(ctx context.Context, entry *models.FoodEntry) error {
	entry.ID = uuid.New()
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to save food entry: %w", err)
	}
	return nil
}

// Get fetches one entry, enforcing ownership.
func (s *FoodEntryService) Get(ctx context.Context, userID, entryID uuid.UUID) (*models.FoodEntry, error) {
	var entry models.FoodEntry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get food entry: %w", err)
	}
	if entry.UserID != userID {
		return nil, ErrForbidden
	}
	return &entry, nil
}

// Delete removes one entry, enforcing ownership.
func (s *FoodEntryService) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	entry, err := s.Get(ctx, userID, entryID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(entry).Error; err != nil {
		return fmt.Errorf("failed to delete food entry: %w", err)
	}
	return nil
}
