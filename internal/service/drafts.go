package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrDraftNotFound is returned when a draft has expired or never existed.
var ErrDraftNotFound = errors.New("draft not found")

// draftTTL bounds how long an unconfirmed analysis stays retrievable.
const draftTTL = 24 * time.Hour

// EntryDraft is a provisional food entry held outside the database until the
// user confirms the AI's low-confidence estimate.
type EntryDraft struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Date        string    `json:"date"`
	MealType    string    `json:"meal_type"`
	Source      string    `json:"source"` // "photo" or "voice"
	Description string    `json:"description"`
	Calories    float64   `json:"calories"`
	Protein     float64   `json:"protein"`
	Carbs       float64   `json:"carbs"`
	Fat         float64   `json:"fat"`
	Fiber       *float64  `json:"fiber,omitempty"`
	Sugar       *float64  `json:"sugar,omitempty"`
	Sodium      *float64  `json:"sodium,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Confidence  float64   `json:"confidence"`
	Advice      string    `json:"advice,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// RedisDraftStore keeps entry drafts in Redis with a TTL so abandoned drafts
// clean themselves up.
type RedisDraftStore struct {
	redis *redis.Client
}

// NewRedisDraftStore creates a new RedisDraftStore
func NewRedisDraftStore(client *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{redis: client}
}

func draftKey(id string) string {
	return fmt.Sprintf("entry:draft:%s", id)
}

// Save stores a draft, assigning its ID and creation time.
func (s *RedisDraftStore) Save(ctx context.Context, draft *EntryDraft) error {
	draft.ID = uuid.New().String()
	draft.CreatedAt = time.Now()

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(draft.ID), data, draftTTL).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}

	return nil
}

// Get retrieves a draft by ID.
func (s *RedisDraftStore) Get(ctx context.Context, id string) (*EntryDraft, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft EntryDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// Delete removes a draft.
func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	return nil
}
