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

// DraftTTL is how long an unsaved generated recipe is kept.
const DraftTTL = 24 * time.Hour

// RecipeDraft is a generated recipe waiting to be saved or discarded by its owner.
type RecipeDraft struct {
	ID            string      `json:"id"`
	UserID        uuid.UUID   `json:"user_id"`
	Description   string      `json:"description"`
	Preferences   []string    `json:"preferences"`
	PreferenceIDs []uuid.UUID `json:"preference_ids"`
	Name          string      `json:"name"`
	Ingredients   string      `json:"ingredients"`
	Instructions  string      `json:"instructions"`
	CreatedAt     time.Time   `json:"created_at"`
}

// RedisDraftStore keeps drafts as JSON values under recipe:draft:<id>.
type RedisDraftStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	if ttl <= 0 {
		ttl = DraftTTL
	}
	return &RedisDraftStore{redis: client, ttl: ttl}
}

func draftKey(id string) string {
	return fmt.Sprintf("recipe:draft:%s", id)
}

// Save assigns an ID when the draft has none and stores it.
func (s *RedisDraftStore) Save(ctx context.Context, draft *RecipeDraft) error {
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now()
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(draft.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}
	return nil
}

// Get returns ErrDraftNotFound when the draft does not exist or has expired.
func (s *RedisDraftStore) Get(ctx context.Context, id string) (*RecipeDraft, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft RecipeDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	return nil
}
