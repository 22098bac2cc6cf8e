package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/healthymeal/backend/internal/models"
)

// ExportURLExpiry is the lifetime of an export download link.
const ExportURLExpiry = 15 * time.Minute

// RecipeLister returns every recipe of a user.
type RecipeLister interface {
	ListAllRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
}

// ExportResult describes an uploaded export file.
type ExportResult struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	Count     int       `json:"count"`
	ExpiresAt time.Time `json:"expires_at"`
}

type exportDocument struct {
	ExportedAt time.Time       `json:"exported_at"`
	UserID     uuid.UUID       `json:"user_id"`
	Recipes    []models.Recipe `json:"recipes"`
}

// ExportService writes a user's recipes to object storage as a JSON document.
type ExportService struct {
	recipes RecipeLister
	store   ObjectStore
	now     func() time.Time
}

func NewExportService(recipes RecipeLister, store ObjectStore) *ExportService {
	return &ExportService{recipes: recipes, store: store, now: time.Now}
}

func (s *ExportService) ExportRecipes(ctx context.Context, userID uuid.UUID) (*ExportResult, error) {
	recipes, err := s.recipes.ListAllRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, ErrNothingToExport
	}

	now := s.now().UTC()
	body, err := json.MarshalIndent(exportDocument{ExportedAt: now, UserID: userID, Recipes: recipes}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	key := fmt.Sprintf("exports/%s/recipes-%s.json", userID, now.Format("20060102T150405Z"))
	if err := s.store.PutObject(ctx, key, body, "application/json"); err != nil {
		return nil, err
	}

	url, err := s.store.GeneratePresignedURL(ctx, key, ExportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign export: %w", err)
	}

	return &ExportResult{
		URL:       url,
		Key:       key,
		Count:     len(recipes),
		ExpiresAt: now.Add(ExportURLExpiry),
	}, nil
}
