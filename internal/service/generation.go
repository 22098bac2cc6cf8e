package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// PreferenceResolver turns preference IDs into display names.
type PreferenceResolver interface {
	ResolvePreferenceNames(ctx context.Context, ids []uuid.UUID) ([]string, error)
}

// GenerationService runs AI recipe generation for a user and keeps the result as a draft.
type GenerationService struct {
	preferences PreferenceResolver
	generator   RecipeGenerator
	drafts      DraftStore
}

func NewGenerationService(preferences PreferenceResolver, generator RecipeGenerator, drafts DraftStore) *GenerationService {
	return &GenerationService{
		preferences: preferences,
		generator:   generator,
		drafts:      drafts,
	}
}

// Generate resolves preferenceIDs, asks the generator for a recipe and stores it as a
// draft. Generator failures are returned unchanged so callers can inspect the AIError
// kind. Unknown preferences fail with ErrPreferencesNotFound.
func (s *GenerationService) Generate(ctx context.Context, userID uuid.UUID, description string, preferenceIDs []uuid.UUID) (*RecipeDraft, error) {
	req := GenerationRequest{Description: description}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	names, err := s.preferences.ResolvePreferenceNames(ctx, preferenceIDs)
	if err != nil {
		return nil, err
	}
	req.Preferences = names

	start := time.Now()
	recipe, err := s.generator.GenerateRecipe(ctx, req)
	if err != nil {
		log.Printf("Recipe generation failed for user %s after %s: %v", userID, time.Since(start).Round(time.Millisecond), err)
		return nil, err
	}

	draft := &RecipeDraft{
		UserID:        userID,
		Description:   description,
		Preferences:   names,
		PreferenceIDs: uniqueIDs(preferenceIDs),
		Name:          recipe.Name,
		Ingredients:   recipe.Ingredients,
		Instructions:  recipe.Instructions,
	}
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return draft, nil
}

// GetDraft returns the user's draft. Drafts of other users are reported as not found.
func (s *GenerationService) GetDraft(ctx context.Context, userID uuid.UUID, id string) (*RecipeDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.UserID != userID {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

func (s *GenerationService) DiscardDraft(ctx context.Context, userID uuid.UUID, id string) error {
	if _, err := s.GetDraft(ctx, userID, id); err != nil {
		return err
	}
	return s.drafts.Delete(ctx, id)
}
