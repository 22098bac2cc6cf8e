package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/healthymeal/backend/internal/service"
	"github.com/pageza/healthymeal/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerationService_Generate(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	prefs := seedPreferences(t, db, "Vegan", "Gluten-Free")
	ctx := context.Background()
	userID := uuid.New()

	t.Run("should resolve names and save a draft", func(t *testing.T) {
		gen := new(mockGenerator)
		drafts := newMemoryDrafts()
		svc := service.NewGenerationService(service.NewPreferenceService(db), gen, drafts)

		gen.On("GenerateRecipe", mock.Anything, service.GenerationRequest{
			Description: "quick pasta dinner",
			Preferences: []string{"Vegan", "Gluten-Free"},
		}).Return(&service.GeneratedRecipe{Name: "Pasta", Ingredients: "pasta\noil", Instructions: "Boil.\nServe."}, nil).Once()

		draft, err := svc.Generate(ctx, userID, "quick pasta dinner", []uuid.UUID{prefs[0].ID, prefs[1].ID})
		require.NoError(t, err)
		gen.AssertExpectations(t)

		assert.NotEmpty(t, draft.ID)
		assert.Equal(t, "Pasta", draft.Name)
		assert.Equal(t, userID, draft.UserID)
		assert.Equal(t, []uuid.UUID{prefs[0].ID, prefs[1].ID}, draft.PreferenceIDs)

		stored, err := svc.GetDraft(ctx, userID, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, "pasta\noil", stored.Ingredients)

		_, err = svc.GetDraft(ctx, uuid.New(), draft.ID)
		assert.ErrorIs(t, err, service.ErrDraftNotFound)

		assert.ErrorIs(t, svc.DiscardDraft(ctx, uuid.New(), draft.ID), service.ErrDraftNotFound)
		require.NoError(t, svc.DiscardDraft(ctx, userID, draft.ID))
		_, err = svc.GetDraft(ctx, userID, draft.ID)
		assert.ErrorIs(t, err, service.ErrDraftNotFound)
	})

	t.Run("should propagate typed AI errors unchanged", func(t *testing.T) {
		gen := new(mockGenerator)
		svc := service.NewGenerationService(service.NewPreferenceService(db), gen, newMemoryDrafts())
		aiErr := &service.AIError{Kind: service.ErrorKindTimeout, StatusCode: 504, Message: "request timed out"}
		gen.On("GenerateRecipe", mock.Anything, mock.Anything).Return(nil, aiErr)

		_, err := svc.Generate(ctx, userID, "soup", nil)
		assert.ErrorIs(t, err, service.ErrTimeout)
		var got *service.AIError
		require.True(t, errors.As(err, &got))
		assert.Same(t, aiErr, got)
	})

	t.Run("should not call the generator when a preference is unknown", func(t *testing.T) {
		gen := new(mockGenerator)
		svc := service.NewGenerationService(service.NewPreferenceService(db), gen, newMemoryDrafts())

		_, err := svc.Generate(ctx, userID, "soup", []uuid.UUID{uuid.New()})
		assert.ErrorIs(t, err, service.ErrPreferencesNotFound)
		assert.NotErrorIs(t, err, service.ErrPreferenceLookup)
		gen.AssertNotCalled(t, "GenerateRecipe", mock.Anything, mock.Anything)
	})

	t.Run("should reject an empty description", func(t *testing.T) {
		gen := new(mockGenerator)
		svc := service.NewGenerationService(service.NewPreferenceService(db), gen, newMemoryDrafts())

		_, err := svc.Generate(ctx, userID, "", nil)
		assert.ErrorIs(t, err, service.ErrValidation)
		gen.AssertNotCalled(t, "GenerateRecipe", mock.Anything, mock.Anything)
	})
}

func TestGenerationService_WithLoremGenerator(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	prefs := seedPreferences(t, db, "Keto")
	svc := service.NewGenerationService(service.NewPreferenceService(db), service.NewLoremGenerator(), newMemoryDrafts())

	draft, err := svc.Generate(context.Background(), uuid.New(), "omelette", []uuid.UUID{prefs[0].ID})
	require.NoError(t, err)
	assert.Contains(t, draft.Name, "omelette")
	assert.Contains(t, draft.Ingredients, "Keto")
	assert.Equal(t, []string{"Keto"}, draft.Preferences)
}
