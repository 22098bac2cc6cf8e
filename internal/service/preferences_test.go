package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/healthymeal/backend/internal/service"
	"github.com/pageza/healthymeal/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceService_ListPreferences(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	seedPreferences(t, db, "Vegan", "Gluten-Free", "Vegetarian", "Keto")
	svc := service.NewPreferenceService(db)
	ctx := context.Background()

	all, err := svc.ListPreferences(ctx, "")
	require.NoError(t, err)
	names := make([]string, 0, len(all))
	for _, p := range all {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Gluten-Free", "Keto", "Vegan", "Vegetarian"}, names)

	filtered, err := svc.ListPreferences(ctx, "VEG")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "Vegan", filtered[0].Name)
	assert.Equal(t, "Vegetarian", filtered[1].Name)
}

func TestPreferenceService_ReplaceUserPreferences(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	prefs := seedPreferences(t, db, "Vegan", "Keto", "Paleo")
	user := seedUser(t, db, "prefs@example.com")
	svc := service.NewPreferenceService(db)
	ctx := context.Background()

	t.Run("should replace the whole set", func(t *testing.T) {
		_, err := svc.ReplaceUserPreferences(ctx, user.ID, []uuid.UUID{prefs[0].ID, prefs[1].ID})
		require.NoError(t, err)

		got, err := svc.ReplaceUserPreferences(ctx, user.ID, []uuid.UUID{prefs[2].ID, prefs[2].ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, prefs[2].ID, got[0].PreferenceID)
		assert.Equal(t, "Paleo", got[0].Name)
		assert.Equal(t, user.ID, got[0].UserID)
	})

	t.Run("should leave the set unchanged on unknown id", func(t *testing.T) {
		_, err := svc.ReplaceUserPreferences(ctx, user.ID, []uuid.UUID{prefs[0].ID, uuid.New()})
		assert.ErrorIs(t, err, service.ErrPreferencesNotFound)

		current, err := svc.GetUserPreferences(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, current, 1)
		assert.Equal(t, "Paleo", current[0].Name)
	})
}

func TestPreferenceService_ResolvePreferenceNames(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	prefs := seedPreferences(t, db, "Vegan", "Gluten-Free")
	svc := service.NewPreferenceService(db)
	ctx := context.Background()

	names, err := svc.ResolvePreferenceNames(ctx, []uuid.UUID{prefs[1].ID, prefs[0].ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gluten-Free", "Vegan"}, names)

	names, err = svc.ResolvePreferenceNames(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = svc.ResolvePreferenceNames(ctx, []uuid.UUID{prefs[0].ID, uuid.New()})
	assert.ErrorIs(t, err, service.ErrPreferencesNotFound)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	_, err = svc.ResolvePreferenceNames(ctx, []uuid.UUID{prefs[0].ID})
	assert.ErrorIs(t, err, service.ErrPreferenceLookup)
}
