package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/healthymeal/backend/internal/service"
	"github.com/pageza/healthymeal/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisDraftStore(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	store := service.NewRedisDraftStore(client, time.Minute)
	ctx := context.Background()

	draft := &service.RecipeDraft{
		UserID:       uuid.New(),
		Description:  "soup",
		Preferences:  []string{"Vegan"},
		Name:         "Soup",
		Ingredients:  "water",
		Instructions: "Boil.",
	}
	require.NoError(t, store.Save(ctx, draft))
	assert.NotEmpty(t, draft.ID)

	ttl, err := client.TTL(ctx, "recipe:draft:"+draft.ID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)

	got, err := store.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.Name, got.Name)
	assert.Equal(t, draft.UserID, got.UserID)
	assert.Equal(t, []string{"Vegan"}, got.Preferences)

	require.NoError(t, store.Delete(ctx, draft.ID))
	_, err = store.Get(ctx, draft.ID)
	assert.ErrorIs(t, err, service.ErrDraftNotFound)
}

func TestRedisTokenRevoker(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	revoker := service.NewRedisTokenRevoker(client)
	ctx := context.Background()

	revoked, err := revoker.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, revoker.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = revoker.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}
