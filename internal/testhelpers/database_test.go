package testhelpers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthymeal/backend/internal/models"
)

func TestMigrationsDir(t *testing.T) {
	entries, err := os.ReadDir(MigrationsDir())
	require.NoError(t, err)

	var sqlFiles int
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".sql" {
			sqlFiles++
		}
	}
	assert.Positive(t, sqlFiles)
}

func TestSetupSQLite_Isolated(t *testing.T) {
	first := SetupSQLite(t)
	second := SetupSQLite(t)

	require.NoError(t, first.Create(&models.Preference{Name: "Vegan"}).Error)

	var count int64
	require.NoError(t, first.Model(&models.Preference{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, second.Model(&models.Preference{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSetupRedis(t *testing.T) {
	client := SetupRedis(t)
	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	v, err := client.Get(context.Background(), "k").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}
