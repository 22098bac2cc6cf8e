package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/healthymeal/backend/config"
	"github.com/pageza/healthymeal/backend/internal/database"
	"github.com/pageza/healthymeal/backend/internal/models"
	"github.com/pageza/healthymeal/backend/internal/testhelpers"
)

func TestRunMigrations_Postgres(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)

	for _, table := range []string{"users", "preferences", "user_preferences", "recipes", "recipe_preferences"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	var applied int64
	require.NoError(t, db.Table("migrations").Count(&applied).Error)
	assert.Positive(t, applied)

	// Already applied files are skipped.
	require.NoError(t, database.RunMigrations(db, testhelpers.MigrationsDir()))
	var again int64
	require.NoError(t, db.Table("migrations").Count(&again).Error)
	assert.Equal(t, applied, again)
}

func TestPostgresRecipeEmbedding(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)

	user := models.User{Email: "cook@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)

	recipe := models.Recipe{
		UserID:       user.ID,
		Name:         "Soup",
		Ingredients:  "water",
		Instructions: "Boil.",
		Embedding:    pgvector.NewVector([]float32{4, 2, 2}),
	}
	require.NoError(t, db.Create(&recipe).Error)

	var loaded models.Recipe
	require.NoError(t, db.First(&loaded, "id = ?", recipe.ID).Error)
	assert.Equal(t, []float32{4, 2, 2}, loaded.Embedding.Slice())

	err := db.Create(&models.User{Email: "cook@example.com", PasswordHash: "hash"}).Error
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	require.NoError(t, database.HealthCheck(context.Background(), db))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, database.IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, database.IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, database.IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, database.IsUniqueViolation(errors.New("boom")))
	assert.False(t, database.IsUniqueViolation(nil))
}

func TestNew_Unreachable(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "127.0.0.1",
		DBPort:     "1",
		DBUser:     "postgres",
		DBPassword: "postgres",
		DBName:     "healthymeal",
		DBSSLMode:  "disable",
	}
	db, err := database.New(cfg)
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestRunMigrations_SQLite(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	for _, table := range []string{"users", "preferences", "user_preferences", "recipes", "recipe_preferences"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
