package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/healthymeal/backend/internal/models"
	"github.com/pageza/healthymeal/backend/internal/types"
)

// TokenRevoker records logged-out token IDs until they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// DraftStore keeps generated recipes until the user saves or discards them.
type DraftStore interface {
	Save(ctx context.Context, draft *RecipeDraft) error
	Get(ctx context.Context, id string) (*RecipeDraft, error)
	Delete(ctx context.Context, id string) error
}

// ObjectStore uploads export files and hands out temporary download links.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, claims *types.TokenClaims) error
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
}

// IPreferenceService defines the interface for preference operations
type IPreferenceService interface {
	ListPreferences(ctx context.Context, nameFilter string) ([]models.Preference, error)
	GetUserPreferences(ctx context.Context, userID uuid.UUID) ([]types.UserPreferenceResponse, error)
	ReplaceUserPreferences(ctx context.Context, userID uuid.UUID, preferenceIDs []uuid.UUID) ([]types.UserPreferenceResponse, error)
	ResolvePreferenceNames(ctx context.Context, ids []uuid.UUID) ([]string, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error
	ListRecipes(ctx context.Context, userID uuid.UUID, q *types.ListRecipesQuery) ([]models.Recipe, int64, error)
}

// IGenerationService defines the interface for AI recipe generation and drafts
type IGenerationService interface {
	Generate(ctx context.Context, userID uuid.UUID, description string, preferenceIDs []uuid.UUID) (*RecipeDraft, error)
	GetDraft(ctx context.Context, userID uuid.UUID, id string) (*RecipeDraft, error)
	DiscardDraft(ctx context.Context, userID uuid.UUID, id string) error
}

// IExportService defines the interface for recipe export
type IExportService interface {
	ExportRecipes(ctx context.Context, userID uuid.UUID) (*ExportResult, error)
}
