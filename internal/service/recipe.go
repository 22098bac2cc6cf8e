package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/healthymeal/backend/internal/models"
	"github.com/pageza/healthymeal/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recipeSorts maps accepted sort values to ORDER BY columns.
var recipeSorts = map[string]clause.OrderByColumn{
	"created_at":      {Column: clause.Column{Table: "recipes", Name: "created_at"}},
	"created_at desc": {Column: clause.Column{Table: "recipes", Name: "created_at"}, Desc: true},
	"name":            {Column: clause.Column{Table: "recipes", Name: "name"}},
	"name desc":       {Column: clause.Column{Table: "recipes", Name: "name"}, Desc: true},
}

// RecipeService handles recipe operations. Every operation is scoped to the owner.
type RecipeService struct {
	db     *gorm.DB
	drafts DraftStore
}

// NewRecipeService creates a new RecipeService instance. drafts may be nil, in which
// case draft references on create are ignored.
func NewRecipeService(db *gorm.DB, drafts DraftStore) *RecipeService {
	return &RecipeService{db: db, drafts: drafts}
}

// CreateRecipe saves a recipe with its preference links in one transaction. A referenced
// draft owned by the user is discarded afterwards.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	name := strings.TrimSpace(req.Name)
	recipe := models.Recipe{
		UserID:        userID,
		Name:          name,
		Ingredients:   req.Ingredients,
		Instructions:  req.Instructions,
		IsAIGenerated: req.IsAIGenerated,
		Embedding:     GenerateEmbedding(recipeEmbeddingText(name, req.Ingredients)),
	}

	ids := uniqueIDs(req.PreferenceIDs)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(ids) > 0 {
			var prefs []models.Preference
			if err := tx.Where("id IN ?", ids).Order("name ASC").Find(&prefs).Error; err != nil {
				return fmt.Errorf("failed to load preferences: %w", err)
			}
			if len(prefs) != len(ids) {
				return ErrPreferencesNotFound
			}
			recipe.Preferences = prefs
		}

		if err := tx.Omit("Preferences.*").Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.DraftID != "" {
		s.discardDraft(ctx, userID, req.DraftID)
	}
	if recipe.Preferences == nil {
		recipe.Preferences = []models.Preference{}
	}
	return &recipe, nil
}

func (s *RecipeService) discardDraft(ctx context.Context, userID uuid.UUID, draftID string) {
	if s.drafts == nil {
		return
	}
	draft, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		if !errors.Is(err, ErrDraftNotFound) {
			log.Printf("Failed to load draft %s after save: %v", draftID, err)
		}
		return
	}
	if draft.UserID != userID {
		return
	}
	if err := s.drafts.Delete(ctx, draftID); err != nil {
		log.Printf("Failed to discard draft %s after save: %v", draftID, err)
	}
}

// GetRecipe retrieves one of the user's recipes by ID
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Preferences", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// DeleteRecipe deletes one of the user's recipes together with its preference links
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return fmt.Errorf("failed to find recipe: %w", err)
		}
		if err := tx.Select("Preferences").Delete(&recipe).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}

// ListRecipes returns one page of the user's recipes and the total number of matches.
// With a search query, Postgres orders matches by embedding distance first.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, q *types.ListRecipesQuery) ([]models.Recipe, int64, error) {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	query := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("recipes.user_id = ?", userID)

	if q.AIGenerated != nil {
		query = query.Where("recipes.is_ai_generated = ?", *q.AIGenerated)
	}
	if q.Preference != nil && *q.Preference != "" {
		prefID, err := uuid.Parse(*q.Preference)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid preference filter: %w", err)
		}
		sub := s.db.Table("recipe_preferences").Select("recipe_id").Where("preference_id = ?", prefID)
		query = query.Where("recipes.id IN (?)", sub)
	}

	search := strings.TrimSpace(q.Query)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(recipes.name) LIKE ? OR LOWER(recipes.ingredients) LIKE ?", like, like)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	if search != "" && s.db.Dialector.Name() == "postgres" {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{
			Name: "recipes.embedding <-> '" + GenerateEmbedding(search).String() + "'",
			Raw:  true,
		}})
	}

	order, ok := recipeSorts[q.Sort]
	if !ok {
		order = recipeSorts["created_at desc"]
	}

	var recipes []models.Recipe
	err := query.
		Order(order).
		Preload("Preferences", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, total, nil
}

// ListAllRecipes returns every recipe of the user, newest first.
func (s *RecipeService) ListAllRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Preferences", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}
