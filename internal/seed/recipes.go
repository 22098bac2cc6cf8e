package seed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pageza/healthymeal/backend/internal/models"
	"github.com/pageza/healthymeal/backend/internal/service"
	"github.com/pageza/healthymeal/backend/internal/types"
)

// RecipePrompts are the descriptions used for demo recipes.
var RecipePrompts = []string{
	"A traditional Italian pasta with a unique twist",
	"A healthy vegan salad with seasonal ingredients",
	"A quick breakfast smoothie with protein",
	"A spicy Indian curry with a modern twist",
	"A gluten-free bread with alternative flours",
	"A keto-friendly dinner with high protein",
	"A Mediterranean seafood dish with fresh herbs",
	"A vegetarian stir-fry with Asian flavors",
	"A Thai soup with bold flavors",
	"A quick and easy meal for busy weeknights",
	"A budget-friendly dish using pantry staples",
	"A kid-friendly and nutritious lunch",
}

// EnsureUser registers email, or logs in when it already exists, and returns the user.
func EnsureUser(ctx context.Context, auth service.IAuthService, email, password string) (*models.User, error) {
	user, _, err := auth.Register(ctx, email, password)
	if errors.Is(err, service.ErrEmailTaken) {
		user, _, err = auth.Login(ctx, email, password)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to prepare user %s: %w", email, err)
	}
	return user, nil
}

// SeedRecipes generates count recipes for user from RecipePrompts and saves them as AI
// generated. Failed generations are logged and skipped; the number saved is returned.
func SeedRecipes(ctx context.Context, gen service.RecipeGenerator, recipes service.IRecipeService, user *models.User, count int) (int, error) {
	saved := 0
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return saved, err
		}

		prompt := RecipePrompts[i%len(RecipePrompts)]
		generated, err := gen.GenerateRecipe(ctx, service.GenerationRequest{Description: prompt})
		if err != nil {
			log.Printf("Failed to generate recipe %d (%s): %v", i+1, service.ErrorKindOf(err), err)
			continue
		}

		recipe, err := recipes.CreateRecipe(ctx, user.ID, &types.CreateRecipeRequest{
			Name:          generated.Name,
			Ingredients:   generated.Ingredients,
			Instructions:  generated.Instructions,
			IsAIGenerated: true,
		})
		if err != nil {
			return saved, fmt.Errorf("failed to save recipe %q: %w", generated.Name, err)
		}
		saved++
		log.Printf("Created recipe %s (%s)", recipe.Name, recipe.ID)
	}
	return saved, nil
}
