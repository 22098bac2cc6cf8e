package service

import (
	"context"
	"strings"
	"sync"

	loremgen "github.com/bozaro/golorem"
)

// LoremGenerator returns placeholder recipes without calling a model. It is used when
// AI_PROVIDER=lorem so the generation flow works offline.
type LoremGenerator struct {
	mu        sync.Mutex
	generator *loremgen.Lorem
}

// NewLoremGenerator creates a LoremGenerator.
func NewLoremGenerator() *LoremGenerator {
	return &LoremGenerator{generator: loremgen.New()}
}

// GenerateRecipe validates req and returns a recipe of placeholder text. The description
// becomes part of the recipe name.
func (g *LoremGenerator) GenerateRecipe(ctx context.Context, req GenerationRequest) (*GeneratedRecipe, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		if isTimeout(ctx, err) {
			return nil, newTimeoutError(0, err)
		}
		return nil, newNetworkError(0, "request cancelled", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	ingredients := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		ingredients = append(ingredients, g.generator.Word(3, 10)+" "+g.generator.Word(3, 8))
	}
	for _, pref := range req.Preferences {
		ingredients = append(ingredients, pref+" "+g.generator.Word(4, 8))
	}

	instructions := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		instructions = append(instructions, g.generator.Sentence(6, 14))
	}

	return &GeneratedRecipe{
		Name:         strings.TrimSpace(req.Description) + " " + g.generator.Word(4, 9),
		Ingredients:  strings.Join(ingredients, "\n"),
		Instructions: strings.Join(instructions, "\n"),
	}, nil
}
