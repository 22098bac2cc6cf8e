package service

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pageza/healthymeal/backend/config"
)

// NewGeneratorFromConfig returns the recipe generator selected by AI_PROVIDER.
func NewGeneratorFromConfig(cfg *config.Config) (RecipeGenerator, error) {
	switch cfg.AIProvider {
	case config.ProviderOpenRouter:
		httpClient := &http.Client{Timeout: cfg.OpenRouterTimeout}
		client, err := NewRecipeClient(cfg.OpenRouterAPIKey, cfg.OpenRouterAPIURL, cfg.OpenRouterModel, cfg.PublicSiteURL, cfg.AppTitle, httpClient)
		if err != nil {
			return nil, err
		}
		log.Printf("Using OpenRouter recipe generator with model %s", client.Model())
		return client, nil
	case config.ProviderLorem:
		log.Printf("Using offline lorem recipe generator")
		return NewLoremGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q", cfg.AIProvider)
	}
}
