package service

import (
	"strings"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/pageza/healthymeal/backend/internal/models"
)

// GenerateEmbedding returns a small deterministic embedding of text: its length and
// its vowel and consonant counts. It only orders keyword matches, so it does not need
// a model.
func GenerateEmbedding(text string) pgvector.Vector {
	text = strings.ToLower(text)
	var length, vowels, consonants float32
	for _, r := range text {
		length++
		switch {
		case strings.ContainsRune("aeiouy", r):
			vowels++
		case r >= 'a' && r <= 'z':
			consonants++
		}
	}
	values := make([]float32, 0, models.EmbeddingDimensions)
	values = append(values, length, vowels, consonants)
	return pgvector.NewVector(values)
}

// recipeEmbeddingText is the text a recipe is embedded from.
func recipeEmbeddingText(name, ingredients string) string {
	return name + "\n" + ingredients
}
