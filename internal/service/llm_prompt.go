package service

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const maxDescriptionLength = 500

// ErrInvalidRequest is wrapped by validation errors about the caller's input, as opposed
// to validation errors about the upstream envelope.
var ErrInvalidRequest = errors.New("invalid generation request")

// GenerationRequest is the input of an AI recipe generation. Preferences are display
// names, already resolved from preference IDs by the caller.
type GenerationRequest struct {
	Description string
	Preferences []string
}

// Validate checks the description length (1-500 characters).
func (r GenerationRequest) Validate() error {
	n := utf8.RuneCountInString(strings.TrimSpace(r.Description))
	if n == 0 {
		return newRequestError("description is required")
	}
	if utf8.RuneCountInString(r.Description) > maxDescriptionLength {
		return newRequestError("description must be at most 500 characters")
	}
	return nil
}

// BuildRecipePrompt renders the user message sent to the model. The output depends only
// on its inputs.
func BuildRecipePrompt(description string, preferences []string) string {
	var b strings.Builder
	b.WriteString("Create a recipe based on the following description: ")
	b.WriteString(description)
	b.WriteString("\n")

	if len(preferences) > 0 {
		b.WriteString("Consider these dietary preferences: ")
		b.WriteString(strings.Join(preferences, ", "))
		b.WriteString(".\n")
	}

	b.WriteString("\nRespond with a JSON object containing exactly these fields:\n")
	b.WriteString("- \"name\": the name of the recipe\n")
	b.WriteString("- \"ingredients\": a list of ingredients, each with its quantity and unit of measure\n")
	b.WriteString("- \"instructions\": a list of preparation steps in the order they should be performed\n")
	return b.String()
}
