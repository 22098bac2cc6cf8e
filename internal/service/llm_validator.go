package service

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// GeneratedRecipe is the normalized output of an AI recipe generation.
type GeneratedRecipe struct {
	Name         string `json:"name"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}

// ParseCompletion extracts choices[0].message.content from a chat completion envelope,
// parses it as a JSON object and validates it against schema. A nil schema returns the
// parsed object untouched.
func ParseCompletion(body []byte, schema *ResponseSchema) (map[string]any, error) {
	content := gjson.GetBytes(body, "choices.0.message.content")
	if !gjson.ValidBytes(body) || !content.Exists() || content.Type != gjson.String {
		return nil, newValidationError("invalid API response format")
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(stripCodeFence(content.String())), &parsed); err != nil {
		return nil, newResponseFormatError("failed to parse response as JSON", err)
	}
	if parsed == nil {
		return nil, newResponseFormatError("failed to parse response as JSON", nil)
	}

	if schema == nil {
		return parsed, nil
	}

	validated, err := schema.Validate(parsed)
	if err != nil {
		return nil, newResponseFormatError("response does not match schema", err)
	}
	return validated, nil
}

// NormalizeRecipe turns a parsed payload into a GeneratedRecipe, joining list-valued
// ingredients and instructions with newlines.
func NormalizeRecipe(payload map[string]any) (*GeneratedRecipe, error) {
	name, err := normalizedField(payload, "name")
	if err != nil {
		return nil, err
	}
	ingredients, err := normalizedField(payload, "ingredients")
	if err != nil {
		return nil, err
	}
	instructions, err := normalizedField(payload, "instructions")
	if err != nil {
		return nil, err
	}

	return &GeneratedRecipe{
		Name:         name,
		Ingredients:  ingredients,
		Instructions: instructions,
	}, nil
}

func normalizedField(payload map[string]any, key string) (string, error) {
	raw, ok := payload[key]
	if !ok || raw == nil {
		return "", newResponseFormatError("missing required field \""+key+"\"", nil)
	}
	s, err := coerceString(raw)
	if err != nil {
		return "", newResponseFormatError("field \""+key+"\": "+err.Error(), err)
	}
	if strings.TrimSpace(s) == "" {
		return "", newResponseFormatError("field \""+key+"\" must not be empty", nil)
	}
	return s, nil
}

// stripCodeFence removes a surrounding Markdown code fence, which some models add even
// when asked for plain JSON.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return content
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	// drop the language tag ("json"), which may share the line with the payload
	if end := strings.IndexAny(trimmed, " \t\r\n{["); end > 0 {
		trimmed = trimmed[end:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
