package api_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthymeal/backend/internal/service"
)

func TestExportHandler_ExportRecipes(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "cook@example.com")

	w := env.do(t, http.MethodPost, "/api/v1/recipes/export", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	env.createRecipe(t, token, "Pancakes", false)
	env.createRecipe(t, token, "Waffles", true)

	w = env.do(t, http.MethodPost, "/api/v1/recipes/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result service.ExportResult
	decode(t, w, &result)
	assert.Equal(t, 2, result.Count)
	assert.True(t, strings.HasPrefix(result.Key, "exports/"))
	assert.Equal(t, "https://bucket.test/"+result.Key, result.URL)
	assert.Contains(t, string(env.objects.objects[result.Key]), "Waffles")

	w = env.do(t, http.MethodPost, "/api/v1/recipes/export", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
