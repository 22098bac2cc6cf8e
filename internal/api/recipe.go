package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/healthymeal/backend/internal/middleware"
	"github.com/pageza/healthymeal/backend/internal/models"
	"github.com/pageza/healthymeal/backend/internal/service"
	"github.com/pageza/healthymeal/backend/internal/types"
)

// RecipeHandler serves saved recipes, AI generation and drafts
type RecipeHandler struct {
	recipeService     service.IRecipeService
	generationService service.IGenerationService
	validator         middleware.TokenValidator
	generationLimiter *middleware.RateLimiter
}

// NewRecipeHandler creates a RecipeHandler. A nil limiter disables generation rate limiting.
func NewRecipeHandler(recipeService service.IRecipeService, generationService service.IGenerationService, validator middleware.TokenValidator, generationLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService:     recipeService,
		generationService: generationService,
		validator:         validator,
		generationLimiter: generationLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.validator))
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)

		generate := []gin.HandlerFunc{h.GenerateRecipe}
		if h.generationLimiter != nil {
			generate = append([]gin.HandlerFunc{h.generationLimiter.RateLimitMiddleware()}, generate...)
		}
		recipes.POST("/generate", generate...)
		recipes.GET("/drafts/:id", h.GetDraft)
		recipes.DELETE("/drafts/:id", h.DeleteDraft)
	}
}

// GeneratedRecipeResponse is returned by POST /recipes/generate.
type GeneratedRecipeResponse struct {
	Recipe  service.GeneratedRecipe `json:"recipe"`
	DraftID string                  `json:"draft_id"`
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var query types.ListRecipesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	recipes, total, err := h.recipeService.ListRecipes(c.Request.Context(), userID, &query)
	if err != nil {
		logHandlerError(c, err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch recipes")
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}

	c.JSON(http.StatusOK, gin.H{
		"meta": types.PageMeta{Page: query.Page, Limit: query.Limit, Total: total},
		"data": recipes,
	})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrPreferencesNotFound) {
			respondError(c, http.StatusNotFound, service.ErrPreferencesNotFound.Error())
			return
		}
		logHandlerError(c, err)
		respondError(c, http.StatusInternalServerError, "Failed to create recipe")
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid recipe id")
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			respondError(c, http.StatusNotFound, "Recipe not found")
			return
		}
		logHandlerError(c, err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch recipe")
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid recipe id")
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			respondError(c, http.StatusNotFound, "Recipe not found")
			return
		}
		logHandlerError(c, err)
		respondError(c, http.StatusInternalServerError, "Failed to delete recipe")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) GenerateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	draft, err := h.generationService.Generate(c.Request.Context(), userID, req.Description, req.Preferences)
	if err != nil {
		status, message := generationErrorStatus(err)
		logHandlerError(c, err)
		respondError(c, status, message)
		return
	}

	c.JSON(http.StatusAccepted, GeneratedRecipeResponse{
		Recipe: service.GeneratedRecipe{
			Name:         draft.Name,
			Ingredients:  draft.Ingredients,
			Instructions: draft.Instructions,
		},
		DraftID: draft.ID,
	})
}

func (h *RecipeHandler) GetDraft(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	draft, err := h.generationService.GetDraft(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			respondError(c, http.StatusNotFound, "Draft not found")
			return
		}
		logHandlerError(c, err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch draft")
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *RecipeHandler) DeleteDraft(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := h.generationService.DiscardDraft(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			respondError(c, http.StatusNotFound, "Draft not found")
			return
		}
		logHandlerError(c, err)
		respondError(c, http.StatusInternalServerError, "Failed to delete draft")
		return
	}

	c.Status(http.StatusNoContent)
}
