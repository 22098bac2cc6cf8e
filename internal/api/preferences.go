package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/healthymeal/backend/internal/middleware"
	"github.com/pageza/healthymeal/backend/internal/service"
	"github.com/pageza/healthymeal/backend/internal/types"
)

// PreferenceHandler serves the preference dictionary and the caller's preference set
type PreferenceHandler struct {
	preferenceService service.IPreferenceService
	validator         middleware.TokenValidator
}

func NewPreferenceHandler(preferenceService service.IPreferenceService, validator middleware.TokenValidator) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
		validator:         validator,
	}
}

func (h *PreferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/preferences", h.ListPreferences)

	me := router.Group("/users/me")
	me.Use(middleware.AuthMiddleware(h.validator))
	{
		me.GET("/preferences", h.GetUserPreferences)
		me.PUT("/preferences", h.UpdateUserPreferences)
	}
}

func (h *PreferenceHandler) ListPreferences(c *gin.Context) {
	prefs, err := h.preferenceService.ListPreferences(c.Request.Context(), c.Query("name"))
	if err != nil {
		logHandlerError(c, err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch preferences")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": prefs})
}

func (h *PreferenceHandler) GetUserPreferences(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	prefs, err := h.preferenceService.GetUserPreferences(c.Request.Context(), userID)
	if err != nil {
		logHandlerError(c, err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch preferences")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": prefs})
}

func (h *PreferenceHandler) UpdateUserPreferences(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req types.UpdateUserPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	prefs, err := h.preferenceService.ReplaceUserPreferences(c.Request.Context(), userID, req.Preferences)
	if err != nil {
		if errors.Is(err, service.ErrPreferencesNotFound) {
			respondError(c, http.StatusNotFound, service.ErrPreferencesNotFound.Error())
			return
		}
		logHandlerError(c, err)
		respondError(c, http.StatusInternalServerError, "Failed to update preferences")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": prefs})
}
