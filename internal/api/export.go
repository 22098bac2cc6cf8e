package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/healthymeal/backend/internal/middleware"
	"github.com/pageza/healthymeal/backend/internal/service"
)

// ExportHandler uploads a user's recipes to object storage
type ExportHandler struct {
	exportService service.IExportService
	validator     middleware.TokenValidator
}

func NewExportHandler(exportService service.IExportService, validator middleware.TokenValidator) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		validator:     validator,
	}
}

func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recipes/export", middleware.AuthMiddleware(h.validator), h.ExportRecipes)
}

func (h *ExportHandler) ExportRecipes(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	result, err := h.exportService.ExportRecipes(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNothingToExport) {
			respondError(c, http.StatusNotFound, "No recipes to export")
			return
		}
		logHandlerError(c, err)
		respondError(c, http.StatusInternalServerError, "Failed to export recipes")
		return
	}

	c.JSON(http.StatusOK, result)
}
