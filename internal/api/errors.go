package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/healthymeal/backend/internal/middleware"
	"github.com/pageza/healthymeal/backend/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, middleware.ErrorResponse{Error: message})
}

// generationErrorStatus maps a failed generation to its HTTP status and client message.
// Upstream details stay in the logs.
func generationErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrPreferencesNotFound):
		return http.StatusNotFound, service.ErrPreferencesNotFound.Error()
	case errors.Is(err, service.ErrPreferenceLookup):
		return http.StatusInternalServerError, "Failed to resolve preferences"
	case errors.Is(err, service.ErrTimeout):
		return http.StatusGatewayTimeout, "Recipe generation timed out"
	case errors.Is(err, service.ErrInvalidRequest):
		var aiErr *service.AIError
		if errors.As(err, &aiErr) {
			return http.StatusBadRequest, aiErr.Message
		}
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, service.ErrNetwork),
		errors.Is(err, service.ErrAuthentication),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrResponseFormat):
		return http.StatusBadGateway, "Recipe generation failed"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

func logHandlerError(c *gin.Context, err error) {
	log.Printf("Error handling %s %s: %v", c.Request.Method, c.FullPath(), err)
}
