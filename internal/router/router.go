package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/healthymeal/backend/internal/api"
	"github.com/pageza/healthymeal/backend/internal/middleware"
)

// Handlers groups the API handlers mounted by SetupRouter. Export is nil when object
// storage is not configured.
type Handlers struct {
	Health      *api.HealthHandler
	Auth        *api.AuthHandler
	Preferences *api.PreferenceHandler
	Recipes     *api.RecipeHandler
	Export      *api.ExportHandler
}

// SetupRouter configures the application routes
func SetupRouter(corsOrigins []string, h Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(corsOrigins))
	router.Use(middleware.ErrorHandler())

	h.Health.RegisterRoutes(router)

	// API v1 routes
	v1 := router.Group("/api/v1")
	h.Auth.RegisterRoutes(v1)
	h.Preferences.RegisterRoutes(v1)
	h.Recipes.RegisterRoutes(v1)
	if h.Export != nil {
		h.Export.RegisterRoutes(v1)
	}

	return router
}
