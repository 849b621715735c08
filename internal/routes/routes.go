package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/thejas-1999/Assets-Management/internal/container"
	"github.com/thejas-1999/Assets-Management/internal/middleware"
	"github.com/thejas-1999/Assets-Management/pkg/security"
)

// RegisterPublicRoutes mounts the endpoints that work without a token.
func RegisterPublicRoutes(router *gin.Engine, container *container.Container) {
	container.LoginHandler.RegisterRoutes(router)
}

// RegisterProtectedRoutes mounts everything behind JWT authentication
// under /api.
func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protectedRoutes := router.Group("/api")
	protectedRoutes.Use(security.JWTMiddleware())

	container.AssetHandler.RegisterRoutes(protectedRoutes)
	container.EmployeeHandler.RegisterRoutes(protectedRoutes)
	container.RequestHandler.RegisterRoutes(protectedRoutes)
	container.UserHandler.RegisterRoutes(protectedRoutes)
	container.AuditLogHandler.RegisterRoutes(protectedRoutes)
	container.SettingsHandler.RegisterRoutes(protectedRoutes)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())
}
