// Package api exposes the services over HTTP with gin. Every error body is
// {"message": "..."}.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/service"
)

// Services groups the dependencies of the HTTP handlers.
type Services struct {
	Auth      service.IAuthService
	Profiles  service.IProfileService
	Recipes   service.IRecipeService
	Reviews   service.IReviewService
	Favorites service.IFavoriteService
}

// RegisterRoutes mounts every handler on router, usually the /api group.
func RegisterRoutes(router *gin.RouterGroup, svc Services) {
	NewAuthHandler(svc.Auth).RegisterRoutes(router)

	public := router.Group("")
	public.Use(middleware.OptionalAuthMiddleware(svc.Auth))

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(svc.Auth))

	NewRecipeHandler(svc.Recipes, svc.Favorites).RegisterRoutes(public, protected)
	NewReviewHandler(svc.Reviews).RegisterRoutes(protected)
	NewFavoriteHandler(svc.Favorites).RegisterRoutes(protected)
	NewProfileHandler(svc.Profiles, svc.Recipes).RegisterRoutes(protected.Group("/recipes"))
}

// HealthChecker reports whether a dependency is usable.
type HealthChecker func(ctx context.Context) error

// HealthCheck answers 200 when every check passes and 503 otherwise.
func HealthCheck(checks map[string]HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(c.Request.Context()); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}

		overall := "healthy"
		if status != http.StatusOK {
			overall = "unhealthy"
		}
		c.JSON(status, gin.H{
			"status": overall,
			"checks": results,
		})
	}
}
