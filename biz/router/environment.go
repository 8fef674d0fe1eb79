package router

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/yi-nology/flagscope/biz/handler"
)

// RegisterAdminRoutes configures the admin API. Mutating endpoints pass
// through the injected admin gate.
func RegisterAdminRoutes(r *server.Hertz, envs *handler.EnvironmentHandler, projects *handler.ProjectHandler, requireAdmin app.HandlerFunc) {
	if envs == nil || projects == nil {
		return
	}

	admin := r.Group("/api/admin")

	environments := admin.Group("/environments")
	environments.GET("", envs.GetAll)
	environments.POST("", requireAdmin, envs.Create)
	environments.POST("/validate", envs.ValidateName)
	environments.PUT("/sort-order", requireAdmin, envs.UpdateSortOrder)
	environments.GET("/:name", envs.Get)
	environments.PUT("/:name", requireAdmin, envs.Update)
	environments.DELETE("/:name", requireAdmin, envs.Delete)
	environments.POST("/:name/on", requireAdmin, envs.ToggleOn)
	environments.POST("/:name/off", requireAdmin, envs.ToggleOff)

	projectGroup := admin.Group("/projects")
	projectGroup.POST("", requireAdmin, projects.Create)
	projectGroup.POST("/:projectId/environments", requireAdmin, projects.ConnectEnvironment)
	projectGroup.DELETE("/:projectId/environments/:name", requireAdmin, projects.DisconnectEnvironment)
	projectGroup.POST("/:projectId/features", requireAdmin, projects.CreateFeature)

	r.GET("/ping", handler.Ping)
}
