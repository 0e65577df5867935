package http

import (
	"github.com/gin-gonic/gin"

	"github.com/iPad7/gantt-4team/internal/adapter/http/handlers"
	"github.com/iPad7/gantt-4team/internal/adapter/http/middleware"
	"github.com/iPad7/gantt-4team/internal/core/ports"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Task   *handlers.TaskHandler
	User   *handlers.UserHandler
	View   *handlers.ViewHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers, auth ports.AuthService) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)
		api.POST("/auth/login", h.User.Login)
	}

	secured := api.Group("")
	secured.Use(middleware.IdentityMiddleware(auth))
	{
		secured.GET("/auth/status", h.User.Status)

		secured.GET("/users", h.User.ListUsers)
		secured.POST("/users", h.User.CreateUser)

		secured.GET("/tasks", h.Task.ListTasks)
		secured.POST("/tasks", h.Task.CreateTask)
		secured.GET("/tasks/roots", h.Task.ListRootTasks)
		secured.GET("/tasks/gantt", h.View.GanttChart)
		secured.GET("/tasks/:id", h.Task.GetTask)
		secured.PATCH("/tasks/:id", h.Task.UpdateTask)
		secured.PUT("/tasks/:id", h.Task.UpdateTask)
		secured.DELETE("/tasks/:id", h.Task.DeleteTask)
		secured.GET("/tasks/:id/subtasks", h.Task.ListSubtasks)
		secured.POST("/tasks/:id/comments", h.Task.AddComment)

		secured.GET("/comments", h.Task.ListComments)
		secured.GET("/dashboard", h.View.Dashboard)
		secured.GET("/timeline", h.View.Timeline)
	}
}
