package router

import (
	"time"

	"github.com/forceboard-dev/forceboard/internal/config"
	"github.com/forceboard-dev/forceboard/internal/handlers"
	"github.com/forceboard-dev/forceboard/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	handlers.Domain = cfg.Domain
	handlers.AllowedOrigins = cfg.AllowedOrigins

	r := gin.Default()

	r.Use(middleware.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.ProjectFeed)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PATCH("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)

			projects.GET("/:project_id/snapshot", handlers.GetSnapshot)

			projects.POST("/:project_id/interviews", handlers.CreateInterview)
			projects.GET("/:project_id/interviews", handlers.ListInterviews)

			projects.POST("/:project_id/groups", handlers.CreateGroup)
			projects.GET("/:project_id/groups", handlers.ListGroups)
			projects.PUT("/:project_id/groups/positions", handlers.ReorderGroups)

			projects.GET("/:project_id/matrix", handlers.GetMatrix)
		}

		interviews := api.Group("/interviews", middleware.AuthMiddleware())
		{
			interviews.PATCH("/:interview_id", handlers.UpdateInterview)
			interviews.DELETE("/:interview_id", handlers.DeleteInterview)
			interviews.POST("/:interview_id/stories", handlers.CreateStory)
			interviews.GET("/:interview_id/stories", handlers.ListStories)
		}

		stories := api.Group("/stories", middleware.AuthMiddleware())
		{
			stories.GET("/:story_id", handlers.GetStory)
			stories.PATCH("/:story_id", handlers.UpdateStory)
			stories.DELETE("/:story_id", handlers.DeleteStory)
			stories.POST("/:story_id/forces", handlers.CreateForce)
			stories.GET("/:story_id/forces", handlers.ListForces)
			stories.PUT("/:story_id/matrix/:group_id", handlers.SetMatrixEntry)
		}

		forces := api.Group("/forces", middleware.AuthMiddleware())
		{
			forces.PATCH("/:force_id", handlers.UpdateForce)
			forces.DELETE("/:force_id", handlers.DeleteForce)
		}

		groups := api.Group("/groups", middleware.AuthMiddleware())
		{
			groups.PATCH("/:group_id", handlers.UpdateGroup)
			groups.DELETE("/:group_id", handlers.DeleteGroup)
		}
	}

	return r
}
