package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"taskly/internal/handlers"
	"taskly/internal/middleware"
)

type Handlers struct {
	Tasks         *handlers.TaskHandler
	Activities    *handlers.ActivityHandler
	Comments      *handlers.CommentHandler
	Notifications *handlers.NotificationHandler
	Users         *handlers.UserHandler
}

func SetupRoutes(r *gin.Engine, h Handlers, jwtSecret []byte) *gin.Engine {
	// ---- public
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtSecret))

	tasks := r.Group("/tasks")
	{
		tasks.POST("", h.Tasks.Create)
		tasks.GET("/mine", h.Tasks.Mine)
		tasks.GET("/:id", h.Tasks.Get)
		tasks.PUT("/:id/status", h.Tasks.UpdateStatus)
		tasks.PUT("/:id/approve", h.Tasks.Approve)
		tasks.PUT("/:id/reopen", h.Tasks.Reopen)
		tasks.POST("/:id/activities", h.Activities.Log)
		tasks.GET("/:id/activities", h.Activities.ForTask)
	}

	r.GET("/teams/:id/activities", h.Activities.TeamFeed)

	activities := r.Group("/activities")
	{
		activities.GET("/mine", h.Activities.Mine)
		activities.GET("/:id/comments", h.Comments.Thread)
		activities.POST("/:id/comments", h.Comments.AddRoot)
		activities.GET("/:id/export.pdf", h.Activities.ExportPDF)
	}

	r.POST("/comments/:id/replies", h.Comments.Reply)

	notifications := r.Group("/notifications")
	{
		notifications.GET("", h.Notifications.List)
		notifications.GET("/stream", h.Notifications.Stream)
		notifications.POST("/mark-as-read", h.Notifications.MarkAllRead)
		notifications.POST("/:id/mark-as-read", h.Notifications.MarkOneRead)
		notifications.POST("/meeting-invitations", h.Notifications.Invite)
	}

	users := r.Group("/users")
	{
		users.GET("/me", h.Users.Me)
		users.PUT("/me/telegram", h.Users.LinkTelegram)
	}

	return r
}
