package rest

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every gateway route behind the session middleware.
func RegisterRoutes(route gin.IRouter, sessionMiddleware gin.HandlerFunc) {
	feedHandler := NewFeedHandler()
	postHandler := NewPostHandler()
	commentHandler := NewCommentHandler()
	interactionHandler := NewInteractionHandler()
	userHandler := NewUserHandler()

	authorized := route.Group("/")
	authorized.Use(sessionMiddleware)
	{
		authorized.GET("/feed", feedHandler.LoadFeed)

		authorized.GET("/posts/:id", postHandler.GetByID)
		authorized.GET("/posts/:id/comments", commentHandler.FetchByPost)
		authorized.POST("/posts/:id/comments", commentHandler.Create)
		authorized.DELETE("/posts/:id/comments/:commentID", commentHandler.Delete)
		authorized.PUT("/comments/:id", commentHandler.Update)

		authorized.GET("/posts/:id/interaction", interactionHandler.Get)
		authorized.PUT("/posts/:id/interaction", interactionHandler.Set)
		authorized.POST("/posts/:id/like/toggle", interactionHandler.Toggle)

		authorized.GET("/users/:id", userHandler.GetProfile)
		authorized.PUT("/me/profile", userHandler.UpdateProfile)
		authorized.PUT("/me/tags", userHandler.UpdateTags)
	}
}
