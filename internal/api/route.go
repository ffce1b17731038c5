package api

import (
	"community/internal/api/middleware"
	"community/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/me", group.UserHandler.GetMe)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			// 列表与详情允许匿名访问，详情带登录态时返回点赞状态
			readGroup := postGroup.Group("")
			readGroup.Use(middleware.AuthOptionalMiddleware())
			{
				readGroup.GET("", group.PostHandler.GetPostList)
				readGroup.GET("/:post_id", group.PostHandler.GetPostDetail)
				readGroup.GET("/:post_id/comments", group.CommentHandler.GetCommentList)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)

				authGroup.POST("/:post_id/like", group.LikeHandler.ToggleLike)

				authGroup.POST("/:post_id/comments", group.CommentHandler.CreateComment)
				authGroup.PUT("/:post_id/comments/:comment_id", group.CommentHandler.UpdateComment)
				authGroup.DELETE("/:post_id/comments/:comment_id", group.CommentHandler.DeleteComment)
			}
		}

		imageGroup := apiGroup.Group("/images")
		imageGroup.Use(middleware.AuthMiddleware())
		{
			imageGroup.POST("", group.ImageHandler.Upload)
		}
	}

	return r
}
