package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ali-aqib/blog/internal/middleware"
)

// Handlers 汇总所有 HTTP Handler，便于一次注册路由
type Handlers struct {
	Auth     *AuthHandler
	Posts    *PostHandler
	Comments *CommentHandler
	Pages    *PageHandler
}

// RegisterRoutes 注册全部页面路由。
// 会话中间件必须已经挂在 router 上，授权中间件按路由挂载。
func RegisterRoutes(router *gin.Engine, h Handlers) {
	guard := middleware.Guard{Deny: HandleServiceError}

	router.GET("/register", h.Auth.RegisterPage)
	router.POST("/register", h.Auth.Register)
	router.GET("/login", h.Auth.LoginPage)
	router.POST("/login", h.Auth.Login)
	router.GET("/logout", h.Auth.Logout)

	router.GET("/", h.Posts.Index)
	router.GET("/post/:id", h.Posts.Show)
	router.POST("/post/:id", h.Posts.AddComment)

	admin := router.Group("/", guard.RequireAdmin())
	{
		admin.GET("/new-post", h.Posts.NewPostPage)
		admin.POST("/new-post", h.Posts.Create)
		admin.GET("/edit-post/:id", h.Posts.EditPostPage)
		admin.POST("/edit-post/:id", h.Posts.Update)
		admin.GET("/delete/:id", h.Posts.Delete)
	}

	router.GET("/delete-comment/:id", guard.RequireCommentOwner(h.Comments.commentService.GetComment), h.Comments.Delete)

	router.GET("/about", h.Pages.About)
	router.GET("/contact", h.Pages.ContactPage)
	router.POST("/contact", h.Pages.SubmitContact)

	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })

	router.NoRoute(func(c *gin.Context) {
		ErrorResponse(c, http.StatusNotFound, "The page you are looking for does not exist.")
	})
}
