package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hacklog-frontend/internal/domains/auth"
	"hacklog-frontend/internal/shared/middleware"
	"hacklog-frontend/pkg/container"
)

// ========================================
// ROUTER SETUP
// ========================================

// SetupRouter cấu hình toàn bộ routes và middleware chain
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// ========================================
	// GLOBAL MIDDLEWARE
	// ========================================
	// Thứ tự quan trọng: Recovery phải đứng đầu
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(c.Config.App.CORSOrigin))
	router.Use(middleware.Session(c.Config.Session.CookieName))

	// ========================================
	// API V1 ROUTES
	// ========================================
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"service": "hacklog-frontend",
			})
		})

		setupAuthRoutes(v1, c)
		setupViewRoutes(v1, c)
		setupArticleRoutes(v1, c)
		setupMutationRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================

// setupAuthRoutes - session endpoints (Login/Register pages, Header)
func setupAuthRoutes(rg *gin.RouterGroup, c *container.Container) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", c.AuthHandler.Login)
		authGroup.DELETE("/login", c.AuthHandler.Logout)
		authGroup.GET("/me", c.AuthHandler.Me)
		authGroup.POST("/register", c.AuthHandler.Register)
	}
}

// ========================================
// VIEW ROUTES
// ========================================

// setupViewRoutes - page-shaped read endpoints
// Public pages không gate; my-articles cần login; admin pages cần admin role
func setupViewRoutes(rg *gin.RouterGroup, c *container.Container) {
	views := rg.Group("/views")
	{
		// Public
		views.GET("/articles", c.ViewHandler.Articles)
		views.GET("/articles/:id", c.ViewHandler.ArticleDetail)
		views.GET("/tags", c.ViewHandler.Tags)

		// Authenticated (user hoặc admin)
		views.GET("/my-articles",
			middleware.RequireRoles(c.PageService, auth.RoleUser),
			c.ViewHandler.MyArticles)

		// Admin only
		admin := views.Group("/admin")
		admin.Use(middleware.RequireRoles(c.PageService, auth.RoleAdmin))
		{
			admin.GET("/articles", c.ViewHandler.AdminArticles)
			admin.GET("/users", c.ViewHandler.Users)
		}
	}
}

// ========================================
// ARTICLE FORM ROUTES
// ========================================

// setupArticleRoutes - Create/Edit article submissions (cần login)
func setupArticleRoutes(rg *gin.RouterGroup, c *container.Container) {
	articles := rg.Group("/articles")
	articles.Use(middleware.RequireRoles(c.PageService, auth.RoleUser))
	{
		articles.POST("", c.ArticleHandler.Create)
		articles.PUT("/:id", c.ArticleHandler.Update)
	}
}

// ========================================
// MUTATION ROUTES
// ========================================

// setupMutationRoutes - optimistic mutations
// Like là public (anonymous cũng like được); delete article cần login
// (ownership check nằm trong page state); featured/role/user-delete cần admin
func setupMutationRoutes(rg *gin.RouterGroup, c *container.Container) {
	articles := rg.Group("/articles")
	{
		articles.POST("/:id/like", c.MutationHandler.Like)

		articles.DELETE("/:id",
			middleware.RequireRoles(c.PageService, auth.RoleUser),
			c.MutationHandler.DeleteArticle)

		articles.PUT("/:id/featured",
			middleware.RequireRoles(c.PageService, auth.RoleAdmin),
			c.MutationHandler.ToggleFeatured)
	}

	users := rg.Group("/users")
	users.Use(middleware.RequireRoles(c.PageService, auth.RoleAdmin))
	{
		users.PUT("/:id/role", c.MutationHandler.ChangeRole)
		users.DELETE("/:id", c.MutationHandler.DeleteUser)
	}
}
