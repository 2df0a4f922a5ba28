package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"hacklog-frontend/internal/backend"
	"hacklog-frontend/internal/config"
	infraCache "hacklog-frontend/internal/infrastructure/cache"
	"hacklog-frontend/pkg/cache"

	articleHandler "hacklog-frontend/internal/domains/article/handler"
	articleService "hacklog-frontend/internal/domains/article/service"
	authHandler "hacklog-frontend/internal/domains/auth/handler"
	mutateHandler "hacklog-frontend/internal/domains/mutate/handler"
	mutateService "hacklog-frontend/internal/domains/mutate/service"
	"hacklog-frontend/internal/domains/view"
	viewHandler "hacklog-frontend/internal/domains/view/handler"
	viewService "hacklog-frontend/internal/domains/view/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Struct này là "root" của dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	// Lifecycle: Singleton (1 instance duy nhất trong app lifetime)

	Config *config.Config  // Application config
	Cache  cache.Cache     // Read cache cho backend lists (Redis hoặc in-memory)
	API    *backend.Client // HackLog REST API client

	// ========================================
	// SERVICE LAYER
	// ========================================
	// Lifecycle: Singleton (page state nằm trong PageService registry)

	PageService     *viewService.PageService
	MutationService *mutateService.MutationService
	ArticleService  *articleService.ArticleService

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	// Thin layer delegates to services

	ViewHandler     *viewHandler.ViewHandler
	MutationHandler *mutateHandler.MutationHandler
	ArticleHandler  *articleHandler.ArticleHandler
	AuthHandler     *authHandler.AuthHandler

	redisCache *infraCache.RedisCache
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
// Thứ tự: Config → Cache/API client → Services → Handlers
// Không có database - backend REST API own toàn bộ persistence.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE CACHE
	// ========================================
	// Redis cho production; Redis unreachable hoặc cache disabled →
	// in-memory fallback, app vẫn start
	if cfg.Cache.Enabled {
		log.Println("🗄️  Connecting to Redis...")
		redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisCache.Ping(ctx)
		cancel()

		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), falling back to in-memory cache", err)
			c.Cache = infraCache.NewMemoryCache()
		} else {
			c.Cache = redisCache
			c.redisCache = redisCache
			log.Println("✅ Redis connected")
		}
	} else {
		c.Cache = infraCache.NewMemoryCache()
		log.Println("ℹ️  Cache disabled, using in-memory store")
	}

	// ========================================
	// STEP 3: BACKEND API CLIENT
	// ========================================
	log.Printf("🌐 Backend API: %s", cfg.Backend.BaseURL)
	c.API = backend.NewClient(cfg.Backend.BaseURL, cfg.Session.CookieName, cfg.Backend.Timeout)

	// ========================================
	// STEP 4: SERVICES
	// ========================================
	loader := view.NewLoader(c.API, c.Cache, cfg.Cache.ListTTL)
	c.PageService = viewService.NewPageService(c.API, loader, cfg.Session.PageTTL)
	c.MutationService = mutateService.NewMutationService(c.API, c.PageService)
	c.ArticleService = articleService.NewArticleService(c.API, loader)

	// ========================================
	// STEP 5: HANDLERS
	// ========================================
	c.ViewHandler = viewHandler.NewViewHandler(c.PageService)
	c.MutationHandler = mutateHandler.NewMutationHandler(c.MutationService, c.PageService)
	c.ArticleHandler = articleHandler.NewArticleHandler(c.ArticleService, c.PageService)
	c.AuthHandler = authHandler.NewAuthHandler(c.API, c.PageService, cfg.Session.CookieName)

	log.Println("✅ Container initialized")
	return c, nil
}

// Cleanup đóng external connections khi shutdown
func (c *Container) Cleanup() {
	if c.redisCache != nil {
		if err := c.redisCache.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis connection: %v", err)
		}
	}
}
