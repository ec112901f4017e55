package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging
	"time"    // Cache TTL durations

	"yoga_studio/internal/api"        // Custom package for API handlers
	"yoga_studio/internal/auth"       // Credential service
	"yoga_studio/internal/config"     // Custom package for configuration
	"yoga_studio/internal/favorites"  // Favorites service
	"yoga_studio/internal/middleware" // Custom package for middleware
	"yoga_studio/internal/store"      // Store implementations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Wire stores and services
	userStore := store.NewGormUserStore(db)
	videoStore := store.NewGormVideoStore(db)
	favoriteStore := store.NewGormFavoriteStore(db)
	authSvc := auth.NewService(userStore, auth.BcryptHasher{})
	favSvc := favorites.NewService(favoriteStore, videoStore)

	// Token resolution hits the store every request unless a cache TTL is
	// set; with the cache on, login rotation must also evict the old token
	authMW := middleware.Auth(authSvc)
	if cfg.AuthCacheTTL > 0 {
		authSvc.WithTokenInvalidator(middleware.NewAuthCacheInvalidator(redisClient))
		authMW = middleware.CachedAuth(authSvc, redisClient, time.Duration(cfg.AuthCacheTTL)*time.Second)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Reject everything with 503 while the store is unreachable
	r.Use(middleware.RequireStore(db))

	r.GET("/", func(c *gin.Context) { c.String(200, "Hello world") }) // Root greeting

	// Auth routes
	r.POST("/users", api.RegisterHandler(authSvc)) // Registration endpoint
	r.POST("/sessions", api.LoginHandler(authSvc)) // Login endpoint

	// Favorites routes (protected, owner only)
	userGroup := r.Group("/users/:userId", authMW)
	userGroup.PUT("/favorites/:videoId", api.AddFavoriteHandler(favSvc))       // Add favorite endpoint
	userGroup.DELETE("/favorites/:videoId", api.RemoveFavoriteHandler(favSvc)) // Remove favorite endpoint
	userGroup.GET("/favorites", api.ListFavoritesHandler(favSvc))              // List favorites endpoint

	// Public catalog routes
	r.GET("/videos", api.ListVideosHandler(videoStore, redisClient)) // Listing endpoint
	r.GET("/videos/short", api.ListShortVideosHandler(videoStore))   // Short videos endpoint
	r.GET("/videos/:id", api.GetVideoHandler(videoStore))            // Single video endpoint
	r.POST("/videos/:id/liked", api.LikeVideoHandler(videoStore))    // Like endpoint

	// Catalog mutations (protected, admin only)
	adminGroup := r.Group("/videos", authMW, middleware.AdminOnly())
	adminGroup.POST("", api.CreateVideoHandler(videoStore, redisClient))       // Create video endpoint
	adminGroup.DELETE("/:id", api.DeleteVideoHandler(videoStore, redisClient)) // Delete video endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
