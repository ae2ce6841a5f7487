// Package main is the API server entrypoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/yourusername/authgate/internal/auth"
	"github.com/yourusername/authgate/internal/config"
	"github.com/yourusername/authgate/internal/logutil"
	"github.com/yourusername/authgate/internal/model"
	"github.com/yourusername/authgate/internal/storage/memory"
	"github.com/yourusername/authgate/internal/storage/postgres"
	redisstore "github.com/yourusername/authgate/internal/storage/redis"
	"github.com/yourusername/authgate/internal/token"
	"github.com/yourusername/authgate/internal/user"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	gin.SetMode(cfg.GinMode)

	store, cleanup, err := setupStore(context.Background(), cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up credential store")
	}
	defer cleanup()

	tokens := token.NewManager(cfg.Secret, cfg.TokenTTL())

	router := gin.New()
	router.Use(gin.Recovery(), logutil.RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		"Authorization",
	}
	if cfg.CORSAllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowOrigins = nil
	}
	router.Use(cors.New(corsConfig))

	setupRoutes(router, store, tokens)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Str("mode", cfg.GinMode).Str("store", cfg.StoreBackend).
		Msg("======== SERVIDOR ONLINE ========")
	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// setupStore picks the credential store backend. The cleanup func
// releases whatever connection the backend holds.
func setupStore(ctx context.Context, cfg *config.Config) (model.UserStore, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return memory.New(), func() {}, nil

	case config.StoreRedis:
		opt, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		client := goredis.NewClient(opt)
		return redisstore.New(client), func() { _ = client.Close() }, nil

	case config.StorePostgres:
		conn, err := postgres.NewConnection(ctx, cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewUserRepository(conn), func() { _ = conn.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "authgate-api",
		"version": "0.1.0",
	})
}

// setupRoutes wires the public auth routes and the protected lookup.
func setupRoutes(router *gin.Engine, store model.UserStore, tokens *token.Manager) {
	router.GET("/health", handleHealth)

	authManager := auth.NewManager(store, tokens)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authManager.Register)
		authRoutes.POST("/login", authManager.Login)
	}

	userHandler := user.NewHandler(store)
	protected := router.Group("/user")
	protected.Use(authManager.RequireToken())
	{
		protected.GET("/:id", userHandler.Get)
	}
}
