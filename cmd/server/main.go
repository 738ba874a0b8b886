package main

import (
	"context"
	"log"
	"net/http"

	_ "github.com/chirag127/Image-Insight-AI/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/chirag127/Image-Insight-AI/internal/ai"
	"github.com/chirag127/Image-Insight-AI/internal/auth"
	"github.com/chirag127/Image-Insight-AI/internal/cache"
	"github.com/chirag127/Image-Insight-AI/internal/config"
	"github.com/chirag127/Image-Insight-AI/internal/db"
	"github.com/chirag127/Image-Insight-AI/internal/handler"
	"github.com/chirag127/Image-Insight-AI/internal/hosting"
	"github.com/chirag127/Image-Insight-AI/internal/model"
	"github.com/chirag127/Image-Insight-AI/internal/repository"
	"github.com/chirag127/Image-Insight-AI/internal/router"
	"github.com/chirag127/Image-Insight-AI/internal/service"
)

// @title Image Insight AI API
// @version 1.0
// @description Backend for the Image Insight AI browser extension: upload an image, analyze it with a vision model, keep per-user history.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.ImageAnalysis{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	analysisRepo := repository.NewAnalysisRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize adapters
	imageHost, err := newImageHost(cfg)
	if err != nil {
		log.Fatalf("image host init: %v", err)
	}
	analyzer := ai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	analysisService := service.NewAnalysisService(analysisRepo, imageHost, analyzer, cfg.AdapterTimeout)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	analysisHandler := handler.NewAnalysisHandler(analysisService)

	// Register routes
	router.Register(e, jwtService, tokenStore, authHandler, analysisHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// newImageHost picks the hosting backend from config.
func newImageHost(cfg *config.Config) (hosting.ImageHost, error) {
	switch cfg.ImageHostProvider {
	case "minio":
		return hosting.NewMinioHost(
			context.Background(),
			cfg.MinioEndpoint,
			cfg.MinioAccessKey,
			cfg.MinioSecretKey,
			cfg.MinioBucket,
			cfg.MinioRegion,
			cfg.MinioUseSSL,
		)
	default:
		return hosting.NewFreeImageHost(cfg.FreeImageAPIKey), nil
	}
}
