package main

import (
	"log"
	"net/http"

	_ "gharbazaar/docs" // swagger docs

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"gharbazaar/internal/auth"
	"gharbazaar/internal/cache"
	"gharbazaar/internal/config"
	"gharbazaar/internal/db"
	"gharbazaar/internal/handler"
	"gharbazaar/internal/middleware"
	"gharbazaar/internal/model"
	"gharbazaar/internal/repository"
	"gharbazaar/internal/router"
	"gharbazaar/internal/service"
	"gharbazaar/internal/upload"
)

// @title GharBazaar API
// @version 1.0
// @description Real-estate classifieds backend: listings, messaging, favorites, reviews and contact.
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
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Listing{},
		&model.Message{},
		&model.Favorite{},
		&model.Review{},
		&model.ContactSubmission{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	repos := repository.NewRepositories(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authMW := middleware.NewAuthMiddleware(jwtService, repos.Users)

	storage, err := upload.NewStorage(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload storage init: %v", err)
	}

	// Services
	authService := service.NewAuthService(repos.Users, jwtService)
	listingService := service.NewListingService(repos.Listings, repos, cacheClient)
	messageService := service.NewMessageService(repos.Messages, repos.Listings, repos.Users)
	favoriteService := service.NewFavoriteService(repos.Favorites, repos.Listings)
	reviewService := service.NewReviewService(repos.Reviews, repos.Listings, repos)
	contactService := service.NewContactService(repos.Contacts)
	adminService := service.NewAdminService(repos, cacheClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	listingHandler := handler.NewListingHandler(listingService, storage)
	messageHandler := handler.NewMessageHandler(messageService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	contactHandler := handler.NewContactHandler(contactService)
	adminHandler := handler.NewAdminHandler(adminService, storage)

	router.Register(
		e,
		cfg,
		authMW,
		authHandler,
		listingHandler,
		messageHandler,
		favoriteHandler,
		reviewHandler,
		contactHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
