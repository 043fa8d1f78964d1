package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"libraryhub/database"
	"libraryhub/internal/cache"
	"libraryhub/internal/config"
	"libraryhub/internal/httpapi/handler"
	"libraryhub/internal/httpapi/middleware"
	"libraryhub/internal/httpapi/repository"
	"libraryhub/internal/httpapi/service"
	"libraryhub/internal/logging"
	"libraryhub/internal/mailer"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := logging.NewLogger(cfg)

	// 2. Connect to the database
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// 3. Redis cache (optional; a nil cache degrades to no-op)
	statsCache, err := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		logger.Warn("Redis unavailable, running without cache", "error", err)
		statsCache = nil
	}

	// 4. Email collaborator
	var sender mailer.Sender = mailer.Noop{}
	if cfg.MailerURL != "" {
		sender = mailer.NewHTTPSender(cfg.MailerURL, cfg.MailerToken, cfg.MailTimeout)
	} else {
		logger.Warn("MAILER_URL not set, emails will be discarded")
	}

	// 5. Repositories and services
	bookRepo := repository.NewBookRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	borrowRepo := repository.NewBorrowRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notifier := service.NewNotifier(notificationRepo, memberRepo, sender, logger)
	requestService := service.NewRequestService(
		requestRepo, bookRepo, borrowRepo, memberRepo, notificationRepo,
		notifier, statsCache, logger, cfg.RestoreOnDelete,
	)
	notificationService := service.NewNotificationService(notificationRepo)
	bookService := service.NewBookService(bookRepo)

	// 6. Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(rate.Limit(10), 20))

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	api := r.Group("/api/v1")

	requestHandler := handler.NewRequestHandler(requestService)
	adminHandler := handler.NewAdminRequestHandler(requestService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	bookHandler := handler.NewBookHandler(bookService)

	bookHandler.RegisterRoutes(api.Group("/books"))

	authed := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret, cfg.AdminKeyHash))
	requestHandler.RegisterRoutes(authed)
	notificationHandler.RegisterRoutes(authed.Group("/notifications"))

	admin := authed.Group("/admin", middleware.RequireAdmin())
	adminHandler.RegisterRoutes(admin)
	bookHandler.RegisterAdminRoutes(admin)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
