package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"coworkly/internal/config"
	"coworkly/internal/database"
	"coworkly/internal/middleware"
	"coworkly/internal/modules/admin"
	"coworkly/internal/modules/auth"
	"coworkly/internal/modules/catalog"
	"coworkly/internal/modules/notification"
	"coworkly/internal/modules/reservation"
	"coworkly/internal/modules/subscription"
	jwtsvc "coworkly/internal/pkg/jwt"
	"coworkly/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	seatRepo := repository.NewSeatRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	hub := notification.NewHub()
	defer hub.Close()

	notificationService := notification.NewService(notificationRepo, hub)
	notificationHandler := notification.NewHandler(notificationService, hub)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(roomRepo, seatRepo, reservationRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	reservationService := reservation.NewService(reservationRepo, seatRepo, roomRepo, notificationService)
	reservationHandler := reservation.NewHandler(reservationService)

	subscriptionService := subscription.NewService(subscriptionRepo, reservationRepo, notificationService)
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	adminService := admin.NewService(userRepo, reservationRepo, subscriptionRepo, roomRepo, statsRepo)
	adminHandler := admin.NewHandler(adminService)

	r := gin.Default()
	r.Use(middleware.RequestID(), middleware.CORS(), middleware.ErrorLogger())

	api := r.Group("/api")
	{
		// public
		authHandler.RegisterPublicRoutes(api)
		catalogHandler.RegisterPublicRoutes(api)

		// any authenticated user
		protected := api.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
			subscriptionHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
		}

		// admin only
		adminGroup := api.Group("/admin")
		adminGroup.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adminGroup)
		}

		// admin-gated slices of the regular modules
		elevated := api.Group("/")
		elevated.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			catalogHandler.RegisterAdminRoutes(elevated)
			reservationHandler.RegisterAdminRoutes(elevated)
			subscriptionHandler.RegisterAdminRoutes(elevated)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
