package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roadside-dispatch/internal/api"
	"roadside-dispatch/internal/config"
	"roadside-dispatch/internal/modules/maps"
	"roadside-dispatch/internal/modules/orders"
	"roadside-dispatch/internal/modules/trucks"
	"roadside-dispatch/internal/modules/users"
	"roadside-dispatch/pkg/email"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	// 1. --- Configuration ---
	// Load application configuration from environment variables or a .env file.
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	e := echo.New()

	// 2. --- Middleware ---
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// 3. --- Database Connection ---
	// The pool is shared across every module repository.
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to parse database configuration: %v", err)
	}

	dbPool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		log.Fatalf("Unable to create connection pool: %v", err)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	e.Logger.Info("Successfully connected to the database!")

	// 4. --- Notifications (optional) ---
	var notifier email.SenderInterface
	if cfg.AWSRegion != "" && cfg.NotifyFromEmail != "" {
		sender, err := email.NewSESV2Sender(context.Background(), cfg.AWSRegion, cfg.NotifyFromEmail)
		if err != nil {
			log.Fatalf("Unable to initialize SES sender: %v", err)
		}
		notifier = sender
	}

	// 5. --- Dependency Injection (Wiring everything up) ---
	// --- Maps Module ---
	mapRepo := maps.NewRepository(dbPool)
	mapService := maps.NewService(mapRepo)
	mapHandler := maps.NewHandler(mapService)

	// --- Users Module ---
	userRepo := users.NewRepository(dbPool)
	userService := users.NewService(userRepo, cfg.JWTSecret)
	userHandler := users.NewHandler(userService)

	// --- Orders Module ---
	orderRepo := orders.NewRepository(dbPool)

	// --- Tow Trucks Module ---
	truckRepo := trucks.NewRepository(dbPool)
	truckService := trucks.NewService(truckRepo, orderRepo, mapService)
	truckHandler := trucks.NewHandler(truckService)

	orderService := orders.NewService(orderRepo, userRepo, truckRepo, mapService, notifier, cfg.NotifyOpsEmail)
	orderHandler := orders.NewHandler(orderService)

	// 6. --- Initialize Router ---
	api.SetupRoutes(e,
		userHandler,
		orderHandler,
		truckHandler,
		mapHandler,
		cfg.JWTSecret,
	)

	// 7. --- Start Server with graceful shutdown logic ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server, an error occurred:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exiting")
}
