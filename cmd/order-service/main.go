package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shopmesh/shopmesh/internal/client"
	"github.com/shopmesh/shopmesh/internal/config"
	"github.com/shopmesh/shopmesh/internal/handlers"
	"github.com/shopmesh/shopmesh/internal/middleware"
	"github.com/shopmesh/shopmesh/internal/repository"
	"github.com/shopmesh/shopmesh/internal/service"
	"github.com/shopmesh/shopmesh/pkg/logger"
	"github.com/shopmesh/shopmesh/pkg/metrics"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load(config.Defaults{
		Port:        "5003",
		StoragePath: "order_data.db",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Upstream.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting order processor service",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"db_path", cfg.Storage.Path,
		"user_service_url", cfg.Upstream.UserServiceURL,
		"product_service_url", cfg.Upstream.ProductServiceURL,
		"log_level", cfg.LogLevel,
	)

	// Open and migrate the local store
	db, err := repository.Open(cfg.Storage.Path)
	if err != nil {
		log.Error("failed to open storage", "path", cfg.Storage.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(context.Background(), db, repository.OrdersSchema); err != nil {
		log.Error("failed to migrate storage", "path", cfg.Storage.Path, "error", err)
		os.Exit(1)
	}

	// Initialize repository, upstream clients, service, handlers
	orderRepo := repository.NewSQLiteOrderRepository(db)
	upstreamTimeout := time.Duration(cfg.Upstream.Timeout) * time.Second
	userClient := client.NewUserClient(cfg.Upstream.UserServiceURL, upstreamTimeout)
	productClient := client.NewProductClient(cfg.Upstream.ProductServiceURL, upstreamTimeout)

	orderService := service.NewOrderService(orderRepo, userClient, productClient, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	healthHandler := handlers.NewHealthHandler(db, log)

	serverMetrics := metrics.NewServerMetrics("order_service")

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics(serverMetrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Routes
	r.Get("/health", healthHandler.ServeHTTP)
	r.Get("/metrics", metrics.Handler().ServeHTTP)
	r.Post("/orders", orderHandler.CreateOrder)
	r.Get("/orders/{orderId}", orderHandler.GetOrder)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
