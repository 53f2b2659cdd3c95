package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"sda-backend/internal/assistant"
	"sda-backend/internal/auth"
	"sda-backend/internal/cache"
	"sda-backend/internal/config"
	"sda-backend/internal/database"
	"sda-backend/internal/db"
	"sda-backend/internal/handlers"
	"sda-backend/internal/health"
	h "sda-backend/internal/http"
	"sda-backend/internal/middleware"
	"sda-backend/internal/monitoring"
	"sda-backend/internal/repositories"
	"sda-backend/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	skipMigrations := flag.Bool("skip-migrations", false, "Skip database migrations on startup")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	if !*skipMigrations {
		migrator := database.NewMigrator(pool)
		if err := migrator.RunMigrations(context.Background()); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Printf("[Cache] Redis unavailable, caching disabled: %v", err)
	}

	// Repositories
	interactionRepo := repositories.NewInteractionRepository(pool)
	counterLogRepo := repositories.NewCounterLogRepository(pool)
	profileRepo := repositories.NewProfileRepository(pool)

	// Services
	interactionService := services.NewInteractionService(interactionRepo)
	counterService := services.NewCounterService(counterLogRepo)
	dashboardService := services.NewDashboardService(interactionRepo, profileRepo)
	reportService := services.NewReportService(interactionRepo, profileRepo)
	snapshotService := services.NewSnapshotService(interactionRepo, counterLogRepo, profileRepo)
	backupService := services.NewBackupService(cfg, snapshotService)
	totpService := services.NewTOTPService(profileRepo)

	// Auth
	jwtManager := auth.NewJWTManager(cfg)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, profileRepo)

	// Assistant pass-through
	assistantClient := assistant.NewClient(cfg)
	liveRelay := assistant.NewLiveRelay(cfg)
	if !assistantClient.Enabled() {
		log.Println("[Assistant] No API key configured, assistant screens disabled")
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(profileRepo, jwtManager, totpService)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	interactionHandler := handlers.NewInteractionHandler(interactionService)
	counterLogHandler := handlers.NewCounterLogHandler(counterService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	reportHandler := handlers.NewReportHandler(reportService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService, backupService)
	assistantHandler := handlers.NewAssistantHandler(assistantClient, liveRelay)
	totpHandler := handlers.NewTOTPHandler(totpService, profileRepo)
	healthChecker := health.NewHealthChecker(pool)
	collector := monitoring.NewCollector(pool)
	healthHandler := handlers.NewHealthHandler(healthChecker, collector)

	router := h.NewRouter(
		authHandler,
		profileHandler,
		interactionHandler,
		counterLogHandler,
		dashboardHandler,
		reportHandler,
		snapshotHandler,
		assistantHandler,
		totpHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.NewCORS(cfg)(
			middleware.MetricsMiddleware(router),
		),
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
