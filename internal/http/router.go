package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sda-backend/internal/handlers"
	"sda-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	interactionHandler *handlers.InteractionHandler,
	counterLogHandler *handlers.CounterLogHandler,
	dashboardHandler *handlers.DashboardHandler,
	reportHandler *handlers.ReportHandler,
	snapshotHandler *handlers.SnapshotHandler,
	assistantHandler *handlers.AssistantHandler,
	totpHandler *handlers.TOTPHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.Detailed).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/verify-2fa", authHandler.Verify2FA).Methods("POST")

	// Protected API routes - Profile
	profileAPI := r.PathPrefix("/api/profile").Subrouter()
	profileAPI.Use(authMiddleware.Authenticate)
	profileAPI.HandleFunc("", profileHandler.GetProfile).Methods("GET")
	profileAPI.HandleFunc("", profileHandler.UpdateProfile).Methods("PUT")
	profileAPI.HandleFunc("/totp/setup", totpHandler.Setup).Methods("POST")
	profileAPI.HandleFunc("/totp/verify", totpHandler.Verify).Methods("POST")
	profileAPI.HandleFunc("/totp/disable", totpHandler.Disable).Methods("POST")

	// Protected API routes - Interaction records
	interactionsAPI := r.PathPrefix("/api/interactions").Subrouter()
	interactionsAPI.Use(authMiddleware.Authenticate)
	interactionsAPI.HandleFunc("", interactionHandler.ListInteractions).Methods("GET")
	interactionsAPI.HandleFunc("", interactionHandler.CreateInteraction).Methods("POST")
	interactionsAPI.HandleFunc("/meta", interactionHandler.GetMeta).Methods("GET")
	interactionsAPI.HandleFunc("/{id}", interactionHandler.GetInteraction).Methods("GET")
	interactionsAPI.HandleFunc("/{id}", interactionHandler.UpdateInteraction).Methods("PUT")
	interactionsAPI.HandleFunc("/{id}", interactionHandler.DeleteInteraction).Methods("DELETE")

	// Protected API routes - Counter logs
	counterAPI := r.PathPrefix("/api/counter-logs").Subrouter()
	counterAPI.Use(authMiddleware.Authenticate)
	counterAPI.HandleFunc("", counterLogHandler.ListLogs).Methods("GET")
	counterAPI.HandleFunc("", counterLogHandler.CreateLog).Methods("POST")
	counterAPI.HandleFunc("/summary", counterLogHandler.GetDaySummary).Methods("GET")
	counterAPI.HandleFunc("/{id}", counterLogHandler.DeleteLog).Methods("DELETE")

	// Protected API routes - Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("", dashboardHandler.GetDashboard).Methods("GET")
	dashboardAPI.HandleFunc("/day", dashboardHandler.GetDaySummary).Methods("GET")

	// Protected API routes - Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/pdf", reportHandler.DownloadPDF).Methods("GET")
	reportsAPI.HandleFunc("/csv", reportHandler.DownloadCSV).Methods("GET")
	reportsAPI.HandleFunc("/stats", reportHandler.GetStats).Methods("GET")

	// Protected API routes - Snapshots and cloud backups
	snapshotAPI := r.PathPrefix("/api/snapshot").Subrouter()
	snapshotAPI.Use(authMiddleware.Authenticate)
	snapshotAPI.HandleFunc("/export", snapshotHandler.Export).Methods("GET")
	snapshotAPI.HandleFunc("/import", snapshotHandler.Import).Methods("POST")
	snapshotAPI.HandleFunc("/backups", snapshotHandler.ListBackups).Methods("GET")
	snapshotAPI.HandleFunc("/backups", snapshotHandler.UploadBackup).Methods("POST")
	snapshotAPI.HandleFunc("/backups/restore", snapshotHandler.RestoreBackup).Methods("POST")

	// Protected API routes - Assistant screens
	assistantAPI := r.PathPrefix("/api/assistant").Subrouter()
	assistantAPI.Use(authMiddleware.Authenticate)
	assistantAPI.HandleFunc("/status", assistantHandler.Status).Methods("GET")
	assistantAPI.HandleFunc("/chat", assistantHandler.Chat).Methods("POST")
	assistantAPI.HandleFunc("/search", assistantHandler.Search).Methods("POST")
	assistantAPI.HandleFunc("/image", assistantHandler.GenerateImage).Methods("POST")
	// WebSocket upgrade; browsers cannot send Authorization headers here
	r.HandleFunc("/api/assistant/live", assistantHandler.LiveVoice)

	// Protected API routes - Monitoring
	monitoringAPI := r.PathPrefix("/api/monitoring").Subrouter()
	monitoringAPI.Use(authMiddleware.Authenticate)
	monitoringAPI.HandleFunc("/stats", healthHandler.SystemStats).Methods("GET")

	return r
}
