package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"sda-backend/internal/cache"
	"sda-backend/internal/metrics"
	"sda-backend/internal/services"
)

// maxSnapshotBytes caps import payloads at 25 MB
const maxSnapshotBytes = 25 << 20

type SnapshotHandler struct {
	Service *services.SnapshotService
	Backup  *services.BackupService
}

func NewSnapshotHandler(service *services.SnapshotService, backup *services.BackupService) *SnapshotHandler {
	return &SnapshotHandler{Service: service, Backup: backup}
}

// Export serves the full state as a dated JSON download
func (h *SnapshotHandler) Export(w http.ResponseWriter, r *http.Request) {
	payload, err := h.Service.ExportJSON(context.Background())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, services.ExportFilename()))
	w.Write(payload)
}

// Import replaces the stored state with an uploaded snapshot. Invalid
// payloads leave the store untouched.
func (h *SnapshotHandler) Import(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	snapshot, err := h.Service.Import(context.Background(), payload)
	if err != nil {
		metrics.SnapshotImports.WithLabelValues("rejected").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	metrics.SnapshotImports.WithLabelValues("ok").Inc()
	cache.InvalidateMetricCaches(context.Background())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"imported_records":      len(snapshot.Sales),
		"imported_counter_logs": len(snapshot.CounterLogs),
		"imported_profile":      snapshot.Profile != nil,
	})
}

// UploadBackup pushes a snapshot to cloud storage
func (h *SnapshotHandler) UploadBackup(w http.ResponseWriter, r *http.Request) {
	info, err := h.Backup.Upload(context.Background())
	if err != nil {
		if !h.Backup.Enabled() {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

// ListBackups lists stored cloud snapshots, newest first
func (h *SnapshotHandler) ListBackups(w http.ResponseWriter, r *http.Request) {
	backups, err := h.Backup.List(context.Background())
	if err != nil {
		if !h.Backup.Enabled() {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(backups)
}

// RestoreBackup downloads a cloud snapshot and imports it
func (h *SnapshotHandler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		http.Error(w, "key is required", http.StatusBadRequest)
		return
	}

	if err := h.Backup.Restore(context.Background(), req.Key); err != nil {
		if !h.Backup.Enabled() {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cache.InvalidateMetricCaches(context.Background())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"restored": req.Key})
}
