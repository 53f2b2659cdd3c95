package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sda-backend/internal/cache"
	"sda-backend/internal/metrics"
	"sda-backend/internal/services"
	"sda-backend/internal/timeutil"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// DownloadPDF serves the monthly report as a PDF attachment
func (h *ReportHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	ref, err := parseRef(r)
	if err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	data, err := h.Service.GetReportData(context.Background(), ref)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pdfBytes, err := h.Service.GeneratePDF(data)
	if err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}
	metrics.ReportsGenerated.WithLabelValues("pdf").Inc()

	filename := fmt.Sprintf("performance-report-%s.pdf", ref.Format("2006-01"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(pdfBytes)
}

// DownloadCSV serves the monthly report as a CSV attachment
func (h *ReportHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	ref, err := parseRef(r)
	if err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	data, err := h.Service.GetReportData(context.Background(), ref)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	csvBytes, err := h.Service.GenerateCSV(data)
	if err != nil {
		http.Error(w, "Failed to generate CSV", http.StatusInternalServerError)
		return
	}
	metrics.ReportsGenerated.WithLabelValues("csv").Inc()

	filename := fmt.Sprintf("performance-report-%s.csv", ref.Format("2006-01"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(csvBytes)
}

// GetStats serves the raw report data as JSON for on-screen rendering
func (h *ReportHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ref, err := parseRef(r)
	if err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	cacheKey := fmt.Sprintf(cache.StatsKeyFmt, timeutil.FormatDay(ref))
	if cached, ok := cache.GetCached(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	data, err := h.Service.GetReportData(context.Background(), ref)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"month":         ref.Format("2006-01"),
		"date":          timeutil.FormatDay(ref),
		"metrics":       data.Metrics,
		"staff_revenue": data.StaffRevenue,
		"entries":       data.Entries,
	})
	if err != nil {
		http.Error(w, "Failed to encode stats", http.StatusInternalServerError)
		return
	}
	cache.SetCached(r.Context(), cacheKey, payload, 5*time.Minute)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}
