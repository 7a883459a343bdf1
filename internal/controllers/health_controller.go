package controllers

import (
	"fmt"
	"net/http"
	"time"

	"blogd/internal/models"
	"blogd/internal/services"
)

type HealthController struct {
	service   services.BlogServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string            `json:"status"`
	Uptime        string            `json:"uptime"`
	UptimeSeconds float64           `json:"uptime_seconds"`
	Files         models.FileHealth `json:"files"`
}

// Health answers 503 while any collection file is unreadable.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	report := hc.service.Health()
	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        report.Status,
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Files:         report.Files,
	}

	status := http.StatusOK
	if report.Status != models.HealthHealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.BlogServiceInterface) *HealthController {
	return &HealthController{
		service:   service,
		startTime: time.Now(),
	}
}
