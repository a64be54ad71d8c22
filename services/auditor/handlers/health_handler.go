package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/RuvinSL/seo-auditor/pkg/interfaces"
	"github.com/RuvinSL/seo-auditor/pkg/models"
)

const pageSpeedCheck = "pagespeed"

// HealthHandler handles health check requests
type HealthHandler struct {
	serviceName string
	version     string
	pageSpeed   interfaces.HealthChecker
	startTime   time.Time
}

// NewHealthHandler creates a new health handler. pageSpeed is nil when the
// PageSpeed API is not configured.
func NewHealthHandler(serviceName, version string, pageSpeed interfaces.HealthChecker) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		pageSpeed:   pageSpeed,
		startTime:   time.Now(),
	}
}

// Health handles the health check endpoint. A failing PageSpeed check only
// degrades the status; audits still run on heuristics.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	status := "healthy"

	if h.pageSpeed == nil {
		checks[pageSpeedCheck] = "disabled"
	} else if err := h.pageSpeed.CheckHealth(ctx); err != nil {
		checks[pageSpeedCheck] = "unhealthy: " + err.Error()
		status = "degraded"
	} else {
		checks[pageSpeedCheck] = "enabled"
	}

	response := models.HealthStatus{
		Status:    status,
		Service:   h.serviceName,
		Version:   h.version,
		Uptime:    formatDuration(time.Since(h.startTime)),
		Checks:    checks,
		Timestamp: time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// formatDuration formats a duration to a human-readable string
func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	} else if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
