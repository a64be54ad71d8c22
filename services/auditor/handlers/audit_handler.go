package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/RuvinSL/seo-auditor/pkg/errs"
	"github.com/RuvinSL/seo-auditor/pkg/interfaces"
	"github.com/RuvinSL/seo-auditor/pkg/logger"
	"github.com/RuvinSL/seo-auditor/pkg/models"
	"github.com/RuvinSL/seo-auditor/pkg/report"
)

const (
	maxRequestBytes = 1 << 20

	ndjsonContentType = "application/x-ndjson"
)

// AuditHandler exposes the auditor over HTTP
type AuditHandler struct {
	auditor interfaces.Auditor
	logger  interfaces.Logger
}

func NewAuditHandler(auditor interfaces.Auditor, logger interfaces.Logger) *AuditHandler {
	return &AuditHandler{
		auditor: auditor,
		logger:  logger,
	}
}

// Audit runs an audit and returns the report as JSON
func (h *AuditHandler) Audit(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	req, ok := h.decode(w, r, log)
	if !ok {
		return
	}

	log.Info("Processing audit request", "url_count", len(req.URLs))

	result, err := h.auditor.RunAudit(r.Context(), req.URLs, req.CrawlHints, nil)
	if err != nil {
		h.sendAuditError(w, log, err)
		return
	}

	log.Info("Audit request completed",
		"audit_id", result.ID,
		"status", result.Status,
		"overall_score", result.OverallScore,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// Stream runs an audit and writes one NDJSON event per progress step,
// followed by the report. Input errors found before the first event are
// returned as a regular JSON error.
func (h *AuditHandler) Stream(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	req, ok := h.decode(w, r, log)
	if !ok {
		return
	}

	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)

	var (
		mu      sync.Mutex
		started bool
	)
	emit := func(ev models.StreamEvent) {
		mu.Lock()
		defer mu.Unlock()
		if !started {
			w.Header().Set("Content-Type", ndjsonContentType)
			w.Header().Set("Cache-Control", "no-cache")
			w.WriteHeader(http.StatusOK)
			started = true
		}
		if err := enc.Encode(ev); err != nil {
			log.Debug("Failed to write stream event", "type", ev.Type, "error", err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}

	progress := func(p models.Progress) {
		emit(models.StreamEvent{Type: "progress", Progress: &p})
	}

	result, err := h.auditor.RunAudit(r.Context(), req.URLs, req.CrawlHints, progress)
	if err != nil {
		mu.Lock()
		headerSent := started
		mu.Unlock()
		if !headerSent {
			h.sendAuditError(w, log, err)
			return
		}
		log.Error("Audit stream failed", "error", err)
		emit(models.StreamEvent{Type: "error", Error: err.Error()})
		return
	}

	emit(models.StreamEvent{Type: "report", Report: result})
}

// Export runs an audit and returns the report as an XLSX workbook
func (h *AuditHandler) Export(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	req, ok := h.decode(w, r, log)
	if !ok {
		return
	}

	result, err := h.auditor.RunAudit(r.Context(), req.URLs, req.CrawlHints, nil)
	if err != nil {
		h.sendAuditError(w, log, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, result); err != nil {
		log.Error("Failed to build workbook", "audit_id", result.ID, "error", err)
		h.sendError(w, log, "Failed to build workbook", "", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="seo-audit-%s.xlsx"`, result.ID))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		log.Error("Failed to write workbook", "error", err)
	}
}

func (h *AuditHandler) decode(w http.ResponseWriter, r *http.Request, log interfaces.Logger) (*models.AuditRequest, bool) {
	var req models.AuditRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		log.Warn("Failed to parse request", "error", err)

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.sendError(w, log, "Request body too large", "", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		h.sendError(w, log, "Invalid request format", err.Error(), http.StatusBadRequest)
		return nil, false
	}

	if len(req.URLs) == 0 {
		h.sendError(w, log, "At least one URL is required", "", http.StatusBadRequest)
		return nil, false
	}

	return &req, true
}

func (h *AuditHandler) sendAuditError(w http.ResponseWriter, log interfaces.Logger, err error) {
	code := statusFor(err)
	message := "Audit failed"
	if code == http.StatusBadRequest {
		message = err.Error()
		log.Warn("Audit rejected", "error", err)
	} else {
		log.Error("Audit failed", "kind", errs.KindOf(err).String(), "error", err)
	}
	h.sendError(w, log, message, err.Error(), code)
}

// sendError sends an error response
func (h *AuditHandler) sendError(w http.ResponseWriter, log interfaces.Logger, message, details string, statusCode int) {
	response := models.ErrorResponse{
		Error:      message,
		StatusCode: statusCode,
		Details:    details,
		Timestamp:  time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("Failed to encode error response", "error", err)
	}
}

// statusFor maps an error kind to the HTTP status returned to the caller
func statusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.InvalidInput:
		return http.StatusBadRequest
	case errs.Timeout:
		return http.StatusGatewayTimeout
	case errs.Unreachable, errs.UpstreamStatus:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
