package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prajwalgurnule/Screenify/internal/version"
)

// ReadinessChecker reports whether a dependency can serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// Health handles health check requests
type Health struct {
	auth    ReadinessChecker
	startAt time.Time
}

func NewHealth(auth ReadinessChecker) *Health {
	return &Health{
		auth:    auth,
		startAt: time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

// Check represents an individual health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health returns the overall service health. The site keeps serving the
// landing page while sign-in is unavailable, so a pending identity provider
// degrades rather than fails the check.
func (h *Health) Health(w http.ResponseWriter, r *http.Request) {
	auth := Check{Status: "healthy"}
	overall := "healthy"
	if !h.auth.Ready() {
		auth = Check{Status: "unavailable", Message: "identity provider not discovered yet"}
		overall = "degraded"
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    overall,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startAt).String(),
		Version:   version.Version,
		Checks:    map[string]Check{"auth": auth},
	})
}

// Healthz is the liveness probe.
func (h *Health) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Ready is the readiness probe; it fails until sign-in can be offered.
func (h *Health) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.auth.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":  "not_ready",
			"message": "Identity provider not discovered yet",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

// Version returns build information.
func (h *Health) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, version.Info())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
