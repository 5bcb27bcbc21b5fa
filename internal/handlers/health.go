package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// Check reports whether one dependency is usable
type Check func(ctx context.Context) error

// HealthHandler reports on the console's dependencies. Required checks
// decide readiness; optional ones only degrade /health.
type HealthHandler struct {
	required map[string]Check
	optional map[string]Check
}

func NewHealthHandler(required, optional map[string]Check) *HealthHandler {
	return &HealthHandler{required: required, optional: optional}
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := healthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  make(map[string]string),
	}

	for name, check := range h.required {
		if check(ctx) != nil {
			response.Services[name] = "unhealthy"
			response.Status = "unhealthy"
		} else {
			response.Services[name] = "healthy"
		}
	}
	for name, check := range h.optional {
		if check(ctx) != nil {
			response.Services[name] = "unhealthy"
			if response.Status == "healthy" {
				response.Status = "degraded"
			}
		} else {
			response.Services[name] = "healthy"
		}
	}

	status := http.StatusOK
	if response.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	for _, check := range h.required {
		if check(ctx) != nil {
			http.Error(w, "Service not ready", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
