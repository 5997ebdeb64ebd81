package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Checker is a named readiness probe for an external dependency.
type Checker interface {
	Name() string
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc struct {
	CheckName string
	Fn        func(ctx context.Context) error
}

func (c CheckerFunc) Name() string                   { return c.CheckName }
func (c CheckerFunc) Ping(ctx context.Context) error { return c.Fn(ctx) }

// HealthHandler serves liveness and readiness endpoints. Liveness reports
// process identity only; readiness also pings every registered checker.
type HealthHandler struct {
	version     string
	environment string
	checkers    []Checker
	ready       atomic.Bool
}

func NewHealthHandler(version, environment string, checkers ...Checker) *HealthHandler {
	h := &HealthHandler{
		version:     version,
		environment: environment,
		checkers:    checkers,
	}
	h.ready.Store(false)
	return h
}

// SetReady flips the application-level readiness flag, typically once
// startup wiring has completed and again during shutdown drain.
func (h *HealthHandler) SetReady(ready bool) {
	h.ready.Store(ready)
}

type HealthResponse struct {
	Status      string            `json:"status"`
	Version     string            `json:"version"`
	Environment string            `json:"environment"`
	Timestamp   time.Time         `json:"timestamp"`
	Checks      map[string]string `json:"checks"`
}

type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health reports service identity and per-dependency status. It is
// informational and always returns 200; readiness is what gates traffic.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	checks := make(map[string]string)
	for _, c := range h.checkers {
		if err := c.Ping(r.Context()); err != nil {
			checks[c.Name()] = err.Error()
			status = "degraded"
		} else {
			checks[c.Name()] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthResponse{
		Status:      status,
		Version:     h.version,
		Environment: h.environment,
		Timestamp:   time.Now().UTC(),
		Checks:      checks,
	})
}

// Live is the liveness probe.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// Ready is the readiness probe. It fails while the app flag is down or any
// registered checker cannot be pinged.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	checks := make(map[string]string)
	allHealthy := true

	if !h.ready.Load() {
		checks["app"] = "not ready"
		allHealthy = false
	} else {
		checks["app"] = "ok"
	}

	for _, c := range h.checkers {
		if err := c.Ping(r.Context()); err != nil {
			checks[c.Name()] = err.Error()
			allHealthy = false
		} else {
			checks[c.Name()] = "ok"
		}
	}

	status := "ok"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ReadyResponse{
		Status: status,
		Checks: checks,
	})
}
