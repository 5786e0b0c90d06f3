package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Readiness check results.
const (
	checkOK           = "ok"
	checkNotReady     = "not ready"
	checkShuttingDown = "shutting down"
	checkNoToken      = "no token"
)

// HealthChecker serves /healthz and /readyz next to the metrics endpoint.
type HealthChecker struct {
	ready     atomic.Bool
	sc        *ServerContext
	startedAt time.Time
	now       func() time.Time
}

// NewHealthChecker returns a checker that reports ready until SetReady(false).
// sc may be nil, in which case readiness skips the shutdown and token checks.
func NewHealthChecker(sc *ServerContext) *HealthChecker {
	h := &HealthChecker{sc: sc, now: time.Now}
	h.startedAt = h.now()
	h.ready.Store(true)
	return h
}

func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *HealthChecker) IsReady() bool {
	return h.ready.Load()
}

// HealthResponse is the body of both health endpoints.
type HealthResponse struct {
	Status        string            `json:"status"`
	StartedAt     time.Time         `json:"started_at"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Account       string            `json:"account,omitempty"`
	Checks        map[string]string `json:"checks,omitempty"`
}

func (h *HealthChecker) response(status string) HealthResponse {
	return HealthResponse{
		Status:        status,
		StartedAt:     h.startedAt.UTC(),
		UptimeSeconds: int64(h.now().Sub(h.startedAt) / time.Second),
	}
}

// checks reports each readiness condition and whether all of them passed.
func (h *HealthChecker) checks() (map[string]string, bool) {
	checks := map[string]string{"ready": checkOK}
	ok := true
	if !h.ready.Load() {
		checks["ready"] = checkNotReady
		ok = false
	}
	if h.sc == nil {
		return checks, ok
	}

	checks["shutdown"] = checkOK
	if h.sc.IsShutdown() {
		checks["shutdown"] = checkShuttingDown
		ok = false
	}
	checks["token"] = checkOK
	if !h.sc.HasToken(h.sc.DefaultAccount()) {
		checks["token"] = checkNoToken
		ok = false
	}
	return checks, ok
}

func writeHealth(w http.ResponseWriter, code int, resp HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}

// LivenessHandler answers 200 for as long as the process serves HTTP.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeHealth(w, http.StatusOK, h.response(checkOK))
	})
}

// ReadinessHandler answers 503 when any readiness check fails.
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		checks, ok := h.checks()
		code, status := http.StatusOK, checkOK
		if !ok {
			code, status = http.StatusServiceUnavailable, checkNotReady
		}

		resp := h.response(status)
		resp.Checks = checks
		if h.sc != nil {
			resp.Account = h.sc.DefaultAccount()
		}
		writeHealth(w, code, resp)
	})
}

func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.Handle("/healthz", h.LivenessHandler())
	mux.Handle("/readyz", h.ReadinessHandler())
}
