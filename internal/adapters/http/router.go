package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/tbarantsev/email-insights/internal/config"
	"github.com/tbarantsev/email-insights/internal/core/ports"
	"github.com/tbarantsev/email-insights/internal/observability/metrics"
)

type Router struct {
	cfg       config.Config
	dashboard ports.DashboardService
	metrics   *metrics.HTTPServerMetrics
}

// NewRouter builds the dashboard API surface. metrics may be nil, which
// disables the /metrics endpoint and request instrumentation.
func NewRouter(cfg config.Config, dashboard ports.DashboardService, m *metrics.HTTPServerMetrics) *Router {
	return &Router{cfg: cfg, dashboard: dashboard, metrics: m}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}
	mux.HandleFunc("/v1/dashboard", rt.dashboardOverview)
	mux.HandleFunc("/v1/records", rt.records)
	mux.HandleFunc("/v1/records/latest", rt.latestRecord)
	mux.HandleFunc("/v1/aggregates/daily", rt.dailyAggregate)
	mux.HandleFunc("/v1/aggregates/", rt.categoryAggregate)
	mux.HandleFunc("/v1/refresh", rt.refresh)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, time.Duration(rt.cfg.APIQueueTimeoutMS)*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware("api", handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// dashboardOverview always answers 200: a failed upstream fetch surfaces as
// data_available=false plus a cause, never as an error status.
func (rt *Router) dashboardOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	writeJSON(w, http.StatusOK, rt.dashboard.Overview(r.Context()))
}

func (rt *Router) records(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	writeJSON(w, http.StatusOK, rt.dashboard.Records(r.Context()))
}

func (rt *Router) latestRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rec, err := rt.dashboard.Latest(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (rt *Router) dailyAggregate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	writeJSON(w, http.StatusOK, rt.dashboard.DailyView(r.Context()))
}

func (rt *Router) categoryAggregate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	field := strings.TrimPrefix(r.URL.Path, "/v1/aggregates/")
	if field == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "aggregate field is required"})
		return
	}

	view, err := rt.dashboard.CategoryView(r.Context(), field)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (rt *Router) refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	writeJSON(w, http.StatusOK, rt.dashboard.Refresh(r.Context()))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
