package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"PriceBoard/internal/model"
	"PriceBoard/pkg/logger"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Source answers price and history queries.
type Source interface {
	Latest(ctx context.Context, resource string) (model.Quote, error)
	History(ctx context.Context, resource string, period model.Period) ([]model.PriceSample, error)
}

// Handler serves the price API.
type Handler struct {
	source    Source
	resources []model.Resource
}

// NewHandler creates a Handler. resources feeds GET /api/resources.
func NewHandler(source Source, resources []model.Resource) *Handler {
	return &Handler{source: source, resources: resources}
}

// NewRouter wires all routes and middleware.
func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()
	r.Use(mux.MiddlewareFunc(LoggingMiddleware()), mux.MiddlewareFunc(MetricsMiddleware()))

	r.HandleFunc("/api/resources", h.ListResources).Methods(http.MethodGet)
	r.HandleFunc("/api/price/{resource}", h.GetPrice).Methods(http.MethodGet)
	r.HandleFunc("/api/history/{resource}/{period}", h.GetHistory).Methods(http.MethodGet)
	r.HandleFunc("/health", HealthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler())

	return ChainMiddleware(RecoveryMiddleware(), CORSMiddleware())(r)
}

type resourceInfo struct {
	Resource string `json:"resource"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
}

// ListResources handles GET /api/resources.
func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	out := make([]resourceInfo, 0, len(h.resources))
	for _, res := range h.resources {
		out = append(out, resourceInfo{Resource: res.Key, Name: res.Name, Unit: res.Unit})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetPrice handles GET /api/price/{resource}.
func (h *Handler) GetPrice(w http.ResponseWriter, r *http.Request) {
	resource := mux.Vars(r)["resource"]

	q, err := h.source.Latest(r.Context(), resource)
	switch {
	case errors.Is(err, model.ErrUnknownResource):
		writeError(w, http.StatusNotFound, "Resource not found")
	case err != nil:
		logger.Warn("no price data", logger.String("resource", resource), logger.ErrorField(err))
		writeError(w, http.StatusNotFound, "No data")
	default:
		writeJSON(w, http.StatusOK, q)
	}
}

// GetHistory handles GET /api/history/{resource}/{period}.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resource := vars["resource"]
	if !h.known(resource) {
		writeError(w, http.StatusNotFound, "Resource not found")
		return
	}

	period, err := model.ParsePeriod(vars["period"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown period")
		return
	}

	samples, err := h.source.History(r.Context(), resource, period)
	switch {
	case errors.Is(err, model.ErrUnknownResource):
		writeError(w, http.StatusNotFound, "Resource not found")
	case err != nil:
		logger.Warn("history lookup failed", logger.String("resource", resource), logger.ErrorField(err))
		writeJSON(w, http.StatusOK, []model.PriceSample{})
	default:
		if samples == nil {
			samples = []model.PriceSample{}
		}
		writeJSON(w, http.StatusOK, samples)
	}
}

func (h *Handler) known(resource string) bool {
	for _, res := range h.resources {
		if res.Key == resource {
			return true
		}
	}
	return false
}

// HealthHandler reports liveness.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", logger.ErrorField(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
