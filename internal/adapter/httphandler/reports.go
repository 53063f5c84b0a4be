package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/inventory/internal/core/domain"
	"github.com/niksmo/inventory/internal/core/port"
)

// GET /revenue/?timeframe=daily|weekly|monthly|yearly (200 OK, 422 Unprocessable)

type RevenueHandler struct {
	calculator port.RevenueCalculator
}

func RegisterRevenue(mux *http.ServeMux, calculator port.RevenueCalculator) {
	h := RevenueHandler{calculator}
	route(mux, http.MethodGet, "/revenue/", h.GetRevenue)
}

func (h RevenueHandler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	const op = "RevenueHandler.GetRevenue"
	log := slog.With("op", op)

	tf, err := domain.ParseTimeframe(r.URL.Query().Get("timeframe"))
	if err != nil {
		writeError(w, log, err)
		return
	}

	rev, err := h.calculator.Revenue(r.Context(), tf)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, Revenue{
		Timeframe: string(rev.Timeframe),
		Revenue:   rev.Amount,
	})
}

// POST /populate-demo/ (200 OK)

type DemoHandler struct {
	populator port.DemoPopulator
}

func RegisterDemo(mux *http.ServeMux, populator port.DemoPopulator) {
	h := DemoHandler{populator}
	route(mux, http.MethodPost, "/populate-demo/", h.PostPopulate)
}

func (h DemoHandler) PostPopulate(w http.ResponseWriter, r *http.Request) {
	const op = "DemoHandler.PostPopulate"
	log := slog.With("op", op)

	if err := h.populator.PopulateDemo(r.Context()); err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, Message{Message: "Demo data populated"})
}

// GET /healthz (200 OK, 503 Service unavailable)

type HealthHandler struct {
	checker port.HealthChecker
}

func RegisterHealth(mux *http.ServeMux, checker port.HealthChecker) {
	h := HealthHandler{checker}
	mux.HandleFunc("GET /healthz", h.GetHealth)
}

func (h HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	const op = "HealthHandler.GetHealth"

	if err := h.checker.Healthy(r.Context()); err != nil {
		slog.Warn("store is unavailable", "op", op, "err", err)
		writeJSON(w, http.StatusServiceUnavailable, Health{Status: "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, Health{Status: "ok"})
}
