// Package api exposes the ledger over HTTP/JSON.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/kashifm/lunchledger/internal/service"
)

// API holds the handlers for every route.
type API struct {
	ledger  *service.LedgerService
	members *service.MemberService
	orders  *service.OrderService
}

func New(ledger *service.LedgerService, members *service.MemberService, orders *service.OrderService) *API {
	return &API{ledger: ledger, members: members, orders: orders}
}

// Router assembles the route tree and middleware stack.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger)
	r.Use(metricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/balances", a.getBalances)

		r.Get("/members", a.listMembers)
		r.Post("/members", a.addMember)
		r.Delete("/members/{id}", a.removeMember)
		r.Get("/members/{id}/removable", a.memberRemovable)

		r.Get("/orders", a.listOrders)
		r.Post("/orders", a.createOrder)
		r.Put("/orders/{id}", a.updateOrder)
		r.Delete("/orders/{id}", a.deleteOrder)

		r.Get("/settlements", a.listSettlements)
		r.Post("/settlements", a.createSettlement)

		r.Get("/adjustments", a.listAdjustments)
		r.Post("/adjustments", a.createAdjustment)
	})

	// Browser clients are served from a different origin in development.
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)
}

// requestLogger logs every request with its duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
