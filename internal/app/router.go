package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tallerpro/tallerpro/internal/auth"
	"github.com/tallerpro/tallerpro/internal/clients"
	"github.com/tallerpro/tallerpro/internal/devices"
	"github.com/tallerpro/tallerpro/internal/expenses"
	"github.com/tallerpro/tallerpro/internal/orders"
	"github.com/tallerpro/tallerpro/internal/payments"
	"github.com/tallerpro/tallerpro/internal/products"
	"github.com/tallerpro/tallerpro/internal/reports"
	"github.com/tallerpro/tallerpro/internal/settings"
	"github.com/tallerpro/tallerpro/internal/stats"
	"github.com/tallerpro/tallerpro/internal/support"
	"github.com/tallerpro/tallerpro/internal/upload"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger   *slog.Logger
	Config   *Config
	Verifier *auth.Verifier

	ClientsHandler  *clients.Handler
	DevicesHandler  *devices.Handler
	OrdersHandler   *orders.Handler
	PaymentsHandler *payments.Handler
	ProductsHandler *products.Handler
	ExpensesHandler *expenses.Handler
	SettingsHandler *settings.Handler
	ReportsHandler  *reports.Handler
	StatsHandler    *stats.Handler
	UploadHandler   *upload.Handler
	SupportHandler  *support.Handler
}

// NewRouter constructs the chi.Router with the API defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:   params.Logger,
		Config:   params.Config,
		Verifier: params.Verifier,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/clients", params.ClientsHandler.MountRoutes)
		r.Route("/devices", params.DevicesHandler.MountRoutes)
		r.Route("/orders", params.OrdersHandler.MountRoutes)
		r.Route("/payments", params.PaymentsHandler.MountRoutes)
		r.Route("/products", params.ProductsHandler.MountRoutes)
		r.Route("/expenses", params.ExpensesHandler.MountRoutes)
		r.Route("/settings", params.SettingsHandler.MountRoutes)
		r.Route("/reports", params.ReportsHandler.MountRoutes)
		r.Route("/stats", params.StatsHandler.MountRoutes)
		r.Route("/upload", params.UploadHandler.MountRoutes)
		r.Route("/support", params.SupportHandler.MountRoutes)
	})

	return r
}
