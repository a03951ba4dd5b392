package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/venuedesk/finance-backend-go/internal/config"
)

func NewRouter(
	cfg *config.Config,
	analyticsHandler AnalyticsHandler,
	settlementHandler SettlementHandler,
	refdataHandler RefdataHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/summary", analyticsHandler.GetSummary)
			r.Get("/series", analyticsHandler.GetSeries)
			r.Get("/categories", analyticsHandler.GetExpenseCategories)
			r.Get("/categories/export", analyticsHandler.ExportExpenseCategories)
			r.Get("/anomalies", analyticsHandler.GetAnomalies)
			r.Get("/forecast", analyticsHandler.GetForecast)
		})

		r.Route("/settlements", func(r chi.Router) {
			r.Get("/", settlementHandler.GetSettlements)
			r.Get("/export", settlementHandler.ExportSettlements)
		})

		r.Route("/refdata", func(r chi.Router) {
			r.Get("/companies", refdataHandler.ListCompanies)
			r.Get("/operators", refdataHandler.ListOperators)
			r.Get("/salary-rules", refdataHandler.ListSalaryRules)
		})
	})
	return r
}
