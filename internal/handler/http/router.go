package http

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
	// RateLimit is requests per minute per IP; zero disables limiting.
	RateLimit int
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, payrollHandler PayrollHandler, loanHandler LoanHandler) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	if opts.RateLimit > 0 {
		r.Use(httprate.LimitByIP(opts.RateLimit, time.Minute))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Requires an admin access token
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.AdminOnly)

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/cutoff", payrollHandler.ResolveCutoff)

				r.Route("/report", func(r chi.Router) {
					r.Get("/", payrollHandler.GetReport)
					r.Get("/export", payrollHandler.ExportReport)
				})
				r.Post("/snapshots", payrollHandler.TakeSnapshot)

				r.Route("/configs", func(r chi.Router) {
					r.Get("/", payrollHandler.ListAreaConfigs)
					r.Put("/", payrollHandler.UpsertAreaConfigs)
				})

				r.Delete("/additions/{id}", payrollHandler.DeleteAddition)

				r.Route("/employees/{employeeId}", func(r chi.Router) {
					r.Get("/additions", payrollHandler.ListAdditions)
					r.Post("/additions", payrollHandler.CreateAddition)
					r.Get("/deductions", payrollHandler.GetDeductionSettings)
					r.Put("/deductions", payrollHandler.UpdateDeductionSettings)
				})
			})

			r.Route("/loans", func(r chi.Router) {
				r.Post("/preview", loanHandler.Preview)
				r.Route("/employees/{employeeId}", func(r chi.Router) {
					r.Get("/", loanHandler.ListInstallments)
					r.Post("/cash-advance", loanHandler.CreateCashAdvance)
				})
			})
		})
	})
	return r
}

// NewLogger builds the JSON logger used for request logs, in ECS field names.
func NewLogger(w io.Writer, level slog.Level, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)
}
