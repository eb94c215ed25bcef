package http

import (
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/workspace-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/time/rate"
)

type RouterOptions struct {
	AppName        string
	Version        string
	Env            string
	LogLevel       slog.Level
	LogOutput      io.Writer // defaults to os.Stdout
	AllowedOrigins []string
	// RateLimit is requests per second per identity; zero disables throttling
	RateLimit      float64
	RateLimitBurst int
}

type Handlers struct {
	Dashboard DashboardHandler
	Workspace WorkspaceHandler
	Me        MeHandler
	Events    EventsHandler
	Employee  EmployeeHandler
	Project   ProjectHandler
	Invoice   InvoiceHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	out := opts.LogOutput
	if out == nil {
		out = os.Stdout
	}
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", opts.AppName),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	throttle := func(next http.Handler) http.Handler { return next }
	if opts.RateLimit > 0 {
		burst := max(opts.RateLimitBurst, 1)
		throttle = middleware.RateLimitByUser(middleware.NewUserRateLimiter(rate.Limit(opts.RateLimit), burst))
	}

	r.Route("/api/v1", func(r chi.Router) {

		// SSE clients may send the token as a query parameter
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, tokenFromQuery))
			r.Use(middleware.AuthRequired)
			r.Get("/events", h.Events.Stream)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(throttle)

			r.Get("/me", h.Me.GetMe)
			r.Get("/dashboard", h.Dashboard.GetDashboard)
			r.Get("/workspace/{section}", h.Workspace.GetSection)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Get("/{id}", h.Employee.GetEmployee)

				// Managing director only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManagingDirector)
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
				})
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.Project.ListProjects)
				r.Get("/{id}", h.Project.GetProject)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireProjectManager)
					r.Post("/", h.Project.CreateProject)
					r.Put("/{id}", h.Project.UpdateProject)
					r.Delete("/{id}", h.Project.DeleteProject)
				})
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", h.Invoice.ListInvoices)
				r.Get("/{id}", h.Invoice.GetInvoice)

				// Managing director only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManagingDirector)
					r.Post("/", h.Invoice.CreateInvoice)
					r.Put("/{id}", h.Invoice.UpdateInvoice)
					r.Delete("/{id}", h.Invoice.DeleteInvoice)
				})
			})
		})
	})
	return r
}
