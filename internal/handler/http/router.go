package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacay-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/vacay-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the settings the router needs from configuration
type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	AuthLimiter    *middleware.IPRateLimiter
}

// NewLogger builds the JSON logger in the ECS schema used for request logs
func NewLogger(out io.Writer, level slog.Level, env, version string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "vacay"),
		slog.String("version", version),
		slog.String("env", env),
	)
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	authHandler AuthHandler,
	leaveHandler LeaveHandler,
	userHandler UserHandler,
	companyHandler CompanyHandler,
	notificationHandler NotificationHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.RequestID)

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	authLimiter := opts.AuthLimiter
	if authLimiter == nil {
		authLimiter = middleware.NewIPRateLimiter(1, 5)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register-admin", authHandler.RegisterAdmin)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// EventSource cannot set headers; the stream authenticates with an SSE token
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/me", userHandler.Me)

			r.Route("/requests", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/", leaveHandler.List)
				r.Get("/calendar", leaveHandler.Calendar)
				r.Get("/balance", leaveHandler.Balance)
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", leaveHandler.Submit)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/", leaveHandler.Get)
					r.Post("/cancel", leaveHandler.Cancel)
					r.With(middleware.RequireManager).Put("/status", leaveHandler.Decide)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/{id}", userHandler.Get)

				// Manager or admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", userHandler.List)
					r.Put("/{id}/vacation-days", userHandler.AdjustVacationDays)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Put("/{id}/role", userHandler.UpdateRole)
					r.Put("/{id}/toggle-active", userHandler.ToggleActive)
				})
			})

			r.Route("/company", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionCompanyView)).Get("/", companyHandler.Get)
				r.With(middleware.RequireAdmin).Put("/", companyHandler.Update)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Put("/read", notificationHandler.MarkAllAsRead)
				r.Get("/sse-token", notificationHandler.GetSSEToken)
			})

			r.With(middleware.RequireManager).Get("/stats", dashboardHandler.GetStats)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
