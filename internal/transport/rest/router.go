package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/internal/transport/middleware"
	"github.com/frahmantamala/attendance-management/internal/transport/swagger"
	"github.com/frahmantamala/attendance-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
)

const DefaultOpenAPIPath = "./api/openapi.yml"

// Routes bundles what RegisterAllRoutes mounts. Nil handlers leave their
// routes out.
type Routes struct {
	DB                Pinger
	AuthHandler       *auth.Handler
	UserHandler       *user.Handler
	AttendanceHandler *attendance.Handler
	// AuthRateLimit is requests per minute per IP on /signup and /login;
	// zero disables it.
	AuthRateLimit  int
	AllowedOrigins string
	OpenAPIPath    string
	Logger         *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, rt Routes) {
	lg := rt.Logger
	if lg == nil {
		lg = slog.Default()
	}
	healthHandler := NewHealthHandler(rt.DB, lg)
	base := transport.NewBaseHandler(lg)

	router.Use(middleware.CORS(rt.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(lg))
	router.Use(middleware.RecoveryMiddleware(lg))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		base.HandleError(w, internal.NewNotFoundError("Route not found", internal.ErrCodeRouteNotFound))
	})

	specPath := rt.OpenAPIPath
	if specPath == "" {
		specPath = DefaultOpenAPIPath
	}
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, specPath)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", healthHandler.Health)
	router.Get("/ping", healthHandler.Ping)

	if rt.AuthHandler == nil {
		return
	}

	router.Group(func(r chi.Router) {
		if rt.AuthRateLimit > 0 {
			r.Use(httprate.Limit(
				rt.AuthRateLimit,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					base.WriteError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
				}),
			))
		}
		r.Post("/signup", rt.AuthHandler.Signup)
		r.Post("/login", rt.AuthHandler.Login)
	})

	router.Group(func(pr chi.Router) {
		pr.Use(rt.AuthHandler.AuthMiddleware)

		if rt.UserHandler != nil {
			pr.Get("/users", rt.UserHandler.GetUsers)
		}

		if rt.AttendanceHandler != nil {
			// ownership of the body's userId is checked by the service
			pr.Post("/mark-attendance", rt.AttendanceHandler.MarkAttendance)

			pr.Group(func(ar chi.Router) {
				ar.Use(middleware.RequireSelfOrAdmin("employeeId", lg))
				ar.Get("/attendances/{employeeId}", rt.AttendanceHandler.GetHistory)
			})
		}
	})
}
