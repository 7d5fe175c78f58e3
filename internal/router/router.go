package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atelier-dev/atelier/internal/domain"
	"github.com/atelier-dev/atelier/internal/middleware"
	"github.com/atelier-dev/atelier/internal/middleware/metrics"
	"github.com/atelier-dev/atelier/internal/middleware/ratelimiter"
	"github.com/atelier-dev/atelier/internal/setup"
)

// New wires every route. Public reads run behind optional auth so a
// logged-in admin sees drafts; content mutations and the /admin
// endpoints (except bootstrap) require the admin role.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	origins := deps.Config.Public.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	// Credential endpoints, throttled per IP against brute force
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ratelimiter.OncePerSecond(), middleware.GetIP))
		r.Post("/auth/login", h.Login)
		r.Post("/admin/setup", h.Setup)
	})
	r.Post("/auth/logout", h.Logout)
	r.With(authMw.NeedAuth()).Get("/auth/me", h.Me)

	// Public content reads
	r.Group(func(r chi.Router) {
		r.Use(authMw.MaybeAuth())
		r.Get("/blog", h.ListBlogPosts)
		r.Get("/blog/{idOrSlug}", h.GetBlogPost)
		r.Get("/projects", h.ListProjects)
		r.Get("/projects/{idOrSlug}", h.GetProject)
	})

	// Contact form, throttled per IP against spam
	r.With(middleware.RateLimit(ratelimiter.New(1.0/10, 3, time.Hour), middleware.GetIP)).
		Post("/contact", h.Contact)

	r.Get("/admin/setup", h.SetupStatus)

	// Content management
	r.Group(func(r chi.Router) {
		r.Use(authMw.AdminOnly())
		r.Post("/blog", h.CreateBlogPost)
		r.Put("/blog/{id}", h.UpdateBlogPost)
		r.Delete("/blog/{id}", h.DeleteBlogPost)
		r.Post("/projects", h.CreateProject)
		r.Put("/projects/{id}", h.UpdateProject)
		r.Delete("/projects/{id}", h.DeleteProject)
		r.Get("/admin/uploads/signature", h.UploadSignature)
	})

	// Account management stays superadmin-only
	r.With(authMw.RequireRole(domain.RoleSuperadmin)).Post("/admin/accounts", h.CreateAccount)

	return r
}
