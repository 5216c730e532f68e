// Package router sets up all HTTP routes and middleware chains for
// LinkHub. Routes are organized into auth, dashboard, JSON API, and
// public groups with appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"linkhub/internal/handlers"
	"linkhub/internal/middleware"
	"linkhub/internal/session"
	"linkhub/web"
)

// Limiters holds the rate limiters owned by the router. Stop them on
// shutdown.
type Limiters struct {
	Auth      *middleware.RateLimiter
	Telemetry *middleware.RateLimiter
}

// Stop releases the limiter sweep goroutines.
func (l *Limiters) Stop() {
	l.Auth.Stop()
	l.Telemetry.Stop()
}

// NewLimiters creates the router's rate limiters with their default
// budgets: a tight one for credential endpoints, a loose one for the
// public telemetry beacons.
func NewLimiters() *Limiters {
	return &Limiters{
		Auth:      middleware.NewRateLimiter(10, time.Minute),
		Telemetry: middleware.NewRateLimiter(120, time.Minute),
	}
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, limiters *Limiters, auth *handlers.Auth, dashboard *handlers.Dashboard, api *handlers.API, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", handlers.Health)

	// Embedded static assets.
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// HTML auth pages — CSRF-protected, rate-limited on submission.
	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)

		r.Get("/login", auth.LoginPage)
		r.Get("/signup", auth.SignupPage)
		r.Group(func(r chi.Router) {
			r.Use(limiters.Auth.Middleware)
			r.Post("/login", auth.LoginSubmit)
			r.Post("/signup", auth.SignupSubmit)
		})
		r.Post("/logout", auth.Logout)

		// Per-login TOTP step — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})
	})

	// Authenticated + 2FA-verified dashboard.
	r.Route("/dashboard", func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Use(middleware.RequireAuth)
		r.Use(middleware.Require2FA)

		r.Get("/", dashboard.LinksTab)
		r.Get("/preview", dashboard.Preview)

		r.Route("/links", func(r chi.Router) {
			r.Post("/", dashboard.LinkCreate)
			r.Put("/{id}/toggle", dashboard.LinkToggle)
			r.Delete("/{id}", dashboard.LinkDelete)
		})

		r.Route("/appearance", func(r chi.Router) {
			r.Get("/", dashboard.AppearanceTab)
			r.Put("/", dashboard.ThemeSave)
			r.Post("/preset", dashboard.ApplyPreset)
		})

		r.Get("/analytics", dashboard.AnalyticsTab)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", dashboard.SettingsTab)
			r.Put("/profile", dashboard.ProfileSave)
			r.Post("/avatar", dashboard.AvatarUpload)
			r.Get("/2fa/setup", dashboard.TwoFASetupPage)
			r.Post("/2fa/confirm", dashboard.TwoFAConfirm)
			r.Post("/2fa/disable", dashboard.TwoFADisable)
		})

		r.Get("/share/qr.png", dashboard.ShareQR)
	})

	// JSON API.
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(limiters.Auth.Middleware)
			r.Post("/signup", api.Signup)
			r.Post("/login", api.Login)
			r.Post("/logout", api.Logout)
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(middleware.RequireAuthJSON)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", api.MeProfile)
				r.Put("/", api.MeProfileUpdate)
				r.Get("/check-username", api.CheckUsername)
				r.Post("/avatar", api.MeAvatar)
			})

			r.Route("/links", func(r chi.Router) {
				r.Get("/", api.MeLinks)
				r.Post("/", api.MeLinkCreate)
				r.Put("/order", api.MeLinksOrder)
				r.Put("/{id}", api.MeLinkUpdate)
				r.Delete("/{id}", api.MeLinkDelete)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/", api.AnalyticsDaily)
				r.Get("/overview", api.AnalyticsOverview)
				r.Get("/top-links", api.AnalyticsTopLinks)
			})
		})

		// Public read endpoints plus fire-and-forget beacons.
		r.Route("/p/{username}", func(r chi.Router) {
			r.Get("/", api.PublicProfile)
			r.Get("/links", api.PublicLinks)
			r.With(limiters.Telemetry.Middleware).Post("/view", api.PublicView)
		})
		r.With(limiters.Telemetry.Middleware).Post("/links/{id}/click", api.LinkClick)
	})

	// Public profile pages. The username wildcard must be registered
	// last so the fixed routes above win.
	r.Get("/", handlers.Landing)
	r.Get("/{username}", public.ProfilePage)

	return r
}
