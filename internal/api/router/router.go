package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bottegasoft/prenota-api/internal/http/handlers"
	httpmiddleware "github.com/bottegasoft/prenota-api/internal/http/middleware"
	"github.com/bottegasoft/prenota-api/internal/webchat"
	"github.com/bottegasoft/prenota-api/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger       *logging.Logger
	Availability *handlers.AvailabilityHandler
	Bookings     *handlers.BookingsHandler
	Chat         *handlers.ChatHandler
	Admin        *handlers.AdminHandler
	Webchat      *webchat.Handler

	AdminCookieName    string
	AdminSessionSecret string

	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	rateLimited := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimitPerSecond > 0 {
		rateLimited = httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	}

	// Public endpoints
	r.Get("/health", handlers.Health)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.Availability != nil {
		r.Get("/availability", cfg.Availability.Get)
		r.Post("/availability", cfg.Availability.Post)
	}
	if cfg.Bookings != nil {
		r.With(rateLimited).Post("/bookings", cfg.Bookings.Post)
	}

	if cfg.Chat != nil {
		r.With(rateLimited).Post("/chat", cfg.Chat.Post)
	}
	if cfg.Webchat != nil {
		r.Get("/chat/ws", cfg.Webchat.HandleWebSocket)
		r.Get("/chat/widget.js", cfg.Webchat.HandleWidgetJS)
	}

	if cfg.Admin != nil {
		r.Post("/admin/login", cfg.Admin.Login)
		r.Get("/admin/logout", cfg.Admin.Logout)
		r.Post("/admin/logout", cfg.Admin.Logout)

		// Admin routes protected by the panel session cookie
		r.Route("/admin/bookings", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminSession(cfg.AdminCookieName, cfg.AdminSessionSecret, handlers.Unauthorized))
			admin.Get("/", cfg.Admin.List)
			admin.Post("/", cfg.Admin.SetStatus)
		})
	}

	return r
}
