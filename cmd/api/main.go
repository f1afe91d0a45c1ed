package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bottegasoft/prenota-api/internal/api/router"
	"github.com/bottegasoft/prenota-api/internal/business"
	"github.com/bottegasoft/prenota-api/internal/chat"
	appconfig "github.com/bottegasoft/prenota-api/internal/config"
	"github.com/bottegasoft/prenota-api/internal/gscript"
	"github.com/bottegasoft/prenota-api/internal/http/handlers"
	"github.com/bottegasoft/prenota-api/internal/observability/metrics"
	"github.com/bottegasoft/prenota-api/internal/webchat"
	"github.com/bottegasoft/prenota-api/pkg/logging"
)

func main() {
	// Load .env if present; deployed environments set variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting prenota API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"business", cfg.BusinessSlug,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	profile := business.Lookup(cfg.BusinessSlug)
	if profile.Slug != cfg.BusinessSlug {
		logger.Warn("unknown BUSINESS_SLUG, using default profile",
			"slug", cfg.BusinessSlug,
			"known", business.Slugs(),
		)
	}

	script := gscript.NewClient(gscript.Config{
		URL:     cfg.ScriptURL,
		Secret:  cfg.ScriptSecret,
		Timeout: cfg.ScriptTimeout,
		Logger:  logger,
		Metrics: bookingMetrics,
	})

	// The chat assistant degrades to keyword answers when no API key is set.
	var llm chat.LLMClient
	if cfg.GeminiAPIKey != "" {
		gemini, err := chat.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("failed to initialize Gemini client, using fallback replies", "error", err)
		} else {
			defer gemini.Close()
			llm = gemini
		}
	} else {
		logger.Info("GEMINI_API_KEY not set, chat uses fallback replies")
	}
	responder := chat.NewResponder(profile, llm, logger, bookingMetrics)

	routerCfg := &router.Config{
		Logger:       logger,
		Availability: handlers.NewAvailabilityHandler(script, logger),
		Bookings:     handlers.NewBookingsHandler(script, profile, logger),
		Chat:         handlers.NewChatHandler(responder, logger),
		Admin: handlers.NewAdminHandler(handlers.AdminConfig{
			Script:        script,
			Profile:       profile,
			CookieName:    cfg.AdminCookieName,
			SessionSecret: cfg.AdminSessionSecret,
			SecureCookies: cfg.IsProduction(),
			Logger:        logger,
		}),
		Webchat:            webchat.NewHandler(responder, webchat.DefaultWidgetJS, logger),
		AdminCookieName:    cfg.AdminCookieName,
		AdminSessionSecret: cfg.AdminSessionSecret,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}
