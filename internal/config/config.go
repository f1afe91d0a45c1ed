package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	BusinessSlug  string
	PublicBaseURL string

	// Apps Script booking backend
	ScriptURL     string
	ScriptSecret  string
	ScriptTimeout time.Duration

	// Admin panel session
	AdminSessionSecret string
	AdminCookieName    string

	// Gemini chat assistant (optional; absence enables keyword fallback)
	GeminiAPIKey string
	GeminiModel  string

	CORSAllowedOrigins []string

	// Per-IP rate limiting for public write endpoints
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		BusinessSlug:  strings.ToLower(strings.TrimSpace(getEnv("BUSINESS_SLUG", "barber"))),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),

		ScriptURL:     strings.TrimSpace(getEnv("GOOGLE_SCRIPT_URL", "")),
		ScriptSecret:  strings.TrimSpace(getEnv("GOOGLE_SCRIPT_SECRET", "")),
		ScriptTimeout: getEnvAsDuration("GOOGLE_SCRIPT_TIMEOUT", 15*time.Second),

		AdminSessionSecret: strings.TrimSpace(getEnv("ADMIN_SESSION_SECRET", "")),
		AdminCookieName:    getEnv("ADMIN_COOKIE_NAME", "pannello_session"),

		GeminiAPIKey: strings.TrimSpace(getEnv("GEMINI_API_KEY", "")),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),

		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 2),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 10),
	}
}

// IsProduction reports whether the server runs with production hardening
// (secure cookies in particular).
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitAndTrim(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
