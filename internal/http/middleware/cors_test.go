package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsStack(origins []string) http.Handler {
	return CORS(origins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORSAllowedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/availability", nil)
	req.Header.Set("Origin", "https://shop.example")
	w := httptest.NewRecorder()

	corsStack([]string{"https://shop.example"}).ServeHTTP(w, req)

	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSDisallowedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/availability", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()

	corsStack([]string{"https://shop.example"}).ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSWildcard(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/availability", nil)
	req.Header.Set("Origin", "https://anything.example")
	w := httptest.NewRecorder()

	corsStack([]string{"*"}).ServeHTTP(w, req)

	assert.Equal(t, "https://anything.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/bookings", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	corsStack([]string{"https://shop.example"}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}
