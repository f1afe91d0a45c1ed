package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sessionTestStack(secret string) http.Handler {
	reject := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Non autorizzato.", http.StatusUnauthorized)
	}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return AdminSession("pannello_session", secret, reject)(ok)
}

func TestAdminSessionValidCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	req.AddCookie(&http.Cookie{Name: "pannello_session", Value: "topsecret"})
	w := httptest.NewRecorder()

	sessionTestStack("topsecret").ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminSessionMissingCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	w := httptest.NewRecorder()

	sessionTestStack("topsecret").ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminSessionWrongValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	req.AddCookie(&http.Cookie{Name: "pannello_session", Value: "guess"})
	w := httptest.NewRecorder()

	sessionTestStack("topsecret").ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminSessionEmptySecretDeniesAll(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	req.AddCookie(&http.Cookie{Name: "pannello_session", Value: ""})
	w := httptest.NewRecorder()

	sessionTestStack("").ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
