// Package handlers implements the HTTP surface of the booking app: the
// customer-facing availability/booking/chat endpoints and the cookie-gated
// admin panel API. Handlers validate and normalize input, delegate to the
// Apps Script client and translate its Result into an HTTP response. Every
// JSON response is marked uncacheable: availability and admin rows must never
// be served stale.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bottegasoft/prenota-api/internal/gscript"
)

// scriptClient is the slice of the Apps Script client the handlers use;
// tests substitute a recorder.
type scriptClient interface {
	Send(ctx context.Context, action string, payload map[string]any) gscript.Result
}

func setNoStore(h http.Header) {
	h.Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	setNoStore(w.Header())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorBody struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error"`
	Details  string `json:"details,omitempty"`
	Conflict bool   `json:"conflict,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{OK: false, Error: msg})
}

// writeResultError maps a non-OK script Result onto the response, preserving
// the upstream message, details and conflict flag.
func writeResultError(w http.ResponseWriter, res gscript.Result) {
	status := res.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, errorBody{
		OK:       false,
		Error:    res.Err,
		Details:  res.Details,
		Conflict: res.Conflict,
	})
}

// Unauthorized is the shared rejection for the admin group: generic message,
// no hint whether the cookie was missing or wrong.
func Unauthorized(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusUnauthorized, "Non autorizzato.")
}
