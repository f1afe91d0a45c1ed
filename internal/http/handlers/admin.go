package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bottegasoft/prenota-api/internal/business"
	"github.com/bottegasoft/prenota-api/internal/status"
	"github.com/bottegasoft/prenota-api/internal/whatsapp"
	"github.com/bottegasoft/prenota-api/pkg/logging"
)

const (
	defaultListLimit = 300
	maxListLimit     = 1000

	sessionMaxAge = 30 * 24 * time.Hour
)

// AdminHandler serves the panel API: list bookings, update their status,
// log in and out. Authentication is the session cookie gate in front of the
// list/update routes; login itself is public.
type AdminHandler struct {
	script        scriptClient
	profile       business.Profile
	cookieName    string
	sessionSecret string
	secureCookies bool
	logger        *logging.Logger
}

type AdminConfig struct {
	Script        scriptClient
	Profile       business.Profile
	CookieName    string
	SessionSecret string
	SecureCookies bool
	Logger        *logging.Logger
}

func NewAdminHandler(cfg AdminConfig) *AdminHandler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "pannello_session"
	}
	return &AdminHandler{
		script:        cfg.Script,
		profile:       cfg.Profile,
		cookieName:    cfg.CookieName,
		sessionSecret: strings.TrimSpace(cfg.SessionSecret),
		secureCookies: cfg.SecureCookies,
		logger:        cfg.Logger,
	}
}

// List handles GET /admin/bookings?limit=N.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := clampInt(r.URL.Query().Get("limit"), defaultListLimit, 1, maxListLimit)

	res := h.script.Send(r.Context(), "admin_list", map[string]any{"limit": limit})
	if !res.OK() {
		writeResultError(w, res)
		return
	}

	rows := h.projectRows(res.Data["rows"])

	count := len(rows)
	if n, ok := res.Data["count"].(float64); ok {
		count = int(n)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"rows":  rows,
		"count": count,
	})
}

// projectRows translates each row's status into UI vocabulary and decorates it
// with the one-tap WhatsApp links. The upstream schema is passed through
// otherwise: the spreadsheet owns it.
func (h *AdminHandler) projectRows(v any) []map[string]any {
	raw, ok := v.([]any)
	if !ok {
		return []map[string]any{}
	}
	rows := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		src, ok := item.(map[string]any)
		if !ok {
			continue
		}
		row := make(map[string]any, len(src)+2)
		for k, val := range src {
			row[k] = val
		}
		if s, ok := src["status"].(string); ok {
			row["status"] = status.ToUI(s)
		}

		phone, _ := src["phone"].(string)
		data := whatsapp.TemplateData{
			Name:    stringField(src, "name"),
			DateISO: stringField(src, "date"),
			Time:    stringField(src, "time"),
			Service: stringField(src, "service"),
		}
		if link := whatsapp.ConfirmLink(h.profile, phone, data); link != "" {
			row["waConfirmUrl"] = link
		}
		if link := whatsapp.CancelLink(h.profile, phone, data); link != "" {
			row["waCancelUrl"] = link
		}
		rows = append(rows, row)
	}
	return rows
}

type setStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// SetStatus handles POST /admin/bookings with {id, status}.
func (h *AdminHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo della richiesta non valido.")
		return
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		writeError(w, http.StatusBadRequest, "ID mancante.")
		return
	}
	if !status.IsAllowed(req.Status) {
		writeError(w, http.StatusBadRequest,
			"Status non valido. Usa: RICHIESTA / CONFERMATA / ANNULLATA")
		return
	}

	wireStatus := status.ToWire(req.Status)

	res := h.script.Send(r.Context(), "admin_set_status", map[string]any{
		"id":     id,
		"status": wireStatus,
	})
	if !res.OK() {
		writeResultError(w, res)
		return
	}

	returned := wireStatus
	if s, ok := res.Data["status"].(string); ok && s != "" {
		returned = s
	}
	message := "Stato aggiornato."
	if m, ok := res.Data["message"].(string); ok && m != "" {
		message = m
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"status":  status.ToUI(returned),
		"message": message,
	})
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /admin/login. The panel sends the shared password; a
// match sets the session cookie to the same value the gate compares against.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo della richiesta non valido.")
		return
	}
	// Same constant-time check the session gate uses.
	if h.sessionSecret == "" ||
		subtle.ConstantTimeCompare([]byte(strings.TrimSpace(req.Password)), []byte(h.sessionSecret)) != 1 {
		writeError(w, http.StatusUnauthorized, "Non autorizzato.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    h.sessionSecret,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Logout clears the session cookie. GET redirects back to the login page,
// POST acknowledges with JSON; both run with no-cache headers.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // serialized as Max-Age=0

		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	if r.Method == http.MethodGet {
		setNoStore(w.Header())
		http.Redirect(w, r, "/pannello/login", http.StatusFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func clampInt(raw string, def, min, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		n = def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
