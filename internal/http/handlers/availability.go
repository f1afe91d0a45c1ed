package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bottegasoft/prenota-api/internal/normalize"
	"github.com/bottegasoft/prenota-api/pkg/logging"
)

// AvailabilityHandler answers free-slot queries. The slots themselves are
// computed upstream on every call; nothing is cached here.
type AvailabilityHandler struct {
	script scriptClient
	logger *logging.Logger
}

func NewAvailabilityHandler(script scriptClient, logger *logging.Logger) *AvailabilityHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AvailabilityHandler{script: script, logger: logger}
}

type availabilityRequest struct {
	Date string `json:"date"`
	Mode string `json:"mode"`
}

// Get handles GET /availability?date=YYYY-MM-DD&mode=....
func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, availabilityRequest{})
}

// Post handles POST /availability with {date, mode} in the body. Query
// parameters still apply when the body omits a field.
func (h *AvailabilityHandler) Post(w http.ResponseWriter, r *http.Request) {
	var body availabilityRequest
	// A malformed body degrades to the query parameters, like the panel's
	// original behavior.
	_ = json.NewDecoder(r.Body).Decode(&body)
	h.handle(w, r, body)
}

func (h *AvailabilityHandler) handle(w http.ResponseWriter, r *http.Request, body availabilityRequest) {
	date := strings.TrimSpace(body.Date)
	if date == "" {
		date = strings.TrimSpace(r.URL.Query().Get("date"))
	}
	date = normalize.Date(date)

	mode := normalizeMode(body.Mode, r.URL.Query().Get("mode"))

	if !normalize.IsISODate(date) {
		writeError(w, http.StatusBadRequest, "Parametro 'date' mancante o non valido (YYYY-MM-DD).")
		return
	}

	res := h.script.Send(r.Context(), "get_availability", map[string]any{
		"date":        date,
		"requestMode": mode == "REQUEST",
		"mode":        mode,
	})
	if !res.OK() {
		writeResultError(w, res)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"date":      date,
		"mode":      mode,
		"freeSlots": stringSlice(res.Data["freeSlots"]),
	})
}

// normalizeMode collapses everything that is not the request flow onto the
// default booking flow.
func normalizeMode(bodyMode, queryMode string) string {
	mode := strings.ToUpper(strings.TrimSpace(bodyMode))
	if mode == "" {
		mode = strings.ToUpper(strings.TrimSpace(queryMode))
	}
	if mode == "REQUEST" {
		return "REQUEST"
	}
	return "BOOKING"
}

func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
