package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/bottegasoft/prenota-api/internal/business"
	"github.com/bottegasoft/prenota-api/internal/normalize"
	"github.com/bottegasoft/prenota-api/pkg/logging"
)

// Order types for the pizzeria flow.
const (
	orderAsporto  = "ASPORTO"
	orderConsegna = "CONSEGNA"
	orderTavolo   = "TAVOLO"
)

// BookingsHandler serves POST /bookings, dispatching on the action field.
// Booking identity upstream is the (phone, date, time) triple; no booking ID
// ever reaches the cancel form.
type BookingsHandler struct {
	script  scriptClient
	profile business.Profile
	logger  *logging.Logger
	now     func() time.Time
}

func NewBookingsHandler(script scriptClient, profile business.Profile, logger *logging.Logger) *BookingsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &BookingsHandler{script: script, profile: profile, logger: logger, now: time.Now}
}

// Post handles POST /bookings.
func (h *BookingsHandler) Post(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		writeError(w, http.StatusBadRequest, "Corpo della richiesta non valido.")
		return
	}

	switch strings.TrimSpace(field(body, "action")) {
	case "create_booking":
		h.create(w, r, body)
	case "cancel_booking":
		h.cancel(w, r, body)
	default:
		writeError(w, http.StatusBadRequest, "Azione non valida.")
	}
}

func (h *BookingsHandler) create(w http.ResponseWriter, r *http.Request, body map[string]any) {
	// The form ships a hidden honeypot field; bots fill it, customers never do.
	if field(body, "honeypot") != "" {
		writeError(w, http.StatusBadRequest, "Richiesta non valida.")
		return
	}

	name := field(body, "name", "nome")
	phone := normalize.Phone(field(body, "phone", "telefono"))
	service := strings.ToUpper(field(body, "service", "tipo", "servizio"))
	date := normalize.Date(field(body, "date", "data"))
	tm := normalize.Time(field(body, "time", "ora"))

	if name == "" || phone == "" || service == "" || date == "" || tm == "" {
		writeError(w, http.StatusBadRequest,
			"Campi obbligatori mancanti (nome, telefono, servizio, data, ora).")
		return
	}
	if !normalize.IsISODate(date) {
		writeError(w, http.StatusBadRequest, "Formato data non valido (YYYY-MM-DD o DD/MM/YYYY).")
		return
	}
	if !normalize.IsTime(tm) {
		writeError(w, http.StatusBadRequest, "Formato ora non valido (HH:mm).")
		return
	}

	order := field(body, "order", "ordine")
	address := field(body, "address", "indirizzo")
	people := field(body, "people", "persone")

	if h.profile.OrderFlow {
		switch service {
		case orderAsporto, orderConsegna, orderTavolo:
		default:
			writeError(w, http.StatusBadRequest, "Tipo non valido.")
			return
		}
		if service == orderConsegna && address == "" {
			writeError(w, http.StatusBadRequest, "Per la consegna serve l'indirizzo.")
			return
		}
		if service == orderTavolo && people == "" {
			writeError(w, http.StatusBadRequest, "Per il tavolo serve il numero persone.")
			return
		}
		if (service == orderAsporto || service == orderConsegna) && order == "" {
			writeError(w, http.StatusBadRequest, "Per asporto/consegna serve l'ordine.")
			return
		}
	}

	channel := strings.ToUpper(field(body, "channel", "canale"))
	if channel == "" {
		channel = "APP"
	}

	payload := map[string]any{
		"ts":       h.now().UTC().Format(time.RFC3339),
		"negozio":  h.profile.Name,
		"name":     name,
		"phone":    phone,
		"service":  service,
		"date":     date,
		"time":     tm,
		"order":    order,
		"address":  address,
		"people":   people,
		"notes":    field(body, "notes", "note"),
		"payment":  field(body, "payment", "pagamento"),
		"allergy":  field(body, "allergy", "allergeni"),
		"stato":    "NUOVA",
		"canale":   channel,
	}

	res := h.script.Send(r.Context(), "create_booking", payload)
	if !res.OK() {
		if res.Conflict {
			h.logger.Info("booking conflict", "date", date, "time", tm)
		}
		writeResultError(w, res)
		return
	}

	resp := map[string]any{
		"ok":      true,
		"message": "Prenotazione registrata.",
	}
	if id, ok := res.Data["id"].(string); ok && id != "" {
		resp["id"] = id
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingsHandler) cancel(w http.ResponseWriter, r *http.Request, body map[string]any) {
	phone := normalize.Phone(field(body, "phone", "telefono"))
	date := normalize.Date(field(body, "date", "data"))
	tm := normalize.Time(field(body, "time", "ora"))

	// Phone + date + time is the lookup key upstream; the name is not needed.
	if phone == "" || !normalize.IsISODate(date) || !normalize.IsTime(tm) {
		writeError(w, http.StatusBadRequest,
			"Per annullare servono telefono, data (YYYY-MM-DD) e ora (HH:mm).")
		return
	}

	res := h.script.Send(r.Context(), "cancel_booking", map[string]any{
		"phone": phone,
		"date":  date,
		"time":  tm,
	})
	if !res.OK() {
		writeResultError(w, res)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Prenotazione annullata.",
	})
}

// field returns the first non-empty value among the aliases. The three site
// variants never agreed on field names, so both the English and the Italian
// spellings reach this API.
func field(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok {
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		}
	}
	return ""
}
