package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bottegasoft/prenota-api/internal/business"
	"github.com/bottegasoft/prenota-api/internal/gscript"
	"github.com/bottegasoft/prenota-api/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingsHandler(script scriptClient, slug string) *BookingsHandler {
	return NewBookingsHandler(script, business.Lookup(slug), logging.New("error"))
}

func postBookings(t *testing.T, h *BookingsHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Post(w, req)
	return w
}

func TestCreateBookingHappyPath(t *testing.T) {
	script := &fakeScript{result: okResult(map[string]any{"ok": true, "id": "abc"})}
	h := newBookingsHandler(script, "barber")

	w := postBookings(t, h, `{
		"action":"create_booking",
		"name":"Marco",
		"phone":"333 123 4567",
		"service":"Taglio",
		"date":"2025-03-10",
		"time":"10:00"
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assertNoStore(t, w)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "Prenotazione registrata.", body["message"])
	assert.Equal(t, "abc", body["id"])

	require.Len(t, script.calls, 1)
	call := script.calls[0]
	assert.Equal(t, "create_booking", call.action)
	assert.Equal(t, "3331234567", call.payload["phone"])
	assert.Equal(t, "TAGLIO", call.payload["service"])
	assert.Equal(t, "NUOVA", call.payload["stato"])
	assert.Equal(t, "APP", call.payload["canale"])
}

func TestCreateBookingNormalizesItalianDateAndTime(t *testing.T) {
	script := &fakeScript{result: okResult(map[string]any{"ok": true})}
	h := newBookingsHandler(script, "barber")

	w := postBookings(t, h, `{
		"action":"create_booking",
		"nome":"Marco",
		"telefono":"0039 333 1234567",
		"servizio":"Taglio",
		"data":"10/03/2025",
		"ora":"10.30"
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, script.calls, 1)
	call := script.calls[0]
	// The backend must only ever see canonical formats.
	assert.Equal(t, "2025-03-10", call.payload["date"])
	assert.Equal(t, "10:30", call.payload["time"])
	assert.Equal(t, "+393331234567", call.payload["phone"])
}

func TestCreateBookingMissingFields(t *testing.T) {
	script := &fakeScript{}
	h := newBookingsHandler(script, "barber")

	w := postBookings(t, h, `{"action":"create_booking","name":"Marco"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "Campi obbligatori")
	assert.Empty(t, script.calls)
}

func TestCreateBookingInvalidDate(t *testing.T) {
	h := newBookingsHandler(&fakeScript{}, "barber")

	w := postBookings(t, h, `{
		"action":"create_booking","name":"M","phone":"333","service":"Taglio",
		"date":"domani","time":"10:00"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "data")
}

func TestCreateBookingInvalidTime(t *testing.T) {
	h := newBookingsHandler(&fakeScript{}, "barber")

	w := postBookings(t, h, `{
		"action":"create_booking","name":"M","phone":"333","service":"Taglio",
		"date":"2025-03-10","time":"dieci"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "ora")
}

func TestCreateBookingHoneypot(t *testing.T) {
	script := &fakeScript{}
	h := newBookingsHandler(script, "barber")

	w := postBookings(t, h, `{
		"action":"create_booking","name":"M","phone":"333","service":"Taglio",
		"date":"2025-03-10","time":"10:00","honeypot":"gotcha"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, script.calls)
}

func TestCreateBookingConflict(t *testing.T) {
	script := &fakeScript{result: gscript.Result{
		Kind:       gscript.KindAppError,
		HTTPStatus: http.StatusConflict,
		Err:        "Orario non più disponibile.",
		Conflict:   true,
	}}
	h := newBookingsHandler(script, "barber")

	w := postBookings(t, h, `{
		"action":"create_booking","name":"M","phone":"333","service":"Taglio",
		"date":"2025-03-10","time":"10:00"
	}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, true, body["conflict"])
}

func TestPizzeriaOrderRules(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			"delivery requires address",
			`{"action":"create_booking","name":"M","phone":"333","tipo":"CONSEGNA",
			  "date":"2025-03-10","time":"19:30","ordine":"2 margherite"}`,
			"indirizzo",
		},
		{
			"table requires party size",
			`{"action":"create_booking","name":"M","phone":"333","tipo":"TAVOLO",
			  "date":"2025-03-10","time":"20:00"}`,
			"persone",
		},
		{
			"takeaway requires order",
			`{"action":"create_booking","name":"M","phone":"333","tipo":"ASPORTO",
			  "date":"2025-03-10","time":"19:00"}`,
			"ordine",
		},
		{
			"unknown type rejected",
			`{"action":"create_booking","name":"M","phone":"333","tipo":"DRONE",
			  "date":"2025-03-10","time":"19:00"}`,
			"Tipo non valido",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := &fakeScript{}
			h := newBookingsHandler(script, "pizzeria")
			w := postBookings(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeBody(t, w)["error"].(string), tt.wantErr)
			assert.Empty(t, script.calls)
		})
	}
}

func TestPizzeriaTableBookingSucceedsWithoutOrder(t *testing.T) {
	script := &fakeScript{result: okResult(map[string]any{"ok": true})}
	h := newBookingsHandler(script, "pizzeria")

	w := postBookings(t, h, `{
		"action":"create_booking","name":"M","phone":"333","tipo":"TAVOLO",
		"date":"2025-03-10","time":"20:00","persone":"4"
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, script.calls, 1)
	assert.Equal(t, "4", script.calls[0].payload["people"])
}

func TestBarberIgnoresOrderRules(t *testing.T) {
	script := &fakeScript{result: okResult(map[string]any{"ok": true})}
	h := newBookingsHandler(script, "barber")

	w := postBookings(t, h, `{
		"action":"create_booking","name":"M","phone":"333","service":"Taglio",
		"date":"2025-03-10","time":"10:00"
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCancelBookingHappyPath(t *testing.T) {
	script := &fakeScript{result: okResult(map[string]any{"ok": true})}
	h := newBookingsHandler(script, "barber")

	w := postBookings(t, h, `{
		"action":"cancel_booking","phone":"+39 333 1234567","date":"2025-03-10","time":"10:00"
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Prenotazione annullata.", decodeBody(t, w)["message"])

	require.Len(t, script.calls, 1)
	call := script.calls[0]
	assert.Equal(t, "cancel_booking", call.action)
	assert.Equal(t, "+393331234567", call.payload["phone"])
	// Name is not part of the cancel key.
	assert.NotContains(t, call.payload, "name")
}

func TestCancelBookingNotFound(t *testing.T) {
	script := &fakeScript{result: gscript.Result{
		Kind:       gscript.KindAppError,
		HTTPStatus: http.StatusInternalServerError,
		Err:        "not found",
	}}
	h := newBookingsHandler(script, "barber")

	w := postBookings(t, h, `{
		"action":"cancel_booking","phone":"+39333","date":"2025-03-10","time":"10:00"
	}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "not found", body["error"])
}

func TestCancelBookingMissingKey(t *testing.T) {
	script := &fakeScript{}
	h := newBookingsHandler(script, "barber")

	w := postBookings(t, h, `{"action":"cancel_booking","phone":"+39333","date":"2025-03-10"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, script.calls)
}

func TestUnknownAction(t *testing.T) {
	h := newBookingsHandler(&fakeScript{}, "barber")
	w := postBookings(t, h, `{"action":"explode"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Azione non valida.", decodeBody(t, w)["error"])
}

func TestMalformedBody(t *testing.T) {
	h := newBookingsHandler(&fakeScript{}, "barber")
	w := postBookings(t, h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
