package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bottegasoft/prenota-api/internal/chat"
	"github.com/bottegasoft/prenota-api/pkg/logging"
)

// ChatHandler serves POST /chat.
type ChatHandler struct {
	responder *chat.Responder
	logger    *logging.Logger
}

func NewChatHandler(responder *chat.Responder, logger *logging.Logger) *ChatHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ChatHandler{responder: responder, logger: logger}
}

type chatRequest struct {
	Message     string `json:"message"`
	UserMessage string `json:"userMessage"` // older widget builds
}

// Post handles POST /chat with {message}.
func (h *ChatHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Messaggio vuoto.")
		return
	}
	message := req.Message
	if message == "" {
		message = req.UserMessage
	}

	reply, err := h.responder.Reply(r.Context(), message)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "Messaggio vuoto.")
		return
	case errors.Is(err, chat.ErrEmptyCompletion):
		writeError(w, http.StatusInternalServerError, "Risposta vuota dal modello.")
		return
	case err != nil:
		h.logger.Error("chat handler: reply failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Errore server (chat).")
		return
	}

	body := map[string]any{"ok": true, "reply": reply.Text}
	if reply.Fallback {
		body["fallback"] = true
	}
	writeJSON(w, http.StatusOK, body)
}
