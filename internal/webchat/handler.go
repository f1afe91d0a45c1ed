// Package webchat serves the embeddable chat widget and its websocket
// endpoint. Unlike the HTTP /chat route it keeps the connection open, so the
// widget gets a typing indicator and the reply without polling. Replies are
// produced synchronously by the same responder the HTTP route uses; no chat
// state survives the connection.
package webchat

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/bottegasoft/prenota-api/internal/chat"
	"github.com/bottegasoft/prenota-api/pkg/logging"
	"github.com/google/uuid"
	"golang.org/x/net/websocket"
)

// Handler manages web chat connections.
type Handler struct {
	responder *chat.Responder
	logger    *logging.Logger
	widgetJS  []byte
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string `json:"type"` // "message", "typing", "session", "pong", "error"
	Text      string `json:"text,omitempty"`
	Role      string `json:"role,omitempty"`
	Fallback  bool   `json:"fallback,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// NewHandler creates a web chat handler.
func NewHandler(responder *chat.Responder, widgetJS []byte, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{responder: responder, logger: logger, widgetJS: widgetJS}
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// HandleWebSocket upgrades to WebSocket and answers messages in-line.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	_ = websocket.JSON.Send(conn, OutboundMessage{
		Type:      "session",
		SessionID: sessionID,
	})

	h.logger.Info("webchat: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}

		if msg.Type != "message" || strings.TrimSpace(msg.Text) == "" {
			continue
		}

		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "typing"})

		reply, err := h.responder.Reply(r.Context(), msg.Text)
		if err != nil {
			h.logger.Error("webchat: reply failed", "session_id", sessionID, "error", err)
			_ = websocket.JSON.Send(conn, OutboundMessage{
				Type: "error",
				Text: "Qualcosa è andato storto. Riprova tra poco.",
			})
			continue
		}

		_ = websocket.JSON.Send(conn, OutboundMessage{
			Type:      "message",
			Role:      "assistant",
			Text:      reply.Text,
			Fallback:  reply.Fallback,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// HandleWidgetJS serves the embeddable widget JavaScript.
func (h *Handler) HandleWidgetJS(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_, _ = w.Write(h.widgetJS)
}
