// Package chat answers informational questions about the shop. With a Gemini
// credential configured it asks the model for one completion constrained by a
// system prompt built from the business profile; without one it falls back to
// keyword-matched canned replies. Either way the assistant never takes
// bookings: the forms on the page own that flow.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bottegasoft/prenota-api/internal/business"
	"github.com/bottegasoft/prenota-api/internal/observability/metrics"
	"github.com/bottegasoft/prenota-api/pkg/logging"
)

// LLMClient is the completion provider. Nil means fallback-only mode.
type LLMClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

var (
	// ErrEmptyMessage is returned for blank user input.
	ErrEmptyMessage = errors.New("chat: empty message")
	// ErrEmptyCompletion is returned when the model answers with nothing.
	ErrEmptyCompletion = errors.New("chat: empty completion")
)

// Reply is a single assistant answer.
type Reply struct {
	Text     string
	Fallback bool
}

// Responder produces chat replies for one business profile.
type Responder struct {
	profile business.Profile
	llm     LLMClient
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
}

// NewResponder creates a responder. llm may be nil.
func NewResponder(p business.Profile, llm LLMClient, logger *logging.Logger, m *metrics.BookingMetrics) *Responder {
	if logger == nil {
		logger = logging.Default()
	}
	return &Responder{profile: p, llm: llm, logger: logger, metrics: m}
}

// Reply answers one user message.
func (r *Responder) Reply(ctx context.Context, message string) (Reply, error) {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return Reply{}, ErrEmptyMessage
	}

	if r.llm == nil {
		r.metrics.ObserveChatReply("fallback")
		return Reply{Text: r.fallbackAnswer(msg), Fallback: true}, nil
	}

	text, err := r.llm.Complete(ctx, r.systemPrompt(), msg)
	if err != nil {
		r.logger.Error("chat: completion failed", "error", err)
		r.metrics.ObserveChatReply("error")
		return Reply{}, err
	}
	if strings.TrimSpace(text) == "" {
		r.metrics.ObserveChatReply("error")
		return Reply{}, ErrEmptyCompletion
	}

	r.metrics.ObserveChatReply("gemini")
	return Reply{Text: strings.TrimSpace(text)}, nil
}

// systemPrompt constrains the assistant to informational answers in the shop's
// voice. Booking in chat is explicitly forbidden: availability lives upstream
// and the assistant has no way to check it.
func (r *Responder) systemPrompt() string {
	p := r.profile

	header := fmt.Sprintf("Sei un assistente virtuale per %s", p.Name)
	if p.City != "" {
		header += fmt.Sprintf(" (%s)", p.City)
	}

	hours := "—"
	if len(p.HoursLines) > 0 {
		hours = strings.Join(p.HoursLines, " | ")
	}

	return strings.TrimSpace(fmt.Sprintf(`%s.
Obiettivo: dare informazioni chiare e veloci su servizi/orari/contatti e indirizzare alla prenotazione.
Regole IMPORTANTI:
- NON prendere prenotazioni in chat e NON inventare disponibilità.
- Se l'utente chiede di prenotare, rispondi: "%s"
- Se l'utente chiede di annullare, rispondi: "%s"
- Se chiedono prezzo/durata e non ci sono info certe, spiega da cosa dipende e chiedi i dettagli del servizio.
- Stile: amichevole, professionale, italiano, massimo 6-8 righe.

Dati attività:
- Nome: %s
- Servizi: %s
- Telefono: %s
- %s: %s

Messaggio iniziale suggerito: %s`,
		header,
		p.Bot.BookingGuide,
		p.Bot.CancelGuide,
		p.Name,
		orDash(p.ServicesShort),
		orDash(p.Phone),
		p.HoursTitle,
		hours,
		p.Bot.Greeting,
	))
}

// fallbackAnswer matches keyword groups against the lower-cased message.
// Cancel intent is checked first: "annullare la prenotazione" must not hit
// the booking group.
func (r *Responder) fallbackAnswer(msg string) string {
	p := r.profile
	t := strings.ToLower(msg)

	switch {
	case containsAny(t, "annull", "cancell", "disdi"):
		return p.Bot.CancelGuide
	case containsAny(t, "prenot", "appunt", "ordin"):
		return p.Bot.BookingGuide
	case containsAny(t, "orari", "apert", "chius"):
		if len(p.HoursLines) > 0 {
			return p.HoursTitle + ": " + strings.Join(p.HoursLines, " • ")
		}
		return "Dimmi il giorno che ti interessa e ti confermo gli orari."
	case containsAny(t, "prezzo", "costa", "quanto"):
		return "Il prezzo dipende dal servizio e dai dettagli. Dimmi cosa ti serve e ti orientiamo."
	case containsAny(t, "servizi", "fate"):
		if p.ServicesShort != "" {
			return "Servizi principali: " + p.ServicesShort + ". Dimmi cosa ti serve e ti dico come prenotare."
		}
		return "Dimmi che servizio ti serve e ti aiuto."
	case containsAny(t, "telefono", "contatt", "chiamare"):
		if p.Phone != "" {
			return "Puoi contattarci al: " + p.Phone
		}
		return "Dimmi come preferisci essere contattato e ti dico la soluzione migliore."
	default:
		return p.Bot.Fallback
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
