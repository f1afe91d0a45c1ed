// Package whatsapp builds wa.me deep links. This is a URL-format convenience
// only; no messaging protocol is involved. The admin panel shows a link per
// booking so the shop can confirm or cancel with one tap.
package whatsapp

import (
	"net/url"
	"strings"

	"github.com/bottegasoft/prenota-api/internal/business"
	"github.com/bottegasoft/prenota-api/internal/normalize"
)

// Link builds a wa.me URL opening a chat with phone, prefilled with text.
// Returns "" when the phone has no digits.
func Link(phone, text string) string {
	n := digitsOnly(phone)
	if n == "" {
		return ""
	}
	return "https://wa.me/" + n + "?text=" + url.QueryEscape(text)
}

// wa.me wants bare digits, no + and no punctuation.
func digitsOnly(raw string) string {
	normalized := normalize.Phone(raw)
	var b strings.Builder
	for _, r := range normalized {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TemplateData fills the {name}/{date}/{time}/{service} placeholders of a
// WhatsApp template. Date is rendered Italian-style.
type TemplateData struct {
	Name    string
	DateISO string
	Time    string
	Service string
}

// Render substitutes placeholders in a template.
func Render(template string, d TemplateData) string {
	r := strings.NewReplacer(
		"{name}", d.Name,
		"{date}", normalize.ItalianDate(d.DateISO),
		"{time}", d.Time,
		"{service}", d.Service,
	)
	return r.Replace(template)
}

// ConfirmLink builds the one-tap confirmation link for a booking.
func ConfirmLink(p business.Profile, customerPhone string, d TemplateData) string {
	return Link(customerPhone, Render(p.WhatsApp.ConfirmBooking, d))
}

// CancelLink builds the one-tap cancellation link for a booking.
func CancelLink(p business.Profile, customerPhone string, d TemplateData) string {
	return Link(customerPhone, Render(p.WhatsApp.CancelBooking, d))
}
