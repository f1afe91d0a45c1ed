// Package business holds the per-variant profile of the shop this deployment
// serves. One binary powers the barbershop, pizzeria and pet-grooming sites;
// BUSINESS_SLUG selects the profile and everything brand-specific (copy, hours,
// bot texts, WhatsApp templates, whether the booking flow carries order types)
// hangs off it.
package business

import "strings"

// BotTexts are the canned guides the chat assistant leans on.
type BotTexts struct {
	Greeting     string
	BookingGuide string
	CancelGuide  string
	Fallback     string
}

// WhatsAppTemplates render the admin's one-tap confirmation messages.
// Placeholders: {name} {date} {time} {service}.
type WhatsAppTemplates struct {
	ConfirmBooking string
	CancelBooking  string
}

// Profile describes one business variant.
type Profile struct {
	Slug          string
	Name          string
	City          string
	Phone         string
	WhatsAppPhone string

	ServicesShort string
	ServicesList  []string

	HoursTitle string
	HoursLines []string

	// OrderFlow enables the pizzeria-style ASPORTO/CONSEGNA/TAVOLO rules on
	// booking creation.
	OrderFlow bool

	Bot      BotTexts
	WhatsApp WhatsAppTemplates
}

var profiles = map[string]Profile{
	"barber": {
		Slug:          "barber",
		Name:          "Barberia Centrale",
		City:          "Milano",
		Phone:         "+39 333 123 4567",
		WhatsAppPhone: "+393331234567",
		ServicesShort: "Taglio, barba, taglio+barba, sfumatura",
		ServicesList:  []string{"Taglio", "Barba", "Taglio + Barba", "Sfumatura"},
		HoursTitle:    "Orari",
		HoursLines:    []string{"Mar-Sab 9:00-19:00", "Dom-Lun chiuso"},
		Bot: BotTexts{
			Greeting:     "Ciao! Sono l'assistente di Barberia Centrale. Posso darti info su servizi, orari e contatti.",
			BookingGuide: "Per prenotare usa il box “Prenota adesso” nella pagina: scegli data e un orario disponibile.",
			CancelGuide:  "Per annullare usa il box “Annulla prenotazione”: inserisci lo stesso telefono e la stessa data+ora della prenotazione.",
			Fallback:     "Posso aiutarti con info su servizi, orari e contatti. Se vuoi prenotare usa “Prenota adesso” nella pagina.",
		},
		WhatsApp: WhatsAppTemplates{
			ConfirmBooking: "Ciao {name}! Confermiamo il tuo appuntamento del {date} alle {time} ({service}). A presto!",
			CancelBooking:  "Ciao {name}, purtroppo dobbiamo annullare l'appuntamento del {date} alle {time} ({service}). Scrivici per trovare un altro orario.",
		},
	},
	"pizzeria": {
		Slug:          "pizzeria",
		Name:          "Pala Pizza",
		City:          "Torino",
		Phone:         "+39 333 765 4321",
		WhatsAppPhone: "+393337654321",
		ServicesShort: "Asporto, consegna a domicilio, tavoli",
		ServicesList:  []string{"Asporto", "Consegna", "Tavolo"},
		HoursTitle:    "Orari",
		HoursLines:    []string{"Mar-Dom 18:30-23:00", "Lun chiuso"},
		OrderFlow:     true,
		Bot: BotTexts{
			Greeting:     "Ciao! Sono l'assistente di Pala Pizza. Posso darti info su menu, orari e ordini.",
			BookingGuide: "Per ordinare usa il box “Ordina adesso” nella pagina: scegli asporto, consegna o tavolo.",
			CancelGuide:  "Per annullare un ordine inserisci nel box “Annulla” lo stesso telefono e la stessa data+ora.",
			Fallback:     "Posso aiutarti con info su menu, orari e contatti. Se vuoi ordinare usa “Ordina adesso” nella pagina.",
		},
		WhatsApp: WhatsAppTemplates{
			ConfirmBooking: "Ciao {name}! Il tuo ordine del {date} alle {time} è confermato. Grazie!",
			CancelBooking:  "Ciao {name}, il tuo ordine del {date} alle {time} è stato annullato. Scrivici per qualsiasi cosa.",
		},
	},
	"grooming": {
		Slug:          "grooming",
		Name:          "4 Zampe",
		City:          "Bologna",
		Phone:         "+39 333 987 6543",
		WhatsAppPhone: "+393339876543",
		ServicesShort: "Bagno, tosatura, taglio unghie, pulizia orecchie",
		ServicesList:  []string{"Bagno", "Tosatura", "Bagno + Tosatura", "Taglio unghie"},
		HoursTitle:    "Orari",
		HoursLines:    []string{"Lun-Ven 9:00-18:00", "Sab 9:00-13:00"},
		Bot: BotTexts{
			Greeting:     "Ciao! Sono l'assistente di 4 Zampe. Posso darti info su servizi, orari e contatti.",
			BookingGuide: "Per prenotare usa il box “Prenota adesso” nella pagina: scegli data e un orario disponibile.",
			CancelGuide:  "Per annullare usa il box “Annulla prenotazione”: inserisci lo stesso telefono e la stessa data+ora della prenotazione.",
			Fallback:     "Posso aiutarti con info su servizi, orari e contatti. Se vuoi prenotare usa “Prenota adesso” nella pagina.",
		},
		WhatsApp: WhatsAppTemplates{
			ConfirmBooking: "Ciao {name}! Confermiamo l'appuntamento del {date} alle {time} ({service}). A presto!",
			CancelBooking:  "Ciao {name}, dobbiamo annullare l'appuntamento del {date} alle {time} ({service}). Scrivici per un nuovo orario.",
		},
	},
}

// Lookup returns the profile for slug, defaulting to the barber variant.
func Lookup(slug string) Profile {
	if p, ok := profiles[strings.ToLower(strings.TrimSpace(slug))]; ok {
		return p
	}
	return profiles["barber"]
}

// Slugs lists the known business variants.
func Slugs() []string {
	return []string{"barber", "pizzeria", "grooming"}
}
