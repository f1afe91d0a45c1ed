// Package status is the bidirectional codec between the spreadsheet's legacy
// status tokens and the tokens the admin panel shows. The backend still says
// NUOVA where the panel says RICHIESTA; every other token is identical in the
// two vocabularies and passes through unchanged.
package status

import "strings"

const (
	// UI vocabulary
	Richiesta  = "RICHIESTA"
	Confermata = "CONFERMATA"
	Annullata  = "ANNULLATA"

	// Legacy wire token for Richiesta
	wireNuova = "NUOVA"
)

// Allowed is the set of tokens an admin status update may carry. Both
// vocabularies are accepted on input.
var Allowed = map[string]bool{
	Richiesta:  true,
	wireNuova:  true,
	Confermata: true,
	Annullata:  true,
}

// Canonical trims and upper-cases a raw token.
func Canonical(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ToWire translates a UI token into the backend vocabulary.
func ToWire(raw string) string {
	s := Canonical(raw)
	if s == Richiesta {
		return wireNuova
	}
	return s
}

// ToUI translates a backend token into the UI vocabulary.
func ToUI(raw string) string {
	s := Canonical(raw)
	if s == wireNuova {
		return Richiesta
	}
	return s
}

// IsAllowed reports whether a raw token may be submitted as a status update.
func IsAllowed(raw string) bool {
	return Allowed[Canonical(raw)]
}
