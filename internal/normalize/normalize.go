// Package normalize canonicalizes the free-form strings customers type into
// booking forms. Every function is pure and total: unrecognized input is
// returned unchanged so that validation downstream produces the error message.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	isoDateRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	italianRe    = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	timeRe       = regexp.MustCompile(`^\d{2}:\d{2}$`)
	dottedTimeRe = regexp.MustCompile(`^(\d{1,2})[.,](\d{2})$`)
	bareHourRe   = regexp.MustCompile(`^\d{1,2}$`)
	phoneJunkRe  = regexp.MustCompile(`[^\d+]`)
	isoPartsRe   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// Date converts DD/MM/YYYY into YYYY-MM-DD. Already-ISO input passes through.
func Date(v string) string {
	s := strings.TrimSpace(v)
	if isoDateRe.MatchString(s) {
		return s
	}
	if m := italianRe.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
	}
	return s
}

// Time converts "12.30", "12,30" and bare "12" into "12:30" / "12:00".
func Time(v string) string {
	s := strings.TrimSpace(v)
	if timeRe.MatchString(s) {
		return s
	}
	if m := dottedTimeRe.FindStringSubmatch(s); m != nil {
		return padHour(m[1]) + ":" + m[2]
	}
	if bareHourRe.MatchString(s) {
		return padHour(s) + ":00"
	}
	return s
}

func padHour(h string) string {
	if len(h) == 1 {
		return "0" + h
	}
	return h
}

// Phone strips everything except digits and a leading +, converting the
// international 00 prefix to +.
func Phone(v string) string {
	s := phoneJunkRe.ReplaceAllString(strings.TrimSpace(v), "")
	if strings.HasPrefix(s, "00") {
		s = "+" + s[2:]
	}
	if len(s) > 1 {
		// Only the leading + survives; "+39+333" style paste accidents collapse.
		s = string(s[0]) + strings.ReplaceAll(s[1:], "+", "")
	}
	return s
}

// ItalianDate renders an ISO date back in DD/MM/YYYY for user-facing text.
func ItalianDate(iso string) string {
	s := strings.TrimSpace(iso)
	m := isoPartsRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	return fmt.Sprintf("%s/%s/%s", m[3], m[2], m[1])
}

// IsISODate reports whether s is a YYYY-MM-DD string.
func IsISODate(s string) bool {
	return isoDateRe.MatchString(strings.TrimSpace(s))
}

// IsTime reports whether s is an HH:mm string.
func IsTime(s string) bool {
	return timeRe.MatchString(strings.TrimSpace(s))
}
