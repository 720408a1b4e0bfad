package domain

import (
	"strings"

	dErrors "supstonad/pkg/domain-errors"
)

// Fnr is an 11-digit Norwegian national identity number.
type Fnr string

func ParseFnr(s string) (Fnr, error) {
	s = strings.TrimSpace(s)
	if len(s) != 11 || !allDigits(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "fnr must be 11 digits")
	}
	return Fnr(s), nil
}

func (f Fnr) String() string { return string(f) }

// NavIdent identifies a case worker: one letter followed by six digits.
type NavIdent string

func ParseNavIdent(s string) (NavIdent, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] < 'A' || s[0] > 'Z' || !allDigits(s[1:]) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid nav ident")
	}
	return NavIdent(s), nil
}

func (n NavIdent) String() string { return string(n) }
func (n NavIdent) IsZero() bool   { return n == "" }

// AktorID is the person registry's internal identity for a case holder.
type AktorID string

// OppgaveID references a task in the external oppgave system.
type OppgaveID string

// Saksnummer is the human-facing case number.
type Saksnummer int64

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
