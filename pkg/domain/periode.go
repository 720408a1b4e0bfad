package domain

import (
	"fmt"
	"time"

	dErrors "supstonad/pkg/domain-errors"
)

const manedLayout = "2006-01"

// Maned is a calendar month. The zero value is not a valid month.
type Maned struct {
	Ar  int
	Mnd time.Month
}

func NyManed(ar int, mnd time.Month) Maned {
	return Maned{Ar: ar, Mnd: mnd}
}

// ManedFra truncates t to its calendar month in UTC.
func ManedFra(t time.Time) Maned {
	t = t.UTC()
	return Maned{Ar: t.Year(), Mnd: t.Month()}
}

func ParseManed(s string) (Maned, error) {
	t, err := time.Parse(manedLayout, s)
	if err != nil {
		return Maned{}, dErrors.New(dErrors.CodeInvalidInput, "invalid month, expected YYYY-MM")
	}
	return ManedFra(t), nil
}

func (m Maned) IsZero() bool { return m.Ar == 0 && m.Mnd == 0 }

// ForsteDag returns the first day of the month at midnight UTC.
func (m Maned) ForsteDag() time.Time {
	return time.Date(m.Ar, m.Mnd, 1, 0, 0, 0, 0, time.UTC)
}

func (m Maned) PlussManeder(n int) Maned {
	return ManedFra(m.ForsteDag().AddDate(0, n, 0))
}

// Compare returns -1, 0 or 1.
func (m Maned) Compare(o Maned) int {
	switch {
	case m.Ar < o.Ar, m.Ar == o.Ar && m.Mnd < o.Mnd:
		return -1
	case m == o:
		return 0
	default:
		return 1
	}
}

func (m Maned) Before(o Maned) bool { return m.Compare(o) < 0 }
func (m Maned) After(o Maned) bool  { return m.Compare(o) > 0 }

func (m Maned) String() string {
	return fmt.Sprintf("%04d-%02d", m.Ar, int(m.Mnd))
}

func (m Maned) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Maned) UnmarshalText(b []byte) error {
	parsed, err := ParseManed(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Periode is a contiguous, inclusive range of months.
type Periode struct {
	FraOgMed Maned `json:"fraOgMed"`
	TilOgMed Maned `json:"tilOgMed"`
}

// NyPeriode validates that fraOgMed is not after tilOgMed.
func NyPeriode(fraOgMed, tilOgMed Maned) (Periode, error) {
	if fraOgMed.IsZero() || tilOgMed.IsZero() {
		return Periode{}, dErrors.New(dErrors.CodeInvalidInput, "periode requires fraOgMed and tilOgMed")
	}
	if fraOgMed.After(tilOgMed) {
		return Periode{}, dErrors.New(dErrors.CodeInvalidInput, "fraOgMed must not be after tilOgMed")
	}
	return Periode{FraOgMed: fraOgMed, TilOgMed: tilOgMed}, nil
}

// MustPeriode panics on invalid input; intended for tests and constants.
func MustPeriode(fraOgMed, tilOgMed Maned) Periode {
	p, err := NyPeriode(fraOgMed, tilOgMed)
	if err != nil {
		panic(err)
	}
	return p
}

// ManedsPeriode is a single-month periode.
func ManedsPeriode(m Maned) Periode {
	return Periode{FraOgMed: m, TilOgMed: m}
}

func (p Periode) Maneder() []Maned {
	if p.FraOgMed.IsZero() || p.FraOgMed.After(p.TilOgMed) {
		return nil
	}
	var out []Maned
	for m := p.FraOgMed; !m.After(p.TilOgMed); m = m.PlussManeder(1) {
		out = append(out, m)
	}
	return out
}

func (p Periode) AntallManeder() int {
	return len(p.Maneder())
}

func (p Periode) Inneholder(m Maned) bool {
	return !m.Before(p.FraOgMed) && !m.After(p.TilOgMed)
}

func (p Periode) InneholderPeriode(o Periode) bool {
	return p.Inneholder(o.FraOgMed) && p.Inneholder(o.TilOgMed)
}

func (p Periode) Overlapper(o Periode) bool {
	return !p.TilOgMed.Before(o.FraOgMed) && !o.TilOgMed.Before(p.FraOgMed)
}

func (p Periode) String() string {
	return p.FraOgMed.String() + "/" + p.TilOgMed.String()
}
