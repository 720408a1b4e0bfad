// Package simulering holds the payment system's answer to "what would be paid
// out", used to detect feilutbetalinger before a vedtak is iverksatt.
package simulering

import (
	"time"

	"supstonad/pkg/domain"
)

type SimulertManed struct {
	Maned             domain.Maned `json:"maned"`
	TidligereUtbetalt int          `json:"tidligereUtbetalt"`
	NyUtbetaling      int          `json:"nyUtbetaling"`
	Feilutbetaling    int          `json:"feilutbetaling"`
	Etterbetaling     int          `json:"etterbetaling"`
}

type Simulering struct {
	Gjelder   domain.Fnr      `json:"gjelder"`
	Opprettet time.Time       `json:"opprettet"`
	Periode   domain.Periode  `json:"periode"`
	Maneder   []SimulertManed `json:"maneder"`
}

// ManedBelop is an amount attributed to a single month.
type ManedBelop struct {
	Maned domain.Maned `json:"maned"`
	Belop int          `json:"belop"`
}

// ManedBelopListe is ordered by month.
type ManedBelopListe []ManedBelop

func (l ManedBelopListe) Sum() int {
	sum := 0
	for _, mb := range l {
		sum += mb.Belop
	}
	return sum
}

// Periode spans the first to the last month in the list.
func (l ManedBelopListe) Periode() (domain.Periode, bool) {
	if len(l) == 0 {
		return domain.Periode{}, false
	}
	return domain.Periode{FraOgMed: l[0].Maned, TilOgMed: l[len(l)-1].Maned}, true
}

func (s *Simulering) HarFeilutbetalinger() bool {
	if s == nil {
		return false
	}
	for _, m := range s.Maneder {
		if m.Feilutbetaling > 0 {
			return true
		}
	}
	return false
}

// FeilutbetalteBelop lists the months with a feilutbetaling.
func (s *Simulering) FeilutbetalteBelop() ManedBelopListe {
	if s == nil {
		return nil
	}
	var out ManedBelopListe
	for _, m := range s.Maneder {
		if m.Feilutbetaling > 0 {
			out = append(out, ManedBelop{Maned: m.Maned, Belop: m.Feilutbetaling})
		}
	}
	return out
}
