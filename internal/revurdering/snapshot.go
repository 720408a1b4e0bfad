package revurdering

import (
	"time"

	"supstonad/internal/avkorting"
	"supstonad/internal/beregning"
	"supstonad/internal/opphor"
	"supstonad/internal/simulering"
	"supstonad/internal/tilbakekreving"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

// Snapshot is the persisted document for any state.
type Snapshot struct {
	Tilstand        Tilstand                        `json:"tilstand"`
	Felles          Felles                          `json:"felles"`
	Beregning       *beregning.Beregning            `json:"beregning,omitempty"`
	Opphor          *opphor.Resultat                `json:"opphor,omitempty"`
	Simulering      *simulering.Simulering          `json:"simulering,omitempty"`
	Avkorting       avkorting.Snapshot              `json:"avkorting"`
	Tilbakekreving  *tilbakekreving.Snapshot        `json:"tilbakekreving,omitempty"`
	Ferdigbehandlet *tilbakekreving.Ferdigbehandlet `json:"ferdigbehandlet,omitempty"`
	Sendt           time.Time                       `json:"sendt"`
	Utbetaling      domain.UtbetalingID             `json:"utbetaling"`
	Vedtaksbrev     domain.DokumentID               `json:"vedtaksbrev"`
	Iverksatt       time.Time                       `json:"iverksatt"`
	Avsluttet       *AvsluttetSnapshot              `json:"avsluttet,omitempty"`
}

type AvsluttetSnapshot struct {
	ForrigeTilstand Tilstand        `json:"forrigeTilstand"`
	Begrunnelse     string          `json:"begrunnelse"`
	Brevvalg        Brevvalg        `json:"brevvalg"`
	Tidspunkt       time.Time       `json:"tidspunkt"`
	AvsluttetAv     domain.NavIdent `json:"avsluttetAv"`
}

func TilSnapshot(r Revurdering) Snapshot {
	s := Snapshot{Tilstand: r.Tilstand(), Felles: r.Behandling().clone()}
	switch v := r.(type) {
	case Opprettet:
		s.Avkorting = avkorting.SnapshotAvUhandtert(v.Avkorting)
	case Beregnet:
		data := v.Beregningsresultat()
		s.Beregning, s.Opphor = data.Beregning, &data.Opphor
		s.Avkorting = avkorting.SnapshotAvDelvis(data.Avkorting)
	case KanLageBrevutkast:
		data := v.Simuleringsresultat()
		tk := tilbakekreving.SnapshotAv(data.Tilbakekreving)
		s.Beregning, s.Opphor, s.Simulering = data.Beregning, &data.Opphor, data.Simulering
		s.Avkorting = avkorting.SnapshotAvHandtert(data.Avkorting)
		s.Tilbakekreving = &tk
		if t, ok := r.(TilAttestering); ok {
			s.Sendt = t.Sendt
		}
	case Iverksatt:
		s.Beregning, s.Opphor, s.Simulering = v.Beregning, &v.Opphor, v.Simulering
		s.Avkorting = avkorting.SnapshotAvIverksatt(v.Avkorting)
		s.Ferdigbehandlet = &v.Tilbakekreving
		s.Utbetaling, s.Vedtaksbrev, s.Iverksatt = v.Utbetaling, v.Vedtaksbrev, v.Tidspunkt
	case Avsluttet:
		s = TilSnapshot(v.Forrige)
		s.Avsluttet = &AvsluttetSnapshot{
			ForrigeTilstand: s.Tilstand,
			Begrunnelse:     v.Begrunnelse,
			Brevvalg:        v.Brevvalg,
			Tidspunkt:       v.Tidspunkt,
			AvsluttetAv:     v.AvsluttetAv,
		}
		s.Tilstand = TilstandAvsluttet
	}
	return s
}

func ugyldigSnapshot(s Snapshot, hva string) error {
	return dErrors.New(dErrors.CodeInvariantViolation, "invalid revurdering snapshot in "+string(s.Tilstand)+": "+hva)
}

func FraSnapshot(s Snapshot) (Revurdering, error) {
	f := s.Felles.clone()
	switch s.Tilstand {
	case TilstandOpprettet:
		uhandtert, err := s.Avkorting.Uhandtert()
		if err != nil {
			return nil, err
		}
		return Opprettet{Felles: f, Avkorting: uhandtert}, nil

	case TilstandBeregnetInnvilget, TilstandBeregnetOpphort:
		if s.Beregning == nil || s.Opphor == nil {
			return nil, ugyldigSnapshot(s, "beregning mangler")
		}
		delvis, err := s.Avkorting.DelvisHandtert()
		if err != nil {
			return nil, err
		}
		data := Beregningsdata{Beregning: s.Beregning, Opphor: *s.Opphor, Avkorting: delvis}
		if s.Tilstand == TilstandBeregnetOpphort {
			return BeregnetOpphort{Felles: f, Beregningsdata: data}, nil
		}
		return BeregnetInnvilget{Felles: f, Beregningsdata: data}, nil

	case TilstandSimulertInnvilget, TilstandSimulertOpphort,
		TilstandTilAttesteringInnvilget, TilstandTilAttesteringOpphort,
		TilstandUnderkjentInnvilget, TilstandUnderkjentOpphort:
		data, err := simuleringsdataFra(s)
		if err != nil {
			return nil, err
		}
		switch s.Tilstand {
		case TilstandSimulertInnvilget:
			return SimulertInnvilget{Felles: f, Simuleringsdata: data}, nil
		case TilstandSimulertOpphort:
			return SimulertOpphort{Felles: f, Simuleringsdata: data}, nil
		case TilstandTilAttesteringInnvilget, TilstandTilAttesteringOpphort:
			return TilAttestering{Felles: f, Simuleringsdata: data, Sendt: s.Sendt}, nil
		default:
			return Underkjent{Felles: f, Simuleringsdata: data}, nil
		}

	case TilstandIverksattInnvilget, TilstandIverksattOpphort:
		if s.Beregning == nil || s.Opphor == nil || s.Ferdigbehandlet == nil {
			return nil, ugyldigSnapshot(s, "iverksatt resultat mangler")
		}
		avk, err := s.Avkorting.Iverksatt()
		if err != nil {
			return nil, err
		}
		return Iverksatt{
			Felles:         f,
			Beregning:      s.Beregning,
			Opphor:         *s.Opphor,
			Simulering:     s.Simulering,
			Avkorting:      avk,
			Tilbakekreving: *s.Ferdigbehandlet,
			Utbetaling:     s.Utbetaling,
			Vedtaksbrev:    s.Vedtaksbrev,
			Tidspunkt:      s.Iverksatt,
		}, nil

	case TilstandAvsluttet:
		if s.Avsluttet == nil || s.Avsluttet.ForrigeTilstand == TilstandAvsluttet {
			return nil, ugyldigSnapshot(s, "forrige tilstand mangler")
		}
		forrigeSnapshot := s
		forrigeSnapshot.Tilstand = s.Avsluttet.ForrigeTilstand
		forrigeSnapshot.Avsluttet = nil
		forrige, err := FraSnapshot(forrigeSnapshot)
		if err != nil {
			return nil, err
		}
		return Avsluttet{
			Forrige:     forrige,
			Begrunnelse: s.Avsluttet.Begrunnelse,
			Brevvalg:    s.Avsluttet.Brevvalg,
			Tidspunkt:   s.Avsluttet.Tidspunkt,
			AvsluttetAv: s.Avsluttet.AvsluttetAv,
		}, nil
	}
	return nil, ugyldigSnapshot(s, "ukjent tilstand")
}

func simuleringsdataFra(s Snapshot) (Simuleringsdata, error) {
	if s.Beregning == nil || s.Opphor == nil || s.Simulering == nil || s.Tilbakekreving == nil {
		return Simuleringsdata{}, ugyldigSnapshot(s, "simuleringsresultat mangler")
	}
	handtert, err := s.Avkorting.Handtert()
	if err != nil {
		return Simuleringsdata{}, err
	}
	tk, err := s.Tilbakekreving.UnderBehandling()
	if err != nil {
		return Simuleringsdata{}, err
	}
	return Simuleringsdata{
		Beregning:      s.Beregning,
		Opphor:         *s.Opphor,
		Simulering:     s.Simulering,
		Avkorting:      handtert,
		Tilbakekreving: tk,
	}, nil
}
