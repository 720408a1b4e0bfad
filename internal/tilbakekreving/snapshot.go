package tilbakekreving

import (
	"time"

	"github.com/google/uuid"

	"supstonad/internal/simulering"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

// Snapshot is the persisted form of any UnderBehandling variant.
type Snapshot struct {
	Variant        Variant                    `json:"variant"`
	ID             uuid.UUID                  `json:"id,omitempty"`
	Opprettet      time.Time                  `json:"opprettet"`
	Feilutbetaling simulering.ManedBelopListe `json:"feilutbetaling,omitempty"`
	Saksbehandler  domain.NavIdent            `json:"saksbehandler,omitempty"`
	Avgjort        time.Time                  `json:"avgjort"`
}

func SnapshotAv(u UnderBehandling) Snapshot {
	switch v := u.(type) {
	case IkkeAvgjort:
		return Snapshot{Variant: v.Variant(), ID: v.ID, Opprettet: v.Opprettet, Feilutbetaling: v.Feilutbetaling}
	case Tilbakekrev:
		s := SnapshotAv(v.IkkeAvgjort)
		s.Variant, s.Saksbehandler, s.Avgjort = v.Variant(), v.Saksbehandler, v.Avgjort
		return s
	case IkkeTilbakekrev:
		s := SnapshotAv(v.IkkeAvgjort)
		s.Variant, s.Saksbehandler, s.Avgjort = v.Variant(), v.Saksbehandler, v.Avgjort
		return s
	}
	return Snapshot{Variant: VariantIkkeBehov}
}

func (s Snapshot) UnderBehandling() (UnderBehandling, error) {
	ikkeAvgjort := IkkeAvgjort{ID: s.ID, Opprettet: s.Opprettet, Feilutbetaling: s.Feilutbetaling}
	switch s.Variant {
	case VariantIkkeBehov:
		return IkkeBehov{}, nil
	case VariantIkkeAvgjort:
		return ikkeAvgjort, nil
	case VariantTilbakekrev:
		return Tilbakekrev{IkkeAvgjort: ikkeAvgjort, Saksbehandler: s.Saksbehandler, Avgjort: s.Avgjort}, nil
	case VariantIkkeTilbakekrev:
		return IkkeTilbakekrev{IkkeAvgjort: ikkeAvgjort, Saksbehandler: s.Saksbehandler, Avgjort: s.Avgjort}, nil
	}
	return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid tilbakekreving snapshot: "+string(s.Variant))
}
