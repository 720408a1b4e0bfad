package revurdering

import (
	"strings"
	"time"

	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

type Brevvalgtype string

const (
	SkalIkkeSendeBrev         Brevvalgtype = "SKAL_IKKE_SENDE_BREV"
	SkalSendeInformasjonsbrev Brevvalgtype = "SKAL_SENDE_INFORMASJONSBREV"
)

// Brevvalg is whether the bruker is told that the revurdering was avsluttet.
type Brevvalg struct {
	Type     Brevvalgtype `json:"type"`
	Fritekst string       `json:"fritekst,omitempty"`
}

func (b Brevvalg) SkalSendeBrev() bool { return b.Type == SkalSendeInformasjonsbrev }

// Avsluttet is terminal. It keeps the state it was avsluttet from.
type Avsluttet struct {
	Forrige     Revurdering
	Begrunnelse string
	Brevvalg    Brevvalg
	Tidspunkt   time.Time
	AvsluttetAv domain.NavIdent
}

func (a Avsluttet) Behandling() Felles { return a.Forrige.Behandling() }
func (Avsluttet) Tilstand() Tilstand   { return TilstandAvsluttet }
func (Avsluttet) sealed()              {}

// KanIkkeAvslutte explains why r cannot be avsluttet, or returns nil.
func KanIkkeAvslutte(r Revurdering) error {
	switch r.(type) {
	case TilAttestering:
		return dErrors.NewReason(dErrors.CodeInvalidState, ReasonErTilAttestering, "revurderingen er til attestering")
	case Iverksatt:
		return dErrors.NewReason(dErrors.CodeInvalidState, ReasonErIverksatt, "revurderingen er iverksatt")
	case Avsluttet:
		return dErrors.NewReason(dErrors.CodeInvalidState, ReasonAlleredeAvsluttet, "revurderingen er allerede avsluttet")
	}
	return nil
}

func Avslutt(r Revurdering, begrunnelse string, brevvalg Brevvalg, avsluttetAv domain.NavIdent, now time.Time) (Avsluttet, error) {
	if err := KanIkkeAvslutte(r); err != nil {
		return Avsluttet{}, err
	}
	if strings.TrimSpace(begrunnelse) == "" {
		return Avsluttet{}, dErrors.NewReason(dErrors.CodeValidation, ReasonBegrunnelseMangler, "begrunnelse for avslutning mangler")
	}
	switch brevvalg.Type {
	case "":
		brevvalg.Type = SkalIkkeSendeBrev
	case SkalIkkeSendeBrev, SkalSendeInformasjonsbrev:
	default:
		return Avsluttet{}, dErrors.New(dErrors.CodeInvalidInput, "ukjent brevvalg: "+string(brevvalg.Type))
	}
	return Avsluttet{
		Forrige:     r,
		Begrunnelse: strings.TrimSpace(begrunnelse),
		Brevvalg:    brevvalg,
		Tidspunkt:   now,
		AvsluttetAv: avsluttetAv,
	}, nil
}
