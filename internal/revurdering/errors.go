package revurdering

import (
	"fmt"
	"strings"

	"supstonad/internal/revurdering/utfall"
	dErrors "supstonad/pkg/domain-errors"
)

// Reasons returned with business rejections. They are part of the API.
const (
	ReasonUgyldigTilstand                 = "ugyldig_tilstand"
	ReasonUtfallStottesIkke               = "utfall_stottes_ikke"
	ReasonUfullstendigVilkarsvurdering    = "ufullstendig_vilkarsvurdering"
	ReasonTilbakekrevingIkkeAvgjort       = "tilbakekreving_ikke_avgjort"
	ReasonIngenTilbakekrevingAAvgjore     = "ingen_tilbakekreving_a_avgjore"
	ReasonSammePerson                     = "attestant_og_saksbehandler_kan_ikke_vaere_samme_person"
	ReasonErTilAttestering                = "revurderingen_er_til_attestering"
	ReasonErIverksatt                     = "revurderingen_er_iverksatt"
	ReasonAlleredeAvsluttet               = "revurdering_er_allerede_avsluttet"
	ReasonApenRevurderingFinnes           = "apen_revurdering_finnes"
	ReasonVilkarDekkerIkkePerioden        = "vilkar_dekker_ikke_perioden"
	ReasonMaVelgeInformasjonSomRevurderes = "ma_velge_informasjon_som_revurderes"
	ReasonBegrunnelseMangler              = "begrunnelse_mangler"
)

// UgyldigTilstandError is returned when the revurdering's current state
// cannot move to the requested one. Til lists every state the operation
// could have produced.
type UgyldigTilstandError struct {
	Fra Tilstand
	Til []Tilstand
}

func UgyldigTilstand(fra Revurdering, til ...Tilstand) *UgyldigTilstandError {
	return &UgyldigTilstandError{Fra: fra.Tilstand(), Til: til}
}

func (e *UgyldigTilstandError) Error() string {
	names := make([]string, len(e.Til))
	for i, t := range e.Til {
		names[i] = string(t)
	}
	return fmt.Sprintf("ugyldig tilstandsovergang fra %s til %s", e.Fra, strings.Join(names, " eller "))
}

func (e *UgyldigTilstandError) Unwrap() error {
	return dErrors.NewReason(dErrors.CodeInvalidState, ReasonUgyldigTilstand, e.Error())
}

func (e *UgyldigTilstandError) ErrorDetails() any {
	return map[string]any{"fra": e.Fra, "til": e.Til}
}

// UtfallStottesIkkeError carries every unsupported-outcome flag at once.
type UtfallStottesIkkeError struct {
	Utfall []utfall.Utfall
}

func (e *UtfallStottesIkkeError) Error() string {
	names := make([]string, len(e.Utfall))
	for i, u := range e.Utfall {
		names[i] = string(u)
	}
	return "utfallet støttes ikke: " + strings.Join(names, ", ")
}

func (e *UtfallStottesIkkeError) Unwrap() error {
	return dErrors.NewReason(dErrors.CodeUnprocessable, ReasonUtfallStottesIkke, e.Error())
}

func (e *UtfallStottesIkkeError) ErrorDetails() any {
	return map[string]any{"utfall": e.Utfall}
}
