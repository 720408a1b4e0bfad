package revurdering

import (
	"supstonad/internal/avkorting"
	"supstonad/internal/beregning"
	"supstonad/internal/grunnlag"
	"supstonad/internal/opphor"
	"supstonad/internal/vilkar"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

type BeregnetInnvilget struct {
	Felles
	Beregningsdata
}

type BeregnetOpphort struct {
	Felles
	Beregningsdata
}

func (b BeregnetInnvilget) Behandling() Felles                 { return b.Felles }
func (BeregnetInnvilget) Tilstand() Tilstand                   { return TilstandBeregnetInnvilget }
func (BeregnetInnvilget) sealed()                              {}
func (BeregnetInnvilget) beregnet()                            {}
func (b BeregnetInnvilget) Beregningsresultat() Beregningsdata { return b.Beregningsdata }

func (b BeregnetOpphort) Behandling() Felles                 { return b.Felles }
func (BeregnetOpphort) Tilstand() Tilstand                   { return TilstandBeregnetOpphort }
func (BeregnetOpphort) sealed()                              {}
func (BeregnetOpphort) beregnet()                            {}
func (b BeregnetOpphort) Beregningsresultat() Beregningsdata { return b.Beregningsdata }

func (b BeregnetInnvilget) tilbakestill() (Felles, avkorting.Uhandtert) {
	return b.Felles.clone(), b.Avkorting.Uhandtert()
}

func (b BeregnetOpphort) tilbakestill() (Felles, avkorting.Uhandtert) {
	return b.Felles.clone(), b.Avkorting.Uhandtert()
}

func (b BeregnetInnvilget) medFritekst(fritekst string) Revurdering {
	b.Felles = b.Felles.clone()
	b.Fritekst = fritekst
	return b
}

func (b BeregnetOpphort) medFritekst(fritekst string) Revurdering {
	b.Felles = b.Felles.clone()
	b.Fritekst = fritekst
	return b
}

// Beregningsgrunnlag is the input the Beregner port computes from.
type Beregningsgrunnlag struct {
	Periode  domain.Periode
	Vilkar   vilkar.Vilkarsvurderinger
	Grunnlag grunnlag.Grunnlagsdata
}

// GrunnlagForBeregning fails while any vilkår is uavklart or the grunnlag
// does not cover the periode.
func GrunnlagForBeregning(r KanBeregnes) (Beregningsgrunnlag, error) {
	f := r.Behandling()
	if !f.Vilkar.ErFerdigVurdert() {
		return Beregningsgrunnlag{}, dErrors.NewReason(dErrors.CodeValidation, ReasonUfullstendigVilkarsvurdering,
			"alle vilkår må være vurdert før beregning")
	}
	if err := f.Grunnlag.ValiderFor(f.Periode); err != nil {
		return Beregningsgrunnlag{}, err
	}
	return Beregningsgrunnlag{Periode: f.Periode, Vilkar: f.Vilkar, Grunnlag: f.Grunnlag}, nil
}

// Beregn applies a computed beregning. It decides opphør, marks every topic
// vurdert and decides the outstanding avkortingsvarsel.
func Beregn(r KanBeregnes, b *beregning.Beregning, saksbehandler domain.NavIdent) (Beregnet, error) {
	if _, err := GrunnlagForBeregning(r); err != nil {
		return nil, err
	}
	f, uhandtert := r.tilbakestill()
	if b == nil || b.Periode != f.Periode {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "beregning does not match the revurderingsperiode")
	}
	res, err := opphor.Vurder(f.Vilkar, b)
	if err != nil {
		return nil, err
	}
	f.Informasjonsrevurdert = f.Informasjonsrevurdert.MarkerAlle()
	f.Saksbehandler = saksbehandler
	data := Beregningsdata{Beregning: b, Opphor: res, Avkorting: uhandtert.Handter()}
	if res.ErOpphor() {
		return BeregnetOpphort{Felles: f, Beregningsdata: data}, nil
	}
	return BeregnetInnvilget{Felles: f, Beregningsdata: data}, nil
}

