package handler

import (
	"strings"

	"supstonad/internal/grunnlag"
	"supstonad/internal/revurdering"
	"supstonad/internal/tilbakekreving"
	"supstonad/internal/vilkar"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

const (
	maxBegrunnelseLength = 4000
	maxFritekstLength    = 20000
	maxPerioder          = 120
)

// PeriodeRequest is a closed range of months written as YYYY-MM.
type PeriodeRequest struct {
	FraOgMed string `json:"fraOgMed"`
	TilOgMed string `json:"tilOgMed"`
}

func (p PeriodeRequest) parse(field string) (domain.Periode, error) {
	fra, err := domain.ParseManed(strings.TrimSpace(p.FraOgMed))
	if err != nil {
		return domain.Periode{}, dErrors.New(dErrors.CodeValidation, field+".fraOgMed must be YYYY-MM")
	}
	til, err := domain.ParseManed(strings.TrimSpace(p.TilOgMed))
	if err != nil {
		return domain.Periode{}, dErrors.New(dErrors.CodeValidation, field+".tilOgMed must be YYYY-MM")
	}
	return domain.NyPeriode(fra, til)
}

// OpprettRequest is the body of POST /saker/{sakID}/revurderinger.
type OpprettRequest struct {
	Periode                  PeriodeRequest `json:"periode"`
	Arsak                    string         `json:"arsak"`
	Begrunnelse              string         `json:"begrunnelse"`
	InformasjonSomRevurderes []string       `json:"informasjonSomRevurderes"`

	periode     domain.Periode
	arsak       revurdering.Revurderingsarsak
	informasjon []revurdering.Tema
}

func (r *OpprettRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	periode, arsak, tema, err := validerRevurdering(r.Periode, r.Arsak, r.Begrunnelse, r.InformasjonSomRevurderes)
	if err != nil {
		return err
	}
	r.periode, r.arsak, r.informasjon = periode, arsak, tema
	return nil
}

// OppdaterRequest is the body of PUT /revurderinger/{id}.
type OppdaterRequest struct {
	Periode                  PeriodeRequest `json:"periode"`
	Arsak                    string         `json:"arsak"`
	Begrunnelse              string         `json:"begrunnelse"`
	InformasjonSomRevurderes []string       `json:"informasjonSomRevurderes"`

	periode     domain.Periode
	arsak       revurdering.Revurderingsarsak
	informasjon []revurdering.Tema
}

func (r *OppdaterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	periode, arsak, tema, err := validerRevurdering(r.Periode, r.Arsak, r.Begrunnelse, r.InformasjonSomRevurderes)
	if err != nil {
		return err
	}
	r.periode, r.arsak, r.informasjon = periode, arsak, tema
	return nil
}

func validerRevurdering(p PeriodeRequest, arsak, begrunnelse string, informasjon []string) (domain.Periode, revurdering.Revurderingsarsak, []revurdering.Tema, error) {
	if len(begrunnelse) > maxBegrunnelseLength {
		return domain.Periode{}, revurdering.Revurderingsarsak{}, nil,
			dErrors.New(dErrors.CodeValidation, "begrunnelse is too long")
	}
	periode, err := p.parse("periode")
	if err != nil {
		return domain.Periode{}, revurdering.Revurderingsarsak{}, nil, err
	}
	a, err := revurdering.NyRevurderingsarsak(strings.TrimSpace(arsak), begrunnelse)
	if err != nil {
		return domain.Periode{}, revurdering.Revurderingsarsak{}, nil, err
	}
	tema := make([]revurdering.Tema, 0, len(informasjon))
	for _, s := range informasjon {
		t, err := revurdering.ParseTema(strings.TrimSpace(s))
		if err != nil {
			return domain.Periode{}, revurdering.Revurderingsarsak{}, nil, err
		}
		tema = append(tema, t)
	}
	return periode, a, tema, nil
}

type VurderingsperiodeRequest struct {
	Periode     PeriodeRequest `json:"periode"`
	Resultat    string         `json:"resultat"`
	Begrunnelse string         `json:"begrunnelse,omitempty"`
}

// VilkarRequest is the body of PUT /revurderinger/{id}/vilkar/{type}. The
// type comes from the path.
type VilkarRequest struct {
	Vurderingsperioder []VurderingsperiodeRequest `json:"vurderingsperioder"`

	perioder []vilkar.Vurderingsperiode
}

func (r *VilkarRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Vurderingsperioder) == 0 {
		return dErrors.New(dErrors.CodeValidation, "vurderingsperioder is required")
	}
	if len(r.Vurderingsperioder) > maxPerioder {
		return dErrors.New(dErrors.CodeValidation, "too many vurderingsperioder")
	}
	r.perioder = make([]vilkar.Vurderingsperiode, 0, len(r.Vurderingsperioder))
	for _, vp := range r.Vurderingsperioder {
		periode, err := vp.Periode.parse("vurderingsperioder.periode")
		if err != nil {
			return err
		}
		resultat, err := vilkar.ParseResultat(strings.TrimSpace(vp.Resultat))
		if err != nil {
			return err
		}
		r.perioder = append(r.perioder, vilkar.Vurderingsperiode{
			Periode:     periode,
			Resultat:    resultat,
			Begrunnelse: strings.TrimSpace(vp.Begrunnelse),
		})
	}
	return nil
}

// Vilkar builds the vilkår of type t from the validated perioder.
func (r *VilkarRequest) Vilkar(t vilkar.Type) (vilkar.Vilkar, error) {
	return vilkar.Ny(t, r.perioder)
}

type FradragRequest struct {
	Type        string         `json:"type"`
	Manedsbelop int            `json:"manedsbelop"`
	Periode     PeriodeRequest `json:"periode"`
	Tilhorer    string         `json:"tilhorer"`
	Beskrivelse string         `json:"beskrivelse,omitempty"`
	Utenlandsk  bool           `json:"utenlandsk,omitempty"`
}

// FradragslisteRequest is the body of PUT /revurderinger/{id}/fradrag. It
// replaces every fradrag.
type FradragslisteRequest struct {
	Fradrag []FradragRequest `json:"fradrag"`

	fradrag []grunnlag.Fradrag
}

func (r *FradragslisteRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Fradrag) > maxPerioder {
		return dErrors.New(dErrors.CodeValidation, "too many fradrag")
	}
	r.fradrag = make([]grunnlag.Fradrag, 0, len(r.Fradrag))
	for _, f := range r.Fradrag {
		periode, err := f.Periode.parse("fradrag.periode")
		if err != nil {
			return err
		}
		fradrag, err := grunnlag.NyttFradrag(
			grunnlag.Fradragstype(strings.TrimSpace(f.Type)),
			f.Manedsbelop,
			periode,
			grunnlag.Tilhorer(strings.TrimSpace(f.Tilhorer)),
		)
		if err != nil {
			return err
		}
		fradrag.Beskrivelse = strings.TrimSpace(f.Beskrivelse)
		fradrag.Utenlandsk = f.Utenlandsk
		r.fradrag = append(r.fradrag, fradrag)
	}
	return nil
}

type BosituasjonRequest struct {
	Type    string         `json:"type"`
	Periode PeriodeRequest `json:"periode"`
}

// BosituasjonslisteRequest is the body of PUT /revurderinger/{id}/bosituasjon.
type BosituasjonslisteRequest struct {
	Bosituasjon []BosituasjonRequest `json:"bosituasjon"`

	bosituasjon []grunnlag.Bosituasjon
}

func (r *BosituasjonslisteRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Bosituasjon) == 0 {
		return dErrors.New(dErrors.CodeValidation, "bosituasjon is required")
	}
	if len(r.Bosituasjon) > maxPerioder {
		return dErrors.New(dErrors.CodeValidation, "too many bosituasjoner")
	}
	r.bosituasjon = make([]grunnlag.Bosituasjon, 0, len(r.Bosituasjon))
	for _, b := range r.Bosituasjon {
		periode, err := b.Periode.parse("bosituasjon.periode")
		if err != nil {
			return err
		}
		bosituasjon, err := grunnlag.NyBosituasjon(grunnlag.Bosituasjonstype(strings.TrimSpace(b.Type)), periode)
		if err != nil {
			return err
		}
		r.bosituasjon = append(r.bosituasjon, bosituasjon)
	}
	return nil
}

type FritekstRequest struct {
	Fritekst string `json:"fritekst"`
}

func (r *FritekstRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Fritekst) > maxFritekstLength {
		return dErrors.New(dErrors.CodeValidation, "fritekst is too long")
	}
	return nil
}

type BeregnOgSimulerRequest struct {
	Begrunnelse string `json:"begrunnelse"`
}

func (r *BeregnOgSimulerRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Begrunnelse = strings.TrimSpace(r.Begrunnelse)
	if len(r.Begrunnelse) > maxBegrunnelseLength {
		return dErrors.New(dErrors.CodeValidation, "begrunnelse is too long")
	}
	return nil
}

type TilbakekrevingRequest struct {
	Avgjorelse string `json:"avgjorelse"`

	avgjorelse tilbakekreving.Avgjorelse
}

func (r *TilbakekrevingRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	a, err := tilbakekreving.ParseAvgjorelse(strings.TrimSpace(r.Avgjorelse))
	if err != nil {
		return err
	}
	r.avgjorelse = a
	return nil
}

type UnderkjennRequest struct {
	Grunn     string `json:"grunn"`
	Kommentar string `json:"kommentar"`

	grunn revurdering.UnderkjennGrunn
}

func (r *UnderkjennRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	grunn, err := revurdering.ParseUnderkjennGrunn(strings.TrimSpace(r.Grunn))
	if err != nil {
		return err
	}
	r.Kommentar = strings.TrimSpace(r.Kommentar)
	if r.Kommentar == "" {
		return dErrors.New(dErrors.CodeValidation, "kommentar is required")
	}
	if len(r.Kommentar) > maxBegrunnelseLength {
		return dErrors.New(dErrors.CodeValidation, "kommentar is too long")
	}
	r.grunn = grunn
	return nil
}

type BrevvalgRequest struct {
	Type     string `json:"type"`
	Fritekst string `json:"fritekst,omitempty"`
}

type AvsluttRequest struct {
	Begrunnelse string          `json:"begrunnelse"`
	Brevvalg    BrevvalgRequest `json:"brevvalg"`

	brevvalg revurdering.Brevvalg
}

func (r *AvsluttRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Begrunnelse = strings.TrimSpace(r.Begrunnelse)
	if r.Begrunnelse == "" {
		return dErrors.NewReason(dErrors.CodeValidation, revurdering.ReasonBegrunnelseMangler, "begrunnelse is required")
	}
	if len(r.Begrunnelse) > maxBegrunnelseLength {
		return dErrors.New(dErrors.CodeValidation, "begrunnelse is too long")
	}
	switch t := revurdering.Brevvalgtype(strings.TrimSpace(r.Brevvalg.Type)); t {
	case revurdering.SkalIkkeSendeBrev:
		r.brevvalg = revurdering.Brevvalg{Type: t}
	case revurdering.SkalSendeInformasjonsbrev:
		if len(r.Brevvalg.Fritekst) > maxFritekstLength {
			return dErrors.New(dErrors.CodeValidation, "brevvalg.fritekst is too long")
		}
		r.brevvalg = revurdering.Brevvalg{Type: t, Fritekst: strings.TrimSpace(r.Brevvalg.Fritekst)}
	default:
		return dErrors.New(dErrors.CodeValidation, "brevvalg.type must be SKAL_IKKE_SENDE_BREV or SKAL_SENDE_INFORMASJONSBREV")
	}
	return nil
}
