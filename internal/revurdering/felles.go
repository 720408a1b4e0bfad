// Package revurdering models the lifecycle of a reassessment of a granted
// supplerende stønad.
//
// Each lifecycle state is its own type. A state only offers the transitions
// that are legal from it, expressed through the capability interfaces
// KanOppdateres, KanBeregnes, Beregnet, KanSendesTilAttestering and so on.
// Transitions never mutate their receiver; they return the next state.
//
//	Opprettet -> Beregnet{Innvilget|Opphort} -> Simulert{Innvilget|Opphort}
//	          -> TilAttestering -> Iverksatt
//	                            -> Underkjent -> (beregn again | TilAttestering)
//
// Avsluttet is reachable from every open state except TilAttestering.
package revurdering

import (
	"slices"
	"strings"
	"time"

	"supstonad/internal/beregning"
	"supstonad/internal/grunnlag"
	"supstonad/internal/vilkar"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

// Arsak is why the revurdering was started.
type Arsak string

const (
	ArsakMeldingFraBruker              Arsak = "MELDING_FRA_BRUKER"
	ArsakInformasjonFraKontrollsamtale Arsak = "INFORMASJON_FRA_KONTROLLSAMTALE"
	ArsakDodsfall                      Arsak = "DODSFALL"
	ArsakAndreKilder                   Arsak = "ANDRE_KILDER"
	ArsakManglendeKontrollerklaering   Arsak = "MANGLENDE_KONTROLLERKLAERING"
	ArsakMottattKontrollerklaering     Arsak = "MOTTATT_KONTROLLERKLAERING"
)

var gyldigeArsaker = []Arsak{
	ArsakMeldingFraBruker,
	ArsakInformasjonFraKontrollsamtale,
	ArsakDodsfall,
	ArsakAndreKilder,
	ArsakManglendeKontrollerklaering,
	ArsakMottattKontrollerklaering,
}

type Revurderingsarsak struct {
	Arsak       Arsak  `json:"arsak"`
	Begrunnelse string `json:"begrunnelse"`
}

func NyRevurderingsarsak(arsak, begrunnelse string) (Revurderingsarsak, error) {
	a := Arsak(arsak)
	if !slices.Contains(gyldigeArsaker, a) {
		return Revurderingsarsak{}, dErrors.New(dErrors.CodeInvalidInput, "ukjent årsak: "+arsak)
	}
	if strings.TrimSpace(begrunnelse) == "" {
		return Revurderingsarsak{}, dErrors.NewReason(dErrors.CodeValidation, ReasonBegrunnelseMangler, "begrunnelse for revurdering mangler")
	}
	return Revurderingsarsak{Arsak: a, Begrunnelse: strings.TrimSpace(begrunnelse)}, nil
}

// Tema is a topic on the "what is being revurdert" checklist.
type Tema string

const (
	TemaUforhet             Tema = "UFORHET"
	TemaFlyktning           Tema = "FLYKTNING"
	TemaFormue              Tema = "FORMUE"
	TemaUtenlandsopphold    Tema = "UTENLANDSOPPHOLD"
	TemaInstitusjonsopphold Tema = "INSTITUSJONSOPPHOLD"
	TemaInntekt             Tema = "INNTEKT"
	TemaBosituasjon         Tema = "BOSITUASJON"
)

var temaForVilkar = map[vilkar.Type]Tema{
	vilkar.Uforhet:             TemaUforhet,
	vilkar.Flyktning:           TemaFlyktning,
	vilkar.Formue:              TemaFormue,
	vilkar.Utenlandsopphold:    TemaUtenlandsopphold,
	vilkar.Institusjonsopphold: TemaInstitusjonsopphold,
}

func ParseTema(s string) (Tema, error) {
	switch t := Tema(s); t {
	case TemaUforhet, TemaFlyktning, TemaFormue, TemaUtenlandsopphold,
		TemaInstitusjonsopphold, TemaInntekt, TemaBosituasjon:
		return t, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "ukjent tema: "+s)
}

type Vurderingstatus string

const (
	IkkeVurdert Vurderingstatus = "IKKE_VURDERT"
	Vurdert     Vurderingstatus = "VURDERT"
)

// Informasjonsrevurdert tracks which selected topics the saksbehandler has
// gone through. Values are copied on every change.
type Informasjonsrevurdert map[Tema]Vurderingstatus

func NyInformasjonsrevurdert(temaer []Tema) (Informasjonsrevurdert, error) {
	if len(temaer) == 0 {
		return nil, dErrors.NewReason(dErrors.CodeValidation, ReasonMaVelgeInformasjonSomRevurderes,
			"minst ett tema må revurderes")
	}
	out := make(Informasjonsrevurdert, len(temaer))
	for _, t := range temaer {
		out[t] = IkkeVurdert
	}
	return out, nil
}

// Marker sets t to Vurdert when t was selected.
func (i Informasjonsrevurdert) Marker(t Tema) Informasjonsrevurdert {
	out := i.clone()
	if _, ok := out[t]; ok {
		out[t] = Vurdert
	}
	return out
}

func (i Informasjonsrevurdert) MarkerAlle() Informasjonsrevurdert {
	out := i.clone()
	for t := range out {
		out[t] = Vurdert
	}
	return out
}

func (i Informasjonsrevurdert) ErAlleVurdert() bool {
	for _, s := range i {
		if s != Vurdert {
			return false
		}
	}
	return true
}

func (i Informasjonsrevurdert) clone() Informasjonsrevurdert {
	out := make(Informasjonsrevurdert, len(i))
	for t, s := range i {
		out[t] = s
	}
	return out
}

// UnderkjennGrunn is the attestant's reason for sending a revurdering back.
type UnderkjennGrunn string

const (
	GrunnInngangsvilkareneErFeilvurdert UnderkjennGrunn = "INNGANGSVILKAARENE_ER_FEILVURDERT"
	GrunnBeregningenErFeil              UnderkjennGrunn = "BEREGNINGEN_ER_FEIL"
	GrunnDokumentasjonMangler           UnderkjennGrunn = "DOKUMENTASJON_MANGLER"
	GrunnVedtaksbrevetErFeil            UnderkjennGrunn = "VEDTAKSBREVET_ER_FEIL"
	GrunnAndreForhold                   UnderkjennGrunn = "ANDRE_FORHOLD"
)

func ParseUnderkjennGrunn(s string) (UnderkjennGrunn, error) {
	switch g := UnderkjennGrunn(s); g {
	case GrunnInngangsvilkareneErFeilvurdert, GrunnBeregningenErFeil, GrunnDokumentasjonMangler,
		GrunnVedtaksbrevetErFeil, GrunnAndreForhold:
		return g, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "ukjent grunn: "+s)
}

// Attestering is one entry in the attestation history.
type Attestering struct {
	Attestant domain.NavIdent `json:"attestant"`
	Tidspunkt time.Time       `json:"tidspunkt"`
	Iverksatt bool            `json:"iverksatt"`
	Grunn     UnderkjennGrunn `json:"grunn,omitempty"`
	Kommentar string          `json:"kommentar,omitempty"`
}

// Felles holds what every state carries.
type Felles struct {
	ID                    domain.RevurderingID        `json:"id"`
	SakID                 domain.SakID                `json:"sakId"`
	Saksnummer            domain.Saksnummer           `json:"saksnummer"`
	Fnr                   domain.Fnr                  `json:"fnr"`
	Opprettet             time.Time                   `json:"opprettet"`
	Periode               domain.Periode              `json:"periode"`
	TilRevurdering        domain.VedtakID             `json:"tilRevurdering"`
	Saksbehandler         domain.NavIdent             `json:"saksbehandler"`
	Arsak                 Revurderingsarsak           `json:"arsak"`
	Informasjonsrevurdert Informasjonsrevurdert       `json:"informasjonSomRevurderes"`
	Vilkar                vilkar.Vilkarsvurderinger   `json:"vilkar"`
	Grunnlag              grunnlag.Grunnlagsdata      `json:"grunnlag"`
	Gjeldende             []beregning.Manedsberegning `json:"gjeldende"`
	Fritekst              string                      `json:"fritekst,omitempty"`
	Oppgave               domain.OppgaveID            `json:"oppgave,omitempty"`
	Attesteringer         []Attestering               `json:"attesteringer,omitempty"`
}

func (f Felles) clone() Felles {
	f.Informasjonsrevurdert = f.Informasjonsrevurdert.clone()
	f.Gjeldende = slices.Clone(f.Gjeldende)
	f.Attesteringer = slices.Clone(f.Attesteringer)
	f.Grunnlag = grunnlag.Grunnlagsdata{
		Fradrag:     slices.Clone(f.Grunnlag.Fradrag),
		Bosituasjon: slices.Clone(f.Grunnlag.Bosituasjon),
	}
	return f
}

// SisteAttestering returns the most recent attestation, if any.
func (f Felles) SisteAttestering() (Attestering, bool) {
	if len(f.Attesteringer) == 0 {
		return Attestering{}, false
	}
	return f.Attesteringer[len(f.Attesteringer)-1], true
}
