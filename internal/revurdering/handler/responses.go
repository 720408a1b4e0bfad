package handler

import (
	"time"

	"supstonad/internal/beregning"
	"supstonad/internal/grunnlag"
	"supstonad/internal/opphor"
	"supstonad/internal/revurdering"
	"supstonad/internal/revurdering/service"
	"supstonad/internal/revurdering/utfall"
	"supstonad/internal/vilkar"
	"supstonad/pkg/domain"
	"supstonad/pkg/platform/audit"
)

type OpphorResponse struct {
	Grunner     []string      `json:"grunner"`
	Opphorsdato *domain.Maned `json:"opphorsdato,omitempty"`
}

type SimuleringResponse struct {
	Feilutbetaling int `json:"feilutbetaling"`
	Maneder        int `json:"maneder"`
}

type AvsluttetResponse struct {
	Begrunnelse string               `json:"begrunnelse"`
	Brevvalg    revurdering.Brevvalg `json:"brevvalg"`
	AvsluttetAv domain.NavIdent      `json:"avsluttetAv"`
	Tidspunkt   time.Time            `json:"tidspunkt"`
}

// RevurderingResponse is the case worker's view of a revurdering in any
// state. Sections that the state does not carry are omitted.
type RevurderingResponse struct {
	ID                       domain.RevurderingID        `json:"id"`
	SakID                    domain.SakID                `json:"sakId"`
	Saksnummer               domain.Saksnummer           `json:"saksnummer"`
	Fnr                      domain.Fnr                  `json:"fnr"`
	Tilstand                 revurdering.Tilstand        `json:"tilstand"`
	Opprettet                time.Time                   `json:"opprettet"`
	Periode                  domain.Periode              `json:"periode"`
	TilRevurdering           domain.VedtakID             `json:"tilRevurdering"`
	Saksbehandler            domain.NavIdent             `json:"saksbehandler"`
	Arsak                    revurdering.Arsak           `json:"arsak"`
	Begrunnelse              string                      `json:"begrunnelse"`
	InformasjonSomRevurderes map[revurdering.Tema]string `json:"informasjonSomRevurderes"`
	Vilkar                   []vilkar.Vilkar             `json:"vilkar"`
	Grunnlag                 grunnlag.Grunnlagsdata      `json:"grunnlag"`
	Fritekst                 string                      `json:"fritekst,omitempty"`
	Oppgave                  domain.OppgaveID            `json:"oppgave,omitempty"`
	Attesteringer            []revurdering.Attestering   `json:"attesteringer"`
	Beregning                *beregning.Beregning        `json:"beregning,omitempty"`
	Opphor                   *OpphorResponse             `json:"opphor,omitempty"`
	Simulering               *SimuleringResponse         `json:"simulering,omitempty"`
	Tilbakekreving           string                      `json:"tilbakekreving,omitempty"`
	Avkorting                string                      `json:"avkorting,omitempty"`
	Utbetaling               *domain.UtbetalingID        `json:"utbetaling,omitempty"`
	Vedtaksbrev              *domain.DokumentID          `json:"vedtaksbrev,omitempty"`
	Avsluttet                *AvsluttetResponse          `json:"avsluttet,omitempty"`
	Utfall                   []utfall.Utfall             `json:"utfall,omitempty"`
}

// FromRevurdering maps any lifecycle state to its response.
func FromRevurdering(r revurdering.Revurdering) RevurderingResponse {
	f := r.Behandling()
	resp := RevurderingResponse{
		ID:                       f.ID,
		SakID:                    f.SakID,
		Saksnummer:               f.Saksnummer,
		Fnr:                      f.Fnr,
		Tilstand:                 r.Tilstand(),
		Opprettet:                f.Opprettet,
		Periode:                  f.Periode,
		TilRevurdering:           f.TilRevurdering,
		Saksbehandler:            f.Saksbehandler,
		Arsak:                    f.Arsak.Arsak,
		Begrunnelse:              f.Arsak.Begrunnelse,
		InformasjonSomRevurderes: make(map[revurdering.Tema]string, len(f.Informasjonsrevurdert)),
		Vilkar:                   f.Vilkar.Alle(),
		Grunnlag:                 f.Grunnlag,
		Fritekst:                 f.Fritekst,
		Oppgave:                  f.Oppgave,
		Attesteringer:            f.Attesteringer,
	}
	if resp.Attesteringer == nil {
		resp.Attesteringer = []revurdering.Attestering{}
	}
	for t, status := range f.Informasjonsrevurdert {
		resp.InformasjonSomRevurderes[t] = string(status)
	}

	switch v := r.(type) {
	case revurdering.Beregnet:
		data := v.Beregningsresultat()
		resp.Beregning = data.Beregning
		resp.Opphor = fromOpphor(data.Opphor)
		resp.Avkorting = data.Avkorting.Variant()
	case revurdering.KanLageBrevutkast:
		data := v.Simuleringsresultat()
		resp.Beregning = data.Beregning
		resp.Opphor = fromOpphor(data.Opphor)
		resp.Tilbakekreving = string(data.Tilbakekreving.Variant())
		resp.Avkorting = data.Avkorting.Variant()
		if data.Simulering != nil {
			resp.Simulering = &SimuleringResponse{
				Feilutbetaling: data.Simulering.FeilutbetalteBelop().Sum(),
				Maneder:        len(data.Simulering.Maneder),
			}
		}
		resp.Utfall = revurdering.VurderUtfall(v)
	case revurdering.Iverksatt:
		resp.Beregning = v.Beregning
		resp.Opphor = fromOpphor(v.Opphor)
		resp.Avkorting = v.Avkorting.Variant()
		utbetaling, dokument := v.Utbetaling, v.Vedtaksbrev
		resp.Utbetaling = &utbetaling
		if dokument != (domain.DokumentID{}) {
			resp.Vedtaksbrev = &dokument
		}
	case revurdering.Avsluttet:
		resp.Avsluttet = &AvsluttetResponse{
			Begrunnelse: v.Begrunnelse,
			Brevvalg:    v.Brevvalg,
			AvsluttetAv: v.AvsluttetAv,
			Tidspunkt:   v.Tidspunkt,
		}
	}
	return resp
}

func fromOpphor(res opphor.Resultat) *OpphorResponse {
	if !res.ErOpphor() {
		return nil
	}
	grunner := res.Grunner()
	out := &OpphorResponse{Grunner: make([]string, len(grunner))}
	for i, g := range grunner {
		out.Grunner[i] = string(g)
	}
	if dato, ok := res.Opphorsdato(); ok {
		out.Opphorsdato = &dato
	}
	return out
}

type RevurderingerResponse struct {
	Revurderinger []RevurderingResponse `json:"revurderinger"`
}

func FromRevurderinger(rs []revurdering.Revurdering) RevurderingerResponse {
	out := RevurderingerResponse{Revurderinger: make([]RevurderingResponse, 0, len(rs))}
	for _, r := range rs {
		out.Revurderinger = append(out.Revurderinger, FromRevurdering(r))
	}
	return out
}

// BeregnOgSimulerResponse adds the outcomes that would stop the revurdering
// at attestering.
type BeregnOgSimulerResponse struct {
	Revurdering RevurderingResponse `json:"revurdering"`
	Utfall      []utfall.Utfall     `json:"utfall"`
}

func FromBeregnOgSimuler(res *service.BeregnOgSimulerResultat) BeregnOgSimulerResponse {
	out := BeregnOgSimulerResponse{Revurdering: FromRevurdering(res.Revurdering), Utfall: res.Utfall}
	if out.Utfall == nil {
		out.Utfall = []utfall.Utfall{}
	}
	return out
}

type HendelseResponse struct {
	Kategori      string    `json:"kategori"`
	Tidspunkt     time.Time `json:"tidspunkt"`
	RevurderingID string    `json:"revurderingId"`
	Hendelse      string    `json:"hendelse"`
	Tilstand      string    `json:"tilstand,omitempty"`
	Grunn         string    `json:"grunn,omitempty"`
	Utfort        string    `json:"utfortAv,omitempty"`
}

type HendelserResponse struct {
	Hendelser []HendelseResponse `json:"hendelser"`
}

func FromHendelser(events []audit.Event) HendelserResponse {
	out := HendelserResponse{Hendelser: make([]HendelseResponse, 0, len(events))}
	for _, e := range events {
		out.Hendelser = append(out.Hendelser, HendelseResponse{
			Kategori:      string(e.Category),
			Tidspunkt:     e.Timestamp,
			RevurderingID: e.Subject,
			Hendelse:      e.Action,
			Tilstand:      e.Decision,
			Grunn:         e.Reason,
			Utfort:        e.ActorID,
		})
	}
	return out
}
