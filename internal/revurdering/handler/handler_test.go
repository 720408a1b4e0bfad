package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"supstonad/internal/beregning"
	"supstonad/internal/grunnlag"
	"supstonad/internal/revurdering"
	"supstonad/internal/revurdering/handler/mocks"
	"supstonad/internal/revurdering/ports"
	"supstonad/internal/revurdering/service"
	"supstonad/internal/revurdering/utfall"
	"supstonad/internal/tilbakekreving"
	"supstonad/internal/vilkar"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
	"supstonad/pkg/platform/audit"
	authmw "supstonad/pkg/platform/middleware/auth"
	"supstonad/pkg/requestcontext"
)

var (
	now           = time.Date(2021, 6, 15, 10, 0, 0, 0, time.UTC)
	jan           = domain.NyManed(2021, time.January)
	periode       = domain.MustPeriode(jan, domain.NyManed(2021, time.December))
	saksbehandler = domain.NavIdent("Z990001")
)

// HandlerSuite drives the router with a mocked service. Handler tests cover
// HTTP concerns: parsing, rolle checks and response mapping.
type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  http.Handler
	sakID   domain.SakID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.sakID = domain.SakID(uuid.New())

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	r := chi.NewRouter()
	r.Use(innlogget)
	New(s.service, logger).Register(r)
	s.router = r
}

// innlogget stands in for the auth middleware: the ident and roles come
// from test headers.
func innlogget(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithNavIdent(r.Context(), domain.NavIdent(r.Header.Get("X-Test-Ident")))
		if roller := r.Header.Get("X-Test-Roller"); roller != "" {
			ctx = requestcontext.WithRoller(ctx, strings.Split(roller, ","))
		}
		ctx = requestcontext.WithRequestID(ctx, "req-test")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *HandlerSuite) do(method, path, rolle string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-Ident", string(saksbehandler))
	req.Header.Set("X-Test-Roller", rolle)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) opprettet() revurdering.Opprettet {
	var alle []vilkar.Vilkar
	for _, t := range vilkar.AlleTyper {
		alle = append(alle, vilkar.Vilkar{Type: t, Vurderingsperioder: []vilkar.Vurderingsperiode{{Periode: periode, Resultat: vilkar.Innvilget}}})
	}
	var maneder []beregning.Manedsberegning
	for _, m := range periode.Maneder() {
		maneder = append(maneder, beregning.Manedsberegning{Maned: m, Sats: 20000, Belop: 20000})
	}
	arsak, err := revurdering.NyRevurderingsarsak(string(revurdering.ArsakMeldingFraBruker), "bruker har meldt endring")
	s.Require().NoError(err)
	r, err := revurdering.Opprett(revurdering.NyRevurdering{
		SakID:         s.sakID,
		Periode:       periode,
		Arsak:         arsak,
		Informasjon:   []revurdering.Tema{revurdering.TemaInntekt},
		Saksbehandler: saksbehandler,
		Vedtak: revurdering.Vedtaksdata{
			VedtakID:   domain.VedtakID(uuid.New()),
			Saksnummer: 2021,
			Fnr:        "12345678901",
			Vilkar:     vilkar.NyeVilkarsvurderinger(alle...),
			Grunnlag: grunnlag.Grunnlagsdata{
				Bosituasjon: []grunnlag.Bosituasjon{{Type: grunnlag.Enslig, Periode: periode}},
			},
			Maneder: maneder,
		},
		Oppgave: "oppgave-1",
	}, now)
	s.Require().NoError(err)
	return r
}

func decode[T any](s *HandlerSuite, rec *httptest.ResponseRecorder) T {
	var out T
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func opprettBody() map[string]any {
	return map[string]any{
		"periode":                  map[string]string{"fraOgMed": "2021-01", "tilOgMed": "2021-12"},
		"arsak":                    string(revurdering.ArsakMeldingFraBruker),
		"begrunnelse":              "bruker har meldt endring",
		"informasjonSomRevurderes": []string{string(revurdering.TemaInntekt)},
	}
}

// =============================================================================
// Opprett
// =============================================================================

func (s *HandlerSuite) TestOpprett() {
	r := s.opprettet()
	s.service.EXPECT().Opprett(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, cmd service.OpprettCommand) (revurdering.Revurdering, error) {
			assert.Equal(s.T(), s.sakID, cmd.SakID)
			assert.Equal(s.T(), periode, cmd.Periode)
			assert.Equal(s.T(), revurdering.ArsakMeldingFraBruker, cmd.Arsak.Arsak)
			assert.Equal(s.T(), []revurdering.Tema{revurdering.TemaInntekt}, cmd.Informasjon)
			assert.Equal(s.T(), saksbehandler, requestcontext.NavIdent(ctx))
			return r, nil
		})

	rec := s.do(http.MethodPost, "/saker/"+s.sakID.String()+"/revurderinger", authmw.RolleSaksbehandler, opprettBody())

	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[RevurderingResponse](s, rec)
	s.Equal(r.ID, resp.ID)
	s.Equal(revurdering.TilstandOpprettet, resp.Tilstand)
	s.Equal(periode, resp.Periode)
	s.Equal(domain.OppgaveID("oppgave-1"), resp.Oppgave)
	s.NotEmpty(resp.InformasjonSomRevurderes)
	s.Empty(resp.Attesteringer)
}

func (s *HandlerSuite) TestOpprettValidation() {
	cases := []struct {
		name   string
		mutate func(map[string]any)
		raw    string
	}{
		{name: "bad json", raw: "{not json"},
		{name: "bad month", mutate: func(b map[string]any) {
			b["periode"] = map[string]string{"fraOgMed": "2021-13", "tilOgMed": "2021-12"}
		}},
		{name: "reversed periode", mutate: func(b map[string]any) {
			b["periode"] = map[string]string{"fraOgMed": "2021-12", "tilOgMed": "2021-01"}
		}},
		{name: "unknown arsak", mutate: func(b map[string]any) { b["arsak"] = "FORDI" }},
		{name: "unknown tema", mutate: func(b map[string]any) { b["informasjonSomRevurderes"] = []string{"Hobby"} }},
		{name: "begrunnelse too long", mutate: func(b map[string]any) { b["begrunnelse"] = strings.Repeat("x", maxBegrunnelseLength+1) }},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			var body any = tc.raw
			if tc.raw == "" {
				b := opprettBody()
				tc.mutate(b)
				body = b
			}
			rec := s.do(http.MethodPost, "/saker/"+s.sakID.String()+"/revurderinger", authmw.RolleSaksbehandler, body)
			s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func (s *HandlerSuite) TestOpprettInvalidSakID() {
	rec := s.do(http.MethodPost, "/saker/ikke-en-uuid/revurderinger", authmw.RolleSaksbehandler, opprettBody())
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestOpprettConflict() {
	s.service.EXPECT().Opprett(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.NewReason(dErrors.CodeConflict, revurdering.ReasonApenRevurderingFinnes, "saken har allerede en åpen revurdering"))

	rec := s.do(http.MethodPost, "/saker/"+s.sakID.String()+"/revurderinger", authmw.RolleSaksbehandler, opprettBody())

	s.Equal(http.StatusConflict, rec.Code)
	body := decode[map[string]any](s, rec)
	s.Equal(revurdering.ReasonApenRevurderingFinnes, body["reason"])
}

// =============================================================================
// Roller
// =============================================================================

func (s *HandlerSuite) TestRollerGuardRoutes() {
	id := uuid.NewString()
	cases := []struct {
		name   string
		method string
		path   string
		rolle  string
	}{
		{name: "veileder cannot opprett", method: http.MethodPost, path: "/saker/" + s.sakID.String() + "/revurderinger", rolle: authmw.RolleVeileder},
		{name: "attestant cannot beregne", method: http.MethodPost, path: "/revurderinger/" + id + "/beregnOgSimuler", rolle: authmw.RolleAttestant},
		{name: "saksbehandler cannot iverksette", method: http.MethodPost, path: "/revurderinger/" + id + "/iverksett", rolle: authmw.RolleSaksbehandler},
		{name: "saksbehandler cannot underkjenne", method: http.MethodPost, path: "/revurderinger/" + id + "/underkjenn", rolle: authmw.RolleSaksbehandler},
		{name: "no rolle cannot read", method: http.MethodGet, path: "/revurderinger/" + id, rolle: ""},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			rec := s.do(tc.method, tc.path, tc.rolle, "{}")
			s.Equal(http.StatusForbidden, rec.Code)
		})
	}
}

// =============================================================================
// Reads
// =============================================================================

func (s *HandlerSuite) TestHent() {
	r := s.opprettet()
	s.service.EXPECT().Hent(gomock.Any(), r.ID).Return(r, nil)

	rec := s.do(http.MethodGet, "/revurderinger/"+r.ID.String(), authmw.RolleVeileder, nil)

	s.Require().Equal(http.StatusOK, rec.Code)
	resp := decode[RevurderingResponse](s, rec)
	s.Equal(s.sakID, resp.SakID)
	s.Equal(domain.Fnr("12345678901"), resp.Fnr)
}

func (s *HandlerSuite) TestHentNotFound() {
	id := domain.RevurderingID(uuid.New())
	s.service.EXPECT().Hent(gomock.Any(), id).Return(nil, dErrors.New(dErrors.CodeNotFound, "revurdering not found"))

	rec := s.do(http.MethodGet, "/revurderinger/"+id.String(), authmw.RolleSaksbehandler, nil)

	s.Equal(http.StatusNotFound, rec.Code)
	body := decode[map[string]any](s, rec)
	s.Equal(string(dErrors.CodeNotFound), body["error"])
}

func (s *HandlerSuite) TestHentForSak() {
	r := s.opprettet()
	s.service.EXPECT().HentForSak(gomock.Any(), s.sakID).Return([]revurdering.Revurdering{r}, nil)

	rec := s.do(http.MethodGet, "/saker/"+s.sakID.String()+"/revurderinger", authmw.RolleSaksbehandler, nil)

	s.Require().Equal(http.StatusOK, rec.Code)
	resp := decode[RevurderingerResponse](s, rec)
	s.Require().Len(resp.Revurderinger, 1)
	s.Equal(r.ID, resp.Revurderinger[0].ID)
}

func (s *HandlerSuite) TestHendelser() {
	s.service.EXPECT().Hendelser(gomock.Any(), s.sakID).Return([]audit.Event{{
		Category:  audit.CategoryCompliance,
		Timestamp: now,
		Subject:   "rev-1",
		Action:    string(audit.EventRevurderingOpprettet),
		ActorID:   string(saksbehandler),
	}}, nil)

	rec := s.do(http.MethodGet, "/saker/"+s.sakID.String()+"/hendelser", authmw.RolleSaksbehandler, nil)

	s.Require().Equal(http.StatusOK, rec.Code)
	resp := decode[HendelserResponse](s, rec)
	s.Require().Len(resp.Hendelser, 1)
	s.Equal("revurdering_opprettet", resp.Hendelser[0].Hendelse)
	s.Equal(string(saksbehandler), resp.Hendelser[0].Utfort)
}

// =============================================================================
// Grunnlag
// =============================================================================

func (s *HandlerSuite) TestOppdaterVilkar() {
	r := s.opprettet()
	s.service.EXPECT().OppdaterVilkar(gomock.Any(), r.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.RevurderingID, v vilkar.Vilkar) (revurdering.Revurdering, error) {
			assert.Equal(s.T(), vilkar.Uforhet, v.Type)
			require.Len(s.T(), v.Vurderingsperioder, 1)
			assert.Equal(s.T(), vilkar.Avslag, v.Vurderingsperioder[0].Resultat)
			return r, nil
		})

	rec := s.do(http.MethodPut, "/revurderinger/"+r.ID.String()+"/vilkar/"+string(vilkar.Uforhet), authmw.RolleSaksbehandler, map[string]any{
		"vurderingsperioder": []map[string]any{{
			"periode":  map[string]string{"fraOgMed": "2021-01", "tilOgMed": "2021-12"},
			"resultat": string(vilkar.Avslag),
		}},
	})

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *HandlerSuite) TestOppdaterVilkarUnknownType() {
	rec := s.do(http.MethodPut, "/revurderinger/"+uuid.NewString()+"/vilkar/HOBBY", authmw.RolleSaksbehandler, map[string]any{
		"vurderingsperioder": []map[string]any{},
	})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestOppdaterFradrag() {
	r := s.opprettet()
	s.service.EXPECT().OppdaterFradrag(gomock.Any(), r.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.RevurderingID, fradrag []grunnlag.Fradrag) (revurdering.Revurdering, error) {
			require.Len(s.T(), fradrag, 1)
			assert.Equal(s.T(), 5000, fradrag[0].Manedsbelop)
			assert.True(s.T(), fradrag[0].Utenlandsk)
			return r, nil
		})

	rec := s.do(http.MethodPut, "/revurderinger/"+r.ID.String()+"/fradrag", authmw.RolleSaksbehandler, map[string]any{
		"fradrag": []map[string]any{{
			"type":        string(grunnlag.Arbeidsinntekt),
			"manedsbelop": 5000,
			"periode":     map[string]string{"fraOgMed": "2021-01", "tilOgMed": "2021-06"},
			"tilhorer":    string(grunnlag.Bruker),
			"utenlandsk":  true,
		}},
	})

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
}

// =============================================================================
// Beregning and attestering
// =============================================================================

func (s *HandlerSuite) TestBeregnOgSimuler() {
	r := s.opprettet()
	s.service.EXPECT().BeregnOgSimuler(gomock.Any(), r.ID, "ny inntekt").
		Return(&service.BeregnOgSimulerResultat{Revurdering: r, Utfall: []utfall.Utfall{utfall.DelvisOpphor}}, nil)

	rec := s.do(http.MethodPost, "/revurderinger/"+r.ID.String()+"/beregnOgSimuler", authmw.RolleSaksbehandler, map[string]string{"begrunnelse": " ny inntekt "})

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[BeregnOgSimulerResponse](s, rec)
	s.Equal([]utfall.Utfall{utfall.DelvisOpphor}, resp.Utfall)
	s.Equal(r.ID, resp.Revurdering.ID)
}

func (s *HandlerSuite) TestOppdaterTilbakekreving() {
	r := s.opprettet()
	s.service.EXPECT().OppdaterTilbakekreving(gomock.Any(), r.ID, tilbakekreving.AvgjorelseTilbakekrev).Return(r, nil)

	rec := s.do(http.MethodPut, "/revurderinger/"+r.ID.String()+"/tilbakekreving", authmw.RolleSaksbehandler, map[string]string{"avgjorelse": string(tilbakekreving.AvgjorelseTilbakekrev)})

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *HandlerSuite) TestSendTilAttesteringReportsEveryUtfall() {
	id := domain.RevurderingID(uuid.New())
	s.service.EXPECT().SendTilAttestering(gomock.Any(), id).Return(nil, &revurdering.UtfallStottesIkkeError{
		Utfall: []utfall.Utfall{utfall.OpphorErIkkeFraForsteManed, utfall.DelvisOpphor},
	})

	rec := s.do(http.MethodPost, "/revurderinger/"+id.String()+"/tilAttestering", authmw.RolleSaksbehandler, nil)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	var body struct {
		Reason string `json:"reason"`
		Details struct {
			Utfall []string `json:"utfall"`
		} `json:"details"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(revurdering.ReasonUtfallStottesIkke, body.Reason)
	s.Equal([]string{string(utfall.OpphorErIkkeFraForsteManed), string(utfall.DelvisOpphor)}, body.Details.Utfall)
}

func (s *HandlerSuite) TestUnderkjenn() {
	r := s.opprettet()
	s.service.EXPECT().Underkjenn(gomock.Any(), service.UnderkjennCommand{
		ID:        r.ID,
		Grunn:     revurdering.GrunnBeregningenErFeil,
		Kommentar: "feil sats",
	}).Return(r, nil)

	rec := s.do(http.MethodPost, "/revurderinger/"+r.ID.String()+"/underkjenn", authmw.RolleAttestant, map[string]string{
		"grunn":     string(revurdering.GrunnBeregningenErFeil),
		"kommentar": "feil sats",
	})

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *HandlerSuite) TestUnderkjennRequiresKommentar() {
	rec := s.do(http.MethodPost, "/revurderinger/"+uuid.NewString()+"/underkjenn", authmw.RolleAttestant, map[string]string{
		"grunn": string(revurdering.GrunnBeregningenErFeil),
	})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestIverksettUnavailableHidesMessage() {
	id := domain.RevurderingID(uuid.New())
	s.service.EXPECT().Iverksett(gomock.Any(), id).
		Return(nil, dErrors.New(dErrors.CodeUnavailable, "oppdrag svarte ikke: connection refused"))

	rec := s.do(http.MethodPost, "/revurderinger/"+id.String()+"/iverksett", authmw.RolleAttestant, nil)

	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.NotContains(rec.Body.String(), "connection refused")
}

// =============================================================================
// Avslutt and brev
// =============================================================================

func (s *HandlerSuite) TestAvslutt() {
	r := s.opprettet()
	avsluttet, err := revurdering.Avslutt(r, "feil registrert", revurdering.Brevvalg{Type: revurdering.SkalIkkeSendeBrev}, saksbehandler, now)
	s.Require().NoError(err)
	s.service.EXPECT().Avslutt(gomock.Any(), service.AvsluttCommand{
		ID:          r.ID,
		Begrunnelse: "feil registrert",
		Brevvalg:    revurdering.Brevvalg{Type: revurdering.SkalIkkeSendeBrev},
	}).Return(avsluttet, nil)

	rec := s.do(http.MethodPost, "/revurderinger/"+r.ID.String()+"/avslutt", authmw.RolleSaksbehandler, map[string]any{
		"begrunnelse": "feil registrert",
		"brevvalg":    map[string]string{"type": string(revurdering.SkalIkkeSendeBrev)},
	})

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[RevurderingResponse](s, rec)
	s.Equal(revurdering.TilstandAvsluttet, resp.Tilstand)
	s.Require().NotNil(resp.Avsluttet)
	s.Equal("feil registrert", resp.Avsluttet.Begrunnelse)
}

func (s *HandlerSuite) TestAvsluttRequiresBegrunnelse() {
	rec := s.do(http.MethodPost, "/revurderinger/"+uuid.NewString()+"/avslutt", authmw.RolleSaksbehandler, map[string]any{
		"brevvalg": map[string]string{"type": string(revurdering.SkalIkkeSendeBrev)},
	})

	s.Equal(http.StatusBadRequest, rec.Code)
	body := decode[map[string]any](s, rec)
	s.Equal(revurdering.ReasonBegrunnelseMangler, body["reason"])
}

func (s *HandlerSuite) TestBrevutkast() {
	id := domain.RevurderingID(uuid.New())
	pdf := []byte("%PDF-1.7 utkast")
	s.service.EXPECT().Brevutkast(gomock.Any(), id).Return(&ports.Dokument{PDF: pdf, Tittel: "Vedtaksbrev"}, nil)

	rec := s.do(http.MethodGet, "/revurderinger/"+id.String()+"/brevutkast", authmw.RolleSaksbehandler, nil)

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("application/pdf", rec.Header().Get("Content-Type"))
	s.Equal(pdf, rec.Body.Bytes())
}
