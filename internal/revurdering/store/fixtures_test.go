package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"supstonad/internal/beregning"
	"supstonad/internal/grunnlag"
	"supstonad/internal/revurdering"
	"supstonad/internal/vilkar"
	"supstonad/pkg/domain"
)

var periode = domain.MustPeriode(domain.NyManed(2021, time.January), domain.NyManed(2021, time.December))

func nyRevurdering(t *testing.T, sakID domain.SakID, opprettet time.Time) revurdering.Opprettet {
	t.Helper()
	var alle []vilkar.Vilkar
	for _, typ := range vilkar.AlleTyper {
		alle = append(alle, vilkar.Vilkar{
			Type:               typ,
			Vurderingsperioder: []vilkar.Vurderingsperiode{{Periode: periode, Resultat: vilkar.Innvilget}},
		})
	}
	var maneder []beregning.Manedsberegning
	for _, m := range periode.Maneder() {
		maneder = append(maneder, beregning.Manedsberegning{Maned: m, Sats: 20000, Belop: 20000})
	}
	arsak, err := revurdering.NyRevurderingsarsak(string(revurdering.ArsakMeldingFraBruker), "endret inntekt")
	require.NoError(t, err)

	r, err := revurdering.Opprett(revurdering.NyRevurdering{
		SakID:         sakID,
		Periode:       periode,
		Arsak:         arsak,
		Informasjon:   []revurdering.Tema{revurdering.TemaInntekt},
		Saksbehandler: "Z990001",
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
	}, opprettet)
	require.NoError(t, err)
	return r
}

func avsluttet(t *testing.T, r revurdering.Revurdering) revurdering.Avsluttet {
	t.Helper()
	a, err := revurdering.Avslutt(r, "feil sak", revurdering.Brevvalg{Type: revurdering.SkalIkkeSendeBrev}, "Z990001", time.Now())
	require.NoError(t, err)
	return a
}
