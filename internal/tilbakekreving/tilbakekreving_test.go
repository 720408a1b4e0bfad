package tilbakekreving

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supstonad/internal/simulering"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

var (
	now   = time.Date(2021, 9, 1, 12, 0, 0, 0, time.UTC)
	mars  = domain.NyManed(2021, time.March)
	april = domain.NyManed(2021, time.April)
)

func sim(feil int) *simulering.Simulering {
	return &simulering.Simulering{
		Periode: domain.MustPeriode(mars, april),
		Maneder: []simulering.SimulertManed{
			{Maned: mars, TidligereUtbetalt: 10000, Feilutbetaling: feil},
			{Maned: april, TidligereUtbetalt: 10000},
		},
	}
}

func TestVurder(t *testing.T) {
	tests := []struct {
		name        string
		sim         *simulering.Simulering
		skalUtsette bool
		dekket      bool
		want        Variant
	}{
		{"no feilutbetaling", sim(0), false, false, VariantIkkeBehov},
		{"no simulering", nil, false, false, VariantIkkeBehov},
		{"feilutbetaling opens a decision", sim(10000), false, false, VariantIkkeAvgjort},
		{"deferred recovery", sim(10000), true, false, VariantIkkeBehov},
		{"covered by new avkortingsvarsel", sim(10000), false, true, VariantIkkeBehov},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Vurder(tt.sim, tt.skalUtsette, tt.dekket, now)
			assert.Equal(t, tt.want, got.Variant())
		})
	}
}

func TestAvgjor(t *testing.T) {
	apen, ok := Vurder(sim(10000), false, false, now).(IkkeAvgjort)
	require.True(t, ok)
	assert.False(t, ErAvgjort(apen))
	assert.Equal(t, 10000, apen.Feilutbetaling.Sum())

	avgjort, err := apen.Avgjor(AvgjorelseTilbakekrev, "Z123456", now)
	require.NoError(t, err)
	require.IsType(t, Tilbakekrev{}, avgjort)
	assert.True(t, ErAvgjort(avgjort))
	assert.True(t, KreverTilbakekreving(avgjort))

	t.Run("decision can be changed before iverksetting", func(t *testing.T) {
		endret, err := avgjort.(KanAvgjores).Avgjor(AvgjorelseIkkeTilbakekrev, "Z654321", now)
		require.NoError(t, err)
		ikke, ok := endret.(IkkeTilbakekrev)
		require.True(t, ok)
		assert.Equal(t, apen.ID, ikke.ID)
		assert.Equal(t, domain.NavIdent("Z654321"), ikke.Saksbehandler)
		assert.False(t, KreverTilbakekreving(ikke))
	})

	t.Run("saksbehandler is required", func(t *testing.T) {
		_, err := apen.Avgjor(AvgjorelseTilbakekrev, "", now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("ikke behov cannot be decided", func(t *testing.T) {
		_, ok := UnderBehandling(IkkeBehov{}).(KanAvgjores)
		assert.False(t, ok)
	})
}

func TestFerdigbehandle(t *testing.T) {
	_, ok := UnderBehandling(IkkeAvgjort{}).(KanFerdigbehandles)
	assert.False(t, ok, "an undecided behandling cannot be finalized")

	assert.False(t, IkkeBehov{}.Ferdigbehandle().SkalTilbakekreve())

	apen := Vurder(sim(4000), false, false, now).(IkkeAvgjort)
	avgjort, err := apen.Avgjor(AvgjorelseTilbakekrev, "Z123456", now)
	require.NoError(t, err)
	ferdig := avgjort.(KanFerdigbehandles).Ferdigbehandle()
	assert.True(t, ferdig.SkalTilbakekreve())
	assert.Equal(t, apen.ID, ferdig.BehandlingID)
	assert.Equal(t, 4000, ferdig.Feilutbetaling.Sum())
}

func TestSnapshot(t *testing.T) {
	apen := Vurder(sim(4000), false, false, now).(IkkeAvgjort)
	avgjort, err := apen.Avgjor(AvgjorelseIkkeTilbakekrev, "Z123456", now)
	require.NoError(t, err)

	for _, u := range []UnderBehandling{IkkeBehov{}, apen, avgjort} {
		back, err := SnapshotAv(u).UnderBehandling()
		require.NoError(t, err)
		assert.Equal(t, u, back)
	}

	_, err = Snapshot{Variant: "UKJENT"}.UnderBehandling()
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}
