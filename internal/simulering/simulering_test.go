package simulering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supstonad/pkg/domain"
)

func TestFeilutbetalinger(t *testing.T) {
	jan := domain.NyManed(2021, time.January)
	s := &Simulering{Maneder: []SimulertManed{
		{Maned: jan, TidligereUtbetalt: 20000, NyUtbetaling: 20000},
		{Maned: jan.PlussManeder(1), TidligereUtbetalt: 20000, Feilutbetaling: 20000},
		{Maned: jan.PlussManeder(2), TidligereUtbetalt: 20000, NyUtbetaling: 15000, Feilutbetaling: 5000},
	}}

	assert.True(t, s.HarFeilutbetalinger())
	feil := s.FeilutbetalteBelop()
	require.Len(t, feil, 2)
	assert.Equal(t, 25000, feil.Sum())
	p, ok := feil.Periode()
	require.True(t, ok)
	assert.Equal(t, domain.MustPeriode(jan.PlussManeder(1), jan.PlussManeder(2)), p)
}

func TestIngenFeilutbetaling(t *testing.T) {
	var nilSim *Simulering
	assert.False(t, nilSim.HarFeilutbetalinger())
	assert.Empty(t, (&Simulering{}).FeilutbetalteBelop())
	_, ok := ManedBelopListe(nil).Periode()
	assert.False(t, ok)
}
