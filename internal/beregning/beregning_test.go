package beregning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supstonad/pkg/domain"
)

var jan = domain.NyManed(2021, time.January)

func TestNySortsMonths(t *testing.T) {
	b := Ny(domain.MustPeriode(jan, jan.PlussManeder(1)), []Manedsberegning{
		{Maned: jan.PlussManeder(1), Belop: 2},
		{Maned: jan, Belop: 1},
	}, time.Now())

	require.Len(t, b.Maneder, 2)
	assert.Equal(t, jan, b.Maneder[0].Maned)
	first, ok := b.ForsteManed()
	require.True(t, ok)
	assert.Equal(t, jan, first)
	assert.Equal(t, 3, b.SumYtelse())
}

func TestForsteMerknad(t *testing.T) {
	b := Ny(domain.MustPeriode(jan, jan.PlussManeder(2)), []Manedsberegning{
		{Maned: jan, Belop: 5000},
		{Maned: jan.PlussManeder(1), Belop: 0, Merknader: []Merknad{BelopErNull}},
		{Maned: jan.PlussManeder(2), Belop: 100, Merknader: []Merknad{BelopMellomNullOgToProsentAvHoySats}},
	}, time.Now())

	m, merknad, ok := b.ForsteMerknad()
	require.True(t, ok)
	assert.Equal(t, jan.PlussManeder(1), m.Maned)
	assert.Equal(t, BelopErNull, merknad)
	assert.False(t, b.AlleHarMerknad(BelopErNull))
}

func TestLikUtenomMetadata(t *testing.T) {
	maneder := []Manedsberegning{{Maned: jan, Sats: 20000, Fradrag: 1000, Belop: 19000}}
	p := domain.ManedsPeriode(jan)
	a := Ny(p, maneder, time.Now())
	b := Ny(p, maneder, time.Now().Add(time.Hour))

	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, a.LikUtenomMetadata(b))

	c := Ny(p, []Manedsberegning{{Maned: jan, Sats: 20000, Fradrag: 1000, Belop: 18999}}, time.Now())
	assert.False(t, a.LikUtenomMetadata(c))
	assert.False(t, a.LikUtenomMetadata(nil))
}
