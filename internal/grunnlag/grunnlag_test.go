package grunnlag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

var (
	jan     = domain.NyManed(2021, time.January)
	periode = domain.MustPeriode(jan, domain.NyManed(2021, time.June))
)

func TestValiderFor(t *testing.T) {
	enslig := Bosituasjon{Type: Enslig, Periode: periode}

	t.Run("complete grunnlag is valid", func(t *testing.T) {
		g := Grunnlagsdata{
			Bosituasjon: []Bosituasjon{enslig},
			Fradrag:     []Fradrag{{Type: Arbeidsinntekt, Manedsbelop: 1000, Periode: periode, Tilhorer: Bruker}},
		}
		require.NoError(t, g.ValiderFor(periode))
	})

	t.Run("missing bosituasjon month", func(t *testing.T) {
		g := Grunnlagsdata{Bosituasjon: []Bosituasjon{{Type: Enslig, Periode: domain.MustPeriode(jan, jan.PlussManeder(2))}}}
		err := g.ValiderFor(periode)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("EPS fradrag requires EPS", func(t *testing.T) {
		g := Grunnlagsdata{
			Bosituasjon: []Bosituasjon{enslig},
			Fradrag:     []Fradrag{{Type: Arbeidsinntekt, Manedsbelop: 1000, Periode: periode, Tilhorer: EPS}},
		}
		require.Error(t, g.ValiderFor(periode))
	})
}

func TestFradragFor(t *testing.T) {
	g := Grunnlagsdata{Fradrag: []Fradrag{
		{Type: Arbeidsinntekt, Manedsbelop: 1000, Periode: periode, Tilhorer: Bruker},
		{Type: Kapitalinntekt, Manedsbelop: 250, Periode: domain.ManedsPeriode(jan), Tilhorer: Bruker},
	}}
	assert.Equal(t, 1250, g.FradragFor(jan))
	assert.Equal(t, 1000, g.FradragFor(jan.PlussManeder(1)))
	assert.Equal(t, 0, g.FradragFor(jan.PlussManeder(12)))
}

func TestNyttFradrag(t *testing.T) {
	_, err := NyttFradrag("Lotto", 100, periode, Bruker)
	require.Error(t, err)
	_, err = NyttFradrag(Arbeidsinntekt, -1, periode, Bruker)
	require.Error(t, err)
	f, err := NyttFradrag(Uforetrygd, 100, periode, EPS)
	require.NoError(t, err)
	assert.Equal(t, EPS, f.Tilhorer)
}

func TestMedFradragCopies(t *testing.T) {
	fradrag := []Fradrag{{Type: Arbeidsinntekt, Manedsbelop: 1, Periode: periode, Tilhorer: Bruker}}
	g := Grunnlagsdata{}.MedFradrag(fradrag)
	fradrag[0].Manedsbelop = 99
	assert.Equal(t, 1, g.Fradrag[0].Manedsbelop)
}
