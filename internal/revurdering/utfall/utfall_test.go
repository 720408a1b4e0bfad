package utfall

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supstonad/internal/beregning"
	"supstonad/internal/opphor"
	"supstonad/pkg/domain"
)

var (
	jan     = domain.NyManed(2021, time.January)
	periode = domain.MustPeriode(jan, domain.NyManed(2021, time.December))
)

func maneder(p domain.Periode, belop int, merknader ...beregning.Merknad) []beregning.Manedsberegning {
	var out []beregning.Manedsberegning
	for _, m := range p.Maneder() {
		out = append(out, beregning.Manedsberegning{Maned: m, Sats: 20000, Belop: belop, Merknader: merknader})
	}
	return out
}

func ny(ms ...[]beregning.Manedsberegning) *beregning.Beregning {
	var all []beregning.Manedsberegning
	for _, m := range ms {
		all = append(all, m...)
	}
	return beregning.Ny(periode, all, time.Now())
}

func opphorResultat(t *testing.T, dato domain.Maned, grunner ...opphor.Grunn) opphor.Resultat {
	t.Helper()
	res, err := opphor.Opphor(grunner, dato)
	require.NoError(t, err)
	return res
}

func TestVurder(t *testing.T) {
	gjeldende := maneder(periode, 20000)

	tests := []struct {
		name string
		in   Input
		want []Utfall
	}{
		{
			name: "innvilget is always supported",
			in: Input{
				Gjeldende: gjeldende,
				Ny:        ny(maneder(periode, 1)),
				Opphor:    opphor.Innvilget(),
				Periode:   periode,
			},
			want: nil,
		},
		{
			name: "opphor from second month on a single vilkar",
			in: Input{
				Gjeldende: gjeldende,
				Ny:        ny(maneder(periode, 20000)),
				Opphor:    opphorResultat(t, jan.PlussManeder(1), opphor.Uforhet),
				Periode:   periode,
			},
			want: []Utfall{OpphorErIkkeFraForsteManed},
		},
		{
			name: "several grounds",
			in: Input{
				Gjeldende: gjeldende,
				Ny:        ny(maneder(periode, 0, beregning.BelopErNull)),
				Opphor:    opphorResultat(t, jan, opphor.Uforhet, opphor.ForHoyInntekt),
				Periode:   periode,
			},
			want: []Utfall{OpphorAvFlereVilkar},
		},
		{
			name: "only one of two months under minstegrense",
			in: Input{
				Gjeldende: maneder(domain.MustPeriode(jan, jan.PlussManeder(1)), 20000),
				Ny: ny(
					maneder(domain.ManedsPeriode(jan), 300, beregning.BelopMellomNullOgToProsentAvHoySats),
					maneder(domain.ManedsPeriode(jan.PlussManeder(1)), 20000),
				),
				Opphor:  opphorResultat(t, jan, opphor.SuUnderMinstegrense),
				Periode: domain.MustPeriode(jan, jan.PlussManeder(1)),
			},
			want: []Utfall{DelvisOpphor},
		},
		{
			name: "all months under minstegrense",
			in: Input{
				Gjeldende: gjeldende,
				Ny:        ny(maneder(periode, 300, beregning.BelopMellomNullOgToProsentAvHoySats)),
				Opphor:    opphorResultat(t, jan, opphor.SuUnderMinstegrense),
				Periode:   periode,
			},
			want: nil,
		},
		{
			name: "zero amount in some months with changed amount elsewhere",
			in: Input{
				Gjeldende: gjeldende,
				Ny: ny(
					maneder(domain.MustPeriode(jan, jan.PlussManeder(5)), 0, beregning.BelopErNull),
					maneder(domain.MustPeriode(jan.PlussManeder(6), periode.TilOgMed), 15000),
				),
				Opphor:  opphorResultat(t, jan, opphor.ForHoyInntekt),
				Periode: periode,
			},
			want: []Utfall{DelvisOpphor, OpphorOgAndreEndringerIKombinasjon},
		},
		{
			name: "vilkar opphor with changed amount before opphorsdato",
			in: Input{
				Gjeldende: gjeldende,
				Ny: ny(
					maneder(domain.ManedsPeriode(jan), 18000),
					maneder(domain.MustPeriode(jan.PlussManeder(1), periode.TilOgMed), 20000),
				),
				Opphor:  opphorResultat(t, jan.PlussManeder(1), opphor.Formue),
				Periode: periode,
			},
			want: []Utfall{OpphorErIkkeFraForsteManed, OpphorOgAndreEndringerIKombinasjon},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Vurder(tt.in))
		})
	}
}

func TestIkkeFraForsteManedFallsBackToPeriode(t *testing.T) {
	in := Input{
		Ny:      beregning.Ny(periode, nil, time.Now()),
		Opphor:  opphorResultat(t, jan, opphor.Uforhet),
		Periode: periode,
	}
	assert.False(t, ikkeFraForsteManed(in))

	in.Opphor = opphorResultat(t, jan.PlussManeder(3), opphor.Uforhet)
	assert.True(t, ikkeFraForsteManed(in))
}

func TestAndreEndringerTreatsMissingPriorMonthAsChanged(t *testing.T) {
	in := Input{
		Gjeldende: maneder(domain.ManedsPeriode(jan), 20000),
		Ny:        ny(maneder(domain.MustPeriode(jan, jan.PlussManeder(1)), 20000)),
		Opphor:    opphorResultat(t, periode.TilOgMed, opphor.Uforhet),
		Periode:   periode,
	}
	assert.True(t, andreEndringer(in))
}
