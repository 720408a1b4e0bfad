package avkorting

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supstonad/internal/opphor"
	"supstonad/internal/simulering"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

var (
	now     = time.Date(2021, 6, 15, 10, 0, 0, 0, time.UTC)
	jan     = domain.NyManed(2021, time.January)
	periode = domain.MustPeriode(jan, domain.NyManed(2021, time.December))
	sakID   = domain.SakID(uuid.New())
)

func simuleringMedFeilutbetaling(maneder ...domain.Maned) *simulering.Simulering {
	sim := &simulering.Simulering{Periode: periode}
	for _, m := range periode.Maneder() {
		sm := simulering.SimulertManed{Maned: m, TidligereUtbetalt: 20000}
		for _, feil := range maneder {
			if feil == m {
				sm.Feilutbetaling = 20000
			}
		}
		sim.Maneder = append(sim.Maneder, sm)
	}
	return sim
}

func opphorPaGrunn(t *testing.T, g opphor.Grunn) opphor.Resultat {
	t.Helper()
	res, err := opphor.Opphor([]opphor.Grunn{g}, jan)
	require.NoError(t, err)
	return res
}

func utestaendeVarsel(t *testing.T, feil ...domain.Maned) Avkortingsvarsel {
	t.Helper()
	var liste simulering.ManedBelopListe
	for _, m := range feil {
		liste = append(liste, simulering.ManedBelop{Maned: m, Belop: 20000})
	}
	v, err := Nytt(sakID, domain.NewRevurderingID(), liste, now)
	require.NoError(t, err)
	v, err = v.SkalAvkortes(now)
	require.NoError(t, err)
	return v
}

func TestVarselLifecycle(t *testing.T) {
	v, err := Nytt(sakID, domain.NewRevurderingID(), simulering.ManedBelopListe{{Maned: jan, Belop: 100}}, now)
	require.NoError(t, err)
	assert.Equal(t, TilstandOpprettet, v.Tilstand)
	assert.False(t, v.ErUtestaende())

	skal, err := v.SkalAvkortes(now)
	require.NoError(t, err)
	assert.True(t, skal.ErUtestaende())
	assert.Equal(t, TilstandOpprettet, v.Tilstand, "original value unchanged")

	behandling := uuid.New()
	avkortet, err := skal.Avkortet(behandling, now)
	require.NoError(t, err)
	assert.Equal(t, behandling, avkortet.BehandletAv)

	_, err = avkortet.Annuller(uuid.New(), now)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	_, err = Nytt(sakID, domain.NewRevurderingID(), nil, now)
	require.Error(t, err)
	assert.Equal(t, TilstandIngen, TilstandFor(nil))
}

func TestVurder(t *testing.T) {
	t.Run("no outstanding varsel", func(t *testing.T) {
		u, err := Vurder(nil, periode)
		require.NoError(t, err)
		assert.IsType(t, UhandtertIngenUtestaende{}, u)
	})

	t.Run("outstanding varsel inside periode", func(t *testing.T) {
		v := utestaendeVarsel(t, jan.PlussManeder(2), jan.PlussManeder(3))
		u, err := Vurder(&v, periode)
		require.NoError(t, err)
		assert.IsType(t, UhandtertUtestaendeAvkorting{}, u)
	})

	t.Run("outstanding varsel outside periode", func(t *testing.T) {
		v := utestaendeVarsel(t, jan.PlussManeder(-3))
		u, err := Vurder(&v, periode)
		require.NoError(t, err)
		assert.IsType(t, UhandtertKanIkkeHandtere{}, u)
	})

	t.Run("partly overlapping varsel must be revurdert in its entirety", func(t *testing.T) {
		v := utestaendeVarsel(t, jan.PlussManeder(-1), jan)
		_, err := Vurder(&v, periode)
		require.Error(t, err)
		assert.Equal(t, "utestaende_avkorting_ma_revurderes_i_sin_helhet", dErrors.GetReason(err))
	})

	t.Run("varsel not outstanding is an invariant violation", func(t *testing.T) {
		v, err := Nytt(sakID, domain.NewRevurderingID(), simulering.ManedBelopListe{{Maned: jan, Belop: 1}}, now)
		require.NoError(t, err)
		_, err = Vurder(&v, periode)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func TestNyttVarsel(t *testing.T) {
	revurderingID := domain.NewRevurderingID()

	t.Run("utenlandsopphold with feilutbetaling creates varsel", func(t *testing.T) {
		nytt, err := NyttVarsel(opphorPaGrunn(t, opphor.Utenlandsopphold), simuleringMedFeilutbetaling(jan, jan.PlussManeder(1)), sakID, revurderingID, now)
		require.NoError(t, err)
		require.NotNil(t, nytt)
		assert.Equal(t, 40000, nytt.Belop())
		assert.Equal(t, TilstandOpprettet, nytt.Tilstand)
	})

	t.Run("other grounds create nothing", func(t *testing.T) {
		nytt, err := NyttVarsel(opphorPaGrunn(t, opphor.Uforhet), simuleringMedFeilutbetaling(jan), sakID, revurderingID, now)
		require.NoError(t, err)
		assert.Nil(t, nytt)
	})

	t.Run("no feilutbetaling creates nothing", func(t *testing.T) {
		nytt, err := NyttVarsel(opphorPaGrunn(t, opphor.Utenlandsopphold), simuleringMedFeilutbetaling(), sakID, revurderingID, now)
		require.NoError(t, err)
		assert.Nil(t, nytt)
	})
}

func TestHandterStages(t *testing.T) {
	nytt, err := Nytt(sakID, domain.NewRevurderingID(), simulering.ManedBelopListe{{Maned: jan, Belop: 20000}}, now)
	require.NoError(t, err)
	utestaende := utestaendeVarsel(t, jan.PlussManeder(1))

	tests := []struct {
		name    string
		start   Uhandtert
		nytt    *Avkortingsvarsel
		variant string
	}{
		{"ingen utestaende, ingen ny", UhandtertIngenUtestaende{}, nil, VariantIngenNyEllerUtestaende},
		{"ingen utestaende, ny", UhandtertIngenUtestaende{}, &nytt, VariantOpprettNyttAvkortingsvarsel},
		{"utestaende, ingen ny", UhandtertUtestaendeAvkorting{Varsel: utestaende}, nil, VariantAnnullerUtestaende},
		{"utestaende, ny", UhandtertUtestaendeAvkorting{Varsel: utestaende}, &nytt, VariantOpprettNyttAvkortingsvarselOgAnnullerUtestaende},
		{"kan ikke handtere, ny", UhandtertKanIkkeHandtere{Varsel: utestaende}, &nytt, VariantKanIkkeHandteres},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handtert := tt.start.Handter().Handter(tt.nytt)
			assert.Equal(t, tt.variant, handtert.Variant())
			assert.Equal(t, tt.start, handtert.Uhandtert(), "stage remembers its origin")

			iverksatt, err := handtert.Iverksett(uuid.New(), now)
			require.NoError(t, err)
			assert.Equal(t, tt.variant, iverksatt.Variant())
		})
	}
}

// An opphør on foreign residence creates a varsel; a later revurdering that
// turns the case back to innvilget before the varsel is consumed annuls it.
func TestOpphorOgGjenopptakAnnullererVarsel(t *testing.T) {
	forsteRevurdering := domain.NewRevurderingID()
	nytt, err := NyttVarsel(opphorPaGrunn(t, opphor.Utenlandsopphold), simuleringMedFeilutbetaling(jan, jan.PlussManeder(1)), sakID, forsteRevurdering, now)
	require.NoError(t, err)
	require.NotNil(t, nytt)

	handtert := UhandtertIngenUtestaende{}.Handter().Handter(nytt)
	require.IsType(t, HandtertOpprettNyttAvkortingsvarsel{}, handtert)
	iverksatt, err := handtert.Iverksett(uuid.UUID(forsteRevurdering), now)
	require.NoError(t, err)
	effekter := iverksatt.Effekter()
	require.NotNil(t, effekter.Opprettes)
	assert.Equal(t, TilstandSkalAvkortes, effekter.Opprettes.Tilstand)

	andreRevurdering := domain.NewRevurderingID()
	uhandtert, err := Vurder(effekter.Opprettes, periode)
	require.NoError(t, err)
	innvilget := uhandtert.Handter().Handter(nil)
	require.IsType(t, HandtertAnnullerUtestaende{}, innvilget)

	iverksatt, err = innvilget.Iverksett(uuid.UUID(andreRevurdering), now)
	require.NoError(t, err)
	annullert := iverksatt.Effekter().Annulleres
	require.NotNil(t, annullert)
	assert.Equal(t, TilstandAnnullert, annullert.Tilstand)
	assert.Equal(t, uuid.UUID(andreRevurdering), annullert.BehandletAv)
}

func TestSnapshotRoundTrip(t *testing.T) {
	nytt, err := Nytt(sakID, domain.NewRevurderingID(), simulering.ManedBelopListe{{Maned: jan, Belop: 20000}}, now)
	require.NoError(t, err)
	utestaende := utestaendeVarsel(t, jan.PlussManeder(1))

	handtert := UhandtertUtestaendeAvkorting{Varsel: utestaende}.Handter().Handter(&nytt)
	back, err := SnapshotAvHandtert(handtert).Handtert()
	require.NoError(t, err)
	assert.Equal(t, handtert, back)

	delvis := UhandtertKanIkkeHandtere{Varsel: utestaende}.Handter()
	backDelvis, err := SnapshotAvDelvis(delvis).DelvisHandtert()
	require.NoError(t, err)
	assert.Equal(t, delvis, backDelvis)

	iverksatt, err := handtert.Iverksett(uuid.New(), now)
	require.NoError(t, err)
	backIverksatt, err := SnapshotAvIverksatt(iverksatt).Iverksatt()
	require.NoError(t, err)
	assert.Equal(t, iverksatt, backIverksatt)

	_, err = Snapshot{Variant: VariantAnnullerUtestaende}.Handtert()
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}
