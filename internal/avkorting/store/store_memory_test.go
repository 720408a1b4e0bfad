package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supstonad/internal/avkorting"
	"supstonad/internal/simulering"
	"supstonad/pkg/domain"
	"supstonad/pkg/platform/sentinel"
)

func nyttVarsel(t *testing.T, sakID domain.SakID) avkorting.Avkortingsvarsel {
	t.Helper()
	v, err := avkorting.Nytt(sakID, domain.NewRevurderingID(),
		simulering.ManedBelopListe{{Maned: domain.NyManed(2021, time.March), Belop: 5000}}, time.Now())
	require.NoError(t, err)
	return v
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	sakID := domain.SakID(uuid.New())

	t.Run("hent unknown returns not found", func(t *testing.T) {
		s := NewInMemoryStore()
		_, err := s.Hent(ctx, domain.NewAvkortingsvarselID())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("only outstanding varsler are returned as utestaende", func(t *testing.T) {
		s := NewInMemoryStore()
		v := nyttVarsel(t, sakID)
		require.NoError(t, s.Lagre(ctx, v))

		utestaende, err := s.HentUtestaende(ctx, sakID)
		require.NoError(t, err)
		assert.Nil(t, utestaende)

		v, err = v.SkalAvkortes(time.Now())
		require.NoError(t, err)
		require.NoError(t, s.Lagre(ctx, v))

		utestaende, err = s.HentUtestaende(ctx, sakID)
		require.NoError(t, err)
		require.NotNil(t, utestaende)
		assert.Equal(t, v.ID, utestaende.ID)
	})

	t.Run("second outstanding varsel on same sak conflicts", func(t *testing.T) {
		s := NewInMemoryStore()
		first, err := nyttVarsel(t, sakID).SkalAvkortes(time.Now())
		require.NoError(t, err)
		require.NoError(t, s.Lagre(ctx, first))

		second, err := nyttVarsel(t, sakID).SkalAvkortes(time.Now())
		require.NoError(t, err)
		assert.ErrorIs(t, s.Lagre(ctx, second), sentinel.ErrConflict)

		annullert, err := first.Annuller(uuid.New(), time.Now())
		require.NoError(t, err)
		require.NoError(t, s.Lagre(ctx, annullert))
		assert.NoError(t, s.Lagre(ctx, second))
	})

	t.Run("erstatt annuls and stores together", func(t *testing.T) {
		s := NewInMemoryStore()
		gammel, err := nyttVarsel(t, sakID).SkalAvkortes(time.Now())
		require.NoError(t, err)
		require.NoError(t, s.Lagre(ctx, gammel))

		annullert, err := gammel.Annuller(uuid.New(), time.Now())
		require.NoError(t, err)
		ny, err := nyttVarsel(t, sakID).SkalAvkortes(time.Now())
		require.NoError(t, err)
		require.NoError(t, s.Erstatt(ctx, &annullert, &ny))

		utestaende, err := s.HentUtestaende(ctx, sakID)
		require.NoError(t, err)
		require.NotNil(t, utestaende)
		assert.Equal(t, ny.ID, utestaende.ID)
	})

	t.Run("erstatt writes nothing when the new varsel conflicts", func(t *testing.T) {
		s := NewInMemoryStore()
		forste, err := nyttVarsel(t, sakID).SkalAvkortes(time.Now())
		require.NoError(t, err)
		require.NoError(t, s.Lagre(ctx, forste))
		annen := nyttVarsel(t, sakID)
		require.NoError(t, s.Lagre(ctx, annen))

		annullert, err := annen.Annuller(uuid.New(), time.Now())
		require.NoError(t, err)
		ny, err := nyttVarsel(t, sakID).SkalAvkortes(time.Now())
		require.NoError(t, err)
		assert.ErrorIs(t, s.Erstatt(ctx, &annullert, &ny), sentinel.ErrConflict)

		lagret, err := s.Hent(ctx, annen.ID)
		require.NoError(t, err)
		assert.Equal(t, annen.Tilstand, lagret.Tilstand, "annulment is not applied")
		_, err = s.Hent(ctx, ny.ID)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("stored values are isolated from callers", func(t *testing.T) {
		s := NewInMemoryStore()
		v := nyttVarsel(t, sakID)
		require.NoError(t, s.Lagre(ctx, v))
		v.Feilutbetaling[0].Belop = 1

		got, err := s.Hent(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, 5000, got.Feilutbetaling[0].Belop)
	})
}
