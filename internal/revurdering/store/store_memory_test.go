package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supstonad/internal/revurdering"
	"supstonad/pkg/domain"
	"supstonad/pkg/platform/sentinel"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2021, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("hent unknown returns not found", func(t *testing.T) {
		s := NewInMemoryStore()
		_, err := s.Hent(ctx, domain.NewRevurderingID())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("round trips through snapshot", func(t *testing.T) {
		s := NewInMemoryStore()
		r := nyRevurdering(t, domain.SakID(uuid.New()), now)
		require.NoError(t, s.Lagre(ctx, r))

		got, err := s.Hent(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, revurdering.TilstandOpprettet, got.Tilstand())
		assert.Equal(t, r.Behandling().Periode, got.Behandling().Periode)
	})

	t.Run("second open revurdering on same sak conflicts", func(t *testing.T) {
		s := NewInMemoryStore()
		sakID := domain.SakID(uuid.New())
		require.NoError(t, s.Lagre(ctx, nyRevurdering(t, sakID, now)))

		err := s.Lagre(ctx, nyRevurdering(t, sakID, now))
		assert.ErrorIs(t, err, sentinel.ErrConflict)
	})

	t.Run("avsluttet revurdering frees the sak", func(t *testing.T) {
		s := NewInMemoryStore()
		sakID := domain.SakID(uuid.New())
		first := nyRevurdering(t, sakID, now)
		require.NoError(t, s.Lagre(ctx, first))

		apen, err := s.HentApen(ctx, sakID)
		require.NoError(t, err)
		require.NotNil(t, apen)
		assert.Equal(t, first.ID, apen.Behandling().ID)

		require.NoError(t, s.Lagre(ctx, avsluttet(t, first)))
		apen, err = s.HentApen(ctx, sakID)
		require.NoError(t, err)
		assert.Nil(t, apen)

		second := nyRevurdering(t, sakID, now.Add(time.Hour))
		require.NoError(t, s.Lagre(ctx, second))

		alle, err := s.HentForSak(ctx, sakID)
		require.NoError(t, err)
		require.Len(t, alle, 2)
		assert.Equal(t, revurdering.TilstandAvsluttet, alle[0].Tilstand())
		assert.Equal(t, second.ID, alle[1].Behandling().ID)
	})
}
