package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"supstonad/internal/revurdering"
	"supstonad/pkg/domain"
	"supstonad/pkg/platform/postgres"
	"supstonad/pkg/platform/sentinel"
)

// PostgresStore persists revurderinger as JSON snapshots in the revurdering
// table. The partial unique index on open rows enforces one open
// revurdering per sak.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Lagre(ctx context.Context, r revurdering.Revurdering) error {
	snapshot := revurdering.TilSnapshot(r)
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal revurdering: %w", err)
	}
	f := r.Behandling()
	query := `
		INSERT INTO revurdering (id, sak_id, tilstand, apen, opprettet, endret, versjon, data)
		VALUES ($1, $2, $3, $4, $5, $6, 1, $7)
		ON CONFLICT (id) DO UPDATE SET
			tilstand = EXCLUDED.tilstand,
			apen = EXCLUDED.apen,
			endret = EXCLUDED.endret,
			versjon = revurdering.versjon + 1,
			data = EXCLUDED.data
	`
	_, err = postgres.Executor(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(f.ID),
		uuid.UUID(f.SakID),
		string(snapshot.Tilstand),
		revurdering.ErApen(r),
		f.Opprettet,
		time.Now(),
		data,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save revurdering: %w", err)
	}
	return nil
}

func (s *PostgresStore) Hent(ctx context.Context, id domain.RevurderingID) (revurdering.Revurdering, error) {
	var data []byte
	err := postgres.Executor(ctx, s.db).
		QueryRowContext(ctx, `SELECT data FROM revurdering WHERE id = $1`, uuid.UUID(id)).
		Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find revurdering: %w", err)
	}
	return fraData(data)
}

func (s *PostgresStore) HentForSak(ctx context.Context, sakID domain.SakID) ([]revurdering.Revurdering, error) {
	rows, err := postgres.Executor(ctx, s.db).QueryContext(ctx,
		`SELECT data FROM revurdering WHERE sak_id = $1 ORDER BY opprettet`, uuid.UUID(sakID))
	if err != nil {
		return nil, fmt.Errorf("list revurderinger: %w", err)
	}
	defer rows.Close()

	var out []revurdering.Revurdering
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan revurdering: %w", err)
		}
		r, err := fraData(data)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list revurderinger: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) HentApen(ctx context.Context, sakID domain.SakID) (revurdering.Revurdering, error) {
	var data []byte
	err := postgres.Executor(ctx, s.db).
		QueryRowContext(ctx, `SELECT data FROM revurdering WHERE sak_id = $1 AND apen`, uuid.UUID(sakID)).
		Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find open revurdering: %w", err)
	}
	return fraData(data)
}

func fraData(data []byte) (revurdering.Revurdering, error) {
	var snapshot revurdering.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal revurdering: %w", err)
	}
	return revurdering.FraSnapshot(snapshot)
}
