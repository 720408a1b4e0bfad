package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"supstonad/internal/avkorting"
	"supstonad/pkg/domain"
	"supstonad/pkg/platform/postgres"
	"supstonad/pkg/platform/sentinel"
)

// PostgresStore persists varsler in the avkortingsvarsel table. Writes join
// the transaction carried by the context.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectVarsel = `
	SELECT id, sak_id, revurdering_id, opprettet, endret, tilstand, feilutbetaling, behandlet_av
	FROM avkortingsvarsel
`

func (s *PostgresStore) Lagre(ctx context.Context, v avkorting.Avkortingsvarsel) error {
	feilutbetaling, err := json.Marshal(v.Feilutbetaling)
	if err != nil {
		return fmt.Errorf("marshal feilutbetaling: %w", err)
	}
	var behandletAv *uuid.UUID
	if v.BehandletAv != uuid.Nil {
		behandletAv = &v.BehandletAv
	}
	query := `
		INSERT INTO avkortingsvarsel (id, sak_id, revurdering_id, opprettet, endret, tilstand, feilutbetaling, behandlet_av)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			endret = EXCLUDED.endret,
			tilstand = EXCLUDED.tilstand,
			behandlet_av = EXCLUDED.behandlet_av
	`
	_, err = postgres.Executor(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(v.ID),
		uuid.UUID(v.SakID),
		uuid.UUID(v.RevurderingID),
		v.Opprettet,
		v.Endret,
		string(v.Tilstand),
		feilutbetaling,
		behandletAv,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save avkortingsvarsel: %w", err)
	}
	return nil
}

// Erstatt writes the annulment first so the partial unique index never sees
// two outstanding varsler. Callers run it inside a transaction.
func (s *PostgresStore) Erstatt(ctx context.Context, annulleres, opprettes *avkorting.Avkortingsvarsel) error {
	if annulleres != nil {
		if err := s.Lagre(ctx, *annulleres); err != nil {
			return err
		}
	}
	if opprettes != nil {
		return s.Lagre(ctx, *opprettes)
	}
	return nil
}

func (s *PostgresStore) Hent(ctx context.Context, id domain.AvkortingsvarselID) (*avkorting.Avkortingsvarsel, error) {
	row := postgres.Executor(ctx, s.db).QueryRowContext(ctx, selectVarsel+`WHERE id = $1`, uuid.UUID(id))
	v, err := scanVarsel(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find avkortingsvarsel: %w", err)
	}
	return v, nil
}

func (s *PostgresStore) HentUtestaende(ctx context.Context, sakID domain.SakID) (*avkorting.Avkortingsvarsel, error) {
	row := postgres.Executor(ctx, s.db).QueryRowContext(ctx,
		selectVarsel+`WHERE sak_id = $1 AND tilstand = $2`,
		uuid.UUID(sakID), string(avkorting.TilstandSkalAvkortes))
	v, err := scanVarsel(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find utestaende avkortingsvarsel: %w", err)
	}
	return v, nil
}

func scanVarsel(row *sql.Row) (*avkorting.Avkortingsvarsel, error) {
	var (
		v              avkorting.Avkortingsvarsel
		id, sak, rev   uuid.UUID
		tilstand       string
		feilutbetaling []byte
		behandletAv    uuid.NullUUID
	)
	if err := row.Scan(&id, &sak, &rev, &v.Opprettet, &v.Endret, &tilstand, &feilutbetaling, &behandletAv); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(feilutbetaling, &v.Feilutbetaling); err != nil {
		return nil, fmt.Errorf("unmarshal feilutbetaling: %w", err)
	}
	v.ID = domain.AvkortingsvarselID(id)
	v.SakID = domain.SakID(sak)
	v.RevurderingID = domain.RevurderingID(rev)
	v.Tilstand = avkorting.Tilstand(tilstand)
	if behandletAv.Valid {
		v.BehandletAv = behandletAv.UUID
	}
	return &v, nil
}
