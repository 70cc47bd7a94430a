package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/platform/db"
	"ride-match-service/internal/platform/obs"
	"ride-match-service/internal/ports"
	"time"
)

// SQLStore keeps snapshots in the snapshots table. The schema is created by
// repositories.InitSchema.
type SQLStore struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLStore(conn *sql.DB, dialect db.Dialect) *SQLStore {
	return &SQLStore{DB: conn, Dialect: dialect}
}

func (s *SQLStore) Load(ctx context.Context, key string) (_ []byte, err error) {
	defer obs.Time(ctx, "snapshot.sql.Load")(&err)

	if s.DB == nil {
		return nil, errors.New("sql snapshot store: db is nil")
	}
	if err := checkKey(key); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	q := s.Dialect.Rebind(`SELECT payload FROM snapshots WHERE key = ?;`)

	var payload []byte
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load snapshot %q: %w", key, domain.ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: query snapshots table: %w", key, err)
	}
	return payload, nil
}

func (s *SQLStore) Save(ctx context.Context, key string, blob []byte) (err error) {
	defer obs.Time(ctx, "snapshot.sql.Save")(&err)

	if s.DB == nil {
		return errors.New("sql snapshot store: db is nil")
	}
	if err := checkKey(key); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	q := s.Dialect.Rebind(`
	INSERT INTO snapshots (key, payload, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT (key) DO UPDATE
	SET payload = EXCLUDED.payload,
		updated_at = EXCLUDED.updated_at;
	`)

	if _, err := s.DB.ExecContext(ctx, q, key, blob, time.Now().Unix()); err != nil {
		return fmt.Errorf("save snapshot %q: upsert: %w", key, err)
	}
	return nil
}

var _ ports.SnapshotStore = (*SQLStore)(nil)
