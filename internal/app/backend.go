package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-match-service/internal/adapters/repositories"
	"ride-match-service/internal/adapters/snapshot"
	"ride-match-service/internal/config"
	"ride-match-service/internal/platform/db"
	"ride-match-service/internal/ports"
	"strings"
)

// Backend is an opened snapshot store plus the SQL connection behind it, if any.
type Backend struct {
	Store   ports.SnapshotStore
	DB      *sql.DB
	Dialect db.Dialect

	closers []func() error
}

// OpenBackend opens the snapshot store selected by cfg.SnapshotBackend. SQL backends
// get their schema created on open.
func OpenBackend(ctx context.Context, cfg config.Config) (*Backend, error) {
	b := &Backend{}

	switch cfg.SnapshotBackend {
	case "", "file":
		s, err := snapshot.NewFileStore(cfg.SnapshotDir, cfg.SnapshotPrefix)
		if err != nil {
			return nil, fmt.Errorf("open backend: %w", err)
		}
		b.Store = s

	case "memory":
		b.Store = snapshot.NewMemoryStore()

	case "sqlite":
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open backend: %w", err)
		}
		b.useSQL(conn, db.SQLite)

	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, errors.New("open backend: DATABASE_URL is required for the postgres backend")
		}
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open backend: %w", err)
		}
		b.useSQL(conn, db.Postgres)

	case "redis":
		client, err := snapshot.OpenRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("open backend: %w", err)
		}
		b.closers = append(b.closers, client.Close)
		b.Store = snapshot.NewRedisStore(client, cfg.SnapshotPrefix)

	default:
		return nil, fmt.Errorf("open backend: unknown SNAPSHOT_BACKEND %q", cfg.SnapshotBackend)
	}

	if b.DB != nil {
		if err := repositories.InitSchema(b.DB, b.Dialect); err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("open backend: %w", err)
		}
	}

	return b, nil
}

func (b *Backend) useSQL(conn *sql.DB, dialect db.Dialect) {
	b.DB = conn
	b.Dialect = dialect
	b.closers = append(b.closers, conn.Close)
	b.Store = snapshot.NewSQLStore(conn, dialect)
}

// Close releases connections in reverse order of opening.
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}
