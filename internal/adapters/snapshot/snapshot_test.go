package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"ride-match-service/internal/adapters/repositories"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/platform/db"
	"ride-match-service/internal/ports"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// exerciseStore checks the behavior every snapshot store shares.
func exerciseStore(t *testing.T, s ports.SnapshotStore) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Load(ctx, "offers"); !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Fatalf("load missing: expected ErrSnapshotNotFound, got %v", err)
	}

	if err := s.Save(ctx, "offers", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, "offers", []byte(`[{"id":"2"}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := s.Save(ctx, "transit", []byte(`[]`)); err != nil {
		t.Fatalf("save transit: %v", err)
	}

	got, err := s.Load(ctx, "offers")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `[{"id":"2"}]` {
		t.Fatalf("offers = %s, want latest blob", got)
	}

	got, err = s.Load(ctx, "transit")
	if err != nil {
		t.Fatalf("load transit: %v", err)
	}
	if string(got) != `[]` {
		t.Fatalf("transit = %s, want []", got)
	}

	if err := s.Save(ctx, "", []byte(`x`)); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, "dubaiRideShare")
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	exerciseStore(t, s)

	if _, err := os.Stat(filepath.Join(dir, "dubaiRideShare_offers.json")); err != nil {
		t.Fatalf("expected prefixed snapshot file: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 files (no temp leftovers), got %d", len(entries))
	}
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), "")
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	if err := s.Save(context.Background(), "../escape", []byte(`x`)); err == nil {
		t.Fatal("expected error for key with path separator")
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreCopiesBlobs(t *testing.T) {
	s := NewMemoryStore()
	blob := []byte(`[1]`)
	if err := s.Save(context.Background(), "k", blob); err != nil {
		t.Fatalf("save: %v", err)
	}
	blob[1] = '9'

	got, _ := s.Load(context.Background(), "k")
	if string(got) != `[1]` {
		t.Fatalf("stored blob aliased caller slice: %s", got)
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseStore(t, NewRedisStore(client, "dubaiRideShare"))

	if !mr.Exists("dubaiRideShare:offers") {
		t.Fatal("expected prefixed redis key dubaiRideShare:offers")
	}
}

func TestOpenRedisFailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := OpenRedis(context.Background(), addr); err == nil {
		t.Fatal("expected ping error")
	}
}

func TestSQLStoreSQLite(t *testing.T) {
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := repositories.InitSchema(conn, db.SQLite); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	exerciseStore(t, NewSQLStore(conn, db.SQLite))
}
