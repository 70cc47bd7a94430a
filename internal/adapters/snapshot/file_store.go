package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/platform/obs"
	"ride-match-service/internal/ports"
	"strings"
)

// FileStore keeps one JSON file per key under Dir, named "<Prefix>_<key>.json".
type FileStore struct {
	Dir    string
	Prefix string
}

func NewFileStore(dir, prefix string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("file snapshot store: dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file snapshot store: create dir %q: %w", dir, err)
	}
	return &FileStore{Dir: dir, Prefix: prefix}, nil
}

func (s *FileStore) path(key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	if strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid snapshot key %q", key)
	}

	name := key + ".json"
	if s.Prefix != "" {
		name = s.Prefix + "_" + name
	}
	return filepath.Join(s.Dir, name), nil
}

func (s *FileStore) Load(ctx context.Context, key string) (_ []byte, err error) {
	defer obs.Time(ctx, "snapshot.file.Load")(&err)

	p, err := s.path(key)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	b, err := readFile(p)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	if b == nil {
		return nil, fmt.Errorf("load snapshot %q: %w", key, domain.ErrSnapshotNotFound)
	}
	return b, nil
}

func (s *FileStore) Save(ctx context.Context, key string, blob []byte) (err error) {
	defer obs.Time(ctx, "snapshot.file.Save")(&err)

	p, err := s.path(key)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	if err := writeFile(p, blob, 0o644); err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

// readFile returns nil, nil when path does not exist.
func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// writeFile writes b to a temp file in the target directory, then renames it over path.
func writeFile(path string, b []byte, mode os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("snapshot key must not be empty")
	}
	return nil
}

var _ ports.SnapshotStore = (*FileStore)(nil)
