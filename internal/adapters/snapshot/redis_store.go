package snapshot

import (
	"context"
	"errors"
	"fmt"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/platform/obs"
	"ride-match-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each snapshot as a plain string value under "<Prefix>:<key>".
type RedisStore struct {
	Client *redis.Client
	Prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{Client: client, Prefix: prefix}
}

// OpenRedis connects to addr and verifies the connection with PING.
func OpenRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("open redis %q: ping: %w", addr, err)
	}
	return client, nil
}

func (s *RedisStore) redisKey(key string) string {
	if s.Prefix == "" {
		return key
	}
	return s.Prefix + ":" + key
}

func (s *RedisStore) Load(ctx context.Context, key string) (_ []byte, err error) {
	defer obs.Time(ctx, "snapshot.redis.Load")(&err)

	if s.Client == nil {
		return nil, errors.New("redis snapshot store: client is nil")
	}
	if err := checkKey(key); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	b, err := s.Client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("load snapshot %q: %w", key, domain.ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: redis get: %w", key, err)
	}
	return b, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, blob []byte) (err error) {
	defer obs.Time(ctx, "snapshot.redis.Save")(&err)

	if s.Client == nil {
		return errors.New("redis snapshot store: client is nil")
	}
	if err := checkKey(key); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	if err := s.Client.Set(ctx, s.redisKey(key), blob, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot %q: redis set: %w", key, err)
	}
	return nil
}

var _ ports.SnapshotStore = (*RedisStore)(nil)
