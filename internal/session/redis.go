package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cristianadrielbraun/qrstudio/internal/settings"
)

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
)

// RedisConfig controls ConnectRedis.
type RedisConfig struct {
	URL            string
	RetryAttempts  int
	RetryInterval  time.Duration
	ConnectTimeout time.Duration
}

// ConnectRedis opens a client and pings it up to RetryAttempts times,
// waiting RetryInterval between attempts, within ConnectTimeout.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := range attempts {
		client := redis.NewClient(opts)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, errors.Join(ErrRedisNotReady, lastErr)
}

// RedisStore keeps JSON snapshots under prefix+token with a sliding TTL.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisStore returns a store backed by client.
func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) key(token string) string { return r.prefix + token }

func (r *RedisStore) Load(ctx context.Context, token string) (*settings.Store, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	data, err := r.client.GetEx(ctx, r.key(token), r.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var snap settings.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return settings.Restore(snap), nil
}

func (r *RedisStore) Save(ctx context.Context, token string, s *settings.Store) error {
	if token == "" || s == nil {
		return ErrInvalidToken
	}

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(token), data, r.ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.key(token)).Err()
}
