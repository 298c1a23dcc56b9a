package offsetstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	redisClient "github.com/go-redis/redis/v8"
)

// RedisStorage keeps values as plain Redis strings.
type RedisStorage struct {
	client *redisClient.Client
}

// RedisOptions configures NewRedisStorage.
type RedisOptions struct {
	URL      string
	Password string
	DB       int
	// DialTimeout bounds connection attempts; zero keeps the client default.
	DialTimeout time.Duration
}

// NewRedisStorage builds a client from a redis:// or rediss:// URL. Password
// and DB override the URL's values when set. No connection is made until the
// first command.
func NewRedisStorage(opts RedisOptions) (*RedisStorage, error) {
	parsed, err := redisClient.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.Password != "" {
		parsed.Password = opts.Password
	}
	if opts.DB != 0 {
		parsed.DB = opts.DB
	}
	if opts.DialTimeout > 0 {
		parsed.DialTimeout = opts.DialTimeout
		parsed.ReadTimeout = opts.DialTimeout
		parsed.WriteTimeout = opts.DialTimeout
	}
	parsed.MaxRetries = 1
	return &RedisStorage{client: redisClient.NewClient(parsed)}, nil
}

func (r *RedisStorage) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redisClient.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (r *RedisStorage) Write(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Update wraps the cycle in WATCH/MULTI. A concurrent change to key aborts
// the transaction with redis.TxFailedErr.
func (r *RedisStorage) Update(ctx context.Context, key string, fn UpdateFunc) error {
	err := r.client.Watch(ctx, func(tx *redisClient.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redisClient.Nil) {
			current = nil
		} else if err != nil {
			return err
		}
		next, write, err := fn(current)
		if err != nil || !write {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redisClient.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return fmt.Errorf("redis update %s: %w", key, err)
	}
	return nil
}

func (r *RedisStorage) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close closes the client's connection pool.
func (r *RedisStorage) Close() error {
	return r.client.Close()
}
