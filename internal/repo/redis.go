package repo

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/safari-hire/dashboard/internal/domain"
)

// RedisOptions are the connection settings for the Redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects to Redis and pings it with a short timeout.
// Unlike a cache, the store cannot run without its backend, so a failed
// ping is returned as an error.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "repo.NewRedisClient: ping %s", opts.Addr)
	}
	return client, nil
}

// redisKV stores each key as a plain string value under "<prefix>:<key>".
// Values never expire.
type redisKV struct {
	rdb    redis.Cmdable
	prefix string
}

// NewRedisKV returns a KV over rdb. prefix namespaces every key; an empty
// prefix stores keys as-is.
func NewRedisKV(rdb redis.Cmdable, prefix string) KV {
	return &redisKV{rdb: rdb, prefix: prefix}
}

func (r *redisKV) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errors.Wrapf(domain.ErrNotFound, "repo.redisKV.Get: %q", key)
	}
	if err != nil {
		return nil, errors.Wrap(err, "repo.redisKV.Get")
	}
	return b, nil
}

func (r *redisKV) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return errors.Wrap(err, "repo.redisKV.Put")
	}
	if err := r.rdb.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return errors.Wrap(err, "repo.redisKV.Put")
	}
	return nil
}

func (r *redisKV) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.key(key)).Err(); err != nil {
		return errors.Wrap(err, "repo.redisKV.Delete")
	}
	return nil
}
