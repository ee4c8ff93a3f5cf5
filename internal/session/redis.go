package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cempagamez/internal/storefront"
)

const (
	keyPrefix     = "session:"
	updateRetries = 5
)

var ErrConflict = errors.New("session changed concurrently")

// RedisStore keeps each session as one JSON value whose TTL is refreshed on write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// OpenRedis connects to url (redis://...) and verifies the connection.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (r *RedisStore) Get(ctx context.Context, sid string) (storefront.AppState, error) {
	return r.get(ctx, r.client, sid)
}

// stringGetter is satisfied by both *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *RedisStore) get(ctx context.Context, c stringGetter, sid string) (storefront.AppState, error) {
	data, err := c.Get(ctx, keyPrefix+sid).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return storefront.AppState{}, ErrNotFound
		}
		return storefront.AppState{}, fmt.Errorf("redis get session: %w", err)
	}
	var s storefront.AppState
	if err := json.Unmarshal(data, &s); err != nil {
		return storefront.AppState{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, sid string, s storefront.AppState) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+sid, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Update uses WATCH/MULTI so two requests of the same session cannot lose each
// other's changes; it retries a few times before giving up with ErrConflict.
func (r *RedisStore) Update(ctx context.Context, sid string, fn func(storefront.AppState) storefront.AppState) (storefront.AppState, error) {
	key := keyPrefix + sid
	var next storefront.AppState

	txf := func(tx *redis.Tx) error {
		cur, err := r.get(ctx, tx, sid)
		if errors.Is(err, ErrNotFound) {
			cur = storefront.NewState()
		} else if err != nil {
			return err
		}
		next = fn(cur)
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < updateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return storefront.AppState{}, fmt.Errorf("redis update session: %w", err)
		}
	}
	return storefront.AppState{}, ErrConflict
}
