package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/permgroup/pkg/cache"
)

const redisKeyPrefix = "permgroup:group:"

// RedisStore keeps each record as a JSON string under its own key.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis at addr, retrying the initial ping with
// backoff.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	err := cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return cache.Retryable(fmt.Errorf("ping redis %s: %w", addr, err))
		}
		return nil
	})
	if err != nil {
		client.Close()
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Record, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, storageErr(err, "get %s", id)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, storageErr(err, "parse record %s", id)
	}
	return &rec, nil
}

func (s *RedisStore) Put(ctx context.Context, rec *Record) error {
	stamp(rec)
	data, err := json.Marshal(rec)
	if err != nil {
		return storageErr(err, "marshal record")
	}
	if err := s.client.Set(ctx, redisKeyPrefix+rec.ID, data, 0).Err(); err != nil {
		return storageErr(err, "put %s", rec.ID)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		return storageErr(err, "delete %s", id)
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]*Record, error) {
	var out []*Record
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, storageErr(err, "get %s", iter.Val())
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, storageErr(err, "parse record %s", iter.Val())
		}
		out = append(out, &rec)
	}
	if err := iter.Err(); err != nil {
		return nil, storageErr(err, "list")
	}
	sortRecords(out)
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
