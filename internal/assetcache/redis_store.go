package assetcache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis/v8"
)

const (
	entryPrefix = "assetcache:"
	genSetKey   = "assetcache:generations"
)

// RedisStore keeps entries under assetcache:<generation>:<url>, with the
// known generation names tracked in a set.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func entryKey(generation, url string) string {
	return entryPrefix + generation + ":" + url
}

func (s *RedisStore) Get(ctx context.Context, generation, url string) (*Entry, bool, error) {
	data, err := s.client.Get(ctx, entryKey(generation, url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false, err
	}
	return &e, true, nil
}

func (s *RedisStore) Put(ctx context.Context, generation, url string, e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, entryKey(generation, url), data, 0)
	pipe.SAdd(ctx, genSetKey, generation)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Generations(ctx context.Context) ([]string, error) {
	return s.client.SMembers(ctx, genSetKey).Result()
}

func (s *RedisStore) DeleteGeneration(ctx context.Context, generation string) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, entryPrefix+generation+":*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return s.client.SRem(ctx, genSetKey, generation).Err()
}

var _ Store = (*RedisStore)(nil)
