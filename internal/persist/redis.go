package persist

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// keyPrefix matches the legacy save key; the profile id is appended
// so profiles stay independent.
const keyPrefix = "lootBoxGame"

// RedisStore persists a profile's blob under lootBoxGame:<profile>.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, profileID string) *RedisStore {
	return &RedisStore{client: client, key: keyPrefix + ":" + profileID}
}

func (r *RedisStore) Load(ctx context.Context) ([]byte, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *RedisStore) Save(ctx context.Context, blob []byte) error {
	return r.client.Set(ctx, r.key, blob, 0).Err()
}
