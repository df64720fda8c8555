package optionstore

import (
	"context"
	"sort"

	"github.com/go-errors/errors"
	"github.com/redis/go-redis/v9"
	"github.com/xompass/vsaas-mongo/database"
	"github.com/xompass/vsaas-mongo/helpers"
)

const DefaultRedisKey = "vsaas:update-options"

// RedisStore keeps every preset as a field of a single redis hash.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

/**
 * NewDefaultRedisStore connects using REDIS_ADDR, REDIS_PASSWORD and REDIS_DB
 * and checks the connection.
 */
func NewDefaultRedisStore(ctx context.Context) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     helpers.GetEnv("REDIS_ADDR", "localhost:6379"),
		Password: helpers.GetEnv("REDIS_PASSWORD", ""),
		DB:       helpers.GetEnvInt("REDIS_DB", 0),
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Errorf("cannot connect to redis: %v", err)
	}

	return NewRedisStore(client, helpers.GetEnv("REDIS_UPDATE_OPTIONS_KEY", DefaultRedisKey)), nil
}

func (receiver *RedisStore) Save(ctx context.Context, name string, opts *database.UpdateOptions) error {
	data, err := encode(name, opts)
	if err != nil {
		return err
	}
	return receiver.client.HSet(ctx, receiver.key, name, data).Err()
}

func (receiver *RedisStore) Load(ctx context.Context, name string) (*database.UpdateOptions, error) {
	data, err := receiver.client.HGet(ctx, receiver.key, name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPresetNotFound
	}
	if err != nil {
		return nil, err
	}
	return database.ParseUpdateOptions(data)
}

func (receiver *RedisStore) Delete(ctx context.Context, name string) error {
	removed, err := receiver.client.HDel(ctx, receiver.key, name).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrPresetNotFound
	}
	return nil
}

func (receiver *RedisStore) List(ctx context.Context) ([]string, error) {
	names, err := receiver.client.HKeys(ctx, receiver.key).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (receiver *RedisStore) Close() error {
	return receiver.client.Close()
}
