package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisKeyPrefix = "ovumcalendar:kv:"

// RedisKVStore keeps each record under ovumcalendar:kv:<namespace>:<key>.
type RedisKVStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisClient(addr string, password string, database int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	})
}

func NewRedisKVStore(client *redis.Client, logger *zap.Logger) *RedisKVStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisKVStore{client: client, logger: logger}
}

func redisRecordKey(namespace string, key string) string {
	return redisKeyPrefix + namespace + ":" + key
}

func (store *RedisKVStore) Ping(ctx context.Context) error {
	return store.client.Ping(ctx).Err()
}

func (store *RedisKVStore) Get(ctx context.Context, namespace string, key string) ([]byte, bool, error) {
	value, err := store.client.Get(ctx, redisRecordKey(namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return value, true, nil
}

func (store *RedisKVStore) Put(ctx context.Context, namespace string, key string, value []byte) error {
	if err := store.client.Set(ctx, redisRecordKey(namespace, key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (store *RedisKVStore) Delete(ctx context.Context, namespace string, key string) error {
	if err := store.client.Del(ctx, redisRecordKey(namespace, key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (store *RedisKVStore) DeleteNamespace(ctx context.Context, namespace string) error {
	keys, err := store.scanKeys(ctx, redisKeyPrefix+namespace+":*")
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := store.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del namespace: %w", err)
	}
	store.logger.Debug("deleted namespace", zap.String("namespace", namespace), zap.Int("keys", len(keys)))
	return nil
}

func (store *RedisKVStore) CountNamespace(ctx context.Context, namespace string) (int64, error) {
	keys, err := store.scanKeys(ctx, redisKeyPrefix+namespace+":*")
	if err != nil {
		return 0, err
	}
	return int64(len(keys)), nil
}

func (store *RedisKVStore) Close() error {
	return store.client.Close()
}

func (store *RedisKVStore) scanKeys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		batch, next, err := store.client.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan: %w", err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return keys, nil
}
