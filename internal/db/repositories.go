package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Store is a device-namespaced record store with housekeeping helpers.
type Store interface {
	Get(ctx context.Context, namespace string, key string) ([]byte, bool, error)
	Put(ctx context.Context, namespace string, key string, value []byte) error
	Delete(ctx context.Context, namespace string, key string) error
	DeleteNamespace(ctx context.Context, namespace string) error
	CountNamespace(ctx context.Context, namespace string) (int64, error)
	Close() error
}

type StoreOptions struct {
	Driver        string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type sqliteStore struct {
	*KVRepository
}

func (store sqliteStore) Close() error {
	return CloseSQLite(store.database)
}

func NewSQLiteStore(database *gorm.DB) Store {
	return sqliteStore{KVRepository: NewKVRepository(database)}
}

// OpenStore opens the backend selected by options.Driver.
func OpenStore(ctx context.Context, options StoreOptions, logger *zap.Logger) (Store, error) {
	switch options.Driver {
	case DriverSQLite, "":
		database, err := OpenSQLite(options.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(database), nil
	case DriverRedis:
		store := NewRedisKVStore(NewRedisClient(options.RedisAddr, options.RedisPassword, options.RedisDB), logger)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("ping redis %s: %w", options.RedisAddr, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", options.Driver)
	}
}
