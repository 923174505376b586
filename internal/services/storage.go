package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// KeyValueStore persists raw records per device namespace.
type KeyValueStore interface {
	Get(ctx context.Context, namespace string, key string) ([]byte, bool, error)
	Put(ctx context.Context, namespace string, key string, value []byte) error
	Delete(ctx context.Context, namespace string, key string) error
	DeleteNamespace(ctx context.Context, namespace string) error
}

type recordStore struct {
	store  KeyValueStore
	logger *zap.Logger
}

func newRecordStore(store KeyValueStore, logger *zap.Logger) recordStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return recordStore{store: store, logger: logger}
}

// load decodes the record into target. A record that fails to decode is
// discarded and reported as absent.
func (records recordStore) load(ctx context.Context, namespace string, key string, target any) (bool, error) {
	raw, found, err := records.store.Get(ctx, namespace, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		records.logger.Warn("discarding malformed record",
			zap.String("namespace", namespace),
			zap.String("key", key),
			zap.Error(err),
		)
		if err := records.discard(ctx, namespace, key); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func (records recordStore) save(ctx context.Context, namespace string, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := records.store.Put(ctx, namespace, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (records recordStore) discard(ctx context.Context, namespace string, key string) error {
	if err := records.store.Delete(ctx, namespace, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
