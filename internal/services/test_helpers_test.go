package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type memoryStore struct {
	mu      sync.Mutex
	records map[string][]byte
	getErr  error
	putErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: make(map[string][]byte)}
}

func memoryKey(namespace string, key string) string {
	return namespace + "\x00" + key
}

func (store *memoryStore) Get(_ context.Context, namespace string, key string) ([]byte, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.getErr != nil {
		return nil, false, store.getErr
	}
	value, ok := store.records[memoryKey(namespace, key)]
	return value, ok, nil
}

func (store *memoryStore) Put(_ context.Context, namespace string, key string, value []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.putErr != nil {
		return store.putErr
	}
	store.records[memoryKey(namespace, key)] = append([]byte(nil), value...)
	return nil
}

func (store *memoryStore) Delete(_ context.Context, namespace string, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.records, memoryKey(namespace, key))
	return nil
}

func (store *memoryStore) DeleteNamespace(_ context.Context, namespace string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	for key := range store.records {
		if strings.HasPrefix(key, namespace+"\x00") {
			delete(store.records, key)
		}
	}
	return nil
}

func (store *memoryStore) has(namespace string, key string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	_, ok := store.records[memoryKey(namespace, key)]
	return ok
}

func (store *memoryStore) raw(namespace string, key string) string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return string(store.records[memoryKey(namespace, key)])
}

var errStoreUnavailable = errors.New("store unavailable")

func mustParseDay(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return parsed
}

func mustSettings(t *testing.T, lastPeriodStart string, cycleLength int, periodLength int) CycleSettings {
	t.Helper()
	settings, err := NewCycleSettings(mustParseDay(t, lastPeriodStart), cycleLength, periodLength)
	if err != nil {
		t.Fatalf("NewCycleSettings(%s, %d, %d) unexpected error: %v", lastPeriodStart, cycleLength, periodLength, err)
	}
	return settings
}
