package db

import (
	"context"
	"errors"
	"time"

	"github.com/terraincognita07/ovumcalendar/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KVRepository struct {
	database *gorm.DB
}

func NewKVRepository(database *gorm.DB) *KVRepository {
	return &KVRepository{database: database}
}

func (repo *KVRepository) Get(ctx context.Context, namespace string, key string) ([]byte, bool, error) {
	var entry models.KVEntry
	err := repo.database.WithContext(ctx).
		Where("namespace = ? AND record_key = ?", namespace, key).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return entry.Value, true, nil
}

func (repo *KVRepository) Put(ctx context.Context, namespace string, key string, value []byte) error {
	now := time.Now().UTC()
	entry := models.KVEntry{
		Namespace: namespace,
		Key:       key,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return repo.database.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}, {Name: "record_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (repo *KVRepository) Delete(ctx context.Context, namespace string, key string) error {
	return repo.database.WithContext(ctx).
		Where("namespace = ? AND record_key = ?", namespace, key).
		Delete(&models.KVEntry{}).Error
}

func (repo *KVRepository) DeleteNamespace(ctx context.Context, namespace string) error {
	return repo.database.WithContext(ctx).
		Where("namespace = ?", namespace).
		Delete(&models.KVEntry{}).Error
}

// CountNamespace reports how many records a namespace holds.
func (repo *KVRepository) CountNamespace(ctx context.Context, namespace string) (int64, error) {
	var count int64
	err := repo.database.WithContext(ctx).
		Model(&models.KVEntry{}).
		Where("namespace = ?", namespace).
		Count(&count).Error
	return count, err
}
