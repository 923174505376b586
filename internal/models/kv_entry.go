package models

import "time"

const (
	KeyPeriodData    = "periodData"
	KeyPregnancyData = "pregnancyData"
	KeySexRecords    = "sexRecords"
)

// KVEntry is one persisted record inside a device namespace.
type KVEntry struct {
	ID        uint      `gorm:"primaryKey"`
	Namespace string    `gorm:"not null;uniqueIndex:uidx_kv_namespace_key"`
	Key       string    `gorm:"column:record_key;not null;uniqueIndex:uidx_kv_namespace_key"`
	Value     []byte    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
