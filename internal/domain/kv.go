package domain

import (
	"context"
	"time"
)

// Claves del store local.
const (
	KeyCustomers   = "@clientes"
	KeyLastSync    = "@lastSync"
	KeyChatHistory = "@ChatHistory:v1"
)

// KVStore persists raw values by key. Get returns ErrNotFound for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// KVEntry is the row used by SQL-backed stores.
type KVEntry struct {
	Key       string `gorm:"size:200;primaryKey"`
	Value     []byte `gorm:"type:bytea"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string { return "kv_entries" }
