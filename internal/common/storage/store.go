// Package storage provides the durable key-value backends that hold a device's saved session.
package storage

import (
	"context"
	"fmt"

	"wellness-eligibility/internal/common/config"
)

// KeyValueStore is a durable string-to-string map.
type KeyValueStore interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

// Open builds the backend selected by cfg.Driver.
func Open(cfg config.StorageConfig) (KeyValueStore, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return NewSQLite(cfg.SQLite)
	case config.DriverRedis:
		return NewRedis(cfg.Redis)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
