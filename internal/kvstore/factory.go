package kvstore

import (
	"fmt"
	"log/slog"
)

const (
	TypeMemory = "memory"
	TypeSQLite = "sqlite"
	TypeRedis  = "redis"
)

// NewKeyValueStore creates the backend named by storeType. The connection string is
// interpreted by the backend: a file path or ":memory:" for sqlite, a redis:// URL for redis.
func NewKeyValueStore(storeType, connectionString string) (store KeyValueStore, err error) {
	switch storeType {
	case TypeMemory, "":
		store = NewMemoryStore()
	case TypeSQLite:
		store, err = NewSQLiteStore(connectionString)
		if err != nil {
			return nil, err
		}
	case TypeRedis:
		store, err = NewRedisStore(connectionString)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeType)
	}

	slog.Info("key value store initialized", "type", storeType)
	return store, nil
}
