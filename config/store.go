package config

import (
	"context"
	"fmt"

	"southern-spoon-api/store"

	"github.com/sirupsen/logrus"
)

// OpenStore connects the configured KV backend and migrates its schema
func OpenStore(ctx context.Context, cfg *Config) (store.KV, error) {
	switch cfg.StoreDriver {
	case "sqlite", "":
		kv, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logrus.WithField("path", cfg.SQLitePath).Info("✅ SQLite order store ready")
		return kv, nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for STORE_DRIVER=postgres")
		}
		kv, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logrus.Info("✅ Postgres order store ready")
		return kv, nil
	case "memory":
		logrus.Warn("using in-memory order store, orders are lost on restart")
		return store.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
