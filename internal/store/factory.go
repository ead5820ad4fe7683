package store

import (
	"fmt"

	"github.com/Musyoka2020-eng/Contriflow/internal/config"
	"github.com/Musyoka2020-eng/Contriflow/internal/log"
)

// BackendType selects a persistence implementation.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
)

func (bt BackendType) IsValid() bool {
	return bt == MemoryBackend || bt == SQLiteBackend
}

// Open creates the configured store backend.
func Open(cfg *config.Config, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentStore)

	backend := BackendType(cfg.StoreBackend)
	if !backend.IsValid() {
		return nil, fmt.Errorf("invalid store backend: %s", cfg.StoreBackend)
	}

	switch backend {
	case SQLiteBackend:
		s, err := NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite store", "db_path", cfg.SQLiteDBPath)
		return s, nil
	default:
		logger.Info("Initialized memory store", "data_dir", cfg.DataDir)
		return NewMemoryStore(cfg.DataDir), nil
	}
}
