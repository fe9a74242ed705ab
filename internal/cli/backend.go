package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/storedesk/internal/config"
	"github.com/aretw0/storedesk/pkg/adapters/memory"
	"github.com/aretw0/storedesk/pkg/adapters/redis"
	"github.com/aretw0/storedesk/pkg/adapters/sqlite"
	"github.com/aretw0/storedesk/pkg/ports"
)

// Backend is an opened storage backend.
type Backend struct {
	Name  string
	Repos ports.Repositories
	close func() error
}

// Close releases the backend's connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend opens the storage selected by cfg.Backend.
func OpenBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		logger.Debug("using in-memory storage")
		return &Backend{Name: cfg.Backend, Repos: memory.NewRepositories()}, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		logger.Debug("using sqlite storage", "path", db.Path())
		return &Backend{Name: cfg.Backend, Repos: sqlite.NewRepositories(db), close: db.Close}, nil

	case config.BackendRedis:
		dialCtx := ctx
		if cfg.Redis.DialTimeout > 0 {
			var cancel context.CancelFunc
			dialCtx, cancel = context.WithTimeout(ctx, cfg.Redis.DialTimeout)
			defer cancel()
		}
		client, err := redis.Dial(dialCtx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		logger.Debug("using redis storage", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB, "prefix", cfg.Redis.Prefix)
		repos := redis.NewRepositories(client, redis.WithPrefix(cfg.Redis.Prefix))
		return &Backend{Name: cfg.Backend, Repos: repos, close: client.Close}, nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
