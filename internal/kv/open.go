package kv

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Backend drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Driver        string
	SQLitePath    string
	MigrationsDir string
	Redis         RedisOptions
}

// Open returns the backend named by opts.Driver.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case DriverMemory:
		logger.Warn("using in-memory store; state is lost on exit")
		return NewMemoryStore(), nil
	case "", DriverSQLite:
		logger.Info("opening sqlite store", zap.String("path", opts.SQLitePath))
		return OpenSQLite(opts.SQLitePath, opts.MigrationsDir, logger)
	case DriverRedis:
		logger.Info("connecting redis store", zap.String("addr", opts.Redis.Addr), zap.String("prefix", opts.Redis.Prefix))
		return NewRedisStore(ctx, opts.Redis)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
