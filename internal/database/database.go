// Package database owns the process-wide SQL handle and the small helpers the repositories share.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"mindful/internal/config"
)

// Provider hands out the shared database handle.
//
// The provider owns the handle: callers must not Close what Conn returns.
type Provider interface {
	// Conn returns the shared handle, opening a new one if none is held
	// or the previous one was closed.
	Conn(ctx context.Context) (*sqlx.DB, error)
	// Health returns a map of health status information.
	Health(ctx context.Context) map[string]string
	// Close releases the held handle. Release errors are logged, not returned.
	Close() error
}

// OpenFunc opens a fresh handle.
type OpenFunc func(ctx context.Context) (*sqlx.DB, error)

type provider struct {
	mu     sync.Mutex
	db     *sqlx.DB
	open   OpenFunc
	logger *slog.Logger
}

// New returns a Provider for cfg. Nothing is opened until the first Conn call.
func New(cfg config.Database, logger *slog.Logger) Provider {
	return NewWithOpener(Opener(cfg), logger)
}

// NewWithOpener returns a Provider that obtains handles from open.
func NewWithOpener(open OpenFunc, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &provider{open: open, logger: logger}
}

// Opener opens and pings a pool for cfg.
func Opener(cfg config.Database) OpenFunc {
	return func(ctx context.Context) (*sqlx.DB, error) {
		db, err := sqlx.Open(cfg.DriverName(), cfg.DSN())
		if err != nil {
			return nil, err
		}

		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
		db.SetConnMaxLifetime(30 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	}
}

func (p *provider) Conn(ctx context.Context) (*sqlx.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db, nil
	}

	db, err := p.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	p.db = db
	p.logger.Info("Database connection opened", "driver", db.DriverName())

	return db, nil
}

func (p *provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	if err := p.db.Close(); err != nil {
		p.logger.Warn("Failed to close database connection", "error", err)
	} else {
		p.logger.Info("Disconnected from database")
	}
	p.db = nil

	return nil
}

func (p *provider) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	db, err := p.Conn(ctx)
	if err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		p.logger.Error("Database unavailable", "error", err)
		return stats
	}

	if err := db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		p.logger.Error("Database ping failed", "error", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()
	stats["max_idle_closed"] = strconv.FormatInt(dbStats.MaxIdleClosed, 10)
	stats["max_lifetime_closed"] = strconv.FormatInt(dbStats.MaxLifetimeClosed, 10)

	if dbStats.MaxOpenConnections > 0 && dbStats.InUse == dbStats.MaxOpenConnections {
		stats["message"] = "The database pool is saturated."
	}
	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	return stats
}
