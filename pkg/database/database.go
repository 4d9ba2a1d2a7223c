// Package database opens and manages the shared *sql.DB for Postgres or SQLite.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/octo/pkg/lifecycle"
	"github.com/JaimeStill/octo/pkg/query"
)

// ErrNotReady is returned when the database cannot be reached during startup.
var ErrNotReady = errors.New("database not ready")

// System exposes the connection pool and its SQL dialect.
type System interface {
	Connection() *sql.DB
	Dialect() query.Dialect
	Start(lc *lifecycle.Coordinator) error
	Close() error
}

type database struct {
	db     *sql.DB
	cfg    Config
	logger *slog.Logger
}

// New opens a connection pool. No connection is made until Start or first use.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open(cfg.DriverName(), cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		db:     db,
		cfg:    *cfg,
		logger: logger.With("system", "database", "driver", string(cfg.Driver)),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.db
}

func (d *database) Dialect() query.Dialect {
	return d.cfg.Driver
}

// Start verifies connectivity and closes the pool when lc shuts down.
func (d *database) Start(lc *lifecycle.Coordinator) error {
	ctx, cancel := context.WithTimeout(lc.Context(), d.cfg.ConnTimeoutDuration())
	defer cancel()

	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrNotReady, err)
	}
	d.logger.Info("database connected")

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := d.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database closed")
	})

	return nil
}

func (d *database) Close() error {
	return d.db.Close()
}
