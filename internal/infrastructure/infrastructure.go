// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, metrics, sessions) that domain systems require.
package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/JaimeStill/octo/internal/config"
	"github.com/JaimeStill/octo/internal/metrics"
	"github.com/JaimeStill/octo/internal/migrations"
	"github.com/JaimeStill/octo/internal/session"
	"github.com/JaimeStill/octo/pkg/database"
	"github.com/JaimeStill/octo/pkg/lifecycle"
	"github.com/JaimeStill/octo/pkg/logging"
)

const redisDialTimeout = 5 * time.Second

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Metrics   *metrics.Metrics
	Sessions  session.Lookup

	closers     []io.Closer
	autoMigrate bool
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	infra := &Infrastructure{
		Lifecycle:   lc,
		Logger:      logger,
		Database:    db,
		Metrics:     metrics.New(),
		autoMigrate: cfg.Database.AutoMigrate,
	}

	if err := infra.initSessions(&cfg.Session); err != nil {
		return nil, fmt.Errorf("session init failed: %w", err)
	}
	return infra, nil
}

func (i *Infrastructure) initSessions(cfg *session.Config) error {
	switch cfg.Backend {
	case session.BackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
		defer cancel()

		client, err := session.Dial(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		i.closers = append(i.closers, client)
		i.Sessions = session.NewRedis(client, cfg.Prefix)
	default:
		i.Sessions = session.NewStatic(cfg.Sessions()...)
	}

	i.Logger.Info("sessions configured", "backend", cfg.Backend)
	return nil
}

// Start initializes all infrastructure systems and registers them with the lifecycle coordinator.
// When auto-migration is enabled, pending migrations run once the database is reachable.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}

	if i.autoMigrate {
		if err := migrations.Up(i.Database); err != nil {
			return fmt.Errorf("migrate failed: %w", err)
		}
		i.Logger.Info("database migrated")
	}

	closers := i.closers
	i.Lifecycle.OnShutdown(func() {
		<-i.Lifecycle.Context().Done()
		for _, c := range closers {
			if err := c.Close(); err != nil {
				i.Logger.Error("close failed", "error", err)
			}
		}
	})
	return nil
}
