package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/config"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories/memstore"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

type App struct {
	Config *config.Config
	DB     *pgxpool.Pool
	Store  *repositories.Store
}

// NewApp opens the configured backing store. The postgres driver retries the
// initial connection with exponential backoff, then runs pending migrations
// when AutoMigrate is set.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg.DBDriver == config.DriverMemory {
		utils.Logger.Warn("Using in-memory store; data is lost on restart")
		return &App{Config: cfg, Store: memstore.New().Repositories()}, nil
	}

	dbPool, err := connectWithRetry(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := Migrate(ctx, cfg.DBUrl, MigrateUp)
		cancel()
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
	}

	return &App{
		Config: cfg,
		DB:     dbPool,
		Store:  repositories.NewPostgresStore(dbPool, dbPool),
	}, nil
}

func connectWithRetry(cfg *config.Config) (*pgxpool.Pool, error) {
	backoff := initialBackoff
	for i := 1; ; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		dbPool, err := newDBPool(ctx, cfg.DBUrl, cfg.DBMaxConns)
		cancel()
		if err == nil {
			utils.Logger.Infof("%s connected to DB on attempt %d", cfg.AppName, i)
			return dbPool, nil
		}

		utils.Logger.WithError(err).Warnf(
			"Failed DB connect on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)

		if i == maxRetries {
			return nil, fmt.Errorf("unable to connect after %d attempts: %w", maxRetries, err)
		}
		time.Sleep(backoff)
		backoff *= 2
	}
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		utils.Logger.Infof("%s DB connection closed.", a.Config.AppName)
	}
}

func newDBPool(ctx context.Context, databaseURL string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	return pgxpool.ConnectConfig(ctx, cfg)
}
