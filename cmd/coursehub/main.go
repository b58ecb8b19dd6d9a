// Package main - точка входа CourseHub.
//
// Команды:
//   - serve: REST API поверх менеджеров курсов
//   - migrate up|down|status: управление схемой БД
//   - seed: загрузка демонстрационных данных из YAML
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/course-hub/coursehub/config"
	"github.com/course-hub/coursehub/internal/infrastructure/metrics"
	"github.com/course-hub/coursehub/internal/infrastructure/persistence/sqldb"
	"github.com/course-hub/coursehub/pkg/logger"
	"github.com/course-hub/coursehub/pkg/retry"

	"github.com/spf13/cobra"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions - флаги, общие для всех команд.
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "coursehub",
		Short:         "Course management service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")

	root.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newSeedCmd(opts),
	)
	return root
}

// ══════════════════════════════════════════════════════════════════════════════
// BOOTSTRAP
// ══════════════════════════════════════════════════════════════════════════════

// app - общие зависимости команд.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	store   *sqldb.Store
	metrics *metrics.Metrics
}

// bootstrap загружает конфигурацию, настраивает логирование и подключается
// к БД с повторными попытками.
func bootstrap(ctx context.Context, opts *rootOptions, logOut io.Writer) (*app, error) {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. Конфигурация
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. Логирование
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(logger.Options{
		Output:    logOut,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		Format:    cfg.Observability.LogFormat,
		AddCaller: true,
	}).With(
		logger.String("app", cfg.App.Name),
		logger.String("env", string(cfg.App.Environment)),
	)

	a := &app{cfg: cfg, log: log}
	if cfg.Observability.MetricsEnabled {
		a.metrics = metrics.New()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 3. База данных
	// ─────────────────────────────────────────────────────────────────────────
	dbCfg := storeConfig(cfg.Database)
	storeOpts := []sqldb.Option{sqldb.WithLogger(log)}
	if a.metrics != nil {
		storeOpts = append(storeOpts, sqldb.WithHook(a.metrics.StoreHook()))
	}

	retrier := retry.ConnectRetrier(cfg.Database.ConnectRetries, cfg.Database.ConnectMaxDelay)
	err = retrier.Do(ctx, func(ctx context.Context) error {
		store, err := sqldb.Open(ctx, dbCfg, storeOpts...)
		if errors.Is(err, sqldb.ErrUnsupportedDriver) {
			return retry.Permanent(err)
		}
		if err != nil {
			log.Warn("database not reachable yet", logger.String("driver", dbCfg.Driver), logger.Err(err))
			return err
		}
		a.store = store
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("database connection established", logger.String("driver", dbCfg.Driver))
	return a, nil
}

// storeConfig переводит настройки приложения в конфигурацию пула.
func storeConfig(db config.DatabaseConfig) sqldb.Config {
	c := sqldb.DefaultConfig()
	c.Driver = db.Driver
	c.URL = db.URL
	if db.Driver == config.DriverSQLite {
		c.URL = db.SQLitePath
	}
	c.MaxOpenConns = db.MaxOpenConns
	c.MaxIdleConns = db.MaxIdleConns
	c.ConnMaxLifetime = db.ConnMaxLifetime
	c.ConnMaxIdleTime = db.ConnMaxIdleTime
	c.LogQueries = db.LogQueries
	return c
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
	_ = a.log.Sync()
}
