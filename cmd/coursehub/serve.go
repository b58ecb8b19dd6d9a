package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/course-hub/coursehub/internal/application/service"
	"github.com/course-hub/coursehub/internal/infrastructure/persistence/sqldb"
	api "github.com/course-hub/coursehub/internal/interface/http"
	"github.com/course-hub/coursehub/internal/interface/http/handlers"
	"github.com/course-hub/coursehub/pkg/logger"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations before serving")
	return cmd
}

func serve(ctx context.Context, opts *rootOptions, migrate bool) error {
	a, err := bootstrap(ctx, opts, os.Stdout)
	if err != nil {
		return err
	}
	defer a.close()

	log := a.log
	log.Info("starting CourseHub API", logger.String("version", a.cfg.App.Version))

	// ─────────────────────────────────────────────────────────────────────────
	// Миграции
	// ─────────────────────────────────────────────────────────────────────────
	if migrate {
		n, err := sqldb.NewMigrator(a.store).Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("database schema is up to date", logger.Int("applied", n))
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Менеджеры и HTTP
	// ─────────────────────────────────────────────────────────────────────────
	factory := sqldb.NewUnitOfWorkFactory(a.store, log)

	checker := handlers.NewCompositeHealthChecker(a.cfg.App.Version)
	checker.AddCheck("database", handlers.NewDatabaseCheck(a.store))

	srv := api.NewServer(api.ConfigFrom(a.cfg), api.Dependencies{
		Managers:      service.NewManagers(factory, log),
		Logger:        log,
		HealthChecker: checker,
		Metrics:       a.metrics,
	})

	errCh := srv.StartAsync()

	// ─────────────────────────────────────────────────────────────────────────
	// Ожидание сигнала завершения
	// ─────────────────────────────────────────────────────────────────────────
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("CourseHub API stopped")
	return nil
}
