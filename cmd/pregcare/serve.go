package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/terraincognita07/pregcare/internal/api"
	"github.com/terraincognita07/pregcare/internal/db"
	"github.com/terraincognita07/pregcare/internal/logging"
	"github.com/terraincognita07/pregcare/internal/metrics"
	"github.com/terraincognita07/pregcare/internal/services"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the nightly rollover scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			defer func() { _ = env.logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, env)
		},
	}
}

func serve(ctx context.Context, env *environment) error {
	cfg := env.config
	logger := env.logger

	database, err := db.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	var registry *metrics.Metrics
	if cfg.Metrics.Enabled {
		registry = metrics.New()
	}

	handler, err := api.NewHandler(database, api.HandlerOptions{
		Location:           env.location,
		Logger:             logger,
		Metrics:            registry,
		FeedName:           cfg.Calendar.FeedName,
		DefaultCycleLength: cfg.Cycle.DefaultLength,
		LutealPhaseDays:    cfg.Cycle.LutealPhaseDays,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	var scheduler *services.RolloverScheduler
	if cfg.Scheduler.Enabled {
		options := services.RolloverOptions{
			Schedule:      cfg.Scheduler.Schedule,
			Location:      env.location,
			Phases:        handler.CycleService(),
			Analyses:      handler.AnalysisService(),
			Notifications: handler.NotificationService(),
			Profiles:      handler.ProfileService(),
			Logger:        logger,
		}
		if registry != nil {
			options.Observer = registry
		}
		scheduler, err = services.NewRolloverScheduler(options)
		if err != nil {
			return err
		}
	}

	app := newApp(handler, logger, registry)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("pregcare listening",
			zap.String("addr", cfg.ListenAddr()),
			zap.String("db", cfg.DBPath),
			zap.String("tz", env.location.String()),
		)
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			return fmt.Errorf("server exited: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	if scheduler != nil {
		group.Go(func() error {
			return scheduler.Run(groupCtx)
		})
	}

	return group.Wait()
}

func newApp(handler *api.Handler, logger *zap.Logger, registry *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ErrorHandler:          jsonErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logging.FiberMiddleware(logger))
	app.Use(registry.FiberMiddleware())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	return app
}

func jsonErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}
