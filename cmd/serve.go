package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devlance/marketplace-api/internal/api"
	"github.com/devlance/marketplace-api/internal/core/service"
	"github.com/devlance/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/devlance/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/devlance/marketplace-api/internal/infrastructure/db/redis"
	"github.com/devlance/marketplace-api/internal/infrastructure/queue"
	"github.com/devlance/marketplace-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the marketplace HTTP API and the notification dispatcher",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg := config.Load()
		log := logger.Init(logger.Options{
			Level:  cfg.LogLevel,
			Pretty: cfg.Env == "development",
		})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return err
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()

		if err := ensureIndexes(ctx, db); err != nil {
			return err
		}

		notificationRepo := mongodb.NewNotificationRepository(db)
		notificationService := service.NewNotificationService(notificationRepo, log)
		dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, notificationService, log)
		dispatcher.Start(ctx)

		e := api.NewRouter(cfg, db, rdb, dispatcher, notificationService, log)

		go func() {
			addr := ":" + cfg.Port
			log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("http server starting")
			if err := e.Start(addr); err != nil {
				log.Info().Err(err).Msg("http server stopped")
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http server shutdown")
		}

		log.Info().Msg("shut down gracefully")
		return nil
	},
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, fn := range []func(context.Context) error{
		mongodb.NewAccountRepository(db).EnsureIndexes,
		mongodb.NewProjectRepository(db).EnsureIndexes,
		mongodb.NewApplicationRepository(db).EnsureIndexes,
		mongodb.NewTaskRepository(db).EnsureIndexes,
		mongodb.NewPaymentRepository(db).EnsureIndexes,
	} {
		if err := fn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
