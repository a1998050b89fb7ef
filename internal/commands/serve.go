package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/paisabot-dev/paisabot/internal/bot"
	"github.com/paisabot-dev/paisabot/internal/classifier"
	"github.com/paisabot-dev/paisabot/internal/config"
	"github.com/paisabot-dev/paisabot/internal/history"
	"github.com/paisabot-dev/paisabot/internal/market"
	"github.com/paisabot-dev/paisabot/internal/store"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the bot and poll for messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck // stderr sync failure is uninteresting

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			secrets, err := config.LoadSecrets()
			if err != nil {
				return err
			}

			ledger, err := newStore(cfg)
			if err != nil {
				return err
			}

			cl := newClassifier(cfg, logger)

			var log *history.Log
			if cfg.History.File != "" {
				log = history.NewLog(cfg.History.File)
			}

			quotes := market.NewClient(secrets.AlphaVantageKey, logger)
			handler := bot.NewHandler(ledger, cl, quotes, log, logger)

			b, err := bot.NewBot(secrets.TelegramToken, handler, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			logger.Info("shutting down")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "paisabot.yaml", "path to the settings file")
	return cmd
}

func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		return store.NewRedisStore(client), nil
	default:
		return store.NewFileStore(cfg.Storage.File)
	}
}

// newClassifier tries the snapshot first and falls back to retraining. The
// snapshot only ever saves startup time.
func newClassifier(cfg *config.Config, logger *zap.Logger) *classifier.Classifier {
	if cfg.Classifier.Snapshot != "" {
		if cl, err := classifier.NewFromSnapshot(cfg.Classifier.Snapshot); err == nil {
			logger.Info("classifier loaded from snapshot", zap.String("path", cfg.Classifier.Snapshot))
			return cl
		}
	}
	cl := classifier.New()
	if cfg.Classifier.Snapshot != "" {
		if err := cl.Snapshot(cfg.Classifier.Snapshot); err != nil {
			logger.Warn("saving classifier snapshot failed", zap.Error(err))
		}
	}
	return cl
}
