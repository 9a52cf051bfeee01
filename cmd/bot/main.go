package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/kosmosbot/kosmos/internal/bot"
	"github.com/kosmosbot/kosmos/internal/bot/handlers"
	"github.com/kosmosbot/kosmos/internal/config"
	"github.com/kosmosbot/kosmos/internal/database"
	"github.com/kosmosbot/kosmos/internal/delivery"
	"github.com/kosmosbot/kosmos/internal/netmon"
	"github.com/kosmosbot/kosmos/internal/ops"
	"github.com/kosmosbot/kosmos/internal/repository"
	"github.com/kosmosbot/kosmos/internal/scheduler"
	"github.com/kosmosbot/kosmos/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := newLogger(cfg.Debug)
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("connected to database")

	if err := db.Migrate(ctx); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	pendingRepo := repository.NewPendingMessageRepository(db)

	monitor := netmon.New(cfg.NetworkAlertThreshold, logger)

	sender, err := transport.New(cfg.TelegramToken, cfg.SendTimeout)
	if err != nil {
		logger.Fatal("failed to create telegram client", zap.Error(err))
	}

	sched := scheduler.New(reminderRepo, sender, monitor, cfg.PollInterval, logger)
	go sched.Start(ctx)

	queue := delivery.New(pendingRepo, sender, monitor, cfg.QueueDrainInterval, cfg.QueueCleanupAge, cfg.MaxMessageRetries, logger)
	go queue.Start(ctx)

	if cfg.OpsAddr != "" {
		opsSrv := ops.New(cfg.OpsAddr, db, monitor, userRepo, reminderRepo, pendingRepo, logger)
		go func() {
			if err := opsSrv.Start(ctx); err != nil {
				logger.Error("ops server failed", zap.Error(err))
			}
		}()
	}

	h := handlers.New(sender, &handlers.Repositories{
		User:           userRepo,
		Reminder:       reminderRepo,
		PendingMessage: pendingRepo,
	}, sched, monitor, cfg, logger)

	b := bot.New(sender.API(), h, logger)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	logger.Info("starting bot")
	if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("bot stopped", zap.Error(err))
	}
}

func newLogger(debug bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	return logger
}
