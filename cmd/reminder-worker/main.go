package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"libraryhub/database"
	"libraryhub/internal/cache"
	"libraryhub/internal/config"
	"libraryhub/internal/httpapi/repository"
	"libraryhub/internal/logging"
	"libraryhub/internal/mailer"
	"libraryhub/internal/reminder"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := logging.NewLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	dedupe, err := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		logger.Warn("Redis unavailable, overdue notices may repeat", "error", err)
		dedupe = nil
	}

	var sender mailer.Sender = mailer.Noop{}
	if cfg.MailerURL != "" {
		sender = mailer.NewHTTPSender(cfg.MailerURL, cfg.MailerToken, cfg.MailTimeout)
	} else {
		logger.Warn("MAILER_URL not set, emails will be discarded")
	}

	worker := reminder.NewWorker(
		repository.NewNotificationRepository(db),
		repository.NewBorrowRepository(db),
		repository.NewMemberRepository(db),
		sender,
		dedupe,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Reminder worker starting", "interval", cfg.ReminderInterval)
	worker.Run(ctx, cfg.ReminderInterval)
	logger.Info("Reminder worker stopped")
}
