package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"budgetbot/internal/amqp"
	"budgetbot/internal/backend"
	"budgetbot/internal/bot"
	"budgetbot/internal/chat/botapi"
	"budgetbot/internal/classify"
	"budgetbot/internal/config"
	apphttp "budgetbot/internal/http"
	"budgetbot/internal/log"
	"budgetbot/internal/notify"
	"budgetbot/internal/report"
	"budgetbot/internal/schedule"
	"budgetbot/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	logger.Info("Starting budgetbot")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Classification rules: file if configured, built-in set otherwise.
	rules := classify.Default()
	if cfg.CategoryRulesFile != "" {
		var err error
		rules, err = classify.LoadFile(cfg.CategoryRulesFile)
		if err != nil {
			logger.Error("Failed to load category rules", "error", err, "path", cfg.CategoryRulesFile)
			os.Exit(1)
		}
		logger.Info("Loaded category rules", "path", cfg.CategoryRulesFile, "categories", len(rules.Categories()))
	}

	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(ctx, backend.Config{
		Type:                backend.BackendType(cfg.DataBackend),
		SQLiteDBPath:        cfg.SQLiteDBPath,
		GoogleSpreadsheetID: cfg.GoogleSpreadsheetID,
	})
	if err != nil {
		logger.Error("Failed to initialize data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	// AMQP is optional; without it records simply are not mirrored.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without mirror", "error", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	sender, err := botapi.New(cfg.BotAPIBase, cfg.BotToken)
	if err != nil {
		logger.Error("Failed to initialize chat client", "error", err)
		os.Exit(1)
	}

	records := services.NewRecordService(result.Store, amqpClient)
	reporter := report.New(result.Store)
	notifier := notify.New(sender, cfg.ReportRecipients, logger.Logger)
	handler := bot.New(records, reporter, rules, sender, cfg.AllowedSenders, logger)

	times, err := cfg.ScheduleTimes()
	if err != nil {
		logger.Error("Invalid report schedule", "error", err)
		os.Exit(1)
	}
	scheduler := schedule.New(schedule.ReportJobs(reporter, notifier, times), logger.Logger)

	srv := apphttp.NewServer(":"+cfg.Port, handler, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		if err := scheduler.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if cfg.SelfPingURL != "" {
		pinger := apphttp.NewPinger(cfg.SelfPingURL, cfg.SelfPingInterval, logger)
		g.Go(func() error {
			if err := pinger.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
