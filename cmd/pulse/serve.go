package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newthinker/pulse/internal/api"
	"github.com/newthinker/pulse/internal/bridge"
	"github.com/newthinker/pulse/internal/config"
	"github.com/newthinker/pulse/internal/logger"
	"github.com/newthinker/pulse/internal/metrics"
	"github.com/newthinker/pulse/internal/notifier"
	"github.com/newthinker/pulse/internal/notifier/email"
	"github.com/newthinker/pulse/internal/notifier/telegram"
	"github.com/newthinker/pulse/internal/notifier/webhook"
	"github.com/newthinker/pulse/internal/scheduler"
	"github.com/newthinker/pulse/internal/state"
	"github.com/newthinker/pulse/internal/stats"
	"github.com/newthinker/pulse/internal/stream"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the PULSE server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.Must(serverMode(cfg))
	defer log.Sync()

	log.Info("starting PULSE server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("asset", cfg.Scheduler.Asset),
	)

	// Shared components
	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
	}

	store := state.NewStore(500)
	tracker := stats.NewTracker()
	adapter := newAdapter(cfg, log)

	notifiers, err := buildNotifiers(cfg, log)
	if err != nil {
		return fmt.Errorf("configuring notifiers: %w", err)
	}

	sched := scheduler.New(scheduler.Config{
		Interval:  cfg.Scheduler.Interval,
		Asset:     cfg.Scheduler.Asset,
		OTC:       cfg.Scheduler.OTC,
		Timeframe: asTimeframe(cfg.Scheduler.Timeframe),
	}, adapter, store, notifiers, tracker, reg, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Optional realtime stream
	if cfg.Stream.Enabled {
		streamClient := stream.New(stream.Config{
			URL:           cfg.Stream.URL,
			ReconnectWait: cfg.Stream.ReconnectWait,
		}, store, reg, log)
		if err := streamClient.Start(ctx); err != nil {
			return fmt.Errorf("starting stream: %w", err)
		}
		defer streamClient.Stop()
	}

	server, err := api.NewServer(api.Config{
		Host:             cfg.Server.Host,
		Port:             cfg.Server.Port,
		APIKey:           cfg.Server.APIKey,
		SeriesCount:      cfg.Series.Count,
		SeriesStartPrice: cfg.Series.StartPrice,
		MetricsEnabled:   cfg.Metrics.Enabled,
		MetricsPath:      cfg.Metrics.Path,
	}, api.Dependencies{
		Store:     store,
		Tracker:   tracker,
		Adapter:   adapter,
		Scheduler: sched,
		Bridge:    bridge.New(cfg.Execution.TradeURL),
		Metrics:   reg,
	}, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down PULSE server")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// buildNotifiers registers every enabled notifier from the config.
func buildNotifiers(cfg *config.Config, log *zap.Logger) (*notifier.Registry, error) {
	registry := notifier.NewRegistry()

	for name, nc := range cfg.Notifiers {
		if !nc.Enabled {
			continue
		}

		var n notifier.Notifier

		switch name {
		case "telegram":
			n = telegram.New(nc.BotToken, nc.ChatID)
		case "webhook":
			n = webhook.New(nc.URL, nc.Headers)
		case "email":
			n = email.New(nc.Host, nc.Port, nc.Username, nc.Password, nc.From, nc.To)
		default:
			log.Warn("unknown notifier type, skipping", zap.String("name", name))
			continue
		}

		if err := n.Init(notifier.Config{Type: name}); err != nil {
			return nil, err
		}
		if err := registry.Register(n); err != nil {
			return nil, err
		}

		log.Info("notifier registered", zap.String("name", name))
	}

	return registry, nil
}
