package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/newthinker/pulse/internal/source"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	signalAsset     string
	signalOTC       bool
	signalTimeframe string
)

var signalCmd = &cobra.Command{
	Use:   "signal",
	Short: "Fetch a single signal and print it",
	Long:  "Fetch one signal from the remote feed (or the generator when the feed is unreachable) and print it as JSON",
	RunE:  runSignal,
}

func init() {
	signalCmd.Flags().StringVar(&signalAsset, "asset", "", "asset to fetch (default from config)")
	signalCmd.Flags().BoolVar(&signalOTC, "otc", true, "OTC session")
	signalCmd.Flags().StringVar(&signalTimeframe, "timeframe", "1m", "expiry timeframe (1m, 5m, 15m)")

	rootCmd.AddCommand(signalCmd)
}

func runSignal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	asset := signalAsset
	if asset == "" {
		asset = cfg.Scheduler.Asset
	}

	adapter := newAdapter(cfg, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	sig, conn := adapter.Fetch(ctx, source.Request{
		Asset:     asset,
		OTC:       signalOTC,
		Timeframe: asTimeframe(signalTimeframe),
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{
		"signal":     sig,
		"connection": conn,
	}); err != nil {
		return fmt.Errorf("encoding signal: %w", err)
	}

	return nil
}
