package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/newthinker/pulse/internal/bridge"
	"github.com/newthinker/pulse/internal/core"
	"github.com/newthinker/pulse/internal/source"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	executeAsset     string
	executeOTC       bool
	executeTimeframe string
)

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "Fetch a signal and copy a trade ticket to the clipboard",
	RunE:  runExecute,
}

func init() {
	executeCmd.Flags().StringVar(&executeAsset, "asset", "", "asset to trade (default from config)")
	executeCmd.Flags().BoolVar(&executeOTC, "otc", true, "OTC session")
	executeCmd.Flags().StringVar(&executeTimeframe, "timeframe", "1m", "expiry timeframe (1m, 5m, 15m)")

	rootCmd.AddCommand(executeCmd)
}

func runExecute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	asset := executeAsset
	if asset == "" {
		asset = cfg.Scheduler.Asset
	}

	adapter := newAdapter(cfg, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	sig, conn := adapter.Fetch(ctx, source.Request{
		Asset:     asset,
		OTC:       executeOTC,
		Timeframe: asTimeframe(executeTimeframe),
	})
	if !conn.Connected {
		fmt.Printf("live feed unavailable, using generated signal (%s)\n", conn.Error)
	}

	ticket, err := bridge.New(cfg.Execution.TradeURL).Execute(sig)
	if err != nil {
		return fmt.Errorf("building ticket: %w", err)
	}

	if err := bridge.Copy(ticket); err != nil {
		if !errors.Is(err, core.ErrClipboardUnavailable) {
			return fmt.Errorf("copying ticket: %w", err)
		}
		fmt.Println("clipboard unavailable, copy the ticket manually:")
	} else {
		fmt.Println("ticket copied to clipboard:")
	}

	fmt.Printf("  %s\n", ticket.Text)
	fmt.Printf("trade at: %s\n", ticket.TradeURL)

	return nil
}
