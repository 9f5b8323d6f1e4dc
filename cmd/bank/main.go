package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/iho/minibank/internal/console"
	"github.com/iho/minibank/internal/infrastructure/config"
	"github.com/iho/minibank/internal/infrastructure/logger"
	"github.com/iho/minibank/internal/infrastructure/metrics"
	"github.com/iho/minibank/internal/ledger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "minibank",
		Short:        "In-memory bank ledger console",
		Long:         `An interactive console for a small in-memory bank: accounts, deposits, withdrawals, transfers and batch interest/charge runs.`,
		SilenceUsage: true,
		RunE:         run,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	met := metrics.New(prometheus.DefaultRegisterer)

	bank := ledger.New(ledger.NewULIDGenerator(), log, met)

	ui := console.New(bank, cmd.InOrStdin(), cmd.OutOrStdout(), console.Options{
		SavingsRate:   cfg.SavingsInterestRate,
		CurrentCharge: cfg.CurrentAccountCharge,
	})

	log.Debug().Msg("console started")
	return ui.Run()
}
