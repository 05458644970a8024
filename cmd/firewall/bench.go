package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/firewall-defense/internal/runner"
)

var flagTicks int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure simulation throughput",
	Long: `Steps the simulation with no-op actions and reports ticks per second.
Nothing is stored.

Examples:
  firewall bench
  firewall bench --ticks 5000000 --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagTicks, "ticks", 1_000_000, "Number of ticks to simulate")
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := runner.New(cfg, nil, logger).Bench(ctx, resolveSeed(), flagTicks)
	if err != nil {
		return err
	}

	fmt.Printf("Ticks:     %d\n", res.Ticks)
	fmt.Printf("Episodes:  %d\n", res.Episodes)
	fmt.Printf("Elapsed:   %s\n", res.Elapsed)
	fmt.Printf("Ticks/sec: %.0f\n", res.TicksPerSecond)
	return nil
}
