// firewall runs the Firewall Defense tick simulation headlessly.
//
// Usage:
//
//	firewall policies              - List available policies
//	firewall run                   - Play episodes with a policy
//	firewall bench                 - Measure raw simulation throughput
//	firewall replay <file>         - Verify a recorded episode
//	firewall episodes [policy]     - Show stored episode results
//
// Global flags:
//
//	--config <path>      - Config file (default: search ~/.firewall/configs, ./configs)
//	--seed <value>       - RNG seed for reproducible episodes
//	--db <path>          - Episode database path (default from config)
//	--difficulty <name>  - easy, normal, hard or fixed
//	--log-level <level>  - debug, info, warn or error
//	--log-format <fmt>   - auto, text, json or logfmt
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import agents to register them
	_ "github.com/vovakirdan/firewall-defense/internal/agents"
	"github.com/vovakirdan/firewall-defense/internal/config"
	"github.com/vovakirdan/firewall-defense/internal/logging"
)

var (
	// Global flags
	flagConfig     string
	flagSeed       int64
	flagDBPath     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFormat  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "firewall",
	Short: "Firewall Defense - headless grid defense simulator",
	Long: `Firewall Defense is a deterministic tick simulation of a grid-based wall
defense game, built as a training environment for learning agents.

Available commands:
  policies  - Show all available policies
  run       - Play episodes with a policy
  bench     - Measure simulation throughput
  replay    - Verify recorded episodes
  episodes  - View stored episode results

Examples:
  firewall policies
  firewall run --policy greedy --episodes 10 --seed 42
  firewall bench --ticks 1000000
  firewall replay replays/greedy-42-1a2b3c4d.yaml
  firewall episodes greedy`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to episode database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (default from config)")

	// Add subcommands
	rootCmd.AddCommand(policiesCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(episodesCmd)
}

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() (config.Config, config.DifficultyPreset, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, "", err
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return cfg, "", err
	}
	config.ApplyPreset(&cfg, preset)

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.Log.Format = flagLogFormat
	}

	if err := cfg.Validate(); err != nil {
		return cfg, "", fmt.Errorf("invalid config: %w", err)
	}
	return cfg, preset, nil
}

func newLogger(cfg config.Config) (*log.Logger, error) {
	return logging.New(os.Stderr, cfg.Log)
}

// resolveSeed returns the --seed flag, or a time-based seed when it is 0.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
