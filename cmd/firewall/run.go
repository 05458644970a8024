package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/firewall-defense/internal/registry"
	"github.com/vovakirdan/firewall-defense/internal/runner"
	"github.com/vovakirdan/firewall-defense/internal/storage"
)

var (
	flagPolicy   string
	flagEpisodes int
	flagWorkers  int
	flagRecord   bool
	flagNoSave   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play episodes with a policy",
	Long: `Plays one or more episodes with the chosen policy and stores each result.
Episode i uses seed+i, so a run is reproducible from its --seed.

Examples:
  firewall run --policy greedy
  firewall run --policy random --episodes 100 --workers 4 --seed 7
  firewall run --policy greedy --record --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&flagPolicy, "policy", "p", "greedy", "Policy ID (see 'firewall policies')")
	runCmd.Flags().IntVarP(&flagEpisodes, "episodes", "n", 1, "Number of episodes")
	runCmd.Flags().IntVar(&flagWorkers, "workers", 1, "Episodes played in parallel")
	runCmd.Flags().BoolVar(&flagRecord, "record", false, "Write a replay file per episode")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store results in the database")
}

func runRun(cmd *cobra.Command, args []string) error {
	if !registry.Exists(flagPolicy) {
		return fmt.Errorf("unknown policy %q (run 'firewall policies' to list them)", flagPolicy)
	}
	if flagEpisodes < 1 {
		return fmt.Errorf("--episodes must be at least 1")
	}

	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	var saver runner.EpisodeSaver
	if !flagNoSave {
		store, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		saver = store
	}

	r := runner.New(cfg, saver, logger)
	r.SetDifficulty(string(preset))
	r.SetRecording(flagRecord)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := resolveSeed()
	seeds := make([]int64, flagEpisodes)
	for i := range seeds {
		seeds[i] = seed + int64(i)
	}

	factory := func() registry.Policy {
		p, _ := registry.Create(flagPolicy) // existence checked above
		return p
	}
	results, err := r.RunBatch(ctx, factory, seeds, flagWorkers)
	if err != nil {
		return err
	}

	printRunSummary(results)
	return nil
}

func printRunSummary(results []runner.Result) {
	var totalReward float64
	var totalTicks, breaches int
	best := results[0]

	for _, res := range results {
		totalReward += res.Reward
		totalTicks += res.Ticks
		if res.Terminated {
			breaches++
		}
		if res.Reward > best.Reward {
			best = res
		}
		if len(results) <= 20 {
			fmt.Printf("  seed %-20d  ticks %-5d  reward %+6.1f  killed %-3d  %s\n",
				res.Seed, res.Ticks, res.Reward, res.EnemiesKilled, outcome(res))
		}
	}

	n := float64(len(results))
	fmt.Println()
	fmt.Printf("Episodes: %d  Breaches: %d\n", len(results), breaches)
	fmt.Printf("Avg reward: %.2f  Avg ticks: %.1f\n", totalReward/n, float64(totalTicks)/n)
	fmt.Printf("Best: seed %d, reward %.1f\n", best.Seed, best.Reward)
	if best.ReplayPath != "" {
		fmt.Printf("Replay: %s\n", best.ReplayPath)
	}
}

func outcome(res runner.Result) string {
	switch {
	case res.Terminated:
		return "breach"
	case res.Truncated:
		return "survived"
	default:
		return "unfinished"
	}
}
