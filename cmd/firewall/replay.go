package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/firewall-defense/internal/replay"
)

var flagListReplays bool

var replayCmd = &cobra.Command{
	Use:   "replay [file...]",
	Short: "Verify recorded episodes",
	Long: `Re-runs recorded episodes from their seed and actions and checks every
checkpoint hash. With --list, verifies every replay in the configured
replay directory.

Examples:
  firewall replay replays/greedy-42-1a2b3c4d.yaml
  firewall replay --list`,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagListReplays, "list", false, "Verify all replays in the replay directory")
}

func runReplay(cmd *cobra.Command, args []string) error {
	paths := args
	if flagListReplays {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		found, err := replay.List(cfg.Replay.Dir)
		if err != nil {
			return fmt.Errorf("list replays: %w", err)
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no replay files given")
	}

	failed := 0
	for _, path := range paths {
		if err := verifyReplay(path); err != nil {
			fmt.Printf("FAIL  %s: %v\n", path, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d replays failed", failed, len(paths))
	}
	return nil
}

func verifyReplay(path string) error {
	rep, err := replay.Load(path)
	if err != nil {
		return err
	}
	if err := replay.Verify(rep); err != nil {
		return err
	}

	_, total, err := replay.Play(rep)
	if err != nil {
		return err
	}
	fmt.Printf("OK    %s  policy %s  seed %d  ticks %d  reward %+.1f  hash %s\n",
		path, rep.Policy, rep.Seed, rep.FinalTick, total, rep.FinalHash)
	return nil
}
