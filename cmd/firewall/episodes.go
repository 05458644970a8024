package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/firewall-defense/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var episodesCmd = &cobra.Command{
	Use:   "episodes [policy]",
	Short: "Show stored episode results",
	Long: `Without arguments, shows per-policy statistics. With a policy ID, shows
that policy's best episodes.

Examples:
  firewall episodes
  firewall episodes greedy --limit 20
  firewall episodes random --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEpisodes,
}

func init() {
	episodesCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of episodes to show")
	episodesCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the stored episodes of the given policy")
}

func runEpisodes(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open episode database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			return fmt.Errorf("--clear needs a policy")
		}
		return showPolicyStats(store)
	}

	policy := args[0]
	if flagClear {
		if err := store.ClearEpisodes(policy); err != nil {
			return err
		}
		fmt.Printf("Cleared episodes for %s.\n", policy)
		return nil
	}
	return showTopEpisodes(store, policy)
}

func showPolicyStats(store *storage.Store) error {
	stats, err := store.AllPolicyStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No episodes recorded yet.")
		fmt.Println()
		fmt.Println("Play 'firewall run --policy greedy' to record one.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	t := newTable("Policy", "Episodes", "Best", "Avg reward", "Avg ticks", "Breaches", "Last run")
	for _, id := range ids {
		s := stats[id]
		t.Row(
			s.Policy,
			strconv.Itoa(s.Episodes),
			fmt.Sprintf("%+.1f", s.BestReward),
			fmt.Sprintf("%+.2f", s.AvgReward),
			fmt.Sprintf("%.1f", s.AvgTicks),
			strconv.Itoa(s.Breaches),
			s.LastRun.Format("2006-01-02 15:04"),
		)
	}
	fmt.Println(t)
	return nil
}

func showTopEpisodes(store *storage.Store, policy string) error {
	episodes, err := store.TopEpisodes(policy, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best episodes - %s\n", policy)
	fmt.Println()
	if len(episodes) == 0 {
		fmt.Println("No episodes recorded yet.")
		return nil
	}

	t := newTable("Rank", "Reward", "Ticks", "Killed", "Walls", "Outcome", "Seed", "Date")
	for i, ep := range episodes {
		outcome := "survived"
		if ep.Terminated {
			outcome = "breach"
		}
		t.Row(
			strconv.Itoa(i+1),
			fmt.Sprintf("%+.1f", ep.Reward),
			strconv.Itoa(ep.Ticks),
			strconv.Itoa(ep.EnemiesKilled),
			strconv.Itoa(ep.WallsPlaced),
			outcome,
			strconv.FormatInt(ep.Seed, 10),
			ep.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	fmt.Println(t)
	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
