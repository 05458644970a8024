package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/firewall-defense/internal/runner"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	in := Episode{
		Policy:         "greedy",
		Seed:           42,
		Difficulty:     "hard",
		Ticks:          312,
		Reward:         7,
		EnemiesKilled:  8,
		WallsPlaced:    12,
		WallsDestroyed: 8,
		Terminated:     true,
		FinalHash:      0xfedcba9876543210,
		ReplayPath:     "replays/x.yaml",
		Duration:       1500 * time.Millisecond,
	}

	id, err := store.SaveEpisode(in)
	if err != nil {
		t.Fatalf("SaveEpisode() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("Expected a UUID, got %q", id)
	}

	got, err := store.EpisodeByID(id)
	if err != nil {
		t.Fatalf("EpisodeByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("EpisodeByID() returned nil")
	}

	in.ID = id
	got.CreatedAt = time.Time{}
	if *got != in {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", *got, in)
	}
}

func TestStoreEpisodeByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.EpisodeByID("does-not-exist")
	if err != nil {
		t.Fatalf("EpisodeByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for a missing episode, got %+v", got)
	}
}

func TestStoreKeepsProvidedID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveEpisode(Episode{ID: "fixed-id", Policy: "noop", Ticks: 17})
	if err != nil {
		t.Fatalf("SaveEpisode() failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("Expected provided ID to be kept, got %q", id)
	}
	if _, err := store.SaveEpisode(Episode{ID: "fixed-id", Policy: "noop"}); err == nil {
		t.Error("Expected duplicate ID to fail")
	}
}

func TestStoreTopEpisodes(t *testing.T) {
	store := openTestStore(t)

	for i, r := range []float64{3, -1, 5, 0, 4} {
		if _, err := store.SaveEpisode(Episode{Policy: "random", Seed: int64(i), Reward: r, Ticks: 100 + i}); err != nil {
			t.Fatalf("SaveEpisode() failed: %v", err)
		}
	}
	store.SaveEpisode(Episode{Policy: "noop", Reward: 99})

	top, err := store.TopEpisodes("random", 3)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 episodes with limit, got %d", len(top))
	}
	if top[0].Reward != 5 || top[1].Reward != 4 || top[2].Reward != 3 {
		t.Errorf("Episodes not in expected order: %v, %v, %v", top[0].Reward, top[1].Reward, top[2].Reward)
	}

	all, err := store.TopEpisodes("random", 0)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 random episodes, got %d", len(all))
	}
}

func TestStoreTopEpisodesTieBreak(t *testing.T) {
	store := openTestStore(t)

	store.SaveEpisode(Episode{Policy: "noop", Reward: -1, Ticks: 17, Terminated: true})
	store.SaveEpisode(Episode{Policy: "noop", Reward: -1, Ticks: 40, Terminated: true})

	top, err := store.TopEpisodes("noop", 10)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(top) != 2 || top[0].Ticks != 40 {
		t.Errorf("Expected the longer episode first, got %+v", top)
	}
}

func TestStoreClearEpisodes(t *testing.T) {
	store := openTestStore(t)

	store.SaveEpisode(Episode{Policy: "random", Reward: 1})
	store.SaveEpisode(Episode{Policy: "random", Reward: 2})
	store.SaveEpisode(Episode{Policy: "greedy", Reward: 3})

	if err := store.ClearEpisodes("random"); err != nil {
		t.Fatalf("ClearEpisodes() failed: %v", err)
	}

	random, _ := store.TopEpisodes("random", 10)
	if len(random) != 0 {
		t.Errorf("Expected 0 random episodes after clear, got %d", len(random))
	}

	greedy, _ := store.TopEpisodes("greedy", 10)
	if len(greedy) != 1 {
		t.Errorf("Greedy episodes should not be affected by clearing random")
	}
}

func TestStoreRecentEpisodes(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveEpisode(Episode{Policy: "noop", Seed: int64(i)})
	}

	recent, err := store.RecentEpisodes(3)
	if err != nil {
		t.Fatalf("RecentEpisodes() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 episodes, got %d", len(recent))
	}
	if recent[0].Seed != 4 {
		t.Errorf("Expected the last saved episode first, got seed %d", recent[0].Seed)
	}
}

func TestStorePolicyStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.PolicyStats("greedy")
	if err != nil {
		t.Fatalf("PolicyStats() failed: %v", err)
	}
	if empty.Episodes != 0 || empty.BestReward != 0 {
		t.Errorf("Expected zero stats for an unknown policy, got %+v", empty)
	}

	store.SaveEpisode(Episode{Policy: "greedy", Reward: 2, Ticks: 100, Terminated: true})
	store.SaveEpisode(Episode{Policy: "greedy", Reward: 6, Ticks: 300, Truncated: true})
	store.SaveEpisode(Episode{Policy: "noop", Reward: -1, Ticks: 17, Terminated: true})

	stats, err := store.PolicyStats("greedy")
	if err != nil {
		t.Fatalf("PolicyStats() failed: %v", err)
	}
	if stats.Episodes != 2 {
		t.Errorf("Expected 2 episodes, got %d", stats.Episodes)
	}
	if stats.BestReward != 6 || stats.AvgReward != 4 {
		t.Errorf("Expected best 6 avg 4, got %v %v", stats.BestReward, stats.AvgReward)
	}
	if stats.AvgTicks != 200 {
		t.Errorf("Expected avg ticks 200, got %v", stats.AvgTicks)
	}
	if stats.Breaches != 1 {
		t.Errorf("Expected 1 breach, got %d", stats.Breaches)
	}

	all, err := store.AllPolicyStats()
	if err != nil {
		t.Fatalf("AllPolicyStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 policies, got %d", len(all))
	}
	if all["noop"].Episodes != 1 || all["noop"].BestReward != -1 {
		t.Errorf("Unexpected noop stats %+v", all["noop"])
	}
}

func TestStoreSaveEpisodeSummary(t *testing.T) {
	store := openTestStore(t)

	var saver runner.EpisodeSaver = store
	id, err := saver.SaveEpisodeSummary(runner.Summary{
		Policy:     "noop",
		Seed:       1,
		Ticks:      17,
		Reward:     -1,
		Terminated: true,
		FinalHash:  123,
	})
	if err != nil {
		t.Fatalf("SaveEpisodeSummary() failed: %v", err)
	}

	ep, err := store.EpisodeByID(id)
	if err != nil || ep == nil {
		t.Fatalf("EpisodeByID() failed: %v", err)
	}
	if ep.Policy != "noop" || ep.Ticks != 17 || !ep.Terminated || ep.FinalHash != 123 {
		t.Errorf("Unexpected stored episode %+v", ep)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
