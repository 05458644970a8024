// Package storage provides SQLite-based persistence for episode results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/firewall-defense/internal/runner"
)

// Store manages the SQLite database connection for episode persistence.
type Store struct {
	db *sql.DB
}

// Episode represents one finished episode.
type Episode struct {
	ID             string // UUID
	Policy         string
	Seed           int64
	Difficulty     string
	Ticks          int
	Reward         float64
	EnemiesKilled  int
	WallsPlaced    int
	WallsDestroyed int
	Terminated     bool // Ended by a core breach
	Truncated      bool // Ended by the tick limit
	FinalHash      uint64
	ReplayPath     string
	Duration       time.Duration
	CreatedAt      time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS episodes (
			id TEXT PRIMARY KEY,
			policy TEXT NOT NULL,
			seed INTEGER NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL,
			reward REAL NOT NULL,
			enemies_killed INTEGER NOT NULL DEFAULT 0,
			walls_placed INTEGER NOT NULL DEFAULT 0,
			walls_destroyed INTEGER NOT NULL DEFAULT 0,
			terminated INTEGER NOT NULL DEFAULT 0,
			truncated INTEGER NOT NULL DEFAULT 0,
			final_hash TEXT NOT NULL,
			replay_path TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_episodes_policy ON episodes(policy);
		CREATE INDEX IF NOT EXISTS idx_episodes_top ON episodes(policy, reward DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveEpisode records a finished episode. A new UUID is assigned when
// ep.ID is empty. Returns the ID of the inserted record.
func (s *Store) SaveEpisode(ep Episode) (string, error) {
	if ep.ID == "" {
		ep.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO episodes
		 (id, policy, seed, difficulty, ticks, reward, enemies_killed, walls_placed,
		  walls_destroyed, terminated, truncated, final_hash, replay_path, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ep.ID,
		ep.Policy,
		ep.Seed,
		ep.Difficulty,
		ep.Ticks,
		ep.Reward,
		ep.EnemiesKilled,
		ep.WallsPlaced,
		ep.WallsDestroyed,
		ep.Terminated,
		ep.Truncated,
		formatHash(ep.FinalHash),
		ep.ReplayPath,
		ep.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save episode: %w", err)
	}

	return ep.ID, nil
}

const episodeColumns = `id, policy, seed, difficulty, ticks, reward, enemies_killed, walls_placed,
	walls_destroyed, terminated, truncated, final_hash, replay_path, duration_ms, created_at`

// EpisodeByID retrieves an episode by its ID. Returns nil if it does not exist.
func (s *Store) EpisodeByID(id string) (*Episode, error) {
	row := s.db.QueryRow(`SELECT `+episodeColumns+` FROM episodes WHERE id = ?`, id)

	ep, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episode: %w", err)
	}
	return ep, nil
}

// TopEpisodes retrieves the best N episodes for the given policy.
// Results are ordered by reward, then by survived ticks, descending.
func (s *Store) TopEpisodes(policy string, limit int) ([]Episode, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 WHERE policy = ?
		 ORDER BY reward DESC, ticks DESC, created_at ASC
		 LIMIT ?`,
		policy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	return collectEpisodes(rows)
}

// RecentEpisodes retrieves the most recently stored episodes across all policies.
func (s *Store) RecentEpisodes(limit int) ([]Episode, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	return collectEpisodes(rows)
}

// ClearEpisodes deletes all episodes for the given policy.
func (s *Store) ClearEpisodes(policy string) error {
	_, err := s.db.Exec("DELETE FROM episodes WHERE policy = ?", policy)
	if err != nil {
		return fmt.Errorf("storage: cannot clear episodes: %w", err)
	}
	return nil
}

// SaveEpisodeSummary implements runner.EpisodeSaver.
// This adapter lets the runner persist results without a direct storage dependency.
func (s *Store) SaveEpisodeSummary(sum runner.Summary) (string, error) {
	return s.SaveEpisode(Episode{
		Policy:         sum.Policy,
		Seed:           sum.Seed,
		Difficulty:     sum.Difficulty,
		Ticks:          sum.Ticks,
		Reward:         sum.Reward,
		EnemiesKilled:  sum.EnemiesKilled,
		WallsPlaced:    sum.WallsPlaced,
		WallsDestroyed: sum.WallsDestroyed,
		Terminated:     sum.Terminated,
		Truncated:      sum.Truncated,
		FinalHash:      sum.FinalHash,
		ReplayPath:     sum.ReplayPath,
		Duration:       sum.Duration,
	})
}

// Ensure Store implements EpisodeSaver
var _ runner.EpisodeSaver = (*Store)(nil)

// PolicyStats contains aggregated statistics for a policy.
type PolicyStats struct {
	Policy     string
	Episodes   int
	BestReward float64
	AvgReward  float64
	AvgTicks   float64
	Breaches   int
	LastRun    time.Time
}

// PolicyStats retrieves aggregated statistics for a specific policy.
func (s *Store) PolicyStats(policy string) (*PolicyStats, error) {
	stats := &PolicyStats{Policy: policy}

	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(reward), 0), COALESCE(AVG(reward), 0),
		        COALESCE(AVG(ticks), 0), COALESCE(SUM(terminated), 0), MAX(created_at)
		 FROM episodes WHERE policy = ?`,
		policy,
	).Scan(&stats.Episodes, &stats.BestReward, &stats.AvgReward, &stats.AvgTicks, &stats.Breaches, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get policy stats: %w", err)
	}
	stats.LastRun = parseTime(lastRun)

	return stats, nil
}

// AllPolicyStats retrieves statistics for every policy with stored episodes.
func (s *Store) AllPolicyStats() (map[string]*PolicyStats, error) {
	rows, err := s.db.Query(
		`SELECT policy, COUNT(*), MAX(reward), AVG(reward), AVG(ticks), SUM(terminated), MAX(created_at)
		 FROM episodes
		 GROUP BY policy`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all policy stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PolicyStats)
	for rows.Next() {
		var ps PolicyStats
		var lastRun any
		if err := rows.Scan(&ps.Policy, &ps.Episodes, &ps.BestReward, &ps.AvgReward, &ps.AvgTicks, &ps.Breaches, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastRun = parseTime(lastRun)
		stats[ps.Policy] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEpisode(sc scanner) (*Episode, error) {
	var ep Episode
	var hash string
	var durationMS int64
	var createdAt any

	if err := sc.Scan(
		&ep.ID,
		&ep.Policy,
		&ep.Seed,
		&ep.Difficulty,
		&ep.Ticks,
		&ep.Reward,
		&ep.EnemiesKilled,
		&ep.WallsPlaced,
		&ep.WallsDestroyed,
		&ep.Terminated,
		&ep.Truncated,
		&hash,
		&ep.ReplayPath,
		&durationMS,
		&createdAt,
	); err != nil {
		return nil, err
	}

	h, err := strconv.ParseUint(hash, 16, 64)
	if err != nil {
		return nil, fmt.Errorf("bad final hash %q: %w", hash, err)
	}
	ep.FinalHash = h
	ep.Duration = time.Duration(durationMS) * time.Millisecond
	ep.CreatedAt = parseTime(createdAt)

	return &ep, nil
}

func collectEpisodes(rows *sql.Rows) ([]Episode, error) {
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		ep, err := scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		episodes = append(episodes, *ep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return episodes, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func formatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}
