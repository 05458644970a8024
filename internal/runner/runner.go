// Package runner drives policies through simulation episodes, records
// replays and hands finished episodes to persistence.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/firewall-defense/internal/config"
	"github.com/vovakirdan/firewall-defense/internal/core"
	"github.com/vovakirdan/firewall-defense/internal/observe"
	"github.com/vovakirdan/firewall-defense/internal/registry"
	"github.com/vovakirdan/firewall-defense/internal/replay"
)

// EpisodeSaver is an interface for saving finished episodes.
// This allows the runner to persist results without depending on the storage package.
type EpisodeSaver interface {
	SaveEpisodeSummary(sum Summary) (string, error)
}

// Summary contains the outcome of one episode.
type Summary struct {
	Policy         string
	Seed           int64
	Difficulty     string
	Ticks          int
	Reward         float64
	EnemiesKilled  int
	WallsPlaced    int
	WallsDestroyed int
	Terminated     bool
	Truncated      bool
	FinalHash      uint64
	ReplayPath     string
	Duration       time.Duration
}

// Result is a Summary plus what the runner produced for it.
type Result struct {
	Summary
	ID     string         // Stored ID, or the recording ID when nothing was saved
	Replay *replay.Replay // Nil unless recording is enabled
}

// Runner plays episodes with the rules from a config.
type Runner struct {
	cfg        config.Config
	params     core.Params
	difficulty string
	record     bool
	saver      EpisodeSaver
	saveMu     sync.Mutex
	logger     *log.Logger
}

// New creates a runner. saver may be nil to skip persistence.
func New(cfg config.Config, saver EpisodeSaver, logger *log.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		params: cfg.Params(),
		saver:  saver,
		logger: logger,
	}
}

// SetDifficulty sets the label stored with each episode.
func (r *Runner) SetDifficulty(name string) {
	r.difficulty = name
}

// SetRecording enables writing a replay file per episode into the
// configured replay directory.
func (r *Runner) SetRecording(on bool) {
	r.record = on
}

// Params returns the rules episodes run with.
func (r *Runner) Params() core.Params {
	return r.params
}

// RunEpisode plays one episode of policy from seed until it terminates,
// truncates or ctx is cancelled. A cancelled episode is not saved and its
// partial result is returned with ctx.Err().
func (r *Runner) RunEpisode(ctx context.Context, policy registry.Policy, seed int64) (Result, error) {
	start := time.Now()
	id := uuid.NewString()

	sim := core.New(r.params, seed)
	policy.Reset(seed)

	var rec *replay.Recorder
	if r.record {
		rec = replay.NewRecorder(r.cfg.Replay.CheckpointEvery)
		rec.Begin(sim, id, policy.ID())
	}

	res := Result{
		Summary: Summary{
			Policy:     policy.ID(),
			Seed:       seed,
			Difficulty: r.difficulty,
		},
		ID: id,
	}

	for {
		if err := ctx.Err(); err != nil {
			res.Ticks = int(sim.Tick())
			res.Duration = time.Since(start)
			return res, err
		}

		snap := sim.Snapshot()
		mask := observe.ActionMask(&snap)
		action := policy.Act(&snap, &mask)
		if action < 0 || action >= core.NumActions {
			return res, fmt.Errorf("policy %s returned action %d at tick %d", policy.ID(), action, snap.Tick)
		}

		step := sim.Step(action)
		if rec != nil {
			rec.Record(action, step, sim)
		}

		res.Reward += step.Reward
		res.EnemiesKilled += step.EnemiesKilled
		res.WallsDestroyed += step.WallsDestroyed
		if step.Placed {
			res.WallsPlaced++
		}
		if step.EnemiesKilled > 0 || step.Breached {
			r.logger.Debug("tick",
				"tick", step.Tick,
				"killed", step.EnemiesKilled,
				"destroyed", step.WallsDestroyed,
				"breach", step.Breached,
			)
		}

		if step.Done() {
			res.Terminated = step.Terminated
			res.Truncated = step.Truncated
			break
		}
	}

	final := sim.Snapshot()
	res.Ticks = int(final.Tick)
	res.FinalHash = final.Hash()
	res.Duration = time.Since(start)

	if rec != nil {
		res.Replay = rec.Finish(sim)
		path := filepath.Join(r.cfg.Replay.Dir, replay.FileName(policy.ID(), seed, id))
		if err := replay.Save(path, res.Replay); err != nil {
			r.logger.Warn("Failed to save replay", "error", err)
		} else {
			res.ReplayPath = path
		}
	}

	if r.saver != nil {
		r.saveMu.Lock()
		storedID, err := r.saver.SaveEpisodeSummary(res.Summary)
		r.saveMu.Unlock()
		if err != nil {
			r.logger.Warn("Failed to save episode", "error", err)
		} else {
			res.ID = storedID
		}
	}

	r.logger.Info("Episode finished",
		"policy", res.Policy,
		"seed", res.Seed,
		"ticks", res.Ticks,
		"reward", res.Reward,
		"killed", res.EnemiesKilled,
		"breach", res.Terminated,
	)

	return res, nil
}

// RunBatch plays one episode per seed on up to workers goroutines. Each
// worker gets its own policy from factory. Results are in seed order.
func (r *Runner) RunBatch(ctx context.Context, factory registry.Factory, seeds []int64, workers int) ([]Result, error) {
	results := make([]Result, len(seeds))
	if len(seeds) == 0 {
		return results, nil
	}
	workers = min(max(workers, 1), len(seeds))

	jobs := make(chan int)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := range seeds {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			policy := factory()
			for i := range jobs {
				res, err := r.RunEpisode(ctx, policy, seeds[i])
				if err != nil {
					return err
				}
				results[i] = res
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
